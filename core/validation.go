// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"
	"strings"
)

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Record must have at least one field
//   - Field names must not be empty
//
// NOT validated:
//   - Presence of specific fields (missing fields degrade to defaults)
//   - Field values (empty values are valid)
func ValidateRecord(record Record) error {
	if len(record.Fields) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyRecord)
	}
	for i, f := range record.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: field %d: %w", ErrInvalidRecord, i, ErrEmptyFieldName)
		}
	}
	return nil
}

// ValidateTopK validates a requested result count.
func ValidateTopK(k int) error {
	if k <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTopK, k)
	}
	return nil
}

// Normalize returns a copy of the query with surrounding whitespace removed.
// Absent fields stay empty; they are never an error.
func (q RepQuery) Normalize() RepQuery {
	return RepQuery{
		AgencyType:  strings.TrimSpace(q.AgencyType),
		ProductType: strings.TrimSpace(q.ProductType),
		State:       strings.TrimSpace(q.State),
	}
}

// OrDefault returns value, or fallback when value is blank.
func OrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
