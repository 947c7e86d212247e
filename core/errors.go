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

import "errors"

// Domain errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptyRecord indicates a Record has no fields.
	ErrEmptyRecord = errors.New("record has no fields")

	// ErrEmptyFieldName indicates a field with an empty name.
	ErrEmptyFieldName = errors.New("field name cannot be empty")

	// ErrInvalidTopK indicates a non-positive result count.
	ErrInvalidTopK = errors.New("top k must be greater than 0")
)
