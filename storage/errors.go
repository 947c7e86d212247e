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

package storage

import "errors"

var (
	// ErrStorageClosed is returned by any operation on a closed backend.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidModel indicates an empty model name or one containing NUL,
	// which would make embedding keys ambiguous.
	ErrInvalidModel = errors.New("invalid model name")

	// ErrSerializationFailed wraps decoding errors from the stored formats.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates a stored ID or vector blob of the wrong length.
	ErrTruncatedData = errors.New("truncated data")
)
