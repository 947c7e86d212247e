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

import (
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/poiesic/grantmatch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	return marshal(core.IDMUS, id)
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	return unmarshal(core.IDMUS, data, "id")
}

// MarshalVector serializes an embedding vector to bytes.
func MarshalVector(vec []float32) []byte {
	return marshal(core.VectorMUS, vec)
}

// UnmarshalVector deserializes an embedding vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	return unmarshal(core.VectorMUS, data, "vector")
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	return marshal(core.CheckpointMUS, *checkpoint)
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, err := unmarshal(core.CheckpointMUS, data, "checkpoint")
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func marshal[T any](ser mus.Serializer[T], v T) []byte {
	buf := make([]byte, ser.Size(v))
	ser.Marshal(v, buf)
	return buf
}

// unmarshal rejects trailing bytes so a value never decodes from a longer blob.
func unmarshal[T any](ser mus.Serializer[T], data []byte, what string) (v T, err error) {
	if len(data) == 0 {
		return v, fmt.Errorf("%w: empty %s", ErrTruncatedData, what)
	}
	v, n, err := ser.Unmarshal(data)
	if err != nil {
		return v, fmt.Errorf("%w: %s: %w", ErrSerializationFailed, what, err)
	}
	if n != len(data) {
		return v, fmt.Errorf("%w: %s used %d of %d bytes", ErrTruncatedData, what, n, len(data))
	}
	return v, nil
}
