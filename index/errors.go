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

package index

import "errors"

var (
	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("index: embedder is required")

	// ErrEmbeddingFailed wraps any failure of the embedding model.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmbeddingMismatch indicates the embedder returned a different number of
	// vectors than documents.
	ErrEmbeddingMismatch = errors.New("embedding count does not match document count")

	// ErrDimensionMismatch indicates vectors of differing lengths.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyEmbedding indicates a zero-length vector.
	ErrEmptyEmbedding = errors.New("embedding is empty")
)
