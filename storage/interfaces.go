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
	"context"

	"github.com/poiesic/grantmatch/core"
)

// TransactionManager provides transaction support.
type TransactionManager interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repository is the common lifecycle shared by all repositories.
type Repository interface {
	TransactionManager

	// Close releases resources held by the repository.
	// The underlying backend is closed separately by its owner.
	Close() error
}

// EmbeddingRepository caches text embeddings keyed by model and content ID.
// Vectors are stored exactly as the model returned them, before normalization.
type EmbeddingRepository interface {
	Repository

	// GetEmbeddings returns the cached vectors for ids under model.
	// Missing ids are simply absent from the result; this is not an error.
	GetEmbeddings(ctx context.Context, model string, ids ...core.ID) (map[core.ID][]float32, error)

	// PutEmbeddings stores vectors under model, replacing any existing entries.
	PutEmbeddings(ctx context.Context, model string, vectors map[core.ID][]float32) error

	// CountEmbeddings returns the number of vectors cached for model.
	CountEmbeddings(ctx context.Context, model string) (int, error)

	// DeleteModel removes every vector cached for model and returns how many were removed.
	DeleteModel(ctx context.Context, model string) (int, error)
}

// CheckpointRepository persists the last embedding run of each corpus.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint, keyed by its Corpus.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a corpus.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, corpus string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for a corpus, if any.
	DeleteCheckpoint(ctx context.Context, corpus string) error
}
