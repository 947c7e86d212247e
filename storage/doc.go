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

// Package storage provides the storage abstraction layer for grantmatch.
//
// The matcher itself keeps its indices in memory and rebuilds them wholesale.
// Storage exists so that rebuilding does not have to re-embed records that
// have not changed: embeddings are cached by model and content ID, and each
// embedding run leaves a checkpoint describing what was embedded.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep consumers decoupled from BadgerDB:
//
//	repo, err := badger.NewEmbeddingRepository(backend)  // returns storage.EmbeddingRepository
//
// # Architecture
//
//   - EmbeddingRepository: cached vectors keyed by (model, content ID)
//   - CheckpointRepository: last embedding run per corpus
//   - TransactionManager: transaction support
//
// # Usage
//
//	backend, err := badger.OpenBackend("/var/lib/grantmatch/cache", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewEmbeddingRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, checkpoints, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
