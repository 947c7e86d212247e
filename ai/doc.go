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

// Package ai provides abstractions for AI services used in grantmatch.
//
// This package defines interfaces for the two AI operations the matcher depends
// on: text embeddings for the buyer and grant vector indices, and a chat advisor
// that answers free-form grant questions. Business logic depends on these
// abstractions rather than on a concrete model vendor.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Advisor: Produces chat replies for a conversation
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible (and Azure OpenAI) APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//   - ai/cache: Embedder decorator backed by a persistent embedding repository
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder, mock.NewMockAdvisor) return CONCRETE types so tests
// can inject behavior and assert on call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434/v1"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Fire Department drone CA")
//	reply, err := provider.Advisor().Reply(ctx, []ai.Message{{Role: ai.RoleUser, Content: "Which grants fund drones?"}})
package ai
