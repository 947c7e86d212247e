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

package openai

import (
	"log/slog"

	"github.com/poiesic/grantmatch/ai"
)

// Provider implements ai.AIProvider over an OpenAI-compatible embedding
// service and chat service, which may live on different hosts.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
	advisor  *Advisor
	logger   *slog.Logger
}

// NewProvider validates config and builds both clients. It returns the
// interface so callers stay independent of this package.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}
	advisor, err := newAdvisor(config)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-provider")
	logger.Debug("provider ready",
		"embedding_host", config.EmbeddingHost,
		"embedding_model", config.EmbeddingModel,
		"chat_host", config.ChatHost,
		"chat_model", config.ChatModel,
		"azure", config.IsAzure())

	return &Provider{
		config:   config,
		embedder: embedder,
		advisor:  advisor,
		logger:   logger,
	}, nil
}

// Embedder returns the embedding client.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Advisor returns the chat advisor.
func (p *Provider) Advisor() ai.Advisor {
	return p.advisor
}

// Close is a no-op; the HTTP clients hold no resources.
func (p *Provider) Close() error {
	p.logger.Debug("closing provider")
	return nil
}
