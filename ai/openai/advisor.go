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
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/grantmatch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Advisor implements ai.Advisor using OpenAI-compatible chat APIs.
type Advisor struct {
	client      llms.Model
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// newAdvisor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAdvisor(config *ai.Config) (*Advisor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := append(clientOptions(config, config.ChatHost), openai.WithModel(config.ChatModel))
	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Advisor{
		client:      client,
		maxTokens:   config.MaxReplyTokens,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-advisor", "model", config.ChatModel),
	}, nil
}

// NewAdvisor creates a new chat advisor using the provided configuration.
//
// Returns ai.Advisor interface to enforce abstraction.
func NewAdvisor(config *ai.Config) (ai.Advisor, error) {
	return newAdvisor(config)
}

// Reply sends the system prompt plus the most recent messages of history to the
// chat model and returns its answer formatted as HTML.
func (a *Advisor) Reply(ctx context.Context, history []ai.Message) (string, error) {
	history = ai.TrimHistory(history)
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}

	content := buildMessages(history)
	a.logger.Debug("requesting advisor reply", "messages", len(history))

	response, err := a.client.GenerateContent(ctx, content,
		llms.WithTemperature(a.temperature),
		llms.WithMaxTokens(a.maxTokens),
	)
	if err != nil {
		a.logger.Error("failed to generate content", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		a.logger.Warn("no choices returned from model")
		return "", ErrNoChoices
	}

	reply := formatReply(strings.TrimSpace(response.Choices[0].Content))
	a.logger.Debug("advisor replied", "length", len(reply))
	return reply, nil
}

// buildMessages prepends the system prompt and maps roles onto langchaingo message types.
func buildMessages(history []ai.Message) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(history)+1)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, advisorSystemPrompt))
	for _, m := range history {
		role := llms.ChatMessageTypeHuman
		if m.Role == ai.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}
	return content
}
