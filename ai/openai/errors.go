package openai

import "errors"

var (
	// ErrEmptyEmbedding is returned when the service answers without a vector.
	ErrEmptyEmbedding = errors.New("embedding service returned no vectors")

	// ErrEmbeddingCount is returned when a batch answer does not have one vector per input.
	ErrEmbeddingCount = errors.New("embedding service returned wrong number of vectors")

	// ErrEmptyHistory is returned when the advisor is asked to reply to nothing.
	ErrEmptyHistory = errors.New("conversation history is empty")

	// ErrNoChoices is returned when the chat model produces no completion.
	ErrNoChoices = errors.New("chat model returned no choices")
)
