package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser is a message written by the sales representative.
	RoleUser Role = "user"
	// RoleAssistant is a message produced by the advisor.
	RoleAssistant Role = "assistant"
)

// Message is one turn of an advisor conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Advisor answers free-form grant questions from sales representatives.
// Implementations must be thread-safe for concurrent use.
type Advisor interface {
	// Reply produces the assistant's next message given the conversation so far.
	// The last message in history is the one being answered.
	Reply(ctx context.Context, history []Message) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Advisor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Advisor returns the chat advisor.
	// The returned Advisor is safe for concurrent use.
	Advisor() Advisor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
