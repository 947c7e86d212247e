package match

import (
	"errors"

	"github.com/poiesic/grantmatch/index"
)

var (
	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("match: embedder is required")

	// ErrIndexUnavailable is returned when no corpus has been built yet.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrEmbeddingFailed is returned when the embedding model fails during a match.
	// It is the same sentinel the index package uses.
	ErrEmbeddingFailed = index.ErrEmbeddingFailed

	// ErrInvalidConfig is returned for unusable scoring configuration.
	ErrInvalidConfig = errors.New("invalid scoring config")
)
