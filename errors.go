package grantmatch

import (
	"errors"

	"github.com/poiesic/grantmatch/match"
)

var (
	// ErrSourcesRequired is returned by Reload and Warm when no record sources are configured.
	ErrSourcesRequired = errors.New("buyer and grant sources are required")

	// ErrCacheRequired is returned by Warm and ResetCache when the service has no embedding cache.
	ErrCacheRequired = errors.New("embedding cache is not configured")

	// ErrIndexUnavailable is returned by Match before the first successful Reload.
	ErrIndexUnavailable = match.ErrIndexUnavailable

	// ErrEmbeddingFailed is returned when the embedding model fails.
	ErrEmbeddingFailed = match.ErrEmbeddingFailed
)
