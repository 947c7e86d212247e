package ingestion

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrMissingHeader is returned when a CSV source has no header row.
	ErrMissingHeader = errors.New("missing header row")

	// ErrInvalidSource is returned for a malformed source locator.
	ErrInvalidSource = errors.New("invalid source")

	// ErrInvalidTable is returned when a SQLite table name cannot be used.
	ErrInvalidTable = errors.New("invalid table name")
)
