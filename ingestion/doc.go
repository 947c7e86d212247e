// Package ingestion loads buyer and grant records and builds the vector
// indices used for matching.
//
// Records come from a CSV file with a header row or from a SQLite table
// addressed as "sqlite:<path>#<table>". Header names are trimmed, a UTF-8
// byte order mark is dropped, and every value is NFKC-normalized.
//
// The Builder embeds both corpora concurrently. Each corpus is split into
// batches that are submitted to a shared worker pool; the first batch error
// aborts the build and no partial index is returned.
package ingestion
