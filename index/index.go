package index

import (
	"context"
	"fmt"
	"slices"

	"github.com/poiesic/grantmatch/ai"
)

// Document is anything that can be embedded through its text.
type Document interface {
	Text() string
}

// Hit is one search result. Score is the inner product of unit vectors, in [-1, 1].
type Hit[T Document] struct {
	Doc   T
	Score float64
}

// Index is a flat inner-product index over a fixed document list.
// docs[i] corresponds to vectors[i]. Nothing mutates an Index after
// construction, so concurrent searches are safe.
type Index[T Document] struct {
	docs    []T
	vectors [][]float32
	dim     int
}

// New creates an index from documents and their precomputed embeddings.
// Vectors are normalized; the inputs are not retained.
func New[T Document](docs []T, vectors [][]float32) (*Index[T], error) {
	if len(docs) != len(vectors) {
		return nil, fmt.Errorf("%w: %d documents, %d vectors", ErrEmbeddingMismatch, len(docs), len(vectors))
	}
	if len(docs) == 0 {
		return &Index[T]{}, nil
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: document 0", ErrEmptyEmbedding)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: document %d has %d, expected %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}

	return &Index[T]{
		docs:    slices.Clone(docs),
		vectors: NormalizeBatch(vectors),
		dim:     dim,
	}, nil
}

// Build embeds every document's text in one batch and indexes the result.
// Embedding errors are returned wrapped in ErrEmbeddingFailed and are not retried.
func Build[T Document](ctx context.Context, embedder ai.Embedder, docs []T) (*Index[T], error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(docs) == 0 {
		return &Index[T]{}, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text()
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	return New(docs, vectors)
}

// Len returns the number of indexed documents.
func (ix *Index[T]) Len() int {
	return len(ix.docs)
}

// Dim returns the embedding dimension, or 0 for an empty index.
func (ix *Index[T]) Dim() int {
	return ix.dim
}

// Docs returns the indexed documents in insertion order.
func (ix *Index[T]) Docs() []T {
	return slices.Clone(ix.docs)
}

// Search embeds text and returns its top k documents.
func (ix *Index[T]) Search(ctx context.Context, embedder ai.Embedder, text string, k int) ([]Hit[T], error) {
	if ix.Len() == 0 || k <= 0 {
		return []Hit[T]{}, nil
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	vector, err := embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	return ix.SearchVector(vector, k)
}

// SearchVector returns the min(k, Len()) documents with the highest inner
// product against the normalized query, best first. Ties keep insertion order.
// An empty index or k <= 0 yields an empty slice.
func (ix *Index[T]) SearchVector(query []float32, k int) ([]Hit[T], error) {
	if ix.Len() == 0 || k <= 0 {
		return []Hit[T]{}, nil
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(query), ix.dim)
	}

	q := Normalize(query)
	hits := make([]Hit[T], len(ix.docs))
	for i, v := range ix.vectors {
		hits[i] = Hit[T]{Doc: ix.docs[i], Score: dot(q, v)}
	}

	slices.SortStableFunc(hits, func(a, b Hit[T]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}
