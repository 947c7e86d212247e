package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
//
// Returns storage.EmbeddingRepository interface to enforce abstraction.
func NewEmbeddingRepository(backend *Backend) (storage.EmbeddingRepository, error) {
	if backend == nil {
		return nil, errors.New("badger: backend is required")
	}
	return &EmbeddingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. EmbeddingRepository has no resources to release.
func (r *EmbeddingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *EmbeddingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetEmbeddings returns the cached vectors for ids under model.
func (r *EmbeddingRepository) GetEmbeddings(ctx context.Context, model string, ids ...core.ID) (map[core.ID][]float32, error) {
	if err := validateModel(model); err != nil {
		return nil, err
	}

	found := make(map[core.ID][]float32, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := tx.Get(makeEmbeddingKey(model, id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				vec, err := storage.UnmarshalVector(val)
				if err != nil {
					return err
				}
				found[id] = vec
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return found, nil
}

// PutEmbeddings stores vectors under model, replacing any existing entries.
// Large maps are written through a WriteBatch rather than a single transaction.
func (r *EmbeddingRepository) PutEmbeddings(ctx context.Context, model string, vectors map[core.ID][]float32) error {
	if err := validateModel(model); err != nil {
		return err
	}
	if len(vectors) == 0 {
		return nil
	}

	return r.backend.writeBatch(func(wb *badger.WriteBatch) error {
		for id, vec := range vectors {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeEmbeddingKey(model, id), storage.MarshalVector(vec)); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountEmbeddings returns the number of vectors cached for model.
func (r *EmbeddingRepository) CountEmbeddings(ctx context.Context, model string) (int, error) {
	if err := validateModel(model); err != nil {
		return 0, err
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEmbeddingPrefix(model)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	return count, err
}

// DeleteModel removes every vector cached for model.
func (r *EmbeddingRepository) DeleteModel(ctx context.Context, model string) (int, error) {
	if err := validateModel(model); err != nil {
		return 0, err
	}

	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEmbeddingPrefix(model)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	err = r.backend.writeBatch(func(wb *badger.WriteBatch) error {
		for _, key := range keys {
			if err := wb.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.backend.logger.Debug("deleted cached embeddings", "model", model, "count", len(keys))
	return len(keys), nil
}

// validateModel rejects names that would make key prefixes ambiguous.
func validateModel(model string) error {
	if strings.TrimSpace(model) == "" {
		return fmt.Errorf("%w: empty", storage.ErrInvalidModel)
	}
	if strings.Contains(model, modelTerminator) {
		return fmt.Errorf("%w: %q contains NUL", storage.ErrInvalidModel, model)
	}
	return nil
}
