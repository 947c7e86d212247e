package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// CheckpointRepository implements storage.CheckpointRepository for BadgerDB.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository creates a new CheckpointRepository.
func NewCheckpointRepository(backend *Backend) *CheckpointRepository {
	return &CheckpointRepository{
		backend: backend,
	}
}

// SaveCheckpoint persists a checkpoint for a corpus.
// A zero UpdatedAt is set to the current time.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	if checkpoint.Corpus == "" {
		return errors.New("badger: checkpoint corpus is required")
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if checkpoint.UpdatedAt.IsZero() {
			checkpoint.UpdatedAt = time.Now().UTC()
		}
		checkpoint.UpdatedAt = checkpoint.UpdatedAt.Truncate(time.Microsecond)
		if err := tx.Set(makeCheckpointKey(checkpoint.Corpus), storage.MarshalCheckpoint(checkpoint)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadCheckpoint retrieves the checkpoint for a corpus.
// Returns nil, nil if no checkpoint exists.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, corpus string) (*core.Checkpoint, error) {
	var checkpoint *core.Checkpoint
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCheckpointKey(corpus))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			checkpoint, unmarshalErr = storage.UnmarshalCheckpoint(val)
			return unmarshalErr
		})
	}, false)

	return checkpoint, err
}

// DeleteCheckpoint removes the checkpoint for a corpus. Deleting a missing
// checkpoint is not an error.
func (r *CheckpointRepository) DeleteCheckpoint(ctx context.Context, corpus string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeCheckpointKey(corpus)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
