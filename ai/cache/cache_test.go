package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/grantmatch/ai/mock"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
	"github.com/poiesic/grantmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) storage.EmbeddingRepository {
	t.Helper()
	repo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestNew_RequiresDependencies(t *testing.T) {
	repo := newRepo(t)
	inner := mock.NewMockEmbedder()

	_, err := New(nil, repo, "bge")
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = New(inner, nil, "bge")
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = New(inner, repo, "")
	assert.ErrorIs(t, err, ErrModelRequired)
}

func TestEmbedder_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	inner := mock.NewTokenEmbedder(16)

	e, err := New(inner, repo, "bge")
	require.NoError(t, err)

	texts := []string{"fire drone", "police radio", "fire drone"}
	first, err := e.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, first[0], first[2])
	assert.Equal(t, 2, inner.EmbeddedCount(), "repeated text embedded once")

	second, err := e.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.BatchCallCount(), "second call served from cache")

	stats := e.Stats()
	assert.Equal(t, 2, stats.Misses)
	assert.Equal(t, 4, stats.Hits)

	count, err := repo.CountEmbeddings(ctx, "bge")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestEmbedder_PartialHit(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	inner := mock.NewTokenEmbedder(16)

	require.NoError(t, repo.PutEmbeddings(ctx, "bge", map[core.ID][]float32{
		core.IDFromContent("cached"): {9, 9},
	}))

	e, err := New(inner, repo, "bge")
	require.NoError(t, err)

	got, err := e.EmbedTexts(ctx, []string{"fresh text", "cached"})
	require.NoError(t, err)
	assert.Equal(t, []float32{9, 9}, got[1])
	assert.Len(t, got[0], 16)
	assert.Equal(t, 1, inner.EmbeddedCount())
}

func TestEmbedder_ModelNamespaces(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	inner := mock.NewTokenEmbedder(16)

	a, err := New(inner, repo, "model-a")
	require.NoError(t, err)
	b, err := New(inner, repo, "model-b")
	require.NoError(t, err)

	_, err = a.EmbedText(ctx, "drone")
	require.NoError(t, err)
	_, err = b.EmbedText(ctx, "drone")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.BatchCallCount())
}

func TestEmbedder_InnerErrorPropagates(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	boom := errors.New("service down")
	inner := mock.NewMockEmbedder()
	inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, boom
	}

	e, err := New(inner, repo, "bge")
	require.NoError(t, err)

	_, err = e.EmbedTexts(ctx, []string{"drone"})
	assert.ErrorIs(t, err, boom)

	count, err := repo.CountEmbeddings(ctx, "bge")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEmbedder_Empty(t *testing.T) {
	e, err := New(mock.NewMockEmbedder(), newRepo(t), "bge")
	require.NoError(t, err)

	got, err := e.EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
