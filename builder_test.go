package simplehnsw_test

import (
	"context"
	"testing"

	"github.com/hupe1980/simplehnsw"
	"github.com/hupe1980/simplehnsw/blobstore"
	"github.com/hupe1980/simplehnsw/wal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Basic(t *testing.T) {
	idx, err := simplehnsw.NewBuilder().
		L(3).
		MaxConnections(8).
		EFConstruction(20).
		Seed(42).
		Build()
	require.NoError(t, err)
	defer idx.Close()

	err = idx.Insert([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Size())
	assert.Equal(t, 4, idx.Dimension())
}

func TestBuilder_FullOptions(t *testing.T) {
	mc := &simplehnsw.BasicMetricsCollector{}

	idx, err := simplehnsw.NewBuilder().
		L(4).
		ML(0.5).
		MaxConnections(16).
		EFConstruction(50).
		Seed(7).
		Metrics(mc).
		Build()
	require.NoError(t, err)
	defer idx.Close()

	err = idx.Insert([]float64{1, 2, 3, 4})
	require.NoError(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.InsertCount)
}

func TestBuilder_IsImmutable(t *testing.T) {
	base := simplehnsw.NewBuilder().L(3)

	left := base.MaxConnections(8)
	right := base.MaxConnections(32)

	leftIdx, err := left.Build()
	require.NoError(t, err)
	defer leftIdx.Close()

	rightIdx, err := right.Build()
	require.NoError(t, err)
	defer rightIdx.Close()

	// Both builds must succeed independently: configuring right must not
	// have mutated the shared base or left.
	require.NoError(t, leftIdx.Insert([]float64{1, 2}))
	require.NoError(t, rightIdx.Insert([]float64{1, 2}))
}

func TestBuilder_WAL(t *testing.T) {
	dir := t.TempDir()

	idx, err := simplehnsw.NewBuilder().
		WAL(dir, func(o *wal.Options) {}).
		Build()
	require.NoError(t, err)
	defer idx.Close()

	require.NoError(t, idx.Insert([]float64{1, 2, 3}))
}

func TestBuilder_SnapshotStore(t *testing.T) {
	store := blobstore.NewMemory()

	idx, err := simplehnsw.NewBuilder().
		SnapshotStore(store, "index.json").
		Build()
	require.NoError(t, err)
	defer idx.Close()

	require.NoError(t, idx.Insert([]float64{1, 2, 3}))
	require.NoError(t, idx.Snapshot(context.Background()))
}

func TestBuilder_MustBuild_PanicsOnInvalidOption(t *testing.T) {
	assert.Panics(t, func() {
		simplehnsw.NewBuilder().L(0).MustBuild()
	})
}
