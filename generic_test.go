package simplehnsw_test

import (
	"testing"

	"github.com/hupe1980/simplehnsw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericIndex_InsertAndSearch(t *testing.T) {
	idx, err := simplehnsw.NewIndex[string](simplehnsw.WithSeed(1))
	require.NoError(t, err)
	defer idx.Close()

	node, err := idx.Insert([]float64{1, 2, 3}, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 0, node)

	node, err = idx.Insert([]float64{4, 5, 6}, "beta")
	require.NoError(t, err)
	assert.Equal(t, 1, node)

	results, err := idx.Search([]float64{1, 2, 3}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alpha", results[0].Payload)
	assert.Equal(t, "beta", results[1].Payload)
}

func TestGenericIndex_InsertBatch_PartialSuccess(t *testing.T) {
	idx, err := simplehnsw.NewIndex[int]()
	require.NoError(t, err)
	defer idx.Close()

	indices, err := idx.InsertBatch(
		[][]float64{{1, 2}, {3, 4}, {5}},
		[]int{10, 20, 30},
	)
	assert.Error(t, err)
	assert.Equal(t, []int{0, 1}, indices)
	assert.Equal(t, 2, idx.Size())

	p, ok := idx.Payload(0)
	assert.True(t, ok)
	assert.Equal(t, 10, p)

	p, ok = idx.Payload(1)
	assert.True(t, ok)
	assert.Equal(t, 20, p)

	_, ok = idx.Payload(2)
	assert.False(t, ok)
}

func TestGenericIndex_PayloadMissing(t *testing.T) {
	idx, err := simplehnsw.NewIndex[string]()
	require.NoError(t, err)
	defer idx.Close()

	_, ok := idx.Payload(42)
	assert.False(t, ok)
}

func TestGenericIndex_DimensionAndSize(t *testing.T) {
	idx, err := simplehnsw.NewIndex[struct{}]()
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, -1, idx.Dimension())
	assert.Equal(t, 0, idx.Size())

	_, err = idx.Insert([]float64{1, 2, 3, 4}, struct{}{})
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Dimension())
	assert.Equal(t, 1, idx.Size())
}
