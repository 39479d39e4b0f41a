package resolver

import (
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idFixture(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("id%02d", i)
	}
	return ids
}

func TestFetchInBatches_ChunkSizes(t *testing.T) {
	t.Parallel()

	var sizes []int
	got, err := FetchInBatches(idFixture(23), 10, func(batch []string) ([]string, error) {
		sizes = append(sizes, len(batch))
		return batch, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 10, 3}, sizes)
	assert.Equal(t, idFixture(23), got) // concatenation preserves order
}

func TestFetchInBatches_ExactMultiple(t *testing.T) {
	t.Parallel()

	var sizes []int
	_, err := FetchInBatches(idFixture(20), 10, func(batch []string) ([]string, error) {
		sizes = append(sizes, len(batch))
		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 10}, sizes)
}

func TestFetchInBatches_Empty(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := FetchInBatches(nil, 10, func(batch []string) ([]int, error) {
		calls++
		return nil, nil
	})

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, calls)
}

func TestFetchInBatches_DefaultBatchSize(t *testing.T) {
	t.Parallel()

	var sizes []int
	_, err := FetchInBatches(idFixture(15), 0, func(batch []string) ([]string, error) {
		sizes = append(sizes, len(batch))
		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{10, 5}, sizes)
}

func TestFetchInBatches_ErrorAborts(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := FetchInBatches(idFixture(30), 10, func(batch []string) ([]string, error) {
		calls++
		if calls == 2 {
			return nil, eris.New("boom")
		}
		return batch, nil
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, idFixture(10), got) // first chunk survived
}
