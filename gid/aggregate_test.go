package gid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAgg = `{
  "TIME": [0, 0.016, 0.032],
  "NODE_51": {
    "VELOCITY_Y": [0, -0.07, 0, 0.07, 0]
  }
}`

func TestAggregateSamples(t *testing.T) {
	agg, err := ReadAggregate([]byte(sampleAgg))
	require.NoError(t, err)

	got, err := agg.Samples(51, "VELOCITY_Y", []int{0, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -0.07, 0.07}, got)
}

func TestAggregateErrors(t *testing.T) {
	agg, err := ReadAggregate([]byte(sampleAgg))
	require.NoError(t, err)

	_, err = agg.Samples(99, "VELOCITY_Y", []int{0})
	assert.ErrorIs(t, err, ErrFormat, "unknown node")

	_, err = agg.Samples(51, "DISPLACEMENT_Y", []int{0})
	assert.ErrorIs(t, err, ErrFormat, "unknown variable")

	_, err = agg.Samples(51, "VELOCITY_Y", []int{0, 17})
	assert.ErrorIs(t, err, ErrFormat, "index beyond samples")

	_, err = ReadAggregate([]byte("not json"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestWriteReadAggregateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calculated_result.json")
	times := []float64{0, 0.1, 0.2}
	vars := map[string][]float64{"VELOCITY_Y": {0, -0.07, 0}}
	require.NoError(t, WriteAggregateFile(path, times, 21, vars))

	agg, err := ReadAggregateFile(path)
	require.NoError(t, err)
	got, err := agg.Samples(21, "VELOCITY_Y", []int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, vars["VELOCITY_Y"], got)
}
