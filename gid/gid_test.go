package gid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRes = `GiD Post Results File 1.0

Result "DISPLACEMENT" "Kratos" 0.01 Vector OnNodes
Values
1 0 0 0
2 0 -0.001 0
End Values

Result "VELOCITY" "Kratos" 0.01 Vector OnNodes
Values
1 0 0 0
2 0 -0.07 0
End Values

Result "DISPLACEMENT" "Kratos" 0.02 Vector OnNodes
Values
1 0 -0.0005 0
2 0 -0.002 0
End Values
`

func TestReadResults(t *testing.T) {
	steps, err := ReadResults(strings.NewReader(sampleRes), "DISPLACEMENT")
	require.NoError(t, err)
	require.Len(t, steps, 2, "velocity block must be skipped")

	assert.Equal(t, 0.01, steps[0].Time)
	assert.Equal(t, 0.02, steps[1].Time)
	assert.Equal(t, [3]float64{0, -0.001, 0}, steps[0].Values[2])
	assert.Equal(t, [3]float64{0, -0.0005, 0}, steps[1].Values[1])
}

func TestNodeSeries(t *testing.T) {
	steps, err := ReadResults(strings.NewReader(sampleRes), "DISPLACEMENT")
	require.NoError(t, err)

	s, err := NodeSeries(steps, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.02}, s.Times)
	assert.Equal(t, [3]float64{0, -0.002, 0}, s.Values[1])

	_, err = NodeSeries(steps, 7)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestNodeSeriesUnorderedTimes(t *testing.T) {
	vals := map[int][3]float64{1: {0, 0, 0}}
	tests := []struct {
		name  string
		steps []Step
	}{
		{"decreasing", []Step{{Time: 0.02, Values: vals}, {Time: 0.01, Values: vals}}},
		{"duplicate", []Step{{Time: 0.01, Values: vals}, {Time: 0.01, Values: vals}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NodeSeries(test.steps, 1)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestReadResultsMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad time", "Result \"DISPLACEMENT\" \"Kratos\" abc Vector OnNodes\nValues\nEnd Values\n"},
		{"unterminated", "Result \"DISPLACEMENT\" \"Kratos\" 0.1 Vector OnNodes\nValues\n1 0 0 0\n"},
		{"bad node id", "Result \"DISPLACEMENT\" \"Kratos\" 0.1 Vector OnNodes\nValues\nx 0 0 0\nEnd Values\n"},
		{"missing component", "Result \"DISPLACEMENT\" \"Kratos\" 0.1 Vector OnNodes\nValues\n1 0 0\nEnd Values\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadResults(strings.NewReader(test.doc), "DISPLACEMENT")
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestWriteReadResults(t *testing.T) {
	in := []Step{
		{Time: 0.5, Values: map[int][3]float64{1: {0, 1, 0}, 2: {0, 2, 0}}},
		{Time: 1.5, Values: map[int][3]float64{1: {0, 3, 0}, 2: {0, 4, 0}}},
	}
	var buf strings.Builder
	require.NoError(t, WriteResults(&buf, "DISPLACEMENT", in))

	out, err := ReadResults(strings.NewReader(buf.String()), "DISPLACEMENT")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].Values, out[0].Values)
	assert.Equal(t, in[1].Time, out[1].Time)
}
