// Package gid reads and writes the result artifacts produced by a column
// simulation run: GiD ASCII ".post.res" nodal vector results, and the JSON
// aggregate file holding pre-sampled values per node and variable.
package gid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/MZecchetto/wavecheck/series"
)

// ErrFormat indicates a malformed result artifact.
var ErrFormat = errors.New("gid: malformed result file")

// Step holds one output instant: the analysis time and a vector value per
// node id.
type Step struct {
	Time   float64
	Values map[int][3]float64
}

// ReadResults extracts every "Result" block for the named variable from a
// GiD ASCII post file.  Blocks look like
//
//	Result "DISPLACEMENT" "Kratos" 0.0125 Vector OnNodes
//	Values
//	1 0 -0.0001 0
//	...
//	End Values
//
// Blocks for other variables are skipped.  Steps are returned in file order,
// which for a well-formed run is increasing analysis time.
func ReadResults(r io.Reader, variable string) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != "Result" {
			continue
		}
		if strings.Trim(fields[1], `"`) != variable {
			continue
		}
		t, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad analysis time in %q", ErrFormat, sc.Text())
		}
		step, err := readValues(sc)
		if err != nil {
			return nil, err
		}
		step.Time = t
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gid: reading results: %w", err)
	}
	return steps, nil
}

// readValues consumes a Values ... End Values block.
func readValues(sc *bufio.Scanner) (Step, error) {
	step := Step{Values: map[int][3]float64{}}
	inValues := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case line == "Values":
			inValues = true
			continue
		case line == "End Values":
			if !inValues {
				return step, fmt.Errorf("%w: End Values before Values", ErrFormat)
			}
			return step, nil
		}
		if !inValues {
			return step, fmt.Errorf("%w: expected Values block, got %q", ErrFormat, line)
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return step, fmt.Errorf("%w: expected node id and 3 components, got %q", ErrFormat, line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return step, fmt.Errorf("%w: bad node id %q", ErrFormat, fields[0])
		}
		var v [3]float64
		for i := 0; i < 3; i++ {
			v[i], err = strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return step, fmt.Errorf("%w: bad component %q", ErrFormat, fields[i+1])
			}
		}
		step.Values[id] = v
	}
	return step, fmt.Errorf("%w: unterminated Values block", ErrFormat)
}

// ReadResultsFile opens path, extracts the named variable, and closes the
// file whether or not parsing succeeds.
func ReadResultsFile(path, variable string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gid: %w", err)
	}
	defer f.Close()
	return ReadResults(f, variable)
}

// NodeSeries assembles the time series of one node across steps.  Every step
// must contain the node, and step times must be strictly increasing: the
// arrival search assumes an ordered series, so a disordered artifact is
// rejected here rather than producing a wrong verdict.
func NodeSeries(steps []Step, node int) (series.Series, error) {
	s := series.Series{
		Times:  make([]float64, 0, len(steps)),
		Values: make([][3]float64, 0, len(steps)),
	}
	for i, step := range steps {
		if i > 0 && step.Time <= steps[i-1].Time {
			return series.Series{}, fmt.Errorf("%w: step times not strictly increasing (%v after %v)",
				ErrFormat, step.Time, steps[i-1].Time)
		}
		v, ok := step.Values[node]
		if !ok {
			return series.Series{}, fmt.Errorf("%w: node %d missing at t=%v", ErrFormat, node, step.Time)
		}
		s.Times = append(s.Times, step.Time)
		s.Values = append(s.Values, v)
	}
	return s, nil
}

// WriteResults writes steps as GiD ASCII Result blocks for the named
// variable, node ids in ascending order.
func WriteResults(w io.Writer, variable string, steps []Step) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "GiD Post Results File 1.0")
	for _, step := range steps {
		fmt.Fprintf(bw, "\nResult %q \"Kratos\" %g Vector OnNodes\nValues\n", variable, step.Time)
		ids := make([]int, 0, len(step.Values))
		for id := range step.Values {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			v := step.Values[id]
			fmt.Fprintf(bw, "%d %g %g %g\n", id, v[0], v[1], v[2])
		}
		fmt.Fprintln(bw, "End Values")
	}
	return bw.Flush()
}
