// Package series provides wave-arrival search and post-arrival velocity
// estimation over nodal time series recorded by a simulation run.
package series

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrArrivalNotFound indicates the expected arrival time falls at or
	// after the end of the recording window.
	ErrArrivalNotFound = errors.New("series: arrival at or after end of recording window")

	// ErrInsufficientSamples indicates fewer than two samples remain after
	// the arrival index.
	ErrInsufficientSamples = errors.New("series: insufficient samples after arrival")

	// ErrDirection indicates a spatial direction outside [0, 2].
	ErrDirection = errors.New("series: direction out of range")
)

// Series is one node's recorded motion: parallel slices of sample times
// (strictly increasing) and value vectors with components indexed by spatial
// direction (0=x, 1=y, 2=z).
type Series struct {
	Times  []float64
	Values [][3]float64
}

// FirstIndexAfter returns the smallest index i such that times[i] > target.
// Equality does not count as after: a sample exactly at the theoretical
// arrival instant may still hold the pre-arrival state, so only strictly
// later samples qualify.  A target before times[0] yields 0.  If no sample
// is strictly later than target, ErrArrivalNotFound is returned.
func FirstIndexAfter(times []float64, target float64) (int, error) {
	i := sort.Search(len(times), func(i int) bool { return times[i] > target })
	if i == len(times) {
		var end float64
		if len(times) > 0 {
			end = times[len(times)-1]
		}
		return 0, fmt.Errorf("%w: target %v, window ends at %v", ErrArrivalNotFound, target, end)
	}
	return i, nil
}

// PostArrivalVelocity estimates the velocity along direction dir as the
// secant slope between the sample at arrival and the final sample.  Spanning
// the whole post-arrival window averages out oscillation near the wavefront,
// trading local accuracy for robustness against discretization artifacts.
func PostArrivalVelocity(s Series, arrival, dir int) (float64, error) {
	if dir < 0 || dir > 2 {
		return 0, fmt.Errorf("%w: %d", ErrDirection, dir)
	}
	n := len(s.Times)
	if n != len(s.Values) {
		return 0, fmt.Errorf("%w: %d times for %d values", ErrInsufficientSamples, n, len(s.Values))
	}
	if arrival < 0 || arrival >= n-1 {
		return 0, fmt.Errorf("%w: arrival index %d in %d samples", ErrInsufficientSamples, arrival, n)
	}
	dt := s.Times[n-1] - s.Times[arrival]
	if dt <= 0 {
		return 0, fmt.Errorf("%w: degenerate window [%v, %v]", ErrInsufficientSamples, s.Times[arrival], s.Times[n-1])
	}
	return (s.Values[n-1][dir] - s.Values[arrival][dir]) / dt, nil
}
