// Package column orchestrates absorbing-boundary validation of 1D column
// wave models: it derives the analytical reference once, runs the solver,
// and issues observed-vs-expected verdicts per probe node.
package column

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/MZecchetto/wavecheck/ana"
	"github.com/MZecchetto/wavecheck/gid"
	"github.com/MZecchetto/wavecheck/series"
	"github.com/MZecchetto/wavecheck/sim"
)

// ErrConfiguration indicates requested result data is missing or the check
// itself is misconfigured.
var ErrConfiguration = errors.New("column: invalid validation configuration")

// Places converts decimal places of agreement into an absolute tolerance:
// n places means |observed - expected| < 0.5e-n.
func Places(n int) float64 {
	return 0.5 * math.Pow(10, -float64(n))
}

// Verdict is one observed-vs-expected comparison.  Node identifies the probe
// for arrival checks; Index identifies the sample for reflection checks.
type Verdict struct {
	Node     int
	Index    int
	Expected float64
	Observed float64
	Tol      float64
}

// OK reports whether the observation agrees with the reference within
// tolerance.
func (v Verdict) OK() bool {
	return math.Abs(v.Observed-v.Expected) < v.Tol
}

func (v Verdict) String() string {
	state := "ok"
	if !v.OK() {
		state = "FAIL"
	}
	return fmt.Sprintf("node %d sample %d: observed %.6g, expected %.6g (tol %.2g): %s",
		v.Node, v.Index, v.Observed, v.Expected, v.Tol, state)
}

// Failed filters the verdicts that violate their tolerance.
func Failed(vs []Verdict) []Verdict {
	var out []Verdict
	for _, v := range vs {
		if !v.OK() {
			out = append(out, v)
		}
	}
	return out
}

// Validator checks P-wave arrival and post-arrival particle velocity for a
// set of probe nodes against the analytical reference.  It holds no state
// across validations; construct one per test case.
type Validator struct {
	Column *ana.Column
	// Places is the decimal-place tolerance of the velocity comparison.
	Places int
	// Variable is the nodal result to analyze (default "DISPLACEMENT").
	Variable string
	// Log receives per-node diagnostics; nil discards them.
	Log *slog.Logger
}

// Validate runs the engine on model and, for every probe node, locates the
// wavefront arrival in the node's time series and compares the post-arrival
// velocity against the analytical particle velocity.  All probes are checked
// so a failure reports every offending node, not just the first.  dir is the
// propagation direction: 0=x, 1=y, 2=z.
func (v *Validator) Validate(ctx context.Context, eng sim.Engine, model string, probes []int, dir int) ([]Verdict, error) {
	if v.Column == nil {
		return nil, fmt.Errorf("%w: no column", ErrConfiguration)
	}
	if dir < 0 || dir > 2 {
		return nil, fmt.Errorf("%w: direction %d out of range", ErrConfiguration, dir)
	}
	if len(probes) == 0 {
		return nil, fmt.Errorf("%w: no probe nodes", ErrConfiguration)
	}

	vp := v.Column.Vp()
	expected := v.Column.ParticleVelocity()
	log := v.logger()
	log.Info("analytical reference", "vp", vp, "particle_velocity", expected)

	res, err := eng.Run(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", model, err)
	}

	variable := v.Variable
	if variable == "" {
		variable = "DISPLACEMENT"
	}
	steps, err := gid.ReadResultsFile(res.ResultPath, variable)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no %s steps in %s", ErrConfiguration, variable, res.ResultPath)
	}

	tol := Places(v.Places)
	verdicts := make([]Verdict, 0, len(probes))
	for _, node := range probes {
		coord, ok := res.Coords[node]
		if !ok {
			return nil, fmt.Errorf("%w: node %d has no coordinates", ErrConfiguration, node)
		}
		s, err := gid.NodeSeries(steps, node)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrConfiguration, node, err)
		}

		// distance from the wave-entry end, opposite the propagation origin
		dist := v.Column.Height - coord[dir]
		arrivalTime := dist / vp
		idx, err := series.FirstIndexAfter(s.Times, arrivalTime)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", node, err)
		}
		observed, err := series.PostArrivalVelocity(s, idx, dir)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", node, err)
		}

		log.Debug("probe checked",
			"node", node, "distance", dist, "arrival", arrivalTime,
			"arrival_index", idx, "observed", observed)
		verdicts = append(verdicts, Verdict{
			Node:     node,
			Index:    idx,
			Expected: expected,
			Observed: observed,
			Tol:      tol,
		})
	}
	return verdicts, nil
}

func (v *Validator) logger() *slog.Logger {
	if v.Log != nil {
		return v.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
