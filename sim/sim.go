// Package sim defines the contract with the wave-propagation solver and a
// built-in engine producing column motion from the closed-form solution.
package sim

import (
	"context"
	"errors"
)

// ErrSimulation indicates the solver aborted or produced no usable output.
// Runs are never retried: solver state is not safely re-enterable.
var ErrSimulation = errors.New("sim: simulation run failed")

// BoundaryKind selects the base boundary condition of a column model.
type BoundaryKind int

const (
	// Absorbing is a Lysmer damping boundary tuned to the column impedance.
	Absorbing BoundaryKind = iota
	// Rigid approximates a very stiff boundary that reflects the full wave.
	Rigid
)

// Result is the typed handle returned by a completed run.  Artifact
// locations are explicit so consumers never derive paths from model naming
// conventions.
type Result struct {
	// Coords maps node id to position.
	Coords map[int][3]float64
	// ResultPath locates the nodal time-series artifact (.post.res).
	ResultPath string
	// AggregatePath locates the pre-sampled JSON artifact, when the run
	// produced one.
	AggregatePath string
}

// Engine runs a configured column model to completion.  Run blocks until
// the solver finishes; a failure is fatal to the enclosing validation.
type Engine interface {
	Run(ctx context.Context, model string) (*Result, error)
}
