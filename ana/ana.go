// Package ana implements closed-form elastic wave solutions for a
// one-dimensional column loaded at its free end.
package ana

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain indicates material or geometry parameters outside the valid
// elastic range.
var ErrDomain = errors.New("ana: parameter out of domain")

// Material holds the linear elastic constants of the column.
type Material struct {
	// E is Young's modulus (force/area).
	E float64
	// Nu is Poisson's ratio.  The confined P-wave modulus diverges as Nu
	// approaches 0.5, so 0.5 itself is excluded.
	Nu float64
	// Rho is the mass density (mass/volume).
	Rho float64
}

// Validate reports whether the constants describe a physical material for
// which the P-wave modulus is defined.
func (m Material) Validate() error {
	if m.E <= 0 {
		return fmt.Errorf("%w: E=%v must be positive", ErrDomain, m.E)
	}
	if m.Nu < 0 || m.Nu >= 0.5 {
		return fmt.Errorf("%w: nu=%v outside [0, 0.5)", ErrDomain, m.Nu)
	}
	if m.Rho <= 0 {
		return fmt.Errorf("%w: rho=%v must be positive", ErrDomain, m.Rho)
	}
	return nil
}

// PWaveModulus returns the confined (oedometric) modulus
// M = E(1-nu) / ((1+nu)(1-2nu)).
func (m Material) PWaveModulus() float64 {
	return m.E * (1 - m.Nu) / ((1 + m.Nu) * (1 - 2*m.Nu))
}

// PWaveVelocity returns the compressional wave speed sqrt(M/rho).  This is
// the confined speed, not the unconfined bar-wave speed.
func (m Material) PWaveVelocity() (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return math.Sqrt(m.PWaveModulus() / m.Rho), nil
}

// ExpectedParticleVelocity returns the steady particle velocity behind the
// wavefront for a constant distributed load, load/(vp*rho).  The impedance
// vp*rho converts applied traction into material-point velocity; the sign
// follows the load.
func ExpectedParticleVelocity(load, vp, rho float64) float64 {
	return load / (vp * rho)
}
