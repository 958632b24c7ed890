package ana

import "fmt"

// Column couples a material with a constant distributed load at the free
// (top) end and the column height.  The derived wave speed and particle
// velocity are computed once at construction and never recomputed.
//
//	      load
//	    ↓↓↓↓↓↓↓
//	    o-----o  ← free end, wave enters here
//	    |     |
//	  h | E ν |      the wavefront travels toward the base at vp,
//	    |   ρ |      material points behind it move at load/(vp·ρ)
//	    |     |
//	    o-----o  ← base (absorbing or rigid)
type Column struct {
	Mat    Material
	Load   float64
	Height float64

	vp float64 // derived P-wave speed
	v  float64 // derived particle velocity behind the front
}

// NewColumn validates the parameters and derives the analytical reference
// quantities.
func NewColumn(mat Material, load, height float64) (*Column, error) {
	vp, err := mat.PWaveVelocity()
	if err != nil {
		return nil, err
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: height=%v must be positive", ErrDomain, height)
	}
	return &Column{
		Mat:    mat,
		Load:   load,
		Height: height,
		vp:     vp,
		v:      ExpectedParticleVelocity(load, vp, mat.Rho),
	}, nil
}

// Vp returns the P-wave propagation speed.
func (c *Column) Vp() float64 { return c.vp }

// ParticleVelocity returns the expected post-arrival material-point velocity.
func (c *Column) ParticleVelocity() float64 { return c.v }

// Transit returns the single-pass travel time from the loaded end to the
// base.
func (c *Column) Transit() float64 { return c.Height / c.vp }

// Displacement returns the motion of a material point at distance dist from
// the loaded end when the base absorbs the wave: zero until the front
// arrives, then linear at the particle velocity.
func (c *Column) Displacement(dist, t float64) float64 {
	ta := dist / c.vp
	if t <= ta {
		return 0
	}
	return c.v * (t - ta)
}

// Velocity returns the particle velocity at distance dist from the loaded
// end when the base absorbs the wave.  A point sampled exactly as the front
// passes sees the jump midpoint.
func (c *Column) Velocity(dist, t float64) float64 {
	if t <= 0 {
		return 0
	}
	return c.v * front(t, dist/c.vp)
}

// ReflectedVelocity returns the particle velocity at distance dist from the
// loaded end when the base is rigid.  The front reverberates between the
// fixed base and the free end: each base reflection reverses the velocity
// carried by the front, each free-end reflection preserves it, so a material
// point sees a square wave of amplitude ParticleVelocity with period
// 4*Transit.
func (c *Column) ReflectedVelocity(dist, t float64) float64 {
	if t <= 0 {
		return 0
	}
	sum := 0.0
	sign := 1.0
	for k := 0; ; k++ {
		down := (2*float64(k)*c.Height + dist) / c.vp
		if down-t > frontEps(down) {
			break
		}
		up := (2*float64(k+1)*c.Height - dist) / c.vp
		sum += sign * c.v * front(t, down)
		sum -= sign * c.v * front(t, up)
		sign = -sign
	}
	return sum
}

// front weights a wavefront passage: 0 before the front arrives, 1 after,
// and the jump midpoint when t coincides with the passage instant within
// floating-point slack.
func front(t, tf float64) float64 {
	eps := frontEps(tf)
	switch {
	case t < tf-eps:
		return 0
	case t > tf+eps:
		return 1
	default:
		return 0.5
	}
}

func frontEps(tf float64) float64 { return 1e-9 * (1 + tf) }
