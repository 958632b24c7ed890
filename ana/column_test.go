package ana

import (
	"errors"
	"math"
	"testing"
)

// scenario constants shared by the end-to-end checks
func testColumn(t *testing.T) *Column {
	t.Helper()
	col, err := NewColumn(Material{E: 10000, Nu: 0.2, Rho: 1.855}, -10, 10)
	if err != nil {
		t.Fatalf("NewColumn: %v", err)
	}
	return col
}

func TestNewColumnDomain(t *testing.T) {
	mat := Material{E: 10000, Nu: 0.2, Rho: 1.855}
	if _, err := NewColumn(mat, -10, 0); !errors.Is(err, ErrDomain) {
		t.Errorf("FAIL height=0 err=%v, want ErrDomain", err)
	}
	if _, err := NewColumn(Material{E: 10000, Nu: 0.5, Rho: 1.855}, -10, 10); !errors.Is(err, ErrDomain) {
		t.Errorf("FAIL nu=0.5 err=%v, want ErrDomain", err)
	}
}

func TestDisplacement(t *testing.T) {
	col := testColumn(t)
	v := col.ParticleVelocity()
	ta := 5 / col.Vp() // arrival at mid-column

	tests := []struct {
		Dist, T, Want float64
	}{
		{Dist: 5, T: 0, Want: 0},
		{Dist: 5, T: 0.5 * ta, Want: 0},
		{Dist: 5, T: ta, Want: 0}, // exactly at arrival, still pre-arrival state
		{Dist: 5, T: 2 * ta, Want: v * ta},
		{Dist: 0, T: 0.1, Want: v * 0.1},
	}
	for i, test := range tests {
		if got := col.Displacement(test.Dist, test.T); math.Abs(got-test.Want) > tol {
			t.Errorf("test %v: FAIL u=%v, want %v", i+1, got, test.Want)
		}
	}
}

func TestVelocityAbsorbing(t *testing.T) {
	col := testColumn(t)
	v := col.ParticleVelocity()
	ta := 7.5 / col.Vp()

	if got := col.Velocity(7.5, 0.5*ta); got != 0 {
		t.Errorf("FAIL pre-arrival velocity %v, want 0", got)
	}
	if got := col.Velocity(7.5, 2*ta); math.Abs(got-v) > tol {
		t.Errorf("FAIL post-arrival velocity %v, want %v", got, v)
	}
	if got := col.Velocity(7.5, ta); math.Abs(got-v/2) > tol {
		t.Errorf("FAIL at-front velocity %v, want midpoint %v", got, v/2)
	}
}

func TestReflectedVelocityPattern(t *testing.T) {
	col := testColumn(t)
	v := col.ParticleVelocity()
	tr := col.Transit()

	// loaded end: square wave of amplitude v with period 4*transit, zero at
	// the transition instants
	tests := []struct {
		T, Want float64
	}{
		{T: 0, Want: 0},
		{T: 0.5 * tr, Want: v},
		{T: 1 * tr, Want: v},
		{T: 1.9 * tr, Want: v},
		{T: 2 * tr, Want: 0},
		{T: 2.5 * tr, Want: -v},
		{T: 3 * tr, Want: -v},
		{T: 4 * tr, Want: 0},
		{T: 5 * tr, Want: v}, // period repeats
	}
	for i, test := range tests {
		if got := col.ReflectedVelocity(0, test.T); math.Abs(got-test.Want) > tol {
			t.Errorf("test %v: FAIL v(0, %v)=%v, want %v", i+1, test.T, got, test.Want)
		}
	}

	// fixed base never moves: incident and reflected fronts cancel
	for _, tt := range []float64{0.5 * tr, tr, 1.5 * tr, 3 * tr, 6 * tr} {
		if got := col.ReflectedVelocity(col.Height, tt); math.Abs(got) > tol {
			t.Errorf("FAIL base velocity v(h, %v)=%v, want 0", tt, got)
		}
	}
}
