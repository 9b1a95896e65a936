package particles

import (
	"errors"
	"testing"

	"github.com/partsim/partsim/internal/vector"
)

func pAt(x, y, z float64) Particle {
	return Particle{Position: vector.Pos(x, y, z), Mass: 1}
}

func TestElasticEquilibrium(t *testing.T) {
	// Separation exactly at rest length: zero force, bit-exact.
	spring := Elastic{Stiffness: 1, RestLength: 0.5}
	f, err := spring.OnA(pAt(0, 0, 0), pAt(0.5, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if f != (vector.Force{}) {
		t.Errorf("force at rest length = %v, want exactly zero", f)
	}
}

func TestElastic(t *testing.T) {
	spring := Elastic{Stiffness: 3, RestLength: 0.5}

	// Stretched: pulls A toward B.
	f, err := spring.OnA(pAt(0, 0, 0), pAt(2, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if f != (vector.Force{4.5, 0, 0}) {
		t.Errorf("stretched force = %v, want {4.5 0 0}", f)
	}

	// Compressed: pushes A away from B.
	f, err = spring.OnA(pAt(0, 0, 0), pAt(0.25, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if f != (vector.Force{-0.75, 0, 0}) {
		t.Errorf("compressed force = %v, want {-0.75 0 0}", f)
	}
}

func TestDamping(t *testing.T) {
	damper := Damping{Coefficient: 0.5}

	a := pAt(0, 0, 0)
	b := pAt(1, 0, 0)
	b.Velocity = vector.Vel(-2, 0, 0) // closing at speed 2

	f, err := damper.OnA(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if f != (vector.Force{-1, 0, 0}) {
		t.Errorf("damping force = %v, want {-1 0 0}", f)
	}

	// Purely tangential relative motion produces no force.
	b.Velocity = vector.Vel(0, 3, 0)
	f, err = damper.OnA(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if f != (vector.Force{}) {
		t.Errorf("tangential damping force = %v, want zero", f)
	}
}

func TestGravitational(t *testing.T) {
	a := pAt(0, 0, 0)
	a.Mass = 2
	b := pAt(2, 0, 0)
	b.Mass = 3

	f, err := Gravitational{G: 1}.OnA(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if f != (vector.Force{1.5, 0, 0}) {
		t.Errorf("force = %v, want {1.5 0 0}", f)
	}

	// The constant scales the force linearly.
	f, err = Gravitational{G: 2}.OnA(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if f != (vector.Force{3, 0, 0}) {
		t.Errorf("force with G=2 = %v, want {3 0 0}", f)
	}
}

func TestStickyZones(t *testing.T) {
	sticky := Sticky{WellDistance: 1, MaxDistance: 2, StickForce: 5, RepulseForce: 7}

	tests := []struct {
		name string
		dist float64
		want vector.Force
	}{
		{"beyond max", 3, vector.Force{}},
		{"sticky band", 1.5, vector.Force{5, 0, 0}},
		{"exactly at max", 2, vector.Force{5, 0, 0}},
		{"exactly at well", 1, vector.Force{-7, 0, 0}},
		{"inside well", 0.5, vector.Force{-7, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := sticky.OnA(pAt(0, 0, 0), pAt(tt.dist, 0, 0))
			if err != nil {
				t.Fatal(err)
			}
			if f != tt.want {
				t.Errorf("force at d=%v: %v, want %v", tt.dist, f, tt.want)
			}
		})
	}
}

func TestCoincidentParticlesDegenerate(t *testing.T) {
	kinds := []ForceKind{
		Elastic{Stiffness: 1, RestLength: 0.5},
		Damping{Coefficient: 1},
		Gravitational{G: 1},
		Sticky{WellDistance: 1, MaxDistance: 2, StickForce: 1, RepulseForce: 1},
	}

	for _, kind := range kinds {
		if _, err := kind.OnA(pAt(1, 1, 1), pAt(1, 1, 1)); !errors.Is(err, ErrDegenerateGeometry) {
			t.Errorf("%T at zero separation: got %v, want ErrDegenerateGeometry", kind, err)
		}
	}
}

func TestLinearDrag(t *testing.T) {
	p := pAt(0, 0, 0)
	p.Velocity = vector.Vel(1, 2, 3)

	if f := (LinearDrag{Coefficient: 2}).On(p); f != (vector.Force{-2, -4, -6}) {
		t.Errorf("drag force = %v, want {-2 -4 -6}", f)
	}
}

func TestUniformGravity(t *testing.T) {
	p := pAt(0, 0, 0)
	p.Mass = 2

	field := UniformGravity{Accel: vector.Accel(0, -10, 0)}
	if f := field.On(p); f != (vector.Force{0, -20, 0}) {
		t.Errorf("weight = %v, want {0 -20 0}", f)
	}
}
