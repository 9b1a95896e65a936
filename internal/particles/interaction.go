package particles

import (
	"fmt"

	"github.com/partsim/partsim/internal/geometry"
	"github.com/partsim/partsim/internal/vector"
)

// Interaction is a sealed union of registered force rules: either a
// pairwise force between two particles or an external force on one.
// Interactions are immutable once added to a system.
type Interaction interface {
	// accumulate adds the interaction's contribution to the per-particle
	// acceleration buffer. It never mutates the particles.
	accumulate(ps []Particle, acc []vector.Acceleration) error

	// refs returns the particle indices the interaction references.
	refs() []int
}

// PairForce applies Kind between particles A and B.
type PairForce struct {
	A, B int
	Kind ForceKind
}

func (pf PairForce) refs() []int { return []int{pf.A, pf.B} }

func (pf PairForce) accumulate(ps []Particle, acc []vector.Acceleration) error {
	a, b := ps[pf.A], ps[pf.B]
	f, err := pf.Kind.OnA(a, b)
	if err != nil {
		return fmt.Errorf("pair (%d,%d): %w", pf.A, pf.B, err)
	}
	acc[pf.A] = acc[pf.A].Add(f.Over(a.Mass))
	acc[pf.B] = acc[pf.B].Add(f.Neg().Over(b.Mass))
	return nil
}

// ExternalForce applies Kind to the particle at Index.
type ExternalForce struct {
	Index int
	Kind  ExternalForceKind
}

func (ef ExternalForce) refs() []int { return []int{ef.Index} }

func (ef ExternalForce) accumulate(ps []Particle, acc []vector.Acceleration) error {
	p := ps[ef.Index]
	acc[ef.Index] = acc[ef.Index].Add(ef.Kind.On(p).Over(p.Mass))
	return nil
}

// Constraint confines the particle at Index to a geometric boundary. The
// boundary is consulted after the kinematic update of every step.
type Constraint struct {
	Index    int
	Boundary geometry.Boundary
}
