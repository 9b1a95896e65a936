package particles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/partsim/partsim/internal/vector"
)

// ForceKind is a sealed union of the pairwise force laws. OnA computes the
// force the pair exerts on a; by Newton's third law the force on b is its
// negation. Evaluation is pure.
type ForceKind interface {
	OnA(a, b Particle) (vector.Force, error)

	pairKind()
}

// ExternalForceKind is a sealed union of single-particle force laws
// exerted by an external agent.
type ExternalForceKind interface {
	On(p Particle) vector.Force

	externalKind()
}

// separation returns the unit direction from a to b and their distance.
// Coincident particles have no defined direction and fail the step.
func separation(a, b Particle) (mgl64.Vec3, float64, error) {
	r := a.Position.To(b.Position)
	d := r.Len()
	if d == 0 {
		return mgl64.Vec3{}, 0, ErrDegenerateGeometry
	}
	return r.Mul(1 / d), d, nil
}

// Elastic is an ideal spring with stiffness k and rest length d0:
// attractive beyond the rest length, repulsive inside it.
type Elastic struct {
	Stiffness  float64
	RestLength float64
}

func (Elastic) pairKind() {}

func (e Elastic) OnA(a, b Particle) (vector.Force, error) {
	dir, d, err := separation(a, b)
	if err != nil {
		return vector.Force{}, fmt.Errorf("elastic: %w", err)
	}
	return vector.Force(dir.Mul((d - e.RestLength) * e.Stiffness)), nil
}

// Damping resists relative motion along the line between the two
// particles, proportional to the radial relative speed.
type Damping struct {
	Coefficient float64
}

func (Damping) pairKind() {}

func (c Damping) OnA(a, b Particle) (vector.Force, error) {
	dir, _, err := separation(a, b)
	if err != nil {
		return vector.Force{}, fmt.Errorf("damping: %w", err)
	}
	radialSpeed := b.Velocity.Sub(a.Velocity).Dot(dir)
	return vector.Force(dir.Mul(radialSpeed * c.Coefficient)), nil
}

// Gravitational is Newton's inverse-square attraction with an explicit
// gravitational constant G.
type Gravitational struct {
	G float64
}

func (Gravitational) pairKind() {}

func (g Gravitational) OnA(a, b Particle) (vector.Force, error) {
	dir, d, err := separation(a, b)
	if err != nil {
		return vector.Force{}, fmt.Errorf("gravitational: %w", err)
	}
	return vector.Force(dir.Mul(g.G * a.Mass * b.Mass / (d * d))), nil
}

// Sticky is a piecewise-constant short-range force: zero beyond
// MaxDistance, a constant attraction in the (WellDistance, MaxDistance]
// band, and a constant repulsion at or inside WellDistance. It is
// discontinuous at both zone boundaries.
type Sticky struct {
	WellDistance float64
	MaxDistance  float64
	StickForce   float64
	RepulseForce float64
}

func (Sticky) pairKind() {}

func (s Sticky) OnA(a, b Particle) (vector.Force, error) {
	dir, d, err := separation(a, b)
	if err != nil {
		return vector.Force{}, fmt.Errorf("sticky: %w", err)
	}
	switch {
	case d > s.MaxDistance:
		return vector.Force{}, nil
	case d > s.WellDistance:
		return vector.Force(dir.Mul(s.StickForce)), nil
	default:
		return vector.Force(dir.Mul(-s.RepulseForce)), nil
	}
}

// LinearDrag opposes a particle's velocity proportionally.
type LinearDrag struct {
	Coefficient float64
}

func (LinearDrag) externalKind() {}

func (d LinearDrag) On(p Particle) vector.Force {
	return vector.Force(p.Velocity.Vec().Mul(-d.Coefficient))
}

// UniformGravity is a constant acceleration field, such as gravity near a
// planetary surface.
type UniformGravity struct {
	Accel vector.Acceleration
}

func (UniformGravity) externalKind() {}

func (g UniformGravity) On(p Particle) vector.Force {
	return vector.Force(g.Accel.Vec().Mul(p.Mass))
}
