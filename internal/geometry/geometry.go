// Package geometry provides the boundary shapes particles are constrained
// against: the infinite plane and the sphere. Both are reflective: a
// particle found on the forbidden side has the offending velocity component
// sign-flipped, while its position is left where the integrator put it.
package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/partsim/partsim/internal/vector"
)

// ErrInvalidShape indicates a degenerate shape parameter (zero-length plane
// normal, non-positive sphere radius).
var ErrInvalidShape = errors.New("geometry: invalid shape parameter")

// Boundary is a sealed union of the supported constraint geometries.
type Boundary interface {
	// Resolve corrects a particle's kinematic state against the boundary.
	// Positions are never moved, only velocities are reflected.
	Resolve(pos vector.Position, vel vector.Velocity) (vector.Position, vector.Velocity)

	boundary()
}

// Plane is an infinite plane through Point. Normal points into the
// permitted half-space and need not be unit length.
type Plane struct {
	Point  vector.Position
	Normal mgl64.Vec3
}

// NewPlane validates and returns a plane boundary.
func NewPlane(point vector.Position, normal mgl64.Vec3) (Plane, error) {
	if normal.Len() == 0 {
		return Plane{}, fmt.Errorf("%w: zero-length plane normal", ErrInvalidShape)
	}
	return Plane{Point: point, Normal: normal}, nil
}

func (Plane) boundary() {}

func (pl Plane) Resolve(pos vector.Position, vel vector.Velocity) (vector.Position, vector.Velocity) {
	d := pos.Sub(pl.Point).Dot(pl.Normal)
	if d >= 0 {
		return pos, vel
	}
	n := pl.Normal.Normalize()
	v := vel.Vec()
	return pos, vector.Velocity(v.Sub(n.Mul(2 * v.Dot(n))))
}

// Sphere is a spherical container: particles are confined to its interior.
type Sphere struct {
	Center vector.Position
	Radius float64
}

// NewSphere validates and returns a spherical boundary.
func NewSphere(center vector.Position, radius float64) (Sphere, error) {
	if radius <= 0 {
		return Sphere{}, fmt.Errorf("%w: sphere radius must be positive, got %v", ErrInvalidShape, radius)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

func (Sphere) boundary() {}

// Contains reports whether p is strictly inside the sphere. A point exactly
// on the surface is not contained, so Resolve reflects it.
func (sp Sphere) Contains(p vector.Position) bool {
	return p.Sub(sp.Center).Len() < sp.Radius
}

func (sp Sphere) Resolve(pos vector.Position, vel vector.Velocity) (vector.Position, vector.Velocity) {
	if sp.Contains(pos) {
		return pos, vel
	}
	// On or outside the surface: flip the radial velocity component. The
	// radial vector cannot be zero here because the radius is positive.
	radial := pos.Sub(sp.Center)
	v := vel.Vec()
	proj := radial.Mul(v.Dot(radial) / radial.Dot(radial))
	return pos, vector.Velocity(v.Sub(proj.Mul(2)))
}
