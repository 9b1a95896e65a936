// Package vector provides unit-tagged 3-vectors for the simulation engine.
//
// Positions, velocities, accelerations and forces are distinct nominal
// types over [mgl64.Vec3], so that quantities with different physical
// dimensions cannot be mixed by accident. Conversions between tags happen
// only through the operations defined here (force over mass, acceleration
// times dt, and so on), each of which encodes a dimensionally valid step.
package vector

import "github.com/go-gl/mathgl/mgl64"

// Position is a point in space, in length units.
type Position mgl64.Vec3

// Velocity is a rate of change of position, in length/time units.
type Velocity mgl64.Vec3

// Acceleration is a rate of change of velocity.
type Acceleration mgl64.Vec3

// Force is a force vector, in mass*length/time^2 units.
type Force mgl64.Vec3

func Pos(x, y, z float64) Position { return Position{x, y, z} }

func Vel(x, y, z float64) Velocity { return Velocity{x, y, z} }

func Accel(x, y, z float64) Acceleration { return Acceleration{x, y, z} }

// To returns the untagged separation vector from p to q.
func (p Position) To(q Position) mgl64.Vec3 {
	return mgl64.Vec3(q).Sub(mgl64.Vec3(p))
}

// Sub returns the untagged vector q -> p.
func (p Position) Sub(q Position) mgl64.Vec3 {
	return mgl64.Vec3(p).Sub(mgl64.Vec3(q))
}

// Displace returns p shifted by the displacement dr.
func (p Position) Displace(dr mgl64.Vec3) Position {
	return Position(mgl64.Vec3(p).Add(dr))
}

func (p Position) Vec() mgl64.Vec3 { return mgl64.Vec3(p) }

// Sub returns the untagged relative velocity v - w.
func (v Velocity) Sub(w Velocity) mgl64.Vec3 {
	return mgl64.Vec3(v).Sub(mgl64.Vec3(w))
}

// Add returns v plus the velocity increment dv.
func (v Velocity) Add(dv Velocity) Velocity {
	return Velocity(mgl64.Vec3(v).Add(mgl64.Vec3(dv)))
}

// Displacement returns the displacement covered at velocity v over dt.
func (v Velocity) Displacement(dt float64) mgl64.Vec3 {
	return mgl64.Vec3(v).Mul(dt)
}

func (v Velocity) Vec() mgl64.Vec3 { return mgl64.Vec3(v) }

// Add returns the sum of two accelerations.
func (a Acceleration) Add(b Acceleration) Acceleration {
	return Acceleration(mgl64.Vec3(a).Add(mgl64.Vec3(b)))
}

// Delta returns the velocity increment accumulated over dt.
func (a Acceleration) Delta(dt float64) Velocity {
	return Velocity(mgl64.Vec3(a).Mul(dt))
}

func (a Acceleration) Vec() mgl64.Vec3 { return mgl64.Vec3(a) }

// Add returns the sum of two forces.
func (f Force) Add(g Force) Force {
	return Force(mgl64.Vec3(f).Add(mgl64.Vec3(g)))
}

// Neg returns the reaction force -f.
func (f Force) Neg() Force {
	return Force(mgl64.Vec3(f).Mul(-1))
}

// Over divides the force by a mass, yielding an acceleration.
func (f Force) Over(mass float64) Acceleration {
	return Acceleration(mgl64.Vec3(f).Mul(1 / mass))
}

func (f Force) Vec() mgl64.Vec3 { return mgl64.Vec3(f) }
