package particles

import (
	"fmt"
	"math"

	"github.com/partsim/partsim/internal/vector"
)

// System is a closed set of particles together with the interaction and
// constraint rules that govern their evolution. The zero value is not
// usable; construct with NewSystem or FromState.
type System struct {
	parts        []Particle
	interactions []Interaction
	constraints  []Constraint

	time        float64
	snapshotSeq uint64

	// acceleration scratch buffer, reused across steps
	accel []vector.Acceleration
}

// NewSystem returns an empty system at time zero.
func NewSystem() *System {
	return &System{}
}

// Len returns the number of particles in the store.
func (s *System) Len() int { return len(s.parts) }

// Time returns the simulation clock. It starts at zero and never
// decreases.
func (s *System) Time() float64 { return s.time }

// AddParticle appends a particle and returns its index. Indices are stable
// for the lifetime of the system; there is no removal.
func (s *System) AddParticle(p Particle) (int, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	s.parts = append(s.parts, p)
	return len(s.parts) - 1, nil
}

// Particle returns the particle at index i.
func (s *System) Particle(i int) (Particle, error) {
	if i < 0 || i >= len(s.parts) {
		return Particle{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.parts))
	}
	return s.parts[i], nil
}

// SetParticle overwrites the particle at index i.
func (s *System) SetParticle(i int, p Particle) error {
	if i < 0 || i >= len(s.parts) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.parts))
	}
	if err := p.validate(); err != nil {
		return err
	}
	s.parts[i] = p
	return nil
}

// AddInteraction registers a force rule. Index validity is checked here,
// never deferred to stepping.
func (s *System) AddInteraction(itn Interaction) error {
	if itn == nil {
		return fmt.Errorf("%w: nil interaction", ErrInvalidParameter)
	}
	for _, idx := range itn.refs() {
		if idx < 0 || idx >= len(s.parts) {
			return fmt.Errorf("interaction: %w: %d of %d", ErrIndexOutOfRange, idx, len(s.parts))
		}
	}
	s.interactions = append(s.interactions, itn)
	return nil
}

// AddConstraint registers a boundary constraint, validating its index.
func (s *System) AddConstraint(c Constraint) error {
	if c.Boundary == nil {
		return fmt.Errorf("%w: nil constraint boundary", ErrInvalidParameter)
	}
	if c.Index < 0 || c.Index >= len(s.parts) {
		return fmt.Errorf("constraint: %w: %d of %d", ErrIndexOutOfRange, c.Index, len(s.parts))
	}
	s.constraints = append(s.constraints, c)
	return nil
}

// Advance performs one atomic time step of size dt:
//
//  1. accumulate accelerations over all interactions, in registration
//     order,
//  2. update every particle's kinematics from its pre-step state
//     (dv = a*dt, dp = v*dt + dv*dt/2),
//  3. resolve constraints against the updated state, in registration
//     order,
//  4. advance the clock.
//
// If any force evaluation fails the step returns the error with the
// system unchanged: accelerations are accumulated into a scratch buffer
// before any particle is mutated, and constraint resolution cannot fail.
func (s *System) Advance(dt float64) error {
	if dt < 0 || math.IsNaN(dt) {
		return fmt.Errorf("%w: time step %v", ErrInvalidParameter, dt)
	}

	if len(s.accel) != len(s.parts) {
		s.accel = make([]vector.Acceleration, len(s.parts))
	}
	for i := range s.accel {
		s.accel[i] = vector.Acceleration{}
	}

	for _, itn := range s.interactions {
		if err := itn.accumulate(s.parts, s.accel); err != nil {
			return fmt.Errorf("advance at t=%v: %w", s.time, err)
		}
	}

	for i := range s.parts {
		p := &s.parts[i]
		dv := s.accel[i].Delta(dt)
		dr := p.Velocity.Displacement(dt).Add(dv.Displacement(dt / 2))
		p.Position = p.Position.Displace(dr)
		p.Velocity = p.Velocity.Add(dv)
	}

	for _, c := range s.constraints {
		p := &s.parts[c.Index]
		p.Position, p.Velocity = c.Boundary.Resolve(p.Position, p.Velocity)
	}

	s.time += dt
	return nil
}

// Snapshot returns a read-only export of the current particle state. The
// simulation state is untouched, but each call consumes one sequence
// number, so consecutive exports carry strictly increasing Seq values
// starting at zero.
func (s *System) Snapshot() Snapshot {
	snap := Snapshot{
		Seq:       s.snapshotSeq,
		Time:      s.time,
		Particles: make([]ParticleDoc, len(s.parts)),
	}
	for i, p := range s.parts {
		snap.Particles[i] = encodeParticle(i, p)
	}
	s.snapshotSeq++
	return snap
}
