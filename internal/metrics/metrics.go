// Package metrics provides step-over-step diagnostics computed from
// exported snapshots: total kinetic energy, drift of total linear
// momentum, and the maximum distance any particle reaches from a
// reference point.
package metrics

import (
	"math"

	"github.com/partsim/partsim/internal/particles"
)

type Metric interface {
	Name() string
	Observe(snap particles.Snapshot)
	Value() float64
	Reset()
}

// KineticEnergy tracks the total kinetic energy of the latest observed
// snapshot.
type KineticEnergy struct {
	current float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(snap particles.Snapshot) {
	total := 0.0
	for _, p := range snap.Particles {
		v2 := p.Velocity.X*p.Velocity.X + p.Velocity.Y*p.Velocity.Y + p.Velocity.Z*p.Velocity.Z
		total += 0.5 * p.Mass * v2
	}
	k.current = total
}

func (k *KineticEnergy) Value() float64 { return k.current }

func (k *KineticEnergy) Reset() { k.current = 0 }

// MomentumDrift tracks the largest deviation of total linear momentum
// from its value at the first observed snapshot. For a closed system with
// only pairwise forces it should stay near zero.
type MomentumDrift struct {
	seen     bool
	p0       [3]float64
	maxDrift float64
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(snap particles.Snapshot) {
	var p [3]float64
	for _, part := range snap.Particles {
		p[0] += part.Mass * part.Velocity.X
		p[1] += part.Mass * part.Velocity.Y
		p[2] += part.Mass * part.Velocity.Z
	}
	if !m.seen {
		m.p0 = p
		m.seen = true
		return
	}
	dx := p[0] - m.p0[0]
	dy := p[1] - m.p0[1]
	dz := p[2] - m.p0[2]
	drift := math.Sqrt(dx*dx + dy*dy + dz*dz)
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.seen = false
	m.p0 = [3]float64{}
	m.maxDrift = 0
}

// MaxRadius tracks the largest distance any particle reaches from a
// reference point across all observed snapshots. Useful for checking
// container constraints hold.
type MaxRadius struct {
	center [3]float64
	max    float64
}

func NewMaxRadius(x, y, z float64) *MaxRadius {
	return &MaxRadius{center: [3]float64{x, y, z}}
}

func (m *MaxRadius) Name() string { return "max_radius" }

func (m *MaxRadius) Observe(snap particles.Snapshot) {
	for _, p := range snap.Particles {
		dx := p.Position.X - m.center[0]
		dy := p.Position.Y - m.center[1]
		dz := p.Position.Z - m.center[2]
		m.max = math.Max(m.max, math.Sqrt(dx*dx+dy*dy+dz*dz))
	}
}

func (m *MaxRadius) Value() float64 { return m.max }

func (m *MaxRadius) Reset() { m.max = 0 }
