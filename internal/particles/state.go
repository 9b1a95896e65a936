package particles

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/partsim/partsim/internal/geometry"
	"github.com/partsim/partsim/internal/vector"
)

// StateVersion is the current version of the exported system document.
// The schema below is the persistence contract: field names and nesting
// are stable regardless of how the in-memory types evolve.
const StateVersion = 1

// VecDoc is a 3-vector on the wire.
type VecDoc struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// ParticleDoc is one particle on the wire. Index records the particle's
// position in the store at export time; it is informational and ignored
// on restore, where order alone assigns indices.
type ParticleDoc struct {
	Index    int     `json:"index" yaml:"index,omitempty"`
	Position VecDoc  `json:"position" yaml:"position"`
	Velocity VecDoc  `json:"velocity" yaml:"velocity"`
	Mass     float64 `json:"mass" yaml:"mass"`
}

// Snapshot is a sequence-numbered export of particle state at a point in
// simulated time.
type Snapshot struct {
	Seq       uint64        `json:"seq"`
	Time      float64       `json:"time"`
	Particles []ParticleDoc `json:"particles"`
}

// Exactly one kind field must be set in each of the *Doc union structs
// below; encoding sets one, decoding rejects zero or several.

type ElasticDoc struct {
	Stiffness  float64 `json:"k" yaml:"k"`
	RestLength float64 `json:"rest_length" yaml:"rest_length"`
}

type DampingDoc struct {
	Coefficient float64 `json:"c" yaml:"c"`
}

type GravitationalDoc struct {
	G float64 `json:"g" yaml:"g"`
}

type StickyDoc struct {
	WellDistance float64 `json:"d_well" yaml:"d_well"`
	MaxDistance  float64 `json:"d_max" yaml:"d_max"`
	StickForce   float64 `json:"f_stick" yaml:"f_stick"`
	RepulseForce float64 `json:"f_repulse" yaml:"f_repulse"`
}

type LinearDragDoc struct {
	Coefficient float64 `json:"c" yaml:"c"`
}

type UniformGravityDoc struct {
	Accel VecDoc `json:"acceleration" yaml:"acceleration"`
}

type PairForceDoc struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`

	Elastic       *ElasticDoc       `json:"elastic,omitempty" yaml:"elastic,omitempty"`
	Damping       *DampingDoc       `json:"damping,omitempty" yaml:"damping,omitempty"`
	Gravitational *GravitationalDoc `json:"gravitational,omitempty" yaml:"gravitational,omitempty"`
	Sticky        *StickyDoc        `json:"sticky,omitempty" yaml:"sticky,omitempty"`
}

type ExternalForceDoc struct {
	Index int `json:"index" yaml:"index"`

	LinearDrag     *LinearDragDoc     `json:"linear_drag,omitempty" yaml:"linear_drag,omitempty"`
	UniformGravity *UniformGravityDoc `json:"uniform_gravity,omitempty" yaml:"uniform_gravity,omitempty"`
}

type InteractionDoc struct {
	Pair     *PairForceDoc     `json:"pair,omitempty" yaml:"pair,omitempty"`
	External *ExternalForceDoc `json:"external,omitempty" yaml:"external,omitempty"`
}

type PlaneDoc struct {
	Point  VecDoc `json:"point" yaml:"point"`
	Normal VecDoc `json:"normal" yaml:"normal"`
}

type SphereDoc struct {
	Center VecDoc  `json:"center" yaml:"center"`
	Radius float64 `json:"radius" yaml:"radius"`
}

type ConstraintDoc struct {
	Index int `json:"index" yaml:"index"`

	Plane  *PlaneDoc  `json:"plane,omitempty" yaml:"plane,omitempty"`
	Sphere *SphereDoc `json:"sphere,omitempty" yaml:"sphere,omitempty"`
}

// State is the full exported representation of a system: everything
// needed to resume a run bit-identically.
type State struct {
	Version      int              `json:"version" yaml:"version"`
	Time         float64          `json:"time" yaml:"time"`
	SnapshotSeq  uint64           `json:"snapshots_saved" yaml:"snapshots_saved"`
	Particles    []ParticleDoc    `json:"particles" yaml:"particles"`
	Interactions []InteractionDoc `json:"interactions" yaml:"interactions"`
	Constraints  []ConstraintDoc  `json:"constraints" yaml:"constraints"`
}

func encodeVec(v mgl64.Vec3) VecDoc { return VecDoc{X: v.X(), Y: v.Y(), Z: v.Z()} }

func (d VecDoc) vec() mgl64.Vec3 { return mgl64.Vec3{d.X, d.Y, d.Z} }

func (d VecDoc) pos() vector.Position { return vector.Position{d.X, d.Y, d.Z} }

func (d VecDoc) vel() vector.Velocity { return vector.Velocity{d.X, d.Y, d.Z} }

func (d VecDoc) acc() vector.Acceleration { return vector.Acceleration{d.X, d.Y, d.Z} }

func encodeParticle(i int, p Particle) ParticleDoc {
	return ParticleDoc{
		Index:    i,
		Position: encodeVec(p.Position.Vec()),
		Velocity: encodeVec(p.Velocity.Vec()),
		Mass:     p.Mass,
	}
}

// State exports the whole system, including the rules and counters that a
// plain Snapshot omits. It does not consume a snapshot sequence number.
func (s *System) State() State {
	doc := State{
		Version:      StateVersion,
		Time:         s.time,
		SnapshotSeq:  s.snapshotSeq,
		Particles:    make([]ParticleDoc, len(s.parts)),
		Interactions: make([]InteractionDoc, len(s.interactions)),
		Constraints:  make([]ConstraintDoc, len(s.constraints)),
	}
	for i, p := range s.parts {
		doc.Particles[i] = encodeParticle(i, p)
	}
	for i, itn := range s.interactions {
		doc.Interactions[i] = encodeInteraction(itn)
	}
	for i, c := range s.constraints {
		doc.Constraints[i] = encodeConstraint(c)
	}
	return doc
}

func encodeInteraction(itn Interaction) InteractionDoc {
	switch t := itn.(type) {
	case PairForce:
		pd := &PairForceDoc{A: t.A, B: t.B}
		switch k := t.Kind.(type) {
		case Elastic:
			pd.Elastic = &ElasticDoc{Stiffness: k.Stiffness, RestLength: k.RestLength}
		case Damping:
			pd.Damping = &DampingDoc{Coefficient: k.Coefficient}
		case Gravitational:
			pd.Gravitational = &GravitationalDoc{G: k.G}
		case Sticky:
			pd.Sticky = &StickyDoc{
				WellDistance: k.WellDistance,
				MaxDistance:  k.MaxDistance,
				StickForce:   k.StickForce,
				RepulseForce: k.RepulseForce,
			}
		}
		return InteractionDoc{Pair: pd}
	case ExternalForce:
		ed := &ExternalForceDoc{Index: t.Index}
		switch k := t.Kind.(type) {
		case LinearDrag:
			ed.LinearDrag = &LinearDragDoc{Coefficient: k.Coefficient}
		case UniformGravity:
			ed.UniformGravity = &UniformGravityDoc{Accel: encodeVec(k.Accel.Vec())}
		}
		return InteractionDoc{External: ed}
	}
	return InteractionDoc{}
}

func encodeConstraint(c Constraint) ConstraintDoc {
	cd := ConstraintDoc{Index: c.Index}
	switch b := c.Boundary.(type) {
	case geometry.Plane:
		cd.Plane = &PlaneDoc{Point: encodeVec(b.Point.Vec()), Normal: encodeVec(b.Normal)}
	case geometry.Sphere:
		cd.Sphere = &SphereDoc{Center: encodeVec(b.Center.Vec()), Radius: b.Radius}
	}
	return cd
}

// FromState reconstructs a system from an exported document. The result
// continues bit-identically: FromState(sys.State()) followed by the same
// Advance sequence reproduces the original trajectory exactly.
func FromState(doc State) (*System, error) {
	if doc.Version != StateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadState, doc.Version)
	}

	s := NewSystem()
	for i, pd := range doc.Particles {
		if _, err := s.AddParticle(Particle{
			Position: pd.Position.pos(),
			Velocity: pd.Velocity.vel(),
			Mass:     pd.Mass,
		}); err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
	}
	for i, id := range doc.Interactions {
		itn, err := decodeInteraction(id)
		if err != nil {
			return nil, fmt.Errorf("interaction %d: %w", i, err)
		}
		if err := s.AddInteraction(itn); err != nil {
			return nil, fmt.Errorf("interaction %d: %w", i, err)
		}
	}
	for i, cd := range doc.Constraints {
		c, err := decodeConstraint(cd)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		if err := s.AddConstraint(c); err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
	}

	s.time = doc.Time
	s.snapshotSeq = doc.SnapshotSeq
	return s, nil
}

func decodeInteraction(d InteractionDoc) (Interaction, error) {
	switch {
	case d.Pair != nil && d.External == nil:
		kind, err := decodePairKind(d.Pair)
		if err != nil {
			return nil, err
		}
		return PairForce{A: d.Pair.A, B: d.Pair.B, Kind: kind}, nil
	case d.External != nil && d.Pair == nil:
		kind, err := decodeExternalKind(d.External)
		if err != nil {
			return nil, err
		}
		return ExternalForce{Index: d.External.Index, Kind: kind}, nil
	default:
		return nil, fmt.Errorf("%w: interaction must be exactly one of pair or external", ErrBadState)
	}
}

func decodePairKind(d *PairForceDoc) (ForceKind, error) {
	var kind ForceKind
	n := 0
	if d.Elastic != nil {
		kind = Elastic{Stiffness: d.Elastic.Stiffness, RestLength: d.Elastic.RestLength}
		n++
	}
	if d.Damping != nil {
		kind = Damping{Coefficient: d.Damping.Coefficient}
		n++
	}
	if d.Gravitational != nil {
		kind = Gravitational{G: d.Gravitational.G}
		n++
	}
	if d.Sticky != nil {
		kind = Sticky{
			WellDistance: d.Sticky.WellDistance,
			MaxDistance:  d.Sticky.MaxDistance,
			StickForce:   d.Sticky.StickForce,
			RepulseForce: d.Sticky.RepulseForce,
		}
		n++
	}
	if n != 1 {
		return nil, fmt.Errorf("%w: pair force needs exactly one kind, got %d", ErrBadState, n)
	}
	return kind, nil
}

func decodeExternalKind(d *ExternalForceDoc) (ExternalForceKind, error) {
	var kind ExternalForceKind
	n := 0
	if d.LinearDrag != nil {
		kind = LinearDrag{Coefficient: d.LinearDrag.Coefficient}
		n++
	}
	if d.UniformGravity != nil {
		kind = UniformGravity{Accel: d.UniformGravity.Accel.acc()}
		n++
	}
	if n != 1 {
		return nil, fmt.Errorf("%w: external force needs exactly one kind, got %d", ErrBadState, n)
	}
	return kind, nil
}

func decodeConstraint(d ConstraintDoc) (Constraint, error) {
	switch {
	case d.Plane != nil && d.Sphere == nil:
		pl, err := geometry.NewPlane(d.Plane.Point.pos(), d.Plane.Normal.vec())
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Index: d.Index, Boundary: pl}, nil
	case d.Sphere != nil && d.Plane == nil:
		sp, err := geometry.NewSphere(d.Sphere.Center.pos(), d.Sphere.Radius)
		if err != nil {
			return Constraint{}, err
		}
		return Constraint{Index: d.Index, Boundary: sp}, nil
	default:
		return Constraint{}, fmt.Errorf("%w: constraint must be exactly one of plane or sphere", ErrBadState)
	}
}
