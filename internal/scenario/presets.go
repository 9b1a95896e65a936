package scenario

import (
	"math/rand"
	"sort"

	"github.com/partsim/partsim/internal/particles"
)

// dropletSeed fixes the random placement of the droplet preset so that
// repeated runs are reproducible.
const dropletSeed = 1

var presets = map[string]func() *Scenario{
	"ring":    Ring,
	"droplet": Droplet,
	"orbit":   Orbit,
}

// Names returns the preset names in stable order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh copy of the named preset.
func Get(name string) (*Scenario, bool) {
	mk, ok := presets[name]
	if !ok {
		return nil, false
	}
	return mk(), true
}

func vec(x, y, z float64) particles.VecDoc {
	return particles.VecDoc{X: x, Y: y, Z: z}
}

func unitSphere(index int) particles.ConstraintDoc {
	return particles.ConstraintDoc{
		Index:  index,
		Sphere: &particles.SphereDoc{Center: vec(0, 0, 0), Radius: 1},
	}
}

// Ring is four unit masses on the coordinate axes, joined in a cycle by a
// spring and a damper, confined to the unit sphere.
func Ring() *Scenario {
	sc := Default()
	sc.Name = "ring"

	positions := []particles.VecDoc{
		vec(1, 0, 0), vec(0, 1, 0), vec(-1, 0, 0), vec(0, -1, 0),
	}
	for i, pos := range positions {
		sc.Particles = append(sc.Particles, particles.ParticleDoc{
			Position: pos, Velocity: vec(0, 0, 0), Mass: 1,
		})
		sc.Constraints = append(sc.Constraints, unitSphere(i))
	}
	for i := range positions {
		j := (i + 1) % len(positions)
		sc.Interactions = append(sc.Interactions,
			particles.InteractionDoc{Pair: &particles.PairForceDoc{
				A: i, B: j,
				Elastic: &particles.ElasticDoc{Stiffness: 1, RestLength: 0.5},
			}},
			particles.InteractionDoc{Pair: &particles.PairForceDoc{
				A: i, B: j,
				Damping: &particles.DampingDoc{Coefficient: 0.5},
			}},
		)
	}
	return sc
}

// Droplet is eleven unit masses scattered in the z=0 plane, falling under
// uniform gravity with linear drag, sticking to each other pairwise
// inside the unit sphere. They coalesce into a droplet at the bottom.
func Droplet() *Scenario {
	sc := Default()
	sc.Name = "droplet"
	sc.Steps = 999999

	const n = 11
	rng := rand.New(rand.NewSource(dropletSeed))
	sample := func() float64 { return rng.Float64() - 0.5 }

	for i := 0; i < n; i++ {
		sc.Particles = append(sc.Particles, particles.ParticleDoc{
			Position: vec(sample(), sample(), 0),
			Velocity: vec(0, 0, 0),
			Mass:     1,
		})
		sc.Interactions = append(sc.Interactions,
			particles.InteractionDoc{External: &particles.ExternalForceDoc{
				Index:          i,
				UniformGravity: &particles.UniformGravityDoc{Accel: vec(0, -1, 0)},
			}},
			particles.InteractionDoc{External: &particles.ExternalForceDoc{
				Index:      i,
				LinearDrag: &particles.LinearDragDoc{Coefficient: 1},
			}},
		)
		sc.Constraints = append(sc.Constraints, unitSphere(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sc.Interactions = append(sc.Interactions,
				particles.InteractionDoc{Pair: &particles.PairForceDoc{
					A: i, B: j,
					Sticky: &particles.StickyDoc{
						WellDistance: 0.2,
						MaxDistance:  0.21,
						StickForce:   10,
						RepulseForce: 99,
					},
				}})
		}
	}
	return sc
}

// Orbit is a light body circling a heavy one under Newtonian gravity,
// with velocities chosen so total momentum is zero.
func Orbit() *Scenario {
	sc := Default()
	sc.Name = "orbit"
	sc.Dt = 1e-4
	sc.Steps = 20000
	sc.SnapshotEvery = 100

	sc.Particles = []particles.ParticleDoc{
		{Position: vec(0, 0, 0), Velocity: vec(0, -0.1, 0), Mass: 100},
		{Position: vec(1, 0, 0), Velocity: vec(0, 10, 0), Mass: 1},
	}
	sc.Interactions = []particles.InteractionDoc{
		{Pair: &particles.PairForceDoc{
			A: 0, B: 1,
			Gravitational: &particles.GravitationalDoc{G: 1},
		}},
	}
	return sc
}
