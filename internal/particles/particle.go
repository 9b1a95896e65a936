package particles

import (
	"fmt"

	"github.com/partsim/partsim/internal/vector"
)

// Particle is a point mass in classical mechanics. Its kinematic state is
// mutated only by the integrator and constraint resolution during a step.
type Particle struct {
	Position vector.Position
	Velocity vector.Velocity
	Mass     float64
}

func (p Particle) validate() error {
	if !(p.Mass > 0) {
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidParameter, p.Mass)
	}
	return nil
}
