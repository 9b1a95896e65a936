// Package scenario builds particle systems from YAML descriptions and
// ships a few ready-made setups. The engine itself takes all
// configuration as explicit arguments; everything file-shaped lives here.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/partsim/partsim/internal/particles"
)

const (
	DefaultDt            = 1e-5
	DefaultSteps         = 99999
	DefaultSnapshotEvery = 9999
)

// Scenario describes a complete run: the system setup plus the stepping
// parameters the driver loop needs. The system part reuses the engine's
// versioned state schema, so any exported system document is also a valid
// scenario body.
type Scenario struct {
	Name          string  `yaml:"name"`
	Dt            float64 `yaml:"dt"`
	Steps         int     `yaml:"steps"`
	SnapshotEvery int     `yaml:"snapshot_every"`

	Particles    []particles.ParticleDoc    `yaml:"particles"`
	Interactions []particles.InteractionDoc `yaml:"interactions"`
	Constraints  []particles.ConstraintDoc  `yaml:"constraints"`
}

// Default returns a scenario with the stepping defaults filled in and no
// particles.
func Default() *Scenario {
	return &Scenario{
		Dt:            DefaultDt,
		Steps:         DefaultSteps,
		SnapshotEvery: DefaultSnapshotEvery,
	}
}

// Load reads a scenario file, applying defaults for absent fields.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Default()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Save writes the scenario as YAML.
func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (sc *Scenario) Validate() error {
	if sc.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", sc.Dt)
	}
	if sc.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", sc.Steps)
	}
	if sc.SnapshotEvery <= 0 {
		return fmt.Errorf("snapshot_every must be positive, got %d", sc.SnapshotEvery)
	}
	if len(sc.Particles) == 0 {
		return fmt.Errorf("scenario has no particles")
	}
	return nil
}

// Build constructs a fresh system at time zero from the scenario body.
// Index and parameter validation is the engine's, via its restore path.
func (sc *Scenario) Build() (*particles.System, error) {
	return particles.FromState(particles.State{
		Version:      particles.StateVersion,
		Particles:    sc.Particles,
		Interactions: sc.Interactions,
		Constraints:  sc.Constraints,
	})
}
