package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsim/partsim/internal/particles"
	"github.com/partsim/partsim/internal/vector"
)

func TestCheckpointRoundTrip(t *testing.T) {
	sys := particles.NewSystem()
	_, err := sys.AddParticle(particles.Particle{
		Position: vector.Pos(0.1, 0.2, 0.3),
		Velocity: vector.Vel(-1, 0, 0.5),
		Mass:     2,
	})
	require.NoError(t, err)
	_, err = sys.AddParticle(particles.Particle{Position: vector.Pos(1, 0, 0), Mass: 1})
	require.NoError(t, err)
	require.NoError(t, sys.AddInteraction(particles.PairForce{
		A: 0, B: 1,
		Kind: particles.Elastic{Stiffness: 2, RestLength: 0.5},
	}))
	for i := 0; i < 25; i++ {
		require.NoError(t, sys.Advance(1e-3))
	}

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	want := sys.State()
	require.NoError(t, SaveCheckpoint(path, want))

	got, err := LoadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The restored system continues exactly where the original left off.
	restored, err := particles.FromState(got)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, sys.Advance(1e-3))
		require.NoError(t, restored.Advance(1e-3))
	}
	assert.Equal(t, sys.State(), restored.State())
}

func TestLoadCheckpointMissingFile(t *testing.T) {
	_, err := LoadCheckpoint(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
