package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsim/partsim/internal/particles"
)

func testSnapshot(seq uint64, time float64) particles.Snapshot {
	return particles.Snapshot{
		Seq:  seq,
		Time: time,
		Particles: []particles.ParticleDoc{
			{Index: 0, Position: particles.VecDoc{X: 0.5, Y: -0.25, Z: 0.125}, Velocity: particles.VecDoc{X: 1e-5}, Mass: 1},
			{Index: 1, Position: particles.VecDoc{X: -1, Y: 2, Z: 3}, Velocity: particles.VecDoc{Y: -0.75}, Mass: 2.5},
		},
	}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	want := testSnapshot(0, 0)
	require.NoError(t, st.Write(ctx, want))

	got, err := st.Read(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSnapshotStoreSequences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	for seq := uint64(0); seq < 3; seq++ {
		require.NoError(t, st.Write(ctx, testSnapshot(seq, float64(seq)*0.1)))
	}

	seqs, err := st.Seqs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, seqs)

	// Duplicate sequence numbers are rejected by the schema.
	assert.Error(t, st.Write(ctx, testSnapshot(1, 9)))
}

func TestSnapshotStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	ctx := context.Background()

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Write(ctx, testSnapshot(0, 0.5)))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Read(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Time)
	assert.Len(t, got.Particles, 2)
}

func TestParticleSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	for seq := uint64(0); seq < 4; seq++ {
		require.NoError(t, st.Write(ctx, testSnapshot(seq, float64(seq))))
	}

	times, series, err := st.ParticleSeries(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, times)
	require.Len(t, series, 4)
	for _, p := range series {
		assert.Equal(t, 1, p.Index)
		assert.Equal(t, 2.5, p.Mass)
	}

	_, series, err = st.ParticleSeries(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, series)
}
