// Package storage persists simulation output: sequence-numbered snapshots
// in a SQLite database and whole-system checkpoints as JSON documents.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/partsim/partsim/internal/particles"
)

// SchemaVersion is the current snapshot database schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
    seq INTEGER PRIMARY KEY,
    time REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_particles (
    seq INTEGER NOT NULL REFERENCES snapshots(seq) ON DELETE CASCADE,
    idx INTEGER NOT NULL,
    pos_x REAL NOT NULL,
    pos_y REAL NOT NULL,
    pos_z REAL NOT NULL,
    vel_x REAL NOT NULL,
    vel_y REAL NOT NULL,
    vel_z REAL NOT NULL,
    mass REAL NOT NULL,
    PRIMARY KEY (seq, idx)
);
`

// SnapshotStore writes and reads snapshots in a SQLite database, one row
// per particle per snapshot plus one row per snapshot for the clock.
type SnapshotStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a snapshot database at path.
func Open(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)`,
		fmt.Sprint(SchemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("record schema version: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

func (st *SnapshotStore) Close() error { return st.db.Close() }

// Write persists one snapshot in a single transaction.
func (st *SnapshotStore) Write(ctx context.Context, snap particles.Snapshot) error {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write snapshot %d: %w", snap.Seq, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (seq, time) VALUES (?, ?)`,
		snap.Seq, snap.Time); err != nil {
		return fmt.Errorf("write snapshot %d: %w", snap.Seq, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_particles
		(seq, idx, pos_x, pos_y, pos_z, vel_x, vel_y, vel_z, mass)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("write snapshot %d: %w", snap.Seq, err)
	}
	defer stmt.Close()

	for _, p := range snap.Particles {
		if _, err := stmt.ExecContext(ctx, snap.Seq, p.Index,
			p.Position.X, p.Position.Y, p.Position.Z,
			p.Velocity.X, p.Velocity.Y, p.Velocity.Z,
			p.Mass); err != nil {
			return fmt.Errorf("write snapshot %d particle %d: %w", snap.Seq, p.Index, err)
		}
	}

	return tx.Commit()
}

// Read returns the snapshot with the given sequence number.
func (st *SnapshotStore) Read(ctx context.Context, seq uint64) (particles.Snapshot, error) {
	snap := particles.Snapshot{Seq: seq}

	err := st.db.QueryRowContext(ctx,
		`SELECT time FROM snapshots WHERE seq = ?`, seq).Scan(&snap.Time)
	if err != nil {
		return particles.Snapshot{}, fmt.Errorf("read snapshot %d: %w", seq, err)
	}

	rows, err := st.db.QueryContext(ctx, `SELECT idx,
		pos_x, pos_y, pos_z, vel_x, vel_y, vel_z, mass
		FROM snapshot_particles WHERE seq = ? ORDER BY idx`, seq)
	if err != nil {
		return particles.Snapshot{}, fmt.Errorf("read snapshot %d: %w", seq, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p particles.ParticleDoc
		if err := rows.Scan(&p.Index,
			&p.Position.X, &p.Position.Y, &p.Position.Z,
			&p.Velocity.X, &p.Velocity.Y, &p.Velocity.Z,
			&p.Mass); err != nil {
			return particles.Snapshot{}, fmt.Errorf("read snapshot %d: %w", seq, err)
		}
		snap.Particles = append(snap.Particles, p)
	}
	if err := rows.Err(); err != nil {
		return particles.Snapshot{}, fmt.Errorf("read snapshot %d: %w", seq, err)
	}

	return snap, nil
}

// Seqs returns all stored sequence numbers in ascending order.
func (st *SnapshotStore) Seqs(ctx context.Context) ([]uint64, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT seq FROM snapshots ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var seqs []uint64
	for rows.Next() {
		var seq uint64
		if err := rows.Scan(&seq); err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		seqs = append(seqs, seq)
	}
	return seqs, rows.Err()
}

// ParticleSeries returns, for one particle index, its state at every
// stored snapshot together with the snapshot times, ordered by sequence.
func (st *SnapshotStore) ParticleSeries(ctx context.Context, idx int) ([]float64, []particles.ParticleDoc, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT s.time,
		p.pos_x, p.pos_y, p.pos_z, p.vel_x, p.vel_y, p.vel_z, p.mass
		FROM snapshot_particles p JOIN snapshots s ON s.seq = p.seq
		WHERE p.idx = ? ORDER BY p.seq`, idx)
	if err != nil {
		return nil, nil, fmt.Errorf("particle %d series: %w", idx, err)
	}
	defer rows.Close()

	var times []float64
	var series []particles.ParticleDoc
	for rows.Next() {
		var t float64
		p := particles.ParticleDoc{Index: idx}
		if err := rows.Scan(&t,
			&p.Position.X, &p.Position.Y, &p.Position.Z,
			&p.Velocity.X, &p.Velocity.Y, &p.Velocity.Z,
			&p.Mass); err != nil {
			return nil, nil, fmt.Errorf("particle %d series: %w", idx, err)
		}
		times = append(times, t)
		series = append(series, p)
	}
	return times, series, rows.Err()
}
