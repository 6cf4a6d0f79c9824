// Package history records training observations in a SQLite database so
// loss curves from separate runs can be compared afterwards.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"neuron-forge/internal/trainer"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at    TEXT    NOT NULL,
	epochs        INTEGER NOT NULL,
	learning_rate REAL    NOT NULL,
	seed          INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS observations (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	epoch  INTEGER NOT NULL,
	loss   REAL    NOT NULL,
	PRIMARY KEY (run_id, epoch)
);
`

// Store is a SQLite-backed run journal.
type Store struct {
	db *sql.DB
}

// Run describes one training run.
type Run struct {
	ID           int64
	StartedAt    time.Time
	Epochs       int
	LearningRate float64
	Seed         int64
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One writer; the observer runs on the training goroutine.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun inserts a run row and returns it with its assigned ID.
func (s *Store) BeginRun(ctx context.Context, r Run) (Run, error) {
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, epochs, learning_rate, seed) VALUES (?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.Epochs, r.LearningRate, r.Seed)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	r.ID, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

// Record stores one observation for runID.
func (s *Store) Record(ctx context.Context, runID int64, o trainer.Observation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO observations (run_id, epoch, loss) VALUES (?, ?, ?)`,
		runID, o.Epoch, o.Loss)
	if err != nil {
		return fmt.Errorf("record epoch %d: %w", o.Epoch, err)
	}
	return nil
}

// Observer returns a trainer.Observer that records into runID.
func (s *Store) Observer(ctx context.Context, runID int64) trainer.Observer {
	return trainer.ObserverFunc(func(o trainer.Observation) error {
		return s.Record(ctx, runID, o)
	})
}

// Observations returns the observations of runID ordered by epoch.
func (s *Store) Observations(ctx context.Context, runID int64) ([]trainer.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT epoch, loss FROM observations WHERE run_id = ? ORDER BY epoch`, runID)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var out []trainer.Observation
	for rows.Next() {
		var o trainer.Observation
		if err := rows.Scan(&o.Epoch, &o.Loss); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("history: run not found")

// GetRun loads the run with id.
func (s *Store) GetRun(ctx context.Context, id int64) (Run, error) {
	var (
		r       Run
		started string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, epochs, learning_rate, seed FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &started, &r.Epochs, &r.LearningRate, &r.Seed)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run %d: %w", id, err)
	}
	r.StartedAt, err = time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return Run{}, fmt.Errorf("run %d started_at: %w", id, err)
	}
	return r, nil
}
