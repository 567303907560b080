// Package store persists mapping jobs of the HTTP service in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	StatusInProgress = "in progress"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

var ErrNotFound = errors.New("job not found")

// Job is one mapping request. Data holds the mapping CSV once the job succeeded.
type Job struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Report    string    `json:"report"`
	Score     int64     `json:"score"`
	Seed      uint64    `json:"seed,string"`
	CreatedAt time.Time `json:"created_at"`
	Data      string    `json:"-"`
}

type Repository struct {
	db *sql.DB
}

// Open connects to the SQLite database and creates the job table if needed.
func Open(dataSourceName string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	// One writer at a time; concurrent jobs otherwise hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// seed is TEXT: sqlite integers are signed 64-bit.
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS mapping (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		report TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL DEFAULT 0,
		seed TEXT NOT NULL DEFAULT '0',
		created_at INTEGER NOT NULL,
		data TEXT NOT NULL DEFAULT ''
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create mapping table: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Create inserts a new job in progress.
func (r *Repository) Create(ctx context.Context, id string, seed uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO mapping (id, status, seed, created_at) VALUES (?, ?, ?, ?)",
		id, StatusInProgress, strconv.FormatUint(seed, 10), time.Now().Unix())
	return err
}

// Complete stores the result of a finished job.
func (r *Repository) Complete(ctx context.Context, id, data string, score int64, report string) error {
	return r.update(ctx, id, StatusSuccess, data, score, report)
}

// Fail marks a job as failed with the given report.
func (r *Repository) Fail(ctx context.Context, id, report string) error {
	return r.update(ctx, id, StatusFailed, "", 0, report)
}

func (r *Repository) update(ctx context.Context, id, status, data string, score int64, report string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE mapping SET status = ?, data = ?, score = ?, report = ? WHERE id = ?",
		status, data, score, report, id)
	if err != nil {
		return err
	}
	return expectRow(res, id)
}

// Get returns a job including its data.
func (r *Repository) Get(ctx context.Context, id string) (*Job, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, status, report, score, seed, created_at, data FROM mapping WHERE id = ?", id)
	job, err := scanJob(row.Scan, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return job, err
}

// List returns every job without its data, newest first.
func (r *Repository) List(ctx context.Context) ([]*Job, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, status, report, score, seed, created_at FROM mapping ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*Job{}
	for rows.Next() {
		job, err := scanJob(rows.Scan, false)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Delete removes a job.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM mapping WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectRow(res, id)
}

func scanJob(scan func(dest ...any) error, withData bool) (*Job, error) {
	var (
		job     Job
		seed    string
		created int64
	)
	dest := []any{&job.ID, &job.Status, &job.Report, &job.Score, &seed, &created}
	if withData {
		dest = append(dest, &job.Data)
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	s, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("job %s: bad seed %q: %w", job.ID, seed, err)
	}
	job.Seed = s
	job.CreatedAt = time.Unix(created, 0)
	return &job, nil
}

func expectRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
