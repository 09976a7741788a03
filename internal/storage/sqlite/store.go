// Package sqlite provides a SQLite-backed run journal implementation.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/conway.space/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/conway.space/internal/storage"
	_ "modernc.org/sqlite"

	"github.com/louisbranch/conway.space/internal/storage/sqlite/migrations"
)

// Store persists the run journal in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendStepSample records one generation sample.
func (s *Store) AppendStepSample(ctx context.Context, sample storage.StepSample) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	runID := strings.TrimSpace(sample.RunID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if sample.Generation <= 0 {
		return fmt.Errorf("generation must be greater than zero")
	}
	recordedAt := sample.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO step_samples (
		   run_id,
		   generation,
		   population,
		   elapsed_ns,
		   recorded_at
		 ) VALUES (?, ?, ?, ?, ?)`,
		runID,
		sample.Generation,
		sample.Population,
		sample.Elapsed.Nanoseconds(),
		toMillis(recordedAt),
	)
	if err != nil {
		return fmt.Errorf("append step sample: %w", err)
	}
	return nil
}

// StepSamples returns every sample for runID in generation order.
func (s *Store) StepSamples(ctx context.Context, runID string) ([]storage.StepSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("run id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT run_id, generation, population, elapsed_ns, recorded_at
		   FROM step_samples
		  WHERE run_id = ?
		  ORDER BY generation ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list step samples: %w", err)
	}
	defer rows.Close()

	var samples []storage.StepSample
	for rows.Next() {
		var sample storage.StepSample
		var elapsedNS int64
		var recordedAt int64
		if err := rows.Scan(
			&sample.RunID,
			&sample.Generation,
			&sample.Population,
			&elapsedNS,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("list step samples: %w", err)
		}
		sample.Elapsed = time.Duration(elapsedNS)
		sample.Timestamp = fromMillis(recordedAt)
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list step samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, storage.ErrNotFound
	}

	return samples, nil
}

var _ storage.JournalStore = (*Store)(nil)
