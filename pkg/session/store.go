package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store persists finished sessions and their score series to SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the session database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session: open db: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("session: migrate db: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			sample_count INTEGER NOT NULL,
			average_focus REAL NOT NULL,
			median_focus REAL NOT NULL,
			stddev_focus REAL NOT NULL,
			min_focus REAL NOT NULL,
			min_focus_at TEXT NOT NULL,
			max_focus REAL NOT NULL,
			max_focus_at TEXT NOT NULL,
			first_score REAL NOT NULL,
			last_score REAL NOT NULL,
			up_changes INTEGER NOT NULL,
			down_changes INTEGER NOT NULL,
			positive_delta_sum REAL NOT NULL,
			negative_delta_sum REAL NOT NULL,
			largest_gain REAL NOT NULL,
			largest_drop REAL NOT NULL,
			recoveries INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_scores (
			session_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			score REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_scores_session ON session_scores(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSession stores a finished session's summary and score series in
// one transaction.
func (s *Store) SaveSession(ctx context.Context, rec *Recorder, st Stats, endedAt time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("session: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, ended_at, duration_ms, sample_count,
			average_focus, median_focus, stddev_focus,
			min_focus, min_focus_at, max_focus, max_focus_at,
			first_score, last_score, up_changes, down_changes,
			positive_delta_sum, negative_delta_sum, largest_gain, largest_drop, recoveries)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID().String(),
		rec.StartedAt().UTC().Format(time.RFC3339Nano),
		endedAt.UTC().Format(time.RFC3339Nano),
		st.Duration.Milliseconds(),
		st.SampleCount,
		st.AverageFocus,
		st.MedianFocus,
		st.StdDevFocus,
		st.MinFocus,
		st.MinFocusAt.UTC().Format(time.RFC3339Nano),
		st.MaxFocus,
		st.MaxFocusAt.UTC().Format(time.RFC3339Nano),
		st.FirstScore,
		st.LastScore,
		st.UpChanges,
		st.DownChanges,
		st.PositiveDeltaSum,
		st.NegativeDeltaSum,
		st.LargestGain,
		st.LargestDrop,
		st.Recoveries,
	)
	if err != nil {
		return fmt.Errorf("session: insert session: %w", err)
	}

	samples := rec.Samples()
	if len(samples) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO session_scores (session_id, ts, score) VALUES (?, ?, ?)`)
		if perr != nil {
			err = fmt.Errorf("session: prepare scores insert: %w", perr)
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, sample := range samples {
			if _, err = stmt.ExecContext(ctx,
				rec.ID().String(),
				sample.Timestamp.UTC().Format(time.RFC3339Nano),
				sample.Score,
			); err != nil {
				return fmt.Errorf("session: insert score: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("session: commit: %w", err)
	}
	return nil
}

// Summary is one stored session row.
type Summary struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Stats     Stats
}

// ListSessions returns stored sessions ordered oldest first,
// optionally filtered to those ending at or after since.
func (s *Store) ListSessions(ctx context.Context, since *time.Time) ([]Summary, error) {
	query := `SELECT id, started_at, ended_at, duration_ms, sample_count,
			average_focus, median_focus, stddev_focus,
			min_focus, min_focus_at, max_focus, max_focus_at,
			first_score, last_score, up_changes, down_changes,
			positive_delta_sum, negative_delta_sum, largest_gain, largest_drop, recoveries
		FROM sessions`
	args := []any{}
	if since != nil {
		query += ` WHERE ended_at >= ?`
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	query += ` ORDER BY ended_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("session: list sessions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []Summary
	for rows.Next() {
		var (
			sum        Summary
			startedAt  string
			endedAt    string
			durationMs int64
			minAt      string
			maxAt      string
		)
		if err := rows.Scan(
			&sum.ID, &startedAt, &endedAt, &durationMs, &sum.Stats.SampleCount,
			&sum.Stats.AverageFocus, &sum.Stats.MedianFocus, &sum.Stats.StdDevFocus,
			&sum.Stats.MinFocus, &minAt, &sum.Stats.MaxFocus, &maxAt,
			&sum.Stats.FirstScore, &sum.Stats.LastScore,
			&sum.Stats.UpChanges, &sum.Stats.DownChanges,
			&sum.Stats.PositiveDeltaSum, &sum.Stats.NegativeDeltaSum,
			&sum.Stats.LargestGain, &sum.Stats.LargestDrop, &sum.Stats.Recoveries,
		); err != nil {
			return nil, fmt.Errorf("session: scan session: %w", err)
		}
		if sum.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("session: parse started_at: %w", err)
		}
		if sum.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, fmt.Errorf("session: parse ended_at: %w", err)
		}
		if sum.Stats.MinFocusAt, err = time.Parse(time.RFC3339Nano, minAt); err != nil {
			return nil, fmt.Errorf("session: parse min_focus_at: %w", err)
		}
		if sum.Stats.MaxFocusAt, err = time.Parse(time.RFC3339Nano, maxAt); err != nil {
			return nil, fmt.Errorf("session: parse max_focus_at: %w", err)
		}
		sum.Stats.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session: iterate sessions: %w", err)
	}
	return out, nil
}

// Scores returns the stored score series of one session in recorded
// order.
func (s *Store) Scores(ctx context.Context, sessionID string) ([]Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, score FROM session_scores WHERE session_id = ? ORDER BY ts ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("session: query scores: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []Sample
	for rows.Next() {
		var (
			ts     string
			sample Sample
		)
		if err := rows.Scan(&ts, &sample.Score); err != nil {
			return nil, fmt.Errorf("session: scan score: %w", err)
		}
		if sample.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("session: parse score ts: %w", err)
		}
		out = append(out, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session: iterate scores: %w", err)
	}
	return out, nil
}
