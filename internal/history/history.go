// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a bounded log of past search runs. It is a
// boundary-layer capability: the serve handler and the CLI record runs
// after assembly, and the pipeline itself never touches it. Results are
// not stored, only run summaries.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/signal-scout/pkg/types"
)

// Entry summarizes one past search run.
type Entry struct {
	ID          int64              `json:"id" yaml:"id"`
	Query       string             `json:"query" yaml:"query"`
	Platforms   []types.PlatformID `json:"platforms" yaml:"platforms"`
	ResultCount int                `json:"resultCount" yaml:"result_count"`
	TopScore    float64            `json:"topScore" yaml:"top_score"`
	CreatedAt   time.Time          `json:"createdAt" yaml:"created_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// NewStore opens or creates the history database at cfg.DBPath,
// creating the schema and parent directory if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 50
	}

	s := &Store{db: db, maxEntries: maxEntries}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		platforms TEXT NOT NULL,
		result_count INTEGER NOT NULL,
		top_score REAL NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record saves a run summary and prunes entries beyond the configured
// maximum, oldest first.
func (s *Store) Record(ctx context.Context, resp types.SearchResponse) error {
	names := make([]string, len(resp.Meta.Platforms))
	for i, p := range resp.Meta.Platforms {
		names[i] = string(p)
	}

	var topScore float64
	if len(resp.Results) > 0 {
		topScore = resp.Results[0].Score
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (query, platforms, result_count, top_score, created_at) VALUES (?, ?, ?, ?, ?)`,
		resp.Meta.Query,
		strings.Join(names, ","),
		len(resp.Results),
		topScore,
		resp.Meta.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A non-positive limit
// uses the store maximum.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.maxEntries {
		limit = s.maxEntries
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, platforms, result_count, top_score, created_at FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			platforms string
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Query, &platforms, &e.ResultCount, &e.TopScore, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		for _, name := range strings.Split(platforms, ",") {
			if name == "" {
				continue
			}
			e.Platforms = append(e.Platforms, types.PlatformID(name))
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all recorded runs.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	return nil
}
