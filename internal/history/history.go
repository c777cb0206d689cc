// Package history persists routing decisions to SQLite so past selections
// can be inspected after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/annai/internal/router"
)

// Entry is one recorded routing decision.
type Entry struct {
	ID            string    `json:"id"`
	Query         string    `json:"query"`
	SelectedModel string    `json:"selected_model"`
	Similarity    float64   `json:"similarity_score"`
	Intent        string    `json:"intent"`
	Complexity    string    `json:"complexity"`
	Confidence    string    `json:"confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// Log stores routing decisions in a SQLite database.
type Log struct {
	db *sql.DB
}

// Open opens or creates the history database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func Open(dbPath string) (*Log, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Log{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		selected_model TEXT NOT NULL,
		similarity REAL NOT NULL,
		intent TEXT NOT NULL,
		complexity TEXT NOT NULL,
		confidence TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_decisions_created_at ON decisions(created_at);
	CREATE INDEX IF NOT EXISTS idx_decisions_model ON decisions(selected_model);
	`
	_, err := db.Exec(schema)
	return err
}

// Record stores a routing decision and returns the entry as persisted.
func (l *Log) Record(ctx context.Context, d *router.Decision) (*Entry, error) {
	entry := &Entry{
		ID:            uuid.New().String(),
		Query:         d.Query,
		SelectedModel: d.SelectedModel,
		Similarity:    d.Similarity,
		Intent:        string(d.Intent),
		Complexity:    string(d.Complexity),
		Confidence:    string(d.Confidence),
		CreatedAt:     time.Now(),
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO decisions (id, query, selected_model, similarity, intent, complexity, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Query, entry.SelectedModel, entry.Similarity,
		entry.Intent, entry.Complexity, entry.Confidence, entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}
	return entry, nil
}

// Recent returns the most recent entries, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, query, selected_model, similarity, intent, complexity, confidence, created_at
		 FROM decisions ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Query, &e.SelectedModel, &e.Similarity,
			&e.Intent, &e.Complexity, &e.Confidence, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded decisions.
func (l *Log) Count(ctx context.Context) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}
