// Package history persists completed assessments in SQLite so past results
// can be listed and replayed without re-probing the target.
package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/model"
	_ "modernc.org/sqlite" // SQLite driver
)

// ErrNotFound is returned by Get when no assessment has the requested id.
var ErrNotFound = errors.New("assessment not found")

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

//go:embed schema.sql
var schemaFS embed.FS

// Store is a SQLite-backed assessment history.
type Store struct {
	db     *sql.DB
	logger interfaces.Logger
}

// NewStore opens (or creates) the database at path and applies the schema.
func NewStore(path string, logger interfaces.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("history: database path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if logger != nil {
		logger.Info("assessment history opened", interfaces.Field{Key: "path", Value: path})
	}

	return &Store{db: db, logger: logger}, nil
}

// applySchema sets the connection pragmas and creates the tables.
func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",        // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL",      // Balance between safety and performance
		"PRAGMA foreign_keys=ON",         // Enable foreign key constraints
		"PRAGMA busy_timeout=5000",       // Wait up to 5 seconds on locked database
		"PRAGMA cache_size=-64000",       // 64MB cache (negative means KB)
		"PRAGMA temp_store=MEMORY",       // Store temp tables in memory
		"PRAGMA mmap_size=268435456",     // 256MB memory-mapped I/O
		"PRAGMA auto_vacuum=INCREMENTAL", // Incremental auto-vacuum
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}

// Save inserts one completed assessment. The assessment's own CreatedAt is
// used when set so replayed saves keep their original order.
func (s *Store) Save(ctx context.Context, a *model.TrustAssessment) error {
	if a == nil || a.ID == "" {
		return errors.New("history: assessment has no id")
	}

	document, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	createdAt := time.Now().Unix()
	if !a.CreatedAt.IsZero() {
		createdAt = a.CreatedAt.Unix()
	}

	hostname := ""
	if a.TechnicalDetails != nil {
		hostname = a.TechnicalDetails.Hostname
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, url, hostname, result, trust_score, document, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.URL, hostname, string(a.Result), a.TrustScore, string(document), createdAt)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("assessment saved",
			interfaces.Field{Key: "id", Value: a.ID},
			interfaces.Field{Key: "url", Value: a.URL},
			interfaces.Field{Key: "result", Value: string(a.Result)})
	}

	return nil
}

// Get returns the stored assessment with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*model.TrustAssessment, error) {
	var document string
	err := s.db.QueryRowContext(ctx, `
		SELECT document FROM assessments WHERE id = ?
	`, id).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}

	var a model.TrustAssessment
	if err := json.Unmarshal([]byte(document), &a); err != nil {
		return nil, fmt.Errorf("unmarshal assessment %s: %w", id, err)
	}
	return &a, nil
}

// List returns summaries of the most recent assessments, newest first.
// A non-positive limit selects the default page size.
func (s *Store) List(ctx context.Context, limit int) ([]*model.AssessmentSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, result, trust_score, created_at
		FROM assessments
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	summaries := make([]*model.AssessmentSummary, 0, limit)
	for rows.Next() {
		var (
			summary   model.AssessmentSummary
			result    string
			createdAt int64
		)
		if err := rows.Scan(&summary.ID, &summary.URL, &result, &summary.TrustScore, &createdAt); err != nil {
			return nil, fmt.Errorf("scan assessment row: %w", err)
		}
		summary.Result = model.Verdict(result)
		summary.CreatedAt = time.Unix(createdAt, 0).UTC()
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessment rows: %w", err)
	}

	return summaries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
