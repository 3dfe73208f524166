// Package store is a SQLite catalog of imported models.
//
// Each import keeps a summary row (counts a listing can show without
// re-parsing) together with the original serialized document, so a cataloged
// model can always be read back in full.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fluxbio/sbmlio/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on models.model_id
const currentSchemaVersion = 1

// Store provides durable storage for the model catalog.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Record is one catalog row.
type Record struct {
	ID           string
	ModelID      string
	Name         string
	Species      int
	Reactions    int
	GeneProducts int
	Objectives   int
	ImportedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically; idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save catalogs a model together with its serialized document and returns
// the new record id.
func (s *Store) Save(ctx context.Context, m *model.Model, document []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO models
			(id, model_id, name, species, reactions, gene_products, objectives, document, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, m.ID, m.Name,
		len(m.Species), len(m.Reactions), len(m.GeneProducts), len(m.Objectives),
		document, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("save model %q: %w", m.ID, err)
	}
	return id, nil
}

// Get returns one record and its stored document.
func (s *Store) Get(ctx context.Context, id string) (*Record, []byte, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, model_id, name, species, reactions, gene_products, objectives, document, imported_at
		FROM models WHERE id = ?`, id)

	var rec Record
	var document []byte
	var imported string
	err := row.Scan(&rec.ID, &rec.ModelID, &rec.Name,
		&rec.Species, &rec.Reactions, &rec.GeneProducts, &rec.Objectives,
		&document, &imported)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("no cataloged model with id %q", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get model %q: %w", id, err)
	}
	rec.ImportedAt, _ = time.Parse(time.RFC3339, imported)
	return &rec, document, nil
}

// List returns every record, newest first, without documents.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model_id, name, species, reactions, gene_products, objectives, imported_at
		FROM models ORDER BY imported_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var imported string
		if err := rows.Scan(&rec.ID, &rec.ModelID, &rec.Name,
			&rec.Species, &rec.Reactions, &rec.GeneProducts, &rec.Objectives,
			&imported); err != nil {
			return nil, fmt.Errorf("scan model row: %w", err)
		}
		rec.ImportedAt, _ = time.Parse(time.RFC3339, imported)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	// The model_id index ships in schema.sql; existing pre-v1 databases
	// pick it up through CREATE INDEX IF NOT EXISTS on the next open.
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
