// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest persists extraction results in a SQLite database and
// makes the extracted text searchable.
package manifest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/akarpov/pdftext/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "manifest.db"
)

// Store manages the extraction manifest SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the manifest database at dir/index/manifest.db,
// creating the schema if it does not exist.
func NewStore(cfg types.ManifestConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source_path TEXT,
			pages INTEGER,
			failed_pages INTEGER,
			chars INTEGER,
			parts INTEGER,
			status TEXT,
			error TEXT,
			processed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS parts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id),
			part_num INTEGER NOT NULL,
			file_name TEXT,
			chars INTEGER,
			content TEXT NOT NULL,
			UNIQUE(document_id, part_num)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_parts_document_id ON parts(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='parts_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE parts_fts USING fts5(content, content=parts, content_rowid=rowid)`,
			`CREATE TRIGGER parts_ai AFTER INSERT ON parts BEGIN
				INSERT INTO parts_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER parts_ad AFTER DELETE ON parts BEGIN
				INSERT INTO parts_fts(parts_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER parts_au AFTER UPDATE ON parts BEGIN
				INSERT INTO parts_fts(parts_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO parts_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record upserts one document record and its part contents. Reprocessing a
// document replaces its previous parts.
func (s *Store) Record(ctx context.Context, rec types.DocumentRecord, parts []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM parts WHERE document_id = ?`, rec.ID); err != nil {
		return fmt.Errorf("deleting old parts: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source_path, pages, failed_pages, chars, parts, status, error, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source_path=excluded.source_path, pages=excluded.pages,
			failed_pages=excluded.failed_pages, chars=excluded.chars,
			parts=excluded.parts, status=excluded.status,
			error=excluded.error, processed_at=excluded.processed_at`,
		rec.ID, rec.SourcePath, rec.Pages, rec.FailedPages, rec.Chars,
		rec.Parts, string(rec.Status), rec.Error,
		rec.ProcessedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO parts (document_id, part_num, file_name, chars, content)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, content := range parts {
		fileName := ""
		if i < len(rec.OutputFiles) {
			fileName = rec.OutputFiles[i]
		}
		_, err := stmt.ExecContext(ctx, rec.ID, i+1, fileName, utf8.RuneCountInString(content), content)
		if err != nil {
			return fmt.Errorf("inserting part %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// List returns all document records, most recently processed first.
func (s *Store) List(ctx context.Context) ([]types.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, pages, failed_pages, chars, parts, status, error, processed_at
		 FROM documents ORDER BY processed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var records []types.DocumentRecord
	for rows.Next() {
		var (
			rec         types.DocumentRecord
			status      string
			errMsg      sql.NullString
			processedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.SourcePath, &rec.Pages, &rec.FailedPages,
			&rec.Chars, &rec.Parts, &status, &errMsg, &processedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		rec.Status = types.ExtractStatus(status)
		rec.Error = errMsg.String
		if ts, err := time.Parse(time.RFC3339Nano, processedAt); err == nil {
			rec.ProcessedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SearchResult is one full-text match in the extracted text.
type SearchResult struct {
	// DocumentID is the sanitized stem of the matching document.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// PartNum is the 1-based part the match occurred in.
	PartNum int `json:"part_num" yaml:"part_num"`

	// FileName is the artifact the matching part was written to.
	FileName string `json:"file_name" yaml:"file_name"`

	// Snippet is the matching text fragment with [..] highlighting.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Search runs an FTS5 full-text query over the stored part contents,
// ranked by relevance. A limit of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("search query required")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.document_id, p.part_num, p.file_name,
			snippet(parts_fts, 0, '[', ']', '…', 12)
		 FROM parts_fts
		 JOIN parts p ON p.rowid = parts_fts.rowid
		 WHERE parts_fts MATCH ?
		 ORDER BY parts_fts.rank
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying manifest: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			r        SearchResult
			fileName sql.NullString
		)
		if err := rows.Scan(&r.DocumentID, &r.PartNum, &fileName, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.FileName = fileName.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// ExportYAML writes all document records to dir/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	records, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.dir, indexDir, "export.yaml")
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes all document records to dir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	records, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.dir, indexDir, "export.json")
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
