package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/tsawler/citectx/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS entities (
	id                 TEXT PRIMARY KEY,
	kind               TEXT NOT NULL,
	paper_id           TEXT NOT NULL,
	source             TEXT NOT NULL DEFAULT '',
	position           INTEGER NOT NULL,
	caption            TEXT NOT NULL DEFAULT '',
	body               TEXT NOT NULL DEFAULT '',
	url                TEXT NOT NULL DEFAULT '',
	mentions           TEXT NOT NULL DEFAULT '',
	context_paragraphs TEXT NOT NULL DEFAULT '',
	terms              TEXT NOT NULL DEFAULT '',
	indexed_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entities_paper ON entities(paper_id);
CREATE VIRTUAL TABLE IF NOT EXISTS entities_fts USING fts5(
	id UNINDEXED,
	caption,
	body,
	mentions,
	context_paragraphs
);
`

const upsertEntity = `
INSERT INTO entities (id, kind, paper_id, source, position, caption, body, url,
	mentions, context_paragraphs, terms, indexed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	kind = excluded.kind,
	paper_id = excluded.paper_id,
	source = excluded.source,
	position = excluded.position,
	caption = excluded.caption,
	body = excluded.body,
	url = excluded.url,
	mentions = excluded.mentions,
	context_paragraphs = excluded.context_paragraphs,
	terms = excluded.terms,
	indexed_at = excluded.indexed_at
`

// SQLite stores records in an entities table with an FTS5 index over the
// free-text fields. Writing a record with an existing id replaces it, so
// re-indexing a document is idempotent.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates the database at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	connStr := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", path, 5000)
	if path == ":memory:" {
		connStr = ":memory:"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// A single connection keeps :memory: databases coherent and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// Write upserts the records and refreshes their full-text rows in one
// transaction.
func (s *SQLite) Write(ctx context.Context, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	indexedAt := s.now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if _, err := tx.ExecContext(ctx, upsertEntity,
			r.ID, r.Kind, r.PaperID, r.Source, r.Position, r.Caption, r.Body, r.URL,
			r.Mentions, r.ContextParagraphs, strings.Join(r.Terms, " "), indexedAt,
		); err != nil {
			return fmt.Errorf("storing %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM entities_fts WHERE id = ?`, r.ID); err != nil {
			return fmt.Errorf("clearing index for %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entities_fts (id, caption, body, mentions, context_paragraphs) VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.Caption, r.Body, r.Mentions, r.ContextParagraphs,
		); err != nil {
			return fmt.Errorf("indexing %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Hit is one full-text search result.
type Hit struct {
	ID       string
	Kind     string
	PaperID  string
	Caption  string
	Position int
}

// Search runs an FTS5 MATCH query and returns up to limit hits, best first.
func (s *SQLite) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.kind, e.paper_id, e.caption, e.position
		FROM entities_fts
		JOIN entities e ON e.id = entities_fts.id
		WHERE entities_fts MATCH ?
		ORDER BY entities_fts.rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer func() { _ = rows.Close() }()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.Kind, &h.PaperID, &h.Caption, &h.Position); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Count returns the number of stored entities, optionally restricted to
// one document.
func (s *SQLite) Count(ctx context.Context, paperID string) (int, error) {
	query, args := `SELECT COUNT(*) FROM entities`, []any{}
	if paperID != "" {
		query += ` WHERE paper_id = ?`
		args = append(args, paperID)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entities: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
