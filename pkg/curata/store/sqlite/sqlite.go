package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/curata-io/curata/pkg/curata/chunk"
	"github.com/curata-io/curata/pkg/curata/internalerr"
	"github.com/curata-io/curata/pkg/curata/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS records (
	id TEXT NOT NULL,
	name TEXT PRIMARY KEY,
	summary TEXT,
	language TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS record_tags (
	name TEXT NOT NULL,
	tag TEXT NOT NULL,
	UNIQUE(name, tag),
	FOREIGN KEY(name) REFERENCES records(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS record_chunks (
	name TEXT NOT NULL,
	idx INTEGER NOT NULL,
	body TEXT NOT NULL,
	word_count INTEGER NOT NULL,
	PRIMARY KEY(name, idx),
	FOREIGN KEY(name) REFERENCES records(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_record_tags_tag ON record_tags(tag);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRecord inserts or replaces a record, keyed by package name.
// Tags and chunks are replaced wholesale so stale rows never linger.
func (s *sqliteStore) UpsertRecord(ctx context.Context, r store.Record) error {
	if r.Name == "" {
		return fmt.Errorf("%w: record name is required", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO records (id, name, summary, language, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	id=excluded.id,
	summary=excluded.summary,
	language=excluded.language,
	created_at=excluded.created_at;
`

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := tx.ExecContext(ctx, stmt,
		r.ID, r.Name, r.Summary, r.Language, createdAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM record_tags WHERE name = ?", r.Name); err != nil {
		return err
	}
	for _, tag := range r.Tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO record_tags (name, tag) VALUES (?, ?)", r.Name, tag); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM record_chunks WHERE name = ?", r.Name); err != nil {
		return err
	}
	for _, ch := range r.Chunks {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO record_chunks (name, idx, body, word_count) VALUES (?, ?, ?, ?)",
			r.Name, ch.Index, ch.Body, ch.WordCount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRecord fetches a record by package name
func (s *sqliteStore) GetRecord(ctx context.Context, name string) (store.Record, error) {
	var r store.Record
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, summary, language, created_at FROM records WHERE name = ?", name).
		Scan(&r.ID, &r.Name, &r.Summary, &r.Language, &createdAt)
	if err == sql.ErrNoRows {
		return store.Record{}, fmt.Errorf("%w: record %q", internalerr.ErrNotFound, name)
	}
	if err != nil {
		return store.Record{}, err
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}

	if r.Tags, err = s.recordTags(ctx, name); err != nil {
		return store.Record{}, err
	}
	if r.Chunks, err = s.recordChunks(ctx, name); err != nil {
		return store.Record{}, err
	}

	return r, nil
}

// GetRecordsByTag returns records carrying the given tag, ordered by name
func (s *sqliteStore) GetRecordsByTag(ctx context.Context, tag string, limit int) ([]store.Record, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM record_tags WHERE tag = ? ORDER BY name LIMIT ?", tag, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(names))
	for _, name := range names {
		r, err := s.GetRecord(ctx, name)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// ListNames returns all stored package names, sorted
func (s *sqliteStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM records ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountRecords returns the number of stored records
func (s *sqliteStore) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}

func (s *sqliteStore) recordTags(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM record_tags WHERE name = ? ORDER BY tag", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (s *sqliteStore) recordChunks(ctx context.Context, name string) ([]chunk.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT idx, body, word_count FROM record_chunks WHERE name = ? ORDER BY idx", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []chunk.Chunk
	for rows.Next() {
		var ch chunk.Chunk
		if err := rows.Scan(&ch.Index, &ch.Body, &ch.WordCount); err != nil {
			return nil, err
		}
		chunks = append(chunks, ch)
	}
	return chunks, rows.Err()
}
