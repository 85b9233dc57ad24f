package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"olx-scraper/models"
	"olx-scraper/utils"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	source_url TEXT NOT NULL,
	input_index INTEGER NOT NULL,
	olx_id TEXT,
	name TEXT,
	price TEXT,
	link TEXT NOT NULL,
	page INTEGER NOT NULL,
	position INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (run_id, input_index, page, position)
);
CREATE INDEX IF NOT EXISTS idx_ads_olx_id ON ads(olx_id);
`

const sqliteInsert = `
INSERT OR IGNORE INTO ads (run_id, source_url, input_index, olx_id, name, price, link, page, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLiteWriter keeps a local history of runs in a single database file.
type SQLiteWriter struct {
	db    *sql.DB
	stmt  *sql.Stmt
	path  string
	runID uuid.UUID
	saved int
}

func NewSQLiteWriter(ctx context.Context, path string, runID uuid.UUID) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create database dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// The driver serializes writes; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	stmt, err := db.PrepareContext(ctx, sqliteInsert)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}

	return &SQLiteWriter{db: db, stmt: stmt, path: path, runID: runID}, nil
}

func (w *SQLiteWriter) Write(ctx context.Context, ad models.ScrapedAd) error {
	res, err := w.stmt.ExecContext(ctx,
		w.runID.String(),
		ad.SourceURL,
		ad.InputIndex,
		nullable(ad.Ad.ID),
		nullable(ad.Ad.Name),
		nullable(ad.Ad.Price),
		ad.Ad.Link,
		ad.Page,
		ad.Position,
	)
	if err != nil {
		return fmt.Errorf("sqlite insert failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite insert failed: %w", err)
	}
	w.saved += int(n)
	return nil
}

// Saved returns the number of rows actually inserted by this writer.
func (w *SQLiteWriter) Saved() int {
	return w.saved
}

// Count returns the number of ads stored for this writer's run.
func (w *SQLiteWriter) Count(ctx context.Context) (int, error) {
	var n int
	err := w.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ads WHERE run_id = ?`, w.runID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite count failed: %w", err)
	}
	return n, nil
}

func (w *SQLiteWriter) Close() error {
	stmtErr := w.stmt.Close()
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close sqlite: %w", err)
	}
	if stmtErr != nil {
		return stmtErr
	}
	utils.Success("Saved %d ads → %s", w.saved, w.path)
	return nil
}
