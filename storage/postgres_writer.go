package storage

import (
	"context"
	"fmt"
	"time"

	"olx-scraper/config"
	"olx-scraper/models"
	"olx-scraper/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS ads (
	id BIGSERIAL PRIMARY KEY,
	run_id UUID NOT NULL,
	source_url TEXT NOT NULL,
	input_index INT NOT NULL,
	olx_id TEXT,
	name TEXT,
	price TEXT,
	link TEXT NOT NULL,
	page INT NOT NULL,
	position INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (run_id, input_index, page, position)
);

CREATE INDEX IF NOT EXISTS idx_ads_olx_id ON ads(olx_id);
CREATE INDEX IF NOT EXISTS idx_ads_run_id ON ads(run_id);
`

const postgresInsert = `
INSERT INTO ads (run_id, source_url, input_index, olx_id, name, price, link, page, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (run_id, input_index, page, position) DO NOTHING;
`

// PostgresWriter buffers ads and inserts them in batches of BatchSize.
type PostgresWriter struct {
	pool      *pgxpool.Pool
	runID     uuid.UUID
	batchSize int
	pending   []models.ScrapedAd
	saved     int
}

func NewPostgresWriter(ctx context.Context, cfg *config.Config, runID uuid.UUID) (*PostgresWriter, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	return &PostgresWriter{
		pool:      pool,
		runID:     runID,
		batchSize: batchSize,
		pending:   make([]models.ScrapedAd, 0, batchSize),
	}, nil
}

func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if _, err := w.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (w *PostgresWriter) Write(ctx context.Context, ad models.ScrapedAd) error {
	w.pending = append(w.pending, ad)
	if len(w.pending) < w.batchSize {
		return nil
	}
	return w.Flush(ctx)
}

// Flush inserts the buffered ads in a single batch.
func (w *PostgresWriter) Flush(ctx context.Context) error {
	if len(w.pending) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	batch := &pgx.Batch{}
	for _, ad := range w.pending {
		batch.Queue(
			postgresInsert,
			w.runID,
			ad.SourceURL,
			ad.InputIndex,
			nullable(ad.Ad.ID),
			nullable(ad.Ad.Name),
			nullable(ad.Ad.Price),
			ad.Ad.Link,
			ad.Page,
			ad.Position,
		)
	}

	results := w.pool.SendBatch(ctx, batch)
	for i := range w.pending {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
		w.saved += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("batch close failed: %w", err)
	}

	w.pending = w.pending[:0]
	return nil
}

// Close flushes what is left and releases the pool.
func (w *PostgresWriter) Close() error {
	err := w.Flush(context.Background())
	w.pool.Close()
	if err != nil {
		return err
	}
	utils.Success("Saved %d ads to PostgreSQL (run %s)", w.saved, w.runID)
	return nil
}

// nullable stores absent ad fields as NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
