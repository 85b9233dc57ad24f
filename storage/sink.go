package storage

import (
	"context"
	"errors"

	"olx-scraper/models"
)

// Sink persists scraped ads one at a time, in the order they are produced.
type Sink interface {
	Write(ctx context.Context, ad models.ScrapedAd) error
	Close() error
}

// MultiSink writes every ad to all of its sinks.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, ad models.ScrapedAd) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, ad); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink, even when some of them fail.
func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ Sink = (*CSVWriter)(nil)
	_ Sink = (*PostgresWriter)(nil)
	_ Sink = (*SQLiteWriter)(nil)
	_ Sink = MultiSink(nil)
)
