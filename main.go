package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"olx-scraper/config"
	"olx-scraper/models"
	"olx-scraper/scraper/olx"
	"olx-scraper/scraper/render"
	"olx-scraper/services"
	"olx-scraper/storage"
	"olx-scraper/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Collect ads from OLX search result pages into a CSV file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				utils.Error("Invalid configuration: %v", err)
				return err
			}
			utils.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.NoColor)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cfg, cmd.OutOrStdout()); err != nil {
				utils.Error("%v", err)
				return err
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringP("config", "c", "", "YAML config file")
	fs.StringP("urls", "u", "", "file with one search URL per line (default url.txt)")
	fs.StringP("csv", "o", "", "output CSV path (default result.csv)")
	fs.String("renderer", "", "page renderer: chromedp, rod or http")
	fs.Int("max-pages", 0, "max result pages per URL, 0 for no limit")
	fs.String("item-policy", "", "malformed ad handling: skip or abort")
	fs.Bool("continue-on-error", true, "keep going after a URL fails")
	fs.Bool("dedupe", false, "drop ads whose link was already written")
	fs.Bool("postgres", false, "also write ads to PostgreSQL")
	fs.Bool("sqlite", false, "also write ads to the local SQLite history")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.Bool("no-color", false, "disable coloured log output")

	return cmd
}

// loadConfig layers the flags the user set over the file and environment config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	fs := cmd.Flags()

	configPath, _ := fs.GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	for name, dst := range map[string]*string{
		"urls":        &cfg.URLFile,
		"csv":         &cfg.CSVPath,
		"renderer":    &cfg.Renderer,
		"item-policy": &cfg.ItemPolicy,
		"log-level":   &cfg.LogLevel,
	} {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	for name, dst := range map[string]*bool{
		"continue-on-error": &cfg.ContinueOnError,
		"dedupe":            &cfg.Dedupe,
		"postgres":          &cfg.PostgresEnabled,
		"sqlite":            &cfg.SQLiteEnabled,
		"no-color":          &cfg.NoColor,
	} {
		if fs.Changed(name) {
			*dst, _ = fs.GetBool(name)
		}
	}
	if fs.Changed("max-pages") {
		cfg.MaxPages, _ = fs.GetInt("max-pages")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) (err error) {
	started := time.Now()
	runID := uuid.New()
	utils.Info("Scraper starting | run=%s renderer=%s max_pages=%d delay=%v+%v",
		runID, cfg.Renderer, cfg.MaxPages, cfg.PageDelay, cfg.PageJitter)

	urls, err := storage.ReadURLs(cfg.URLFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		utils.Warn("No URLs in %s", cfg.URLFile)
	}

	policy, err := olx.ParseItemPolicy(cfg.ItemPolicy)
	if err != nil {
		return err
	}
	factory, err := render.FromConfig(cfg)
	if err != nil {
		return err
	}

	sink, err := openSinks(ctx, cfg, runID)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to save results: %w", closeErr))
		}
	}()

	crawler := olx.NewCrawler(olx.Options{
		Factory:         factory,
		ItemPolicy:      policy,
		ContinueOnError: cfg.ContinueOnError,
		MaxPages:        cfg.MaxPages,
	})

	insights := services.NewInsights()
	var deduper *services.Deduper
	if cfg.Dedupe {
		deduper = services.NewDeduper()
	}

	var crawlErr error
	for ad, err := range crawler.Run(ctx, slices.Values(urls)) {
		var urlErr *olx.URLError
		if errors.As(err, &urlErr) {
			utils.Error("%v", err)
			crawlErr = err
			continue
		}
		if err != nil {
			return err
		}

		if deduper != nil && !deduper.Keep(ad) {
			continue
		}

		fmt.Fprintf(out, "%s -- %s -- %s\n", ad.Ad.ID, ad.Ad.Name, ad.Ad.Price)
		insights.Add(ad)
		if err := sink.Write(ctx, ad); err != nil {
			return err
		}
	}

	stats := crawler.Stats()
	dropped := 0
	if deduper != nil {
		dropped = deduper.Dropped()
	}
	printSummary(out, stats, dropped, time.Since(started))
	services.PrintReport(out, insights.Report())

	if ctx.Err() != nil {
		return fmt.Errorf("interrupted: %w", ctx.Err())
	}
	if stats.FailedURLs > 0 {
		return fmt.Errorf("%d of %d URLs failed, last: %w", stats.FailedURLs, stats.URLs, crawlErr)
	}
	return nil
}

func openSinks(ctx context.Context, cfg *config.Config, runID uuid.UUID) (storage.Sink, error) {
	csvWriter, err := storage.NewCSVWriter(cfg.CSVPath)
	if err != nil {
		return nil, err
	}
	sinks := storage.MultiSink{csvWriter}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(ctx, cfg, runID)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to connect PostgreSQL: %w", err), sinks.Close())
		}
		sinks = append(sinks, pgWriter)
		if err := pgWriter.EnsureSchema(ctx); err != nil {
			return nil, errors.Join(err, sinks.Close())
		}
	}

	if cfg.SQLiteEnabled {
		sqliteWriter, err := storage.NewSQLiteWriter(ctx, cfg.SQLitePath, runID)
		if err != nil {
			return nil, errors.Join(err, sinks.Close())
		}
		sinks = append(sinks, sqliteWriter)
	}

	return sinks, nil
}

func printSummary(w io.Writer, stats models.ScrapeStats, dropped int, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                SCRAPE COMPLETE               ║")
	fmt.Fprintln(w, "╠══════════════════════════════════════════════╣")
	fmt.Fprintf(w, "║  Search URLs    : %-26d║\n", stats.URLs)
	fmt.Fprintf(w, "║  Failed URLs    : %-26d║\n", stats.FailedURLs)
	fmt.Fprintf(w, "║  Pages          : %-26d║\n", stats.Pages)
	fmt.Fprintf(w, "║  Ads            : %-26d║\n", stats.Ads)
	fmt.Fprintf(w, "║  Promoted skip  : %-26d║\n", stats.Promotional)
	fmt.Fprintf(w, "║  Malformed skip : %-26d║\n", stats.MalformedAds)
	fmt.Fprintf(w, "║  Duplicates     : %-26d║\n", dropped)
	fmt.Fprintf(w, "║  Elapsed        : %-26s║\n", elapsed.Round(time.Second))
	fmt.Fprintln(w, "╚══════════════════════════════════════════════╝")
	fmt.Fprintln(w)
}
