package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// AppName is used for the XDG data directory and log fields.
const AppName = "olx-scraper"

// Renderer names accepted by Config.Renderer.
const (
	RendererChrome = "chromedp"
	RendererRod    = "rod"
	RendererHTTP   = "http"
)

// Item error policies accepted by Config.ItemPolicy.
const (
	ItemPolicySkip  = "skip"
	ItemPolicyAbort = "abort"
)

type Config struct {
	URLFile string `envconfig:"URL_FILE" yaml:"url_file"`
	CSVPath string `envconfig:"CSV_PATH" yaml:"csv_path"`

	// Renderer selects the page renderer: chromedp, rod or http.
	Renderer       string        `envconfig:"RENDERER" yaml:"renderer"`
	Headless       bool          `envconfig:"HEADLESS" yaml:"headless"`
	UserAgent      string        `envconfig:"USER_AGENT" yaml:"user_agent"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" yaml:"request_timeout"`
	PageDelay      time.Duration `envconfig:"PAGE_DELAY" yaml:"page_delay"`
	PageJitter     time.Duration `envconfig:"PAGE_JITTER" yaml:"page_jitter"`
	// MaxRetries is the number of render attempts per page; 1 disables retrying.
	MaxRetries int `envconfig:"MAX_RETRIES" yaml:"max_retries"`
	// MaxPages caps the result pages walked per URL; 0 means no cap.
	MaxPages int `envconfig:"MAX_PAGES" yaml:"max_pages"`

	ItemPolicy      string `envconfig:"ITEM_POLICY" yaml:"item_policy"`
	ContinueOnError bool   `envconfig:"CONTINUE_ON_ERROR" yaml:"continue_on_error"`
	Dedupe          bool   `envconfig:"DEDUPE" yaml:"dedupe"`

	PostgresEnabled bool   `envconfig:"POSTGRES_ENABLED" yaml:"postgres_enabled"`
	DBHost          string `envconfig:"DB_HOST" yaml:"db_host"`
	DBPort          int    `envconfig:"DB_PORT" yaml:"db_port"`
	DBUser          string `envconfig:"DB_USER" yaml:"db_user"`
	DBPassword      string `envconfig:"DB_PASSWORD" yaml:"db_password"`
	DBName          string `envconfig:"DB_NAME" yaml:"db_name"`
	DBSSLMode       string `envconfig:"DB_SSLMODE" yaml:"db_sslmode"`
	BatchSize       int    `envconfig:"BATCH_SIZE" yaml:"batch_size"`

	SQLiteEnabled bool   `envconfig:"SQLITE_ENABLED" yaml:"sqlite_enabled"`
	SQLitePath    string `envconfig:"SQLITE_PATH" yaml:"sqlite_path"`

	LogLevel string `envconfig:"LOG_LEVEL" yaml:"log_level"`
	NoColor  bool   `envconfig:"NO_COLOR" yaml:"no_color"`
}

func DefaultConfig() *Config {
	return &Config{
		URLFile:         "url.txt",
		CSVPath:         "result.csv",
		Renderer:        RendererChrome,
		Headless:        true,
		RequestTimeout:  60 * time.Second,
		PageDelay:       2 * time.Second,
		PageJitter:      3 * time.Second,
		MaxRetries:      1,
		MaxPages:        0,
		ItemPolicy:      ItemPolicySkip,
		ContinueOnError: true,
		Dedupe:          false,
		PostgresEnabled: false,
		DBHost:          "localhost",
		DBPort:          5432,
		DBUser:          "postgres",
		DBPassword:      "postgres",
		DBName:          "olx_scraper",
		DBSSLMode:       "disable",
		BatchSize:       50,
		SQLiteEnabled:   false,
		SQLitePath:      filepath.Join(xdg.DataHome, AppName, "ads.db"),
		LogLevel:        "info",
	}
}

// Validate checks the values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URLFile) == "" {
		return ErrNoURLFile
	}
	if strings.TrimSpace(c.CSVPath) == "" {
		return ErrNoCSVPath
	}
	switch c.Renderer {
	case RendererChrome, RendererRod, RendererHTTP:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, c.Renderer)
	}
	switch c.ItemPolicy {
	case ItemPolicySkip, ItemPolicyAbort:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownItemPolicy, c.ItemPolicy)
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.PageDelay < 0 || c.PageJitter < 0 {
		return ErrInvalidDelay
	}
	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}
	if c.PostgresEnabled && c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.SQLiteEnabled && strings.TrimSpace(c.SQLitePath) == "" {
		return ErrNoSQLitePath
	}
	return nil
}

// PostgresDSN builds the pgx connection string from the DB* fields.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}
