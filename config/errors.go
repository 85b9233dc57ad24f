package config

import "errors"

// Validation errors returned by Config.Validate. Callers match them with errors.Is.
var (
	ErrNoURLFile         = errors.New("no URL file configured")
	ErrNoCSVPath         = errors.New("no CSV output path configured")
	ErrUnknownRenderer   = errors.New("unknown renderer: must be chromedp, rod or http")
	ErrUnknownItemPolicy = errors.New("unknown item policy: must be skip or abort")
	ErrInvalidTimeout    = errors.New("invalid request timeout: must be positive")
	ErrInvalidDelay      = errors.New("invalid page delay: must be non-negative")
	ErrInvalidMaxPages   = errors.New("invalid max pages: must be non-negative")
	ErrInvalidBatchSize  = errors.New("invalid batch size: must be positive")
	ErrNoSQLitePath      = errors.New("sqlite enabled but no sqlite path configured")
)
