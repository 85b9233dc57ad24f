// Package render turns a URL into a queryable, fully rendered document.
//
// Three backends are available: a headless Chrome driven by chromedp (the
// default, it executes the page scripts that fill the ad list), a go-rod
// browser, and a plain HTTP fetch through colly for pages that need no script
// execution. All of them hand back the same goquery-backed Document.
package render

import (
	"context"
	"errors"
	"fmt"

	"olx-scraper/config"
)

// Element is a node of a rendered document.
type Element interface {
	// Attr returns the attribute value and whether the attribute exists.
	Attr(name string) (string, bool)
	// Text returns the text content with surrounding whitespace trimmed.
	Text() string
	HasClass(class string) bool
	// FindClass returns the first descendant carrying class.
	FindClass(class string) (Element, bool)
	// FindAllClass returns every descendant carrying class, in document order.
	FindAllClass(class string) []Element
}

// Document is a rendered page. As an Element it searches the whole page.
type Document interface {
	Element
	// URL is the address the document was finally loaded from, after redirects.
	URL() string
	FindID(id string) (Element, bool)
}

// Renderer loads pages. Implementations are not safe for concurrent use:
// one walk owns a renderer at a time.
type Renderer interface {
	Render(ctx context.Context, url string) (Document, error)
	Close() error
}

// Factory acquires a new Renderer. The caller owns it and must Close it.
type Factory func(ctx context.Context) (Renderer, error)

// Use acquires a renderer from factory, runs fn with it and always releases it.
func Use(ctx context.Context, factory Factory, fn func(Renderer) error) (err error) {
	r, err := factory(ctx)
	if err != nil {
		return fmt.Errorf("failed to start renderer: %w", err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close renderer: %w", closeErr))
		}
	}()
	return fn(r)
}

// FromConfig returns the factory selected by cfg.Renderer, wrapped with
// retrying (when MaxRetries > 1) and throttling between page loads.
func FromConfig(cfg *config.Config) (Factory, error) {
	var base Factory
	switch cfg.Renderer {
	case config.RendererChrome:
		base = func(ctx context.Context) (Renderer, error) {
			return NewChromeRenderer(ctx, ChromeOptions{
				Headless:  cfg.Headless,
				UserAgent: cfg.UserAgent,
				Timeout:   cfg.RequestTimeout,
			})
		}
	case config.RendererRod:
		base = func(ctx context.Context) (Renderer, error) {
			return NewRodRenderer(ctx, RodOptions{
				Headless:  cfg.Headless,
				UserAgent: cfg.UserAgent,
				Timeout:   cfg.RequestTimeout,
			})
		}
	case config.RendererHTTP:
		base = func(context.Context) (Renderer, error) {
			return NewHTTPRenderer(HTTPOptions{
				UserAgent: cfg.UserAgent,
				Timeout:   cfg.RequestTimeout,
			}), nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownRenderer, cfg.Renderer)
	}

	return func(ctx context.Context) (Renderer, error) {
		r, err := base(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.MaxRetries > 1 {
			r = Retrying(r, cfg.MaxRetries)
		}
		return Throttle(r, cfg.PageDelay, cfg.PageJitter), nil
	}, nil
}
