package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"olx-scraper/utils"

	"github.com/chromedp/chromedp"
)

type ChromeOptions struct {
	Headless  bool
	UserAgent string
	// Timeout bounds one Render call.
	Timeout time.Duration
	// Settle is extra time given to page scripts after the body is ready.
	Settle time.Duration
}

// ChromeRenderer drives a single headless Chrome tab, reused for every page.
type ChromeRenderer struct {
	opts        ChromeOptions
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
}

func NewChromeRenderer(ctx context.Context, opts ChromeOptions) (*ChromeRenderer, error) {
	if opts.Settle == 0 {
		opts.Settle = time.Second
	}

	utils.Info("Launching Chrome browser...")
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.WithoutCancel(ctx),
		utils.StealthOpts(opts.Headless, opts.UserAgent)...,
	)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser. It must not run under a timeout
	// context or the browser dies with it.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}
	utils.Success("Browser ready")

	return &ChromeRenderer{
		opts:        opts,
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
	}, nil
}

func (r *ChromeRenderer) Render(ctx context.Context, url string) (Document, error) {
	runCtx, cancel := context.WithTimeout(r.tabCtx, r.opts.Timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html, location string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		utils.HideWebDriver(),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(r.opts.Settle),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp failed: %w", err)
	}
	if location == "" {
		location = url
	}

	return ParseHTML(location, strings.NewReader(html))
}

func (r *ChromeRenderer) Close() error {
	utils.Info("Closing browser...")
	r.tabCancel()
	r.allocCancel()
	return nil
}
