package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"olx-scraper/utils"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type RodOptions struct {
	Headless  bool
	UserAgent string
	Timeout   time.Duration
}

// RodRenderer drives a single go-rod page, reused for every render.
type RodRenderer struct {
	opts     RodOptions
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func NewRodRenderer(ctx context.Context, opts RodOptions) (*RodRenderer, error) {
	utils.Info("Launching rod browser...")

	l := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		NoSandbox(true).
		Leakless(false)

	// Prefer a system Chrome; otherwise the launcher downloads Chromium.
	if bin, ok := launcher.LookPath(); ok {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = utils.RandomUserAgent()
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      userAgent,
		AcceptLanguage: utils.AcceptLanguage,
	}); err != nil {
		utils.Warn("Could not set user agent: %v", err)
	}

	utils.Success("Browser ready")
	return &RodRenderer{opts: opts, launcher: l, browser: browser, page: page}, nil
}

func (r *RodRenderer) Render(ctx context.Context, url string) (Document, error) {
	p := r.page.Context(ctx).Timeout(r.opts.Timeout)

	if err := p.Navigate(url); err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("page did not load: %w", err)
	}
	if err := p.WaitStable(500 * time.Millisecond); err != nil {
		utils.Debug("Page did not stabilize, continuing anyway: %v", err)
	}

	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to get HTML: %w", err)
	}

	location := url
	if info, err := p.Info(); err == nil && info.URL != "" {
		location = info.URL
	}

	return ParseHTML(location, strings.NewReader(html))
}

func (r *RodRenderer) Close() error {
	utils.Info("Closing browser...")
	err := errors.Join(r.page.Close(), r.browser.Close())
	r.launcher.Cleanup()
	return err
}
