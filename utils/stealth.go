package utils

import (
	"context"
	"math/rand"

	"github.com/chromedp/chromedp"
)

// AcceptLanguage is sent by every renderer so pages come back in the
// Brazilian Portuguese layout the extractor expects.
const AcceptLanguage = "pt-BR,pt;q=0.9,en-US;q=0.7"

// desktopUserAgents: one is picked per browser session. Mobile agents are
// served a different listing layout.
var desktopUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:130.0) Gecko/20100101 Firefox/130.0",
}

func RandomUserAgent() string {
	return desktopUserAgents[rand.Intn(len(desktopUserAgents))]
}

// StealthOpts builds the chromedp allocator options for a result-page
// browser. An empty userAgent picks a random desktop one.
func StealthOpts(headless bool, userAgent string) []chromedp.ExecAllocatorOption {
	if userAgent == "" {
		userAgent = RandomUserAgent()
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1366, 900),
		chromedp.Flag("lang", "pt-BR"),
		chromedp.Flag("accept-lang", AcceptLanguage),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("excludeSwitches", "enable-automation"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		// Ad images are never read.
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	}
	if headless {
		opts = append(opts, chromedp.Flag("headless", "new"), chromedp.DisableGPU)
	}
	return opts
}

// HideWebDriver masks navigator.webdriver for the current document.
// Run it right after each Navigate.
func HideWebDriver() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		return chromedp.Evaluate(`
			Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
			Object.defineProperty(navigator, 'languages', { get: () => ['pt-BR', 'pt'] });
		`, nil).Do(ctx)
	})
}
