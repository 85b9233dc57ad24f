package olx

import (
	"context"
	"fmt"
	"iter"

	"olx-scraper/models"
	"olx-scraper/scraper/render"
	"olx-scraper/utils"
)

type Options struct {
	// Factory acquires the renderer for a run. It is called once, on the
	// first URL, and the renderer is closed when the run ends.
	Factory         render.Factory
	ItemPolicy      ItemPolicy
	ContinueOnError bool
	// MaxPages caps the pages walked per URL; 0 means no cap.
	MaxPages int
}

// Crawler walks every input search URL and emits the ads found, tagged with
// the URL they came from. A Crawler is meant for a single Run.
type Crawler struct {
	opts      Options
	extractor *Extractor
	stats     models.ScrapeStats
}

func NewCrawler(opts Options) *Crawler {
	return &Crawler{
		opts:      opts,
		extractor: NewExtractor(opts.ItemPolicy),
	}
}

// Stats reports the counters of the run so far.
func (c *Crawler) Stats() models.ScrapeStats {
	s := c.stats
	es := c.extractor.Stats()
	s.Promotional = es.Promotional
	s.MalformedAds = es.Malformed
	return s
}

// Run returns the ads of every URL in urls, in input order and display order.
// Pages are rendered only as the sequence is consumed.
//
// A URL whose walk fails is yielded once as a *URLError with a zero ad that
// carries only SourceURL and InputIndex. The run then moves on to the next
// URL, or stops when ContinueOnError is false.
func (c *Crawler) Run(ctx context.Context, urls iter.Seq[string]) iter.Seq2[models.ScrapedAd, error] {
	return func(yield func(models.ScrapedAd, error) bool) {
		var renderer render.Renderer
		defer func() {
			if renderer == nil {
				return
			}
			if err := renderer.Close(); err != nil {
				utils.Error("Failed to close renderer: %v", err)
			}
		}()

		input := -1
		for sourceURL := range urls {
			input++

			if renderer == nil {
				r, err := c.opts.Factory(ctx)
				if err != nil {
					yield(models.ScrapedAd{}, fmt.Errorf("failed to start renderer: %w", err))
					return
				}
				renderer = r
			}

			c.stats.URLs++
			utils.Section(sourceURL)

			more, err := c.crawlURL(ctx, renderer, sourceURL, input, yield)
			if !more {
				return
			}
			if err == nil {
				continue
			}

			c.stats.FailedURLs++
			if !yield(models.ScrapedAd{SourceURL: sourceURL, InputIndex: input}, &URLError{URL: sourceURL, Err: err}) {
				return
			}
			if !c.opts.ContinueOnError {
				return
			}
		}
	}
}

// crawlURL emits the ads of one search. more is false when the consumer
// stopped the sequence.
func (c *Crawler) crawlURL(
	ctx context.Context,
	r render.Renderer,
	sourceURL string,
	input int,
	yield func(models.ScrapedAd, error) bool,
) (more bool, err error) {
	page, ads := 0, 0

	for doc, err := range Walk(ctx, r, sourceURL, WithMaxPages(c.opts.MaxPages)) {
		if err != nil {
			return true, err
		}
		page++
		c.stats.Pages++

		position := 0
		for ad, err := range c.extractor.Extract(doc) {
			if err != nil {
				return true, err
			}
			c.stats.Ads++
			ads++
			scraped := models.ScrapedAd{
				SourceURL:  sourceURL,
				InputIndex: input,
				Ad:         ad,
				Page:       page,
				Position:   position,
			}
			if !yield(scraped, nil) {
				return false, nil
			}
			position++
		}
		utils.Debug("Page %d of %s: %d ads", page, sourceURL, position)
	}

	if page == 0 {
		utils.Info("No results for %s", sourceURL)
	} else {
		utils.Success("%d ads on %d pages", ads, page)
	}
	return true, nil
}
