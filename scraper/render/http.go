package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"olx-scraper/utils"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
}

// HTTPRenderer fetches pages without executing scripts. It is enough for
// servers that send the ad list in the initial HTML.
type HTTPRenderer struct {
	opts      HTTPOptions
	collector *colly.Collector
}

func NewHTTPRenderer(opts HTTPOptions) *HTTPRenderer {
	c := colly.NewCollector(colly.AllowURLRevisit())
	if opts.Timeout > 0 {
		c.SetRequestTimeout(opts.Timeout)
	}
	return &HTTPRenderer{opts: opts, collector: c}
}

func (r *HTTPRenderer) Render(ctx context.Context, url string) (Document, error) {
	// Clones share the transport and cookie jar but not the callbacks.
	c := r.collector.Clone()
	c.Context = ctx
	if r.opts.UserAgent != "" {
		c.UserAgent = r.opts.UserAgent
	} else {
		extensions.RandomUserAgent(c)
	}
	extensions.Referer(c)
	c.OnRequest(func(req *colly.Request) {
		req.Headers.Set("Accept-Language", utils.AcceptLanguage)
	})

	var doc *HTMLDocument
	var responseErr error

	c.OnResponse(func(resp *colly.Response) {
		doc, responseErr = ParseHTML(resp.Request.URL.String(), bytes.NewReader(resp.Body))
	})
	c.OnError(func(resp *colly.Response, err error) {
		responseErr = fmt.Errorf("request to %s failed with status %d: %w", resp.Request.URL, resp.StatusCode, err)
	})

	visitErr := c.Visit(url)
	c.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if visitErr != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", url, visitErr)
	}
	if doc == nil {
		return nil, fmt.Errorf("no response received from %s", url)
	}
	return doc, nil
}

func (r *HTTPRenderer) Close() error {
	return nil
}
