package render

import (
	"context"
	"time"

	"olx-scraper/utils"

	"golang.org/x/time/rate"
)

type throttled struct {
	next    Renderer
	limiter *rate.Limiter
	jitter  time.Duration
	started bool
}

// Throttle spaces page loads by at least the given interval, plus a random
// jitter of up to jitter. The first load is not delayed. Either value may be 0.
func Throttle(next Renderer, every, jitter time.Duration) Renderer {
	limit := rate.Inf
	if every > 0 {
		limit = rate.Every(every)
	}
	return &throttled{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
		jitter:  jitter,
	}
}

func (t *throttled) Render(ctx context.Context, url string) (Document, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	first := !t.started
	t.started = true
	if !first && t.jitter > 0 {
		if err := utils.RandomDelay(ctx, 0, t.jitter); err != nil {
			return nil, err
		}
	}
	return t.next.Render(ctx, url)
}

func (t *throttled) Close() error {
	return t.next.Close()
}

type retrying struct {
	next     Renderer
	attempts int
}

// Retrying retries failed renders with exponential backoff, up to attempts tries.
func Retrying(next Renderer, attempts int) Renderer {
	return &retrying{next: next, attempts: attempts}
}

func (r *retrying) Render(ctx context.Context, url string) (Document, error) {
	var doc Document
	err := utils.Retry(ctx, r.attempts, func() error {
		var err error
		doc, err = r.next.Render(ctx, url)
		return err
	})
	return doc, err
}

func (r *retrying) Close() error {
	return r.next.Close()
}
