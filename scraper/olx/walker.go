package olx

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strings"

	"olx-scraper/scraper/render"
	"olx-scraper/utils"
)

// Class names of the OLX result list layout.
const (
	noResultsClass  = "section_not_found"
	paginationClass = "module_pagination"
	nextClass       = "next"
	nextLinkClass   = "link"
)

// State is the position of a Pager in its walk.
type State int

const (
	StateInitial State = iota
	// StateHasMorePages: the last yielded page links to a next page.
	StateHasMorePages
	// StateNoMorePages: the last yielded page is the final one.
	StateNoMorePages
	// StateEmpty: the search returned no results; nothing was yielded.
	StateEmpty
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateHasMorePages:
		return "has_more_pages"
	case StateNoMorePages:
		return "no_more_pages"
	case StateEmpty:
		return "empty"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PagerOption configures a Pager.
type PagerOption func(*Pager)

// WithMaxPages stops the walk after n pages. 0 means no limit.
func WithMaxPages(n int) PagerOption {
	return func(p *Pager) {
		p.maxPages = n
	}
}

// Pager walks the result pages of one search, one page per Next call.
// It keeps no reference to a page once the following one is requested.
type Pager struct {
	renderer render.Renderer
	startURL string
	maxPages int

	state   State
	nextURL string
	// pending is a structure error found on the last yielded page. It is
	// returned by the following Next so the page itself is still consumed.
	pending error
	pages   int
	visited map[string]bool
}

func NewPager(r render.Renderer, startURL string, opts ...PagerOption) *Pager {
	p := &Pager{
		renderer: r,
		startURL: startURL,
		state:    StateInitial,
		visited:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pager) State() State {
	return p.state
}

// Pages is the number of pages rendered so far.
func (p *Pager) Pages() int {
	return p.pages
}

// Next renders and returns the next result page. ok is false once the walk
// is over; err is non-nil when rendering failed or the layout did not match.
func (p *Pager) Next(ctx context.Context) (doc render.Document, ok bool, err error) {
	var target string
	switch p.state {
	case StateInitial:
		target = p.startURL
	case StateHasMorePages:
		target = p.nextURL
	default:
		err, p.pending = p.pending, nil
		p.state = StateExhausted
		return nil, false, err
	}

	doc, err = p.renderer.Render(ctx, target)
	if err != nil {
		p.state = StateExhausted
		return nil, false, &RenderError{URL: target, Err: err}
	}
	p.pages++
	p.visited[target] = true
	p.visited[doc.URL()] = true

	if p.state == StateInitial {
		if _, found := doc.FindClass(noResultsClass); found {
			p.state = StateEmpty
			return nil, false, nil
		}
	}

	p.advance(doc)
	return doc, true, nil
}

// advance inspects the pagination control of doc and moves to the matching state.
func (p *Pager) advance(doc render.Document) {
	p.state = StateNoMorePages
	p.nextURL = ""

	pagination, ok := doc.FindClass(paginationClass)
	if !ok {
		return
	}
	next, ok := pagination.FindClass(nextClass)
	if !ok {
		return
	}

	href := ""
	if link, ok := next.FindClass(nextLinkClass); ok {
		href, _ = link.Attr("href")
	}
	if strings.TrimSpace(href) == "" {
		p.pending = &StructureError{URL: doc.URL(), Element: "pagination next link"}
		return
	}

	nextURL, err := resolveURL(doc.URL(), href)
	if err != nil {
		p.pending = &StructureError{URL: doc.URL(), Element: "pagination next link", Err: err}
		return
	}
	if p.visited[nextURL] {
		p.pending = &StructureError{URL: doc.URL(), Element: "pagination next link", Err: ErrPaginationCycle}
		return
	}
	if p.maxPages > 0 && p.pages >= p.maxPages {
		utils.Warn("Page limit %d reached, not following %s", p.maxPages, nextURL)
		return
	}

	p.nextURL = nextURL
	p.state = StateHasMorePages
}

// Walk returns the result pages of the search at startURL, rendered lazily
// as the sequence is consumed. A failure is yielded once and ends the sequence.
func Walk(ctx context.Context, r render.Renderer, startURL string, opts ...PagerOption) iter.Seq2[render.Document, error] {
	return func(yield func(render.Document, error) bool) {
		p := NewPager(r, startURL, opts...)
		for {
			doc, ok, err := p.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

// resolveURL resolves href (possibly relative) against the page it was found on.
func resolveURL(base, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(ref).String(), nil
}
