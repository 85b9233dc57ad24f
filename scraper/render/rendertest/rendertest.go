// Package rendertest provides an in-memory render.Renderer for tests.
package rendertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"olx-scraper/scraper/render"
)

// Renderer serves fixed HTML by URL and records every call.
type Renderer struct {
	// Pages maps a URL to the HTML returned for it.
	Pages map[string]string
	// Errs maps a URL to the error returned instead of a page.
	Errs map[string]error
	// CloseErr is returned by Close.
	CloseErr error

	mu     sync.Mutex
	calls  []string
	closed int
}

func New(pages map[string]string) *Renderer {
	return &Renderer{Pages: pages, Errs: make(map[string]error)}
}

func (r *Renderer) Render(ctx context.Context, url string) (render.Document, error) {
	r.mu.Lock()
	r.calls = append(r.calls, url)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := r.Errs[url]; ok {
		return nil, err
	}
	html, ok := r.Pages[url]
	if !ok {
		return nil, fmt.Errorf("no page registered for %s", url)
	}
	return render.ParseHTML(url, strings.NewReader(html))
}

func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return r.CloseErr
}

// Calls returns the URLs rendered so far, in order.
func (r *Renderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Closed returns how many times Close was called.
func (r *Renderer) Closed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Factory returns a render.Factory that hands out r and counts acquisitions
// in acquired, when non-nil.
func (r *Renderer) Factory(acquired *int) render.Factory {
	return func(context.Context) (render.Renderer, error) {
		if acquired != nil {
			*acquired++
		}
		return r, nil
	}
}

// Ad describes one item of a result page built by ResultPage.
type Ad struct {
	ID, Name, Link, Price string
	// Promoted marks a native ad placement.
	Promoted bool
	// NoLink leaves out the link element.
	NoLink bool
}

// ResultPage builds an OLX result list page holding ads. A non-empty next
// adds a pagination control linking to it.
func ResultPage(next string, ads ...Ad) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="section_listing"><ul id="main-ad-list" class="list">`)
	for _, ad := range ads {
		class := "item"
		if ad.Promoted {
			class = "item list_native"
		}
		fmt.Fprintf(&b, `<li class="%s">`, class)
		if !ad.NoLink {
			fmt.Fprintf(&b, `<a class="OLXad-list-link" id="%s" title="%s" href="%s"><h2 class="OLXad-list-title">%s</h2></a>`,
				ad.ID, ad.Name, ad.Link, ad.Name)
		}
		if ad.Price != "" {
			fmt.Fprintf(&b, `<div class="col-3"><p class="OLXad-list-price">%s</p></div>`, ad.Price)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul></div>`)
	if next != "" {
		fmt.Fprintf(&b, `<div class="module_pagination"><ul><li class="item number">1</li><li class="item next"><a class="link" href="%s">Próxima</a></li></ul></div>`, next)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

// NoResultsPage is the page OLX serves for a search without results.
const NoResultsPage = `<html><body><div class="section_not_found"><p>Nenhum anúncio encontrado.</p></div></body></html>`
