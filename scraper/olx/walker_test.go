package olx

import (
	"context"
	"errors"
	"iter"
	"testing"

	"olx-scraper/scraper/render"
	"olx-scraper/scraper/render/rendertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchURL = "https://sp.olx.com.br/imoveis?q=apartamento"

func collectURLs(t *testing.T, seq iter.Seq2[render.Document, error]) ([]string, error) {
	t.Helper()

	var urls []string
	for doc, err := range seq {
		if err != nil {
			return urls, err
		}
		urls = append(urls, doc.URL())
	}
	return urls, nil
}

func TestWalk(t *testing.T) {
	t.Parallel()

	page2 := searchURL + "&o=2"
	page3 := searchURL + "&o=3"

	tests := []struct {
		name    string
		pages   map[string]string
		want    []string
		wantErr error
	}{
		{
			name:  "no results marker yields nothing",
			pages: map[string]string{searchURL: rendertest.NoResultsPage},
			want:  nil,
		},
		{
			name:  "page without pagination is the only page",
			pages: map[string]string{searchURL: rendertest.ResultPage("", rendertest.Ad{ID: "1", Link: "https://x/1"})},
			want:  []string{searchURL},
		},
		{
			name: "chain of pages is followed in link order",
			pages: map[string]string{
				searchURL: rendertest.ResultPage(page2),
				page2:     rendertest.ResultPage(page3),
				page3:     rendertest.ResultPage(""),
			},
			want: []string{searchURL, page2, page3},
		},
		{
			name: "relative next links resolve against the page",
			pages: map[string]string{
				searchURL: rendertest.ResultPage("?q=apartamento&o=2"),
				page2:     rendertest.ResultPage(""),
			},
			want: []string{searchURL, page2},
		},
		{
			name: "no results marker after the first page is an ordinary page",
			pages: map[string]string{
				searchURL: rendertest.ResultPage(page2),
				page2:     rendertest.NoResultsPage,
			},
			want: []string{searchURL, page2},
		},
		{
			name: "next link pointing back is a cycle",
			pages: map[string]string{
				searchURL: rendertest.ResultPage(page2),
				page2:     rendertest.ResultPage(searchURL),
			},
			want:    []string{searchURL, page2},
			wantErr: ErrPaginationCycle,
		},
		{
			name: "next control without a link is a structure error",
			pages: map[string]string{
				searchURL: `<html><body><ul id="main-ad-list"></ul>` +
					`<div class="module_pagination"><li class="next"><span>Próxima</span></li></div></body></html>`,
			},
			want:    []string{searchURL},
			wantErr: ErrStructure,
		},
		{
			name: "next link with empty href is a structure error",
			pages: map[string]string{
				searchURL: `<html><body><ul id="main-ad-list"></ul>` +
					`<div class="module_pagination"><li class="next"><a class="link" href=" "></a></li></div></body></html>`,
			},
			want:    []string{searchURL},
			wantErr: ErrStructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := rendertest.New(tt.pages)
			got, err := collectURLs(t, Walk(context.Background(), r, searchURL))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalk_RenderError(t *testing.T) {
	t.Parallel()

	page2 := searchURL + "&o=2"
	boom := errors.New("net::ERR_CONNECTION_RESET")

	r := rendertest.New(map[string]string{searchURL: rendertest.ResultPage(page2)})
	r.Errs[page2] = boom

	got, err := collectURLs(t, Walk(context.Background(), r, searchURL))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, page2, renderErr.URL)
	assert.Equal(t, []string{searchURL}, got)
}

func TestWalk_MaxPages(t *testing.T) {
	t.Parallel()

	page2 := searchURL + "&o=2"
	page3 := searchURL + "&o=3"
	r := rendertest.New(map[string]string{
		searchURL: rendertest.ResultPage(page2),
		page2:     rendertest.ResultPage(page3),
		page3:     rendertest.ResultPage(""),
	})

	got, err := collectURLs(t, Walk(context.Background(), r, searchURL, WithMaxPages(2)))

	require.NoError(t, err)
	assert.Equal(t, []string{searchURL, page2}, got)
	assert.Equal(t, []string{searchURL, page2}, r.Calls())
}

func TestWalk_RendersLazily(t *testing.T) {
	t.Parallel()

	page2 := searchURL + "&o=2"
	r := rendertest.New(map[string]string{
		searchURL: rendertest.ResultPage(page2),
		page2:     rendertest.ResultPage(""),
	})

	for doc, err := range Walk(context.Background(), r, searchURL) {
		require.NoError(t, err)
		assert.Equal(t, searchURL, doc.URL())
		break
	}

	assert.Equal(t, []string{searchURL}, r.Calls())
}

func TestPager_States(t *testing.T) {
	t.Parallel()

	t.Run("empty search", func(t *testing.T) {
		t.Parallel()

		p := NewPager(rendertest.New(map[string]string{searchURL: rendertest.NoResultsPage}), searchURL)
		assert.Equal(t, StateInitial, p.State())

		doc, ok, err := p.Next(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, doc)
		assert.Equal(t, StateEmpty, p.State())

		_, ok, err = p.Next(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, StateExhausted, p.State())
		assert.Equal(t, 1, p.Pages())
	})

	t.Run("two pages", func(t *testing.T) {
		t.Parallel()

		page2 := searchURL + "&o=2"
		p := NewPager(rendertest.New(map[string]string{
			searchURL: rendertest.ResultPage(page2),
			page2:     rendertest.ResultPage(""),
		}), searchURL)

		_, ok, err := p.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, StateHasMorePages, p.State())

		_, ok, err = p.Next(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, StateNoMorePages, p.State())

		_, ok, err = p.Next(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, StateExhausted, p.State())
		assert.Equal(t, 2, p.Pages())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewPager(rendertest.New(map[string]string{searchURL: rendertest.ResultPage("")}), searchURL)
		_, ok, err := p.Next(ctx)
		assert.False(t, ok)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StateExhausted, p.State())
	})
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "has_more_pages", StateHasMorePages.String())
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "State(42)", State(42).String())
}
