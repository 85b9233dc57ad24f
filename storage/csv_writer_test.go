package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"olx-scraper/models"
	"olx-scraper/scraper/olx"
	"olx-scraper/scraper/render/rendertest"
	"olx-scraper/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// crawlToCSV runs a crawl over the fake site and writes every ad to a CSV file.
func crawlToCSV(t *testing.T, r *rendertest.Renderer, urls ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out", "result.csv")
	w, err := storage.NewCSVWriter(path)
	require.NoError(t, err)

	c := olx.NewCrawler(olx.Options{Factory: r.Factory(nil), ContinueOnError: true})
	for ad, err := range c.Run(context.Background(), slices.Values(urls)) {
		require.NoError(t, err)
		require.NoError(t, w.Write(context.Background(), ad))
	}
	require.NoError(t, w.Close())

	return readFile(t, path)
}

func TestCSVWriter_NoResults(t *testing.T) {
	t.Parallel()

	const url = "https://sp.olx.com.br/busca?q=nada"
	r := rendertest.New(map[string]string{url: rendertest.NoResultsPage})

	got := crawlToCSV(t, r, url)

	assert.Equal(t, "url;olx_id;name;price;link\n", got)
}

func TestCSVWriter_TwoPages(t *testing.T) {
	t.Parallel()

	const url = "https://sp.olx.com.br/busca?q=bike"
	r := rendertest.New(map[string]string{
		url: rendertest.ResultPage(url+"&o=2",
			rendertest.Ad{ID: "11", Name: "Bike A", Link: "https://sp.olx.com.br/11", Price: "R$ 500"},
			rendertest.Ad{ID: "12", Name: "Bike B", Link: "https://sp.olx.com.br/12"},
		),
		url + "&o=2": rendertest.ResultPage("",
			rendertest.Ad{ID: "21", Name: "Bike C", Link: "https://sp.olx.com.br/21", Price: "R$ 750"},
		),
	})

	got := crawlToCSV(t, r, url)

	assert.Equal(t, "url;olx_id;name;price;link\n"+
		url+";11;Bike A;R$ 500;https://sp.olx.com.br/11\n"+
		url+";12;Bike B;;https://sp.olx.com.br/12\n"+
		url+";21;Bike C;R$ 750;https://sp.olx.com.br/21\n", got)
}

func TestCSVWriter_WritesVerbatim(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "result.csv")
	w, err := storage.NewCSVWriter(path)
	require.NoError(t, err)

	err = w.Write(context.Background(), models.ScrapedAd{
		SourceURL: "https://sp.olx.com.br/busca?q=a;b",
		Ad:        models.Ad{ID: "1", Name: `Sofá "retrátil", 3 lugares`, Link: "https://sp.olx.com.br/1"},
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, "url;olx_id;name;price;link\n"+
		`https://sp.olx.com.br/busca?q=a;b;1;Sofá "retrátil", 3 lugares;;https://sp.olx.com.br/1`+"\n",
		readFile(t, path))
}

func TestNewCSVWriter_BadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := storage.NewCSVWriter(filepath.Join(blocker, "result.csv"))

	assert.Error(t, err)
}
