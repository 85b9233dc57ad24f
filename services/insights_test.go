package services

import (
	"bytes"
	"testing"

	"olx-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "R$ 1.500", want: 1500, wantOK: true},
		{in: "R$ 350.000", want: 350000, wantOK: true},
		{in: "R$ 2.350,90", want: 2350.90, wantOK: true},
		{in: "R$ 90", want: 90, wantOK: true},
		{in: "  R$  1.200  ", want: 1200, wantOK: true},
		{in: "", wantOK: false},
		{in: "R$", wantOK: false},
		{in: "A combinar", wantOK: false},
		{in: "NaN", wantOK: false},
		{in: "R$ Inf", wantOK: false},
		{in: "R$ 1e9", wantOK: false},
		{in: "R$ -100", wantOK: false},
		{in: "R$ .,", wantOK: false},
		{in: "R$ 1.2,3,4", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := ParsePrice(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func scraped(source, link, price string) models.ScrapedAd {
	return models.ScrapedAd{SourceURL: source, Ad: models.Ad{ID: link, Name: "ad " + link, Link: link, Price: price}}
}

func TestInsights(t *testing.T) {
	t.Parallel()

	in := NewInsights()
	in.Add(scraped("https://sp.olx.com.br/a", "l1", "R$ 100"))
	in.Add(scraped("https://sp.olx.com.br/a", "l2", ""))
	in.Add(scraped("https://sp.olx.com.br/b", "l3", "R$ 1.000"))
	in.Add(scraped("https://sp.olx.com.br/b", "l1", "R$ 100"))

	r := in.Report()

	assert.Equal(t, 4, r.TotalAds)
	assert.Equal(t, 3, r.PricedAds)
	assert.Equal(t, 1, r.UnpricedAds)
	assert.Equal(t, 1, r.DuplicateAds)
	assert.InDelta(t, 400, r.AveragePrice, 0.001)
	assert.InDelta(t, 100, r.MinPrice, 0.001)
	assert.InDelta(t, 1000, r.MaxPrice, 0.001)
	assert.Equal(t, "l3", r.MostExpensive.Link)
	assert.Equal(t, "l1", r.Cheapest.Link)
	assert.Equal(t, map[string]int{"https://sp.olx.com.br/a": 2, "https://sp.olx.com.br/b": 2}, r.AdsBySource)

	// The snapshot does not change with later ads.
	in.Add(scraped("https://sp.olx.com.br/c", "l4", ""))
	assert.NotContains(t, r.AdsBySource, "https://sp.olx.com.br/c")
}

func TestInsights_IgnoresNonNumericPrices(t *testing.T) {
	t.Parallel()

	in := NewInsights()
	in.Add(scraped("https://sp.olx.com.br/a", "l1", "R$ 200"))
	in.Add(scraped("https://sp.olx.com.br/a", "l2", "NaN"))
	in.Add(scraped("https://sp.olx.com.br/a", "l3", "Inf"))

	r := in.Report()

	assert.Equal(t, 1, r.PricedAds)
	assert.Equal(t, 2, r.UnpricedAds)
	assert.InDelta(t, 200, r.AveragePrice, 0.001)
	assert.InDelta(t, 200, r.MaxPrice, 0.001)
	assert.InDelta(t, 200, r.MinPrice, 0.001)
}

func TestInsights_Empty(t *testing.T) {
	t.Parallel()

	r := NewInsights().Report()

	assert.Equal(t, 0, r.TotalAds)
	assert.Zero(t, r.MinPrice)
	assert.Zero(t, r.MaxPrice)
	assert.Zero(t, r.AveragePrice)
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	in := NewInsights()
	in.Add(scraped("https://sp.olx.com.br/a", "https://sp.olx.com.br/1", "R$ 1.500"))
	in.Add(scraped("https://sp.olx.com.br/a", "https://sp.olx.com.br/2", "R$ 2.350,90"))

	var buf bytes.Buffer
	PrintReport(&buf, in.Report())
	out := buf.String()

	assert.Contains(t, out, "OLX Market Insights")
	assert.Contains(t, out, "R$ 2.350,90")
	assert.Contains(t, out, "R$ 1.925,45")
	assert.Contains(t, out, "Link: https://sp.olx.com.br/2")
	assert.Contains(t, out, "https://sp.olx.com.br/a")
}

func TestDeduper(t *testing.T) {
	t.Parallel()

	d := NewDeduper()

	require.True(t, d.Keep(scraped("a", "l1", "")))
	require.True(t, d.Keep(scraped("a", "l2", "")))
	assert.False(t, d.Keep(scraped("b", "l1", "")))
	assert.False(t, d.Keep(scraped("b", " l2 ", "")))
	assert.Equal(t, 2, d.Dropped())
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "Apartam...", truncateText("Apartamento 2 quartos", 10))
	assert.Equal(t, "Sof", truncateText("Sofá", 3))
}
