package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"olx-scraper/models"
)

// Report summarises the ads seen during a run.
type Report struct {
	TotalAds      int
	PricedAds     int
	UnpricedAds   int
	AveragePrice  float64
	MinPrice      float64
	MaxPrice      float64
	MostExpensive models.Ad
	Cheapest      models.Ad
	AdsBySource   map[string]int
	DuplicateAds  int
}

// Insights accumulates a Report one ad at a time, so a run never has to hold
// its ads in memory.
type Insights struct {
	report   Report
	priceSum float64
	links    map[string]bool
}

func NewInsights() *Insights {
	return &Insights{
		report: Report{
			MinPrice:    math.MaxFloat64,
			AdsBySource: make(map[string]int),
		},
		links: make(map[string]bool),
	}
}

func (in *Insights) Add(ad models.ScrapedAd) {
	r := &in.report
	r.TotalAds++
	r.AdsBySource[ad.SourceURL]++

	if in.links[ad.Ad.Link] {
		r.DuplicateAds++
	}
	in.links[ad.Ad.Link] = true

	price, ok := ParsePrice(ad.Ad.Price)
	if !ok {
		r.UnpricedAds++
		return
	}

	r.PricedAds++
	in.priceSum += price
	if price > r.MaxPrice || r.PricedAds == 1 {
		r.MaxPrice = price
		r.MostExpensive = ad.Ad
	}
	if price < r.MinPrice {
		r.MinPrice = price
		r.Cheapest = ad.Ad
	}
}

// Report returns a snapshot of the totals so far.
func (in *Insights) Report() Report {
	r := in.report
	r.AdsBySource = make(map[string]int, len(in.report.AdsBySource))
	for k, v := range in.report.AdsBySource {
		r.AdsBySource[k] = v
	}

	if r.PricedAds > 0 {
		r.AveragePrice = in.priceSum / float64(r.PricedAds)
	} else {
		r.MinPrice = 0
	}
	return r
}

// ParsePrice reads a Brazilian price such as "R$ 1.500" or "R$ 2.350,90".
// ok is false when s holds no number.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.Join(strings.Fields(s), "")
	// Only digits and separators; ParseFloat would also take "NaN" or "1e9".
	if !strings.ContainsAny(s, "0123456789") || strings.ContainsFunc(s, notPriceRune) {
		return 0, false
	}

	// "." groups thousands and "," separates decimals.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func notPriceRune(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != ','
}

func sortedSources(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncateText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
