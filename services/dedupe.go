package services

import (
	"strings"

	"olx-scraper/models"
)

// Deduper drops ads whose link was already seen in the run. Promoted ads
// often appear on several searches at once.
type Deduper struct {
	seen    map[string]bool
	dropped int
}

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]bool)}
}

// Keep reports whether ad is the first one with its link.
func (d *Deduper) Keep(ad models.ScrapedAd) bool {
	link := strings.TrimSpace(ad.Ad.Link)
	if d.seen[link] {
		d.dropped++
		return false
	}
	d.seen[link] = true
	return true
}

func (d *Deduper) Dropped() int {
	return d.dropped
}
