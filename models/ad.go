package models

// Ad is one classified listing found on a result page.
// ID, Name and Price may be empty; Link is always set.
type Ad struct {
	ID    string
	Name  string
	Link  string
	Price string
}

// HasPrice reports whether the listing showed a price.
func (a Ad) HasPrice() bool {
	return a.Price != ""
}

// ScrapedAd is an Ad tagged with the search URL it was reached from.
type ScrapedAd struct {
	SourceURL string
	// InputIndex is the 0-based position of SourceURL in the run's input,
	// so a search listed twice yields distinguishable records.
	InputIndex int
	Ad         Ad
	// Page is the 1-based result page the ad was found on.
	Page int
	// Position is the 0-based index of the ad among the records of its page.
	Position int
}

// ScrapeStats counts what a crawl run went through.
type ScrapeStats struct {
	URLs         int
	FailedURLs   int
	Pages        int
	Ads          int
	Promotional  int
	MalformedAds int
}
