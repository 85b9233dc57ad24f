package olx

import (
	"fmt"
	"iter"
	"strings"

	"olx-scraper/config"
	"olx-scraper/models"
	"olx-scraper/scraper/render"
	"olx-scraper/utils"
)

const (
	adListID         = "main-ad-list"
	itemClass        = "item"
	promotionalClass = "list_native"
	adLinkClass      = "OLXad-list-link"
	adPriceClass     = "OLXad-list-price"
)

// ItemPolicy decides what a malformed ad item does to the rest of its page.
type ItemPolicy int

const (
	// SkipItem drops the malformed item and keeps extracting the page.
	SkipItem ItemPolicy = iota
	// AbortPage yields the ExtractionError and stops extracting the page.
	AbortPage
)

func ParseItemPolicy(s string) (ItemPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case config.ItemPolicySkip, "":
		return SkipItem, nil
	case config.ItemPolicyAbort:
		return AbortPage, nil
	default:
		return SkipItem, fmt.Errorf("%w: %q", config.ErrUnknownItemPolicy, s)
	}
}

// ExtractStats counts the items an Extractor did not turn into ads.
type ExtractStats struct {
	Promotional int
	Malformed   int
}

// Extractor reads ad records off result pages.
type Extractor struct {
	policy ItemPolicy
	stats  ExtractStats
}

func NewExtractor(policy ItemPolicy) *Extractor {
	return &Extractor{policy: policy}
}

func (e *Extractor) Stats() ExtractStats {
	return e.stats
}

// Extract returns the ads of doc in display order. Promotional placements
// are skipped. A missing ad list is a StructureError and ends the sequence.
func (e *Extractor) Extract(doc render.Document) iter.Seq2[models.Ad, error] {
	return func(yield func(models.Ad, error) bool) {
		list, ok := doc.FindID(adListID)
		if !ok {
			yield(models.Ad{}, &StructureError{URL: doc.URL(), Element: "#" + adListID})
			return
		}

		for i, item := range list.FindAllClass(itemClass) {
			if item.HasClass(promotionalClass) {
				e.stats.Promotional++
				continue
			}

			ad, err := parseItem(doc.URL(), i, item)
			if err != nil {
				e.stats.Malformed++
				if e.policy == AbortPage {
					yield(models.Ad{}, err)
					return
				}
				utils.Warn("Skipping item: %v", err)
				continue
			}

			if !yield(ad, nil) {
				return
			}
		}
	}
}

func parseItem(pageURL string, index int, item render.Element) (models.Ad, error) {
	link, ok := item.FindClass(adLinkClass)
	if !ok {
		return models.Ad{}, &ExtractionError{URL: pageURL, Index: index, Reason: "link element ." + adLinkClass + " missing"}
	}
	href, _ := link.Attr("href")
	if strings.TrimSpace(href) == "" {
		return models.Ad{}, &ExtractionError{URL: pageURL, Index: index, Reason: "link element has no href"}
	}

	id, _ := link.Attr("id")
	name, _ := link.Attr("title")

	var price string
	if priceElem, ok := item.FindClass(adPriceClass); ok {
		// Rendered prices wrap across lines ("R$\n 1.500").
		price = strings.Join(strings.Fields(priceElem.Text()), " ")
	}

	return models.Ad{
		ID:    id,
		Name:  name,
		Link:  href,
		Price: price,
	}, nil
}
