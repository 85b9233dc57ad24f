package services

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintReport writes the report tables to w. Prices use Brazilian
// number formatting.
func PrintReport(w io.Writer, report Report) {
	p := message.NewPrinter(language.BrazilianPortuguese)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                      OLX Market Insights                     │")
	fmt.Fprintln(w, "├───────────────────────────────┬──────────────────────────────┤")
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Total Ads", report.TotalAds)
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Ads With Price", report.PricedAds)
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Ads Without Price", report.UnpricedAds)
	fmt.Fprintf(w, "│ %-29s │ %-28d │\n", "Repeated Links", report.DuplicateAds)
	fmt.Fprintf(w, "│ %-29s │ %-28s │\n", "Average Price", brl(p, report.AveragePrice))
	fmt.Fprintf(w, "│ %-29s │ %-28s │\n", "Minimum Price", brl(p, report.MinPrice))
	fmt.Fprintf(w, "│ %-29s │ %-28s │\n", "Maximum Price", brl(p, report.MaxPrice))
	fmt.Fprintln(w, "└───────────────────────────────┴──────────────────────────────┘")

	if report.MostExpensive.Link != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────────┐")
		fmt.Fprintln(w, "│                       Most Expensive Ad                      │")
		fmt.Fprintln(w, "├───────────────────────────────┬──────────────────────────────┤")
		fmt.Fprintf(w, "│ %-29s │ %-28s │\n", "Price", brl(p, report.MaxPrice))
		fmt.Fprintf(w, "│ %-29s │ %-28s │\n", "OLX ID", truncateText(report.MostExpensive.ID, 28))
		fmt.Fprintln(w, "└───────────────────────────────┴──────────────────────────────┘")
		fmt.Fprintf(w, "Name: %s\n", report.MostExpensive.Name)
		fmt.Fprintf(w, "Link: %s\n", report.MostExpensive.Link)
	}

	if len(report.AdsBySource) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌──────────────────────────────────────────────┬───────────────┐")
	fmt.Fprintln(w, "│ Ads per Search URL                           │ Count         │")
	fmt.Fprintln(w, "├──────────────────────────────────────────────┼───────────────┤")
	for _, src := range sortedSources(report.AdsBySource) {
		fmt.Fprintf(w, "│ %-44s │ %-13d │\n", truncateText(src, 44), report.AdsBySource[src])
	}
	fmt.Fprintln(w, "└──────────────────────────────────────────────┴───────────────┘")
}

func brl(p *message.Printer, v float64) string {
	return p.Sprintf("R$ %.2f", v)
}
