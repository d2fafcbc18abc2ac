package raffle

import (
	"regexp"
	"strconv"

	"github.com/biqgook/raffletool/internal/models"
)

// pricePatterns cover the ways hosts write the per-spot price into a title.
// priceGroup points at the capture holding the price, since the pipe form
// captures the spot count first.
var pricePatterns = []struct {
	re         *regexp.Regexp
	priceGroup int
}{
	{regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s*per\s*spot`), 1},
	{regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s*/\s*spot`), 1},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*dollars?\s*per\s*spot`), 1},
	{regexp.MustCompile(`(?i)at\s*\$(\d+(?:\.\d{2})?)\s*each`), 1},
	{regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)/ea`), 1},
	{regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s*ea\b`), 1},
	{regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)/each`), 1},
	{regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s*each`), 1},
	{regexp.MustCompile(`(?i)@\s*\$(\d+(?:\.\d{2})?)`), 1},
	{regexp.MustCompile(`(?i)\|\s*(\d+)\s*spots?\s*at\s*\$(\d+(?:\.\d{2})?)`), 2},
	{regexp.MustCompile(`(?i)\|\s*\$(\d+(?:\.\d{2})?)\s*per`), 1},
	{regexp.MustCompile(`(?i)\$(\d+(?:\.\d{2})?)\s*per\s*entry`), 1},
	{regexp.MustCompile(`(?i)cost[s]?:\s*\$(\d+(?:\.\d{2})?)`), 1},
	{regexp.MustCompile(`(?i)price[s]?:\s*\$(\d+(?:\.\d{2})?)`), 1},
}

// spotCountPatterns cover the total-spot-count phrasings; the range form
// captures two numbers and the higher one wins.
var spotCountPatterns = []struct {
	re      *regexp.Regexp
	isRange bool
}{
	{regexp.MustCompile(`(?i)(\d+)-(\d+)\s+spots?`), true},
	{regexp.MustCompile(`(?i)(\d+)\s*spots?\b`), false},
	{regexp.MustCompile(`(?i)\|\s*(\d+)\s+spots?`), false},
	{regexp.MustCompile(`(?i)up\s+to\s+(\d+)\s+spots?`), false},
	{regexp.MustCompile(`(?i)(\d+)\s+entries?\b`), false},
	{regexp.MustCompile(`(?i)(\d+)\s+slots?\b`), false},
}

// ExtractPricePerSpot pulls the per-spot price out of a post title, or 0
// when no recognized phrasing is present.
func ExtractPricePerSpot(title string) float64 {
	for _, p := range pricePatterns {
		m := p.re.FindStringSubmatch(title)
		if m == nil || p.priceGroup >= len(m) {
			continue
		}
		if price, err := strconv.ParseFloat(m[p.priceGroup], 64); err == nil {
			return price
		}
	}
	return 0
}

// ExtractTotalSpots pulls the advertised total spot count out of a post
// title, or 0 when absent. A range like "45-50 spots" yields the higher end.
func ExtractTotalSpots(title string) int {
	for _, p := range spotCountPatterns {
		m := p.re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		if p.isRange {
			lo, err1 := strconv.Atoi(m[1])
			hi, err2 := strconv.Atoi(m[2])
			if err1 != nil || err2 != nil {
				continue
			}
			if lo > hi {
				return lo
			}
			return hi
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

// SummarizeTitle derives the financial summary from a post title. Returns
// nil when neither a price nor a spot count was found.
func SummarizeTitle(title string) *models.RaffleSummary {
	price := ExtractPricePerSpot(title)
	spots := ExtractTotalSpots(title)
	if price == 0 && spots == 0 {
		return nil
	}
	return &models.RaffleSummary{
		PricePerSpot: price,
		TotalSpots:   spots,
		TotalValue:   price * float64(spots),
	}
}
