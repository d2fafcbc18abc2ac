package raffle

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// explicitSpotsRe matches the canonical "you got N spots" phrasing.
	explicitSpotsRe = regexp.MustCompile(`you got (\d+) spots?`)
	// numberTokenRe captures standalone integer tokens.
	numberTokenRe = regexp.MustCompile(`\b\d+\b`)
	// commaListRe captures a run of two or more comma-separated integers.
	commaListRe = regexp.MustCompile(`\d+(?:\s*,\s*\d+)+`)
	// trailingNumRe captures a single 1-2 digit integer at the end of a line.
	trailingNumRe = regexp.MustCompile(`\b(\d{1,2})\s*$`)

	assignedSpotsRe = regexp.MustCompile(`assigned.*?(\d+)\s+spots?`)
	spotsAssignedRe = regexp.MustCompile(`(\d+)\s+spots?\s+assigned`)
	gotSpotsRe      = regexp.MustCompile(`got\s+(\d+)\s+spots?`)
)

// stopMarkers end the scanned region after "you got"; anything past the first
// marker present is payment boilerplate, not spot numbers.
var stopMarkers = []string{"please follow", "send payment", "after payment", "if you", "\n"}

// Spot numbers above this are treated as noise (years, order ids).
const maxSpotNumber = 100

// spotRule is one heuristic in the extraction chain. It reports the spot
// count and whether it fired; a rule that does not fire defers to the next.
type spotRule struct {
	name  string
	apply func(text string) (int, bool)
}

var spotRules = []spotRule{
	{"explicit-count", explicitCount},
	{"you-got-list", youGotList},
	{"casual-number-line", casualNumberLine},
	{"alternate-phrasing", alternatePhrasing},
}

// ExtractSpotCount derives the number of spots granted by a host reply.
// Rules run in order, first hit wins; unparseable text yields 0, never an
// error, since replies are uncontrolled natural language.
func ExtractSpotCount(reply string) int {
	text := strings.ToLower(strings.TrimSpace(reply))
	for _, rule := range spotRules {
		if count, ok := rule.apply(text); ok {
			return count
		}
	}
	return 0
}

// explicitCount handles "you got N spots", where N names the count directly.
func explicitCount(text string) (int, bool) {
	m := explicitSpotsRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// youGotList counts the spot numbers listed after "you got" on the first
// line that contains the phrase. Each number names one granted spot, so
// "you got 88" is a single spot, not 88 of them.
func youGotList(text string) (int, bool) {
	if !strings.Contains(text, "you got") {
		return 0, false
	}
	var line string
	for _, l := range strings.Split(text, "\n") {
		if strings.Contains(l, "you got") {
			line = strings.TrimSpace(l)
			break
		}
	}
	if line == "" {
		return 0, false
	}
	after := strings.SplitN(line, "you got", 2)[1]
	for _, marker := range stopMarkers {
		if idx := strings.Index(after, marker); idx >= 0 {
			after = after[:idx]
			break
		}
	}
	numbers := numberTokenRe.FindAllString(after, -1)
	if len(numbers) == 0 {
		return 0, false
	}
	return len(numbers), true
}

// casualNumberLine handles replies that just list spot numbers with no
// framing phrase, e.g. "16, 3" or a lone "17" ending the first line. Only
// the first two lines are inspected; integers outside [1, maxSpotNumber]
// are discarded as noise.
func casualNumberLine(text string) (int, bool) {
	lines := strings.Split(text, "\n")
	limit := 2
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, re := range []*regexp.Regexp{commaListRe, trailingNumRe} {
			match := re.FindString(line)
			if match == "" {
				continue
			}
			valid := 0
			for _, tok := range numberTokenRe.FindAllString(match, -1) {
				if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= maxSpotNumber {
					valid++
				}
			}
			if valid > 0 {
				return valid, true
			}
		}
	}
	return 0, false
}

// alternatePhrasing covers fallback wordings where N names the count.
func alternatePhrasing(text string) (int, bool) {
	for _, re := range []*regexp.Regexp{assignedSpotsRe, spotsAssignedRe, gotSpotsRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
