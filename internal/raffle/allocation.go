package raffle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/biqgook/raffletool/internal/models"
)

type allocKind int

const (
	allocSingle allocKind = iota // one spot number, one username
	allocRange                   // inclusive spot range, one username
	allocMulti                   // comma-separated spot numbers, one username
)

// numStart keeps a leading digit run from starting mid-number or on the
// right half of a range like "5-7", which the range pattern must consume
// whole.
const numStart = `(?:^|[^\d-])`

// allocPatterns are the structural forms an official allocation listing can
// take, in priority order. The first pattern that yields at least one entry
// is used for the entire text; matches are never merged across patterns.
var allocPatterns = []struct {
	name string
	re   *regexp.Regexp
	kind allocKind
}{
	{"numbered-paid", regexp.MustCompile(numStart + `(\d+)\s+u/([\w\-]+)\s+PAID`), allocSingle},
	{"numbered-bare", regexp.MustCompile(numStart + `(\d+)\s+u/([\w\-]+)`), allocSingle},
	{"pipe-delimited", regexp.MustCompile(numStart + `(\d+)\s*\|\s*u/([\w\-]+)`), allocSingle},
	{"dotted-list", regexp.MustCompile(numStart + `(\d+)\.\s+u/([\w\-]+)`), allocSingle},
	{"spot-range", regexp.MustCompile(`(\d+)-(\d+)\s+u/([\w\-]+)`), allocRange},
	{"comma-multi", regexp.MustCompile(`([\d,\s]+)\s+u/([\w\-]+)`), allocMulti},
}

// ParseAllocation extracts the official spot allocation from a host-authored
// listing. Usernames are kept exactly as captured, no case folding; spot
// numbers are appended in appearance order, and a username may hold several
// spots. An unrecognized text yields an empty allocation, never an error.
func ParseAllocation(text string) models.Allocation {
	for _, p := range allocPatterns {
		matches := p.re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		alloc := models.Allocation{}
		for _, m := range matches {
			switch p.kind {
			case allocSingle:
				spot, err := strconv.Atoi(m[len(m)-2])
				if err != nil {
					continue
				}
				user := m[len(m)-1]
				alloc[user] = append(alloc[user], spot)
			case allocRange:
				start, err1 := strconv.Atoi(m[1])
				end, err2 := strconv.Atoi(m[2])
				if err1 != nil || err2 != nil || start > end {
					continue
				}
				user := m[3]
				for spot := start; spot <= end; spot++ {
					alloc[user] = append(alloc[user], spot)
				}
			case allocMulti:
				user := m[2]
				for _, tok := range strings.Split(m[1], ",") {
					tok = strings.TrimSpace(tok)
					if spot, err := strconv.Atoi(tok); err == nil {
						alloc[user] = append(alloc[user], spot)
					}
				}
			}
		}
		if len(alloc) > 0 {
			return alloc
		}
	}
	return models.Allocation{}
}

// allocHintRes score how allocation-like a host comment looks. Looser than
// the parse patterns on purpose: scoring tolerates case variation the parser
// itself does not.
var allocHintRes = []*regexp.Regexp{
	regexp.MustCompile(`(?mi)\d+\s+u/[\w\-]+\s+(?:PAID|paid)`),
	regexp.MustCompile(`(?m)\d+\s+u/[\w\-]+\s*$`),
	regexp.MustCompile(`(?mi)\d+\.\s+u/[\w\-]+`),
	regexp.MustCompile(`(?mi)\|\s*\d+\s*\|\s*u/[\w\-]+`),
	regexp.MustCompile(`(?mi)\d+\s*\|\s*u/[\w\-]+`),
}

var mentionScanRe = regexp.MustCompile(`u/[\w\-]+`)

// Thresholds for a host comment to qualify as an allocation candidate.
const (
	minPatternHits = 3
	minMentions    = 10
)

// SelectBestAllocation scans host comments for an allocation listing when the
// post body has none. A comment qualifies when it has more than
// minPatternHits structural matches or more than minMentions at-mentions;
// among qualifiers the strictly greatest spot total wins, and a later comment
// with an equal total never replaces an earlier one.
func SelectBestAllocation(hostComments []models.Comment) models.Allocation {
	best := models.Allocation{}
	maxSpots := 0
	for _, c := range hostComments {
		hits := 0
		for _, re := range allocHintRes {
			hits += len(re.FindAllString(c.Body, -1))
		}
		mentions := len(mentionScanRe.FindAllString(c.Body, -1))
		if hits <= minPatternHits && mentions <= minMentions {
			continue
		}
		alloc := ParseAllocation(c.Body)
		if total := alloc.TotalSpots(); total > maxSpots {
			best = alloc
			maxSpots = total
		}
	}
	return best
}
