package raffle

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biqgook/raffletool/internal/models"
)

func TestParseAllocationNumberedPaid(t *testing.T) {
	text := "1 u/shawnfinch2 PAID\n2 u/allidoiswoof PAID\n3 u/allidoiswoof PAID"
	alloc := ParseAllocation(text)

	assert.Equal(t, []int{1}, alloc["shawnfinch2"])
	assert.Equal(t, []int{2, 3}, alloc["allidoiswoof"])
	assert.Equal(t, 3, alloc.TotalSpots())
}

func TestParseAllocationNoMixedPatterns(t *testing.T) {
	// Once the status-marker pattern matches anywhere, it is used for the
	// whole text; the bare line is not picked up by a lower-priority pattern.
	text := "1 u/alice PAID\n2 u/bob"
	alloc := ParseAllocation(text)

	assert.Equal(t, []int{1}, alloc["alice"])
	assert.NotContains(t, alloc, "bob")
}

func TestParseAllocationRangeExpansion(t *testing.T) {
	alloc := ParseAllocation("5-7 u/alice")
	assert.Equal(t, []int{5, 6, 7}, alloc["alice"])
}

func TestParseAllocationDottedList(t *testing.T) {
	alloc := ParseAllocation("1. u/carol\n2. u/dave\n3. u/carol")
	assert.Equal(t, []int{1, 3}, alloc["carol"])
	assert.Equal(t, []int{2}, alloc["dave"])
}

func TestParseAllocationPipeDelimited(t *testing.T) {
	alloc := ParseAllocation("1 | u/erin\n2 | u/frank")
	assert.Equal(t, []int{1}, alloc["erin"])
	assert.Equal(t, []int{2}, alloc["frank"])
}

func TestParseAllocationUsernamesExact(t *testing.T) {
	// No case folding; hyphens and digits are part of the username.
	alloc := ParseAllocation("1 u/doublechen-94 PAID\n2 u/DoubleChen-94 PAID")
	assert.Equal(t, []int{1}, alloc["doublechen-94"])
	assert.Equal(t, []int{2}, alloc["DoubleChen-94"])
}

func TestParseAllocationUnrecognizedText(t *testing.T) {
	alloc := ParseAllocation("no listing here, just chatter")
	assert.Empty(t, alloc)
}

func allocationComment(author string, users ...string) models.Comment {
	var b strings.Builder
	for i, user := range users {
		fmt.Fprintf(&b, "%d u/%s PAID\n", i+1, user)
	}
	return models.Comment{Author: author, Body: b.String()}
}

func TestSelectBestAllocationPicksGreatestTotal(t *testing.T) {
	small := allocationComment("host", "a", "b", "c", "d")
	big := allocationComment("host", "a", "b", "c", "d", "e", "f")

	best := SelectBestAllocation([]models.Comment{small, big})
	require.NotEmpty(t, best)
	assert.Equal(t, 6, best.TotalSpots())
}

func TestSelectBestAllocationFirstGreatestWinsTies(t *testing.T) {
	first := allocationComment("host", "a", "b", "c", "d", "e")
	second := allocationComment("host", "v", "w", "x", "y", "z")

	best := SelectBestAllocation([]models.Comment{first, second})
	require.Equal(t, 5, best.TotalSpots())
	// An equal-total later candidate must not replace the first one.
	assert.Contains(t, best, "a")
	assert.NotContains(t, best, "v")
}

func TestSelectBestAllocationRequiresQualifyingScore(t *testing.T) {
	// Three pattern hits and few mentions: below both thresholds.
	weak := models.Comment{Author: "host", Body: "1 u/a PAID\n2 u/b PAID\n3 u/c PAID"}
	best := SelectBestAllocation([]models.Comment{weak})
	assert.Empty(t, best)
}
