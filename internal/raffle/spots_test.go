package raffle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSpotCountExplicitPhrase(t *testing.T) {
	tests := []struct {
		reply string
		want  int
	}{
		{"You got 1 spot", 1},
		{"You got 2 spots", 2},
		{"you got 10 spots, please send payment", 10},
		{"You got 88 spots", 88},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSpotCount(tt.reply), "reply %q", tt.reply)
	}
}

func TestExtractSpotCountCountsNumbersNotValues(t *testing.T) {
	// A bare number after "you got" names one spot, not 88 of them.
	assert.Equal(t, 1, ExtractSpotCount("You got 88"))
	assert.Equal(t, 10, ExtractSpotCount("You got 46, 78, 84, 44, 60, 85, 63, 81, 65, 69"))
}

func TestExtractSpotCountStopsAtMarkers(t *testing.T) {
	reply := "You got 12, 15 please follow the payment link within 24 hours"
	assert.Equal(t, 2, ExtractSpotCount(reply))

	reply = "You got 3, 7, 9 if you want more let me know about the 5 left"
	assert.Equal(t, 3, ExtractSpotCount(reply))
}

func TestExtractSpotCountOnlyFirstYouGotLine(t *testing.T) {
	reply := "You got 4, 8\nyou got 1, 2, 3 (ignore, second line)"
	assert.Equal(t, 2, ExtractSpotCount(reply))
}

func TestExtractSpotCountCasualLists(t *testing.T) {
	tests := []struct {
		reply string
		want  int
	}{
		{"16, 3", 2},
		{"1, 2, 8, 9, 24, 11, 7, 25, 13, 14", 10},
		{"STARTER 17", 1},
		{"thanks!\n20, 21", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSpotCount(tt.reply), "reply %q", tt.reply)
	}
}

func TestExtractSpotCountFiltersNoiseNumbers(t *testing.T) {
	// Years and large ids are not spot numbers.
	assert.Equal(t, 2, ExtractSpotCount("2024, 16, 3"))
	assert.Equal(t, 0, ExtractSpotCount("see you in 2024"))
}

func TestExtractSpotCountAlternatePhrasings(t *testing.T) {
	tests := []struct {
		reply string
		want  int
	}{
		{"I have assigned you 5 spots", 5},
		{"3 spots assigned, good luck", 3},
		{"congrats, you just got 4 spots in the raffle", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractSpotCount(tt.reply), "reply %q", tt.reply)
	}
}

func TestExtractSpotCountNoNumbers(t *testing.T) {
	assert.Equal(t, 0, ExtractSpotCount("random chatter with no numbers"))
	assert.Equal(t, 0, ExtractSpotCount(""))
	assert.Equal(t, 0, ExtractSpotCount("payment received, thanks"))
}
