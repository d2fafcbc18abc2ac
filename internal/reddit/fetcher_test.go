package reddit

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSubmissionRejectsInvalidURL(t *testing.T) {
	f := NewFetcher("https://old.reddit.com", "test-agent", time.Millisecond, nil)

	_, err := f.FetchSubmission("https://example.com/nothing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidURL))
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"5 points", 5},
		{"1 point", 1},
		{"-3 points", -3},
		{"score hidden", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseScore(tt.raw), "raw %q", tt.raw)
	}
}

func TestParseMillisTimestamp(t *testing.T) {
	ts := parseMillisTimestamp("1700000000000")
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), ts)

	assert.True(t, parseMillisTimestamp("").IsZero())
	assert.True(t, parseMillisTimestamp("not-a-number").IsZero())
}
