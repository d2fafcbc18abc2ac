package raffle

import (
	"regexp"
	"strings"

	"github.com/biqgook/raffletool/internal/models"
)

// removalPhrases are the fixed announcements hosts post when dropping unpaid
// participants. Matched against the lower-cased reply body.
var removalPhrases = []string{
	"unpaid participants: your unpaid slots have been removed",
	"removed due to lack of payment",
	"slots have been removed",
	"attention unpaid participants",
}

var (
	mentionRe     = regexp.MustCompile(`u/(\w+)`)
	loneMentionRe = regexp.MustCompile(`^/?u/(\w+)$`)
)

// CollectRemovals scans one host reply and adds any removed usernames to the
// set. Mentions inside a removal announcement count, and a reply whose whole
// body is a single at-mention counts unconditionally. Removals accumulate;
// nothing ever leaves the set within a run.
func CollectRemovals(body string, removed map[string]struct{}) {
	lowered := strings.ToLower(strings.TrimSpace(body))
	for _, phrase := range removalPhrases {
		if strings.Contains(lowered, phrase) {
			for _, m := range mentionRe.FindAllStringSubmatch(body, -1) {
				removed[m[1]] = struct{}{}
			}
			break
		}
	}
	if m := loneMentionRe.FindStringSubmatch(strings.TrimSpace(body)); m != nil {
		removed[m[1]] = struct{}{}
	}
}

// DetectRemovedUsers runs CollectRemovals over a sequence of host replies.
func DetectRemovedUsers(hostReplies []models.Comment) map[string]struct{} {
	removed := make(map[string]struct{})
	for _, c := range hostReplies {
		CollectRemovals(c.Body, removed)
	}
	return removed
}
