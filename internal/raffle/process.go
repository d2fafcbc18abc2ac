package raffle

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/biqgook/raffletool/internal/models"
)

// Engine runs the reconciliation pipeline over one submission snapshot. It
// holds no state between runs; concurrent runs against different snapshots
// are safe.
type Engine struct {
	log *zap.SugaredLogger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{log: log}
}

// Process runs the two passes over the submission and returns the spot
// assignments keyed by participant comment id, the removed-user set, and the
// annotated comments in chronological order.
//
// Pass 1 walks host replies in submission order, accumulating removals and
// recording a spot assignment on the reply's parent comment — but only when
// the parent's author is not removed as of that point. A removal announced
// after a grant does not revoke the recorded assignment; pass 2 still drops
// every comment by that user, so the stale assignment is unreachable.
func (e *Engine) Process(sub *models.Submission) (map[string]int, map[string]struct{}, []models.AnnotatedComment) {
	byID := make(map[string]*models.Comment, len(sub.Comments))
	for i := range sub.Comments {
		byID[sub.Comments[i].ID] = &sub.Comments[i]
	}

	assignments := make(map[string]int)
	removed := make(map[string]struct{})

	for _, c := range sub.Comments {
		if c.Author == "" || c.Author != sub.Author {
			continue
		}
		CollectRemovals(c.Body, removed)

		count := ExtractSpotCount(c.Body)
		if count == 0 {
			continue
		}
		parent := resolveParent(byID, c.ParentID)
		if parent == nil {
			e.log.Debugw("spot grant with unresolvable parent", "comment_id", c.ID)
			continue
		}
		if _, gone := removed[parent.Author]; gone {
			continue
		}
		assignments[parent.ID] = count
	}

	annotated := make([]models.AnnotatedComment, 0, len(sub.Comments))
	for _, c := range sub.Comments {
		if c.Author == "" || c.Author == sub.Author {
			continue
		}
		if _, gone := removed[c.Author]; gone {
			continue
		}
		annotated = append(annotated, models.AnnotatedComment{
			Comment: c,
			Spots:   assignments[c.ID],
		})
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		return annotated[i].CreatedAt.Before(annotated[j].CreatedAt)
	})

	return assignments, removed, annotated
}

// resolveParent looks a parent comment up by id. A deleted or out-of-snapshot
// parent resolves to nil and the caller skips the grant; lookup failures
// never propagate.
func resolveParent(byID map[string]*models.Comment, parentID string) *models.Comment {
	parent, ok := byID[parentID]
	if !ok || parent.Author == "" {
		return nil
	}
	return parent
}

// Reconcile is the engine's boundary contract. It annotates the submission's
// comments with parsed spot counts and, when an official allocation is
// available, cross-validates the two. Allocation source precedence: the
// supplied text, then the post body, then the best-scoring host comment.
// When none yields an allocation the result carries comments only.
func (e *Engine) Reconcile(sub *models.Submission, allocationText string) *models.ReconcileResult {
	_, removed, comments := e.Process(sub)
	e.log.Debugw("processed submission",
		"comments", len(comments), "removed_users", len(removed))

	official := models.Allocation{}
	if strings.TrimSpace(allocationText) != "" {
		official = ParseAllocation(allocationText)
	}
	if len(official) == 0 && strings.TrimSpace(sub.Body) != "" {
		official = ParseAllocation(sub.Body)
	}
	if len(official) == 0 {
		official = SelectBestAllocation(hostReplies(sub))
	}

	result := &models.ReconcileResult{Comments: comments}
	if len(official) == 0 {
		return result
	}

	parsed := make(map[string]int)
	for _, c := range comments {
		if c.Spots > 0 {
			parsed[c.Author] += c.Spots
		}
	}

	result.OfficialAllocation = official
	result.Validation = Validate(parsed, official)

	for i := range result.Comments {
		if numbers, ok := official[result.Comments[i].Author]; ok {
			count := len(numbers)
			result.Comments[i].OfficialSpots = &count
			result.Comments[i].OfficialSpotNumbers = numbers
		}
	}

	return result
}

func hostReplies(sub *models.Submission) []models.Comment {
	var replies []models.Comment
	for _, c := range sub.Comments {
		if c.Author != "" && c.Author == sub.Author {
			replies = append(replies, c)
		}
	}
	return replies
}
