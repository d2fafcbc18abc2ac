package reddit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/biqgook/raffletool/internal/models"
)

// ErrInvalidURL is returned when a URL carries no recognizable post id.
var ErrInvalidURL = errors.New("not a reddit post url")

var scoreRe = regexp.MustCompile(`-?\d+`)

// Fetcher loads a submission snapshot (post plus full comment tree) from
// old.reddit.com.
type Fetcher struct {
	collector *colly.Collector
	baseURL   string
	log       *zap.SugaredLogger
}

// NewFetcher creates a Fetcher. delay spaces successive requests to stay
// polite with Reddit.
func NewFetcher(baseURL, userAgent string, delay time.Duration, log *zap.SugaredLogger) *Fetcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := colly.NewCollector(
		colly.AllowedDomains("old.reddit.com", "www.reddit.com", "reddit.com"),
		colly.UserAgent(userAgent),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*reddit.com*",
		Delay:       delay,
		RandomDelay: delay / 2,
	})

	return &Fetcher{
		collector: c,
		baseURL:   strings.TrimRight(baseURL, "/"),
		log:       log,
	}
}

// FetchSubmission resolves the post id from the URL and scrapes the post and
// its comments. The comment list keeps page order; deleted accounts come
// back with an empty Author.
func (f *Fetcher) FetchSubmission(postURL string) (*models.Submission, error) {
	postID := ExtractPostID(postURL)
	if postID == "" {
		return nil, errors.Wrapf(ErrInvalidURL, "url %q", postURL)
	}

	sub := &models.Submission{URL: postURL}
	c := f.collector.Clone()

	c.OnHTML("div#siteTable div.thing", func(e *colly.HTMLElement) {
		sub.ID = e.Attr("data-fullname")
		sub.Author = e.Attr("data-author")
		if sub.Author == "" {
			sub.Author = "[deleted]"
		}
		sub.Title = e.ChildText("a.title")
		sub.Body = strings.TrimSpace(e.ChildText("div.usertext-body"))
		sub.CreatedAt = parseMillisTimestamp(e.Attr("data-timestamp"))
	})

	c.OnHTML("div.commentarea div.thing.comment", func(e *colly.HTMLElement) {
		comment := models.Comment{
			ID:        e.Attr("data-fullname"),
			Author:    e.Attr("data-author"),
			Body:      strings.TrimSpace(e.ChildText("div.entry div.usertext-body")),
			Score:     parseScore(e.ChildText("div.entry span.score")),
			CreatedAt: parseCommentTime(e),
		}
		// Nesting carries the reply structure: the nearest enclosing comment
		// is the parent, top-level comments hang off the post itself.
		parent := e.DOM.ParentsFiltered("div.thing.comment").First()
		if parentID, ok := parent.Attr("data-fullname"); ok && parentID != "" {
			comment.ParentID = parentID
		} else {
			comment.ParentID = sub.ID
		}
		sub.Comments = append(sub.Comments, comment)
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = errors.Wrapf(err, "fetch %s (status %d)", r.Request.URL, r.StatusCode)
	})
	c.OnRequest(func(r *colly.Request) {
		f.log.Debugw("visiting", "url", r.URL.String())
	})

	target := fmt.Sprintf("%s/comments/%s/", f.baseURL, postID)
	if err := c.Visit(target); err != nil {
		return nil, errors.Wrapf(err, "visit %s", target)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	if sub.ID == "" {
		return nil, errors.Newf("post %s not present in response", postID)
	}

	f.log.Infow("fetched submission",
		"post_id", sub.ID, "author", sub.Author, "comments", len(sub.Comments))
	return sub, nil
}

// parseMillisTimestamp reads Reddit's data-timestamp attribute, a Unix
// timestamp in milliseconds.
func parseMillisTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(millis/1000, 0).UTC()
}

// parseCommentTime falls back from data-timestamp to the <time> element.
func parseCommentTime(e *colly.HTMLElement) time.Time {
	if ts := parseMillisTimestamp(e.Attr("data-timestamp")); !ts.IsZero() {
		return ts
	}
	if raw := e.ChildAttr("time", "datetime"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// parseScore reads the leading integer out of "5 points"; hidden scores
// come back 0.
func parseScore(raw string) int {
	m := scoreRe.FindString(raw)
	if m == "" {
		return 0
	}
	score, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return score
}
