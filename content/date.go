package content

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a front matter date leniently. Dates without a zone are
// read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type datedPost struct {
	post PostSummary
	at   time.Time
	ok   bool
}

// SortByDate orders posts newest first. Posts with a missing or unparseable
// date go last. Ties are broken by slug.
func SortByDate(posts []PostSummary) {
	dated := make([]datedPost, len(posts))
	for i, p := range posts {
		at, ok := ParseDate(p.Date)
		dated[i] = datedPost{post: p, at: at, ok: ok}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		switch {
		case a.ok && b.ok && !a.at.Equal(b.at):
			return a.at.After(b.at)
		case a.ok != b.ok:
			return a.ok
		default:
			return a.post.Slug < b.post.Slug
		}
	})
	for i := range dated {
		posts[i] = dated[i].post
	}
}
