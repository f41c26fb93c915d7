package mdxblog

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sahilm/fuzzy"

	"github.com/eringen/mdxblog/content"
	"github.com/eringen/mdxblog/theme"
	"github.com/eringen/mdxblog/views"
)

// bodyClasses is the body class list before a theme is applied.
var bodyClasses = []string{theme.Default, "font-use-geist-mono", "blog-container"}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// CollectTags returns every distinct tag in posts, sorted without regard to
// case. The first spelling seen wins.
func CollectTags(posts []content.PostSummary) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			t = strings.TrimSpace(t)
			key := strings.ToLower(t)
			if t == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}

// FilterByTag keeps the posts carrying tag, compared without regard to case.
// An empty tag keeps everything.
func FilterByTag(posts []content.PostSummary, tag string) []content.PostSummary {
	if tag == "" {
		return posts
	}
	var out []content.PostSummary
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.EqualFold(strings.TrimSpace(t), tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

type postSource []content.PostSummary

func (s postSource) String(i int) string { return s[i].Title + " " + s[i].Description }
func (s postSource) Len() int            { return len(s) }

// SearchPosts fuzzy-matches query against titles and descriptions. Matches
// keep their listing order. An empty query keeps everything.
func SearchPosts(posts []content.PostSummary, query string) []content.PostSummary {
	if query == "" {
		return posts
	}
	matches := fuzzy.FindFrom(query, postSource(posts))
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	sort.Ints(idx)
	out := make([]content.PostSummary, 0, len(idx))
	for _, i := range idx {
		out = append(out, posts[i])
	}
	return out
}

// safeReturnPath keeps redirects on this site.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

func (a *App) allowedTheme(value string) bool {
	for _, t := range a.Config.Themes {
		if t == value {
			return true
		}
	}
	return false
}

// page builds the layout state for a request, applying the visitor's theme.
func (a *App) page(c echo.Context, meta views.PageMeta) views.Page {
	body := theme.NewClassSet(bodyClasses...)
	sw := theme.NewSwitcher(body, theme.Restrict(theme.NewSessionStorage(c), a.Config.Themes))
	_ = sw.Init()
	return views.Page{
		Site:      a.Config.View(),
		Meta:      meta,
		BodyClass: body.String(),
		Theme:     sw.Get(),
		Themes:    a.Config.Themes,
		CSRFToken: CsrfToken(c),
		Path:      c.Request().URL.Path,
	}
}

// staticPage builds the layout state for Build: default theme, no theme form.
func (a *App) staticPage(meta views.PageMeta) views.Page {
	body := theme.NewClassSet(bodyClasses...)
	sw := theme.NewSwitcher(body, theme.NewMemoryStorage())
	_ = sw.Init()
	return views.Page{
		Site:      a.Config.View(),
		Meta:      meta,
		BodyClass: body.String(),
		Theme:     sw.Get(),
		Themes:    a.Config.Themes,
		Static:    true,
	}
}
