package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/mdxblog/content"
	"github.com/eringen/mdxblog/theme"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
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

var (
	dateMatcher = language.NewMatcher([]language.Tag{
		language.English,
		language.Chinese,
		language.Japanese,
	})
	dateLayouts = []string{
		"January 2, 2006",
		"2006年1月2日",
		"2006年1月2日",
	}
)

// FormatDate renders a front matter date for the site language. Dates that
// cannot be parsed are shown as written.
func FormatDate(lang, date string) string {
	t, ok := content.ParseDate(date)
	if !ok {
		return date
	}
	_, i := language.MatchStrings(dateMatcher, lang)
	return t.Format(dateLayouts[i])
}

// ThemeLabel turns a theme class into a button label: "theme-dark" is "Dark".
func ThemeLabel(value string) string {
	name := strings.TrimPrefix(value, theme.ClassPrefix)
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// FilterRelatedPosts returns posts that share at least one tag with the current post.
func FilterRelatedPosts(current content.PostSummary, posts []content.PostSummary) []content.PostSummary {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []content.PostSummary
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			tag := strings.ToLower(strings.TrimSpace(t))
			if _, ok := tagSet[tag]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

// WebsiteJSONLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJSONLD(cfg SiteConfig) template.JS {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJSONLD(data)
}

// BlogPostingJSONLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJSONLD(cfg SiteConfig, post content.PostSummary) template.JS {
	postURL := buildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": post.Description,
		"url":         postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if t, ok := content.ParseDate(post.Date); ok {
		data["datePublished"] = t.Format("2006-01-02")
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalJSONLD(data)
}

// json.Marshal escapes <, > and & so the result is safe inside <script>.
func marshalJSONLD(data map[string]interface{}) template.JS {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}
