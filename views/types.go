package views

// SiteConfig holds the site-wide settings every page renders.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
	Lang        string // BCP 47 tag used for <html lang> and date formatting
	SourceURL   string // link to the site's source repository, optional
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Page is the state shared by every layout render.
type Page struct {
	Site      SiteConfig
	Meta      PageMeta
	BodyClass string   // body class list, including exactly one theme class
	Theme     string   // active theme
	Themes    []string // choices offered by the theme form
	CSRFToken string
	Path      string // request path, used as the theme form's return target
	Static    bool   // static export: no theme form
}

// Title returns the document title.
func (p Page) Title() string {
	switch {
	case p.Meta.Title == "":
		return p.Site.Name
	case p.Site.Name == "":
		return p.Meta.Title
	default:
		return p.Meta.Title + " | " + p.Site.Name
	}
}

// Filter describes the blog index query.
type Filter struct {
	Tag   string
	Query string
	Tags  []string // every tag in use, for the tag bar
}

// Active reports whether the listing is narrowed.
func (f Filter) Active() bool {
	return f.Tag != "" || f.Query != ""
}
