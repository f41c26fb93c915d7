package mdxblog

import (
	"io/fs"

	"github.com/eringen/mdxblog/theme"
	"github.com/eringen/mdxblog/views"
)

// SiteConfig holds all configuration for an mdxblog site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for the home page and JSON-LD
	Lang        string `mapstructure:"lang"`        // Site language (default "en")
	SourceURL   string `mapstructure:"source_url"`  // Link to the site's source repository

	Addr       string `mapstructure:"addr"`        // Listen address (default ":3000")
	ContentDir string `mapstructure:"content_dir"` // Post directory (default "content/blog")
	Extension  string `mapstructure:"extension"`   // Post file extension (default ".mdx")

	SessionSecret string   `mapstructure:"session_secret"` // Required: session cookie secret
	CookieSecure  bool     `mapstructure:"cookie_secure"`  // Set true for HTTPS
	Themes        []string `mapstructure:"themes"`         // Selectable themes (default light and dark)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.Extension == "" {
		c.Extension = ".mdx"
	}
	if len(c.Themes) == 0 {
		c.Themes = []string{theme.Default, "theme-dark"}
	}
}

// View returns the subset of the config that templates render.
func (c SiteConfig) View() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
		Lang:        c.Lang,
		SourceURL:   c.SourceURL,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs during Setup, after the built-in routes.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the default page templates. Nil fields keep the default.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		if v.Home != nil {
			a.Views.Home = v.Home
		}
		if v.BlogIndex != nil {
			a.Views.BlogIndex = v.BlogIndex
		}
		if v.Post != nil {
			a.Views.Post = v.Post
		}
		if v.NotFound != nil {
			a.Views.NotFound = v.NotFound
		}
		if v.ServerError != nil {
			a.Views.ServerError = v.ServerError
		}
	}
}

// WithContentFS reads posts from fsys instead of ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}
