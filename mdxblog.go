// Package mdxblog serves a personal blog from a directory of MDX posts.
// It renders a home page, a blog index, one page per post, an RSS feed and a
// sitemap, and remembers each visitor's theme in a session cookie.
//
// Every request re-reads the content directory, so new or edited posts show
// up without a restart. Build writes the same pages to disk for static hosting.
package mdxblog

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/mdxblog/content"
	"github.com/eringen/mdxblog/views"
)

// ViewFuncs holds the components the App renders pages with. Replace any of
// them with WithViews to customise the markup.
type ViewFuncs struct {
	Home        func(page views.Page, posts []content.PostSummary) templ.Component
	BlogIndex   func(page views.Page, posts []content.PostSummary, filter views.Filter) templ.Component
	Post        func(page views.Page, post content.PostDetail, related []content.PostSummary) templ.Component
	NotFound    func(page views.Page) templ.Component
	ServerError func(page views.Page) templ.Component
}

// DefaultViews returns the built-in templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		BlogIndex:   views.BlogIndex,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central mdxblog application. It wires together the content
// lister, handlers, middleware, and page templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Posts  *content.Lister
	Views  ViewFuncs

	customRoutes []func(*App)
	staticDir    string
	contentFS    fs.FS
	ready        bool
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     DefaultViews(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	listerOpts := []content.Option{content.WithLogger(e.Logger)}
	if a.contentFS != nil {
		listerOpts = append(listerOpts, content.WithFS(a.contentFS))
	}
	a.Posts = content.NewLister(content.Config{
		Dir:       cfg.ContentDir,
		Extension: cfg.Extension,
	}, listerOpts...)

	return a
}

// Setup installs middleware and routes. Start calls it; tests call it
// directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("mdxblog: SessionSecret is required")
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start sets the App up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets are served under /public/ ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/style.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleRSS)

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.POST("/theme/", a.handleTheme)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
