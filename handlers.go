package mdxblog

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mdxblog/content"
	"github.com/eringen/mdxblog/markdown"
	"github.com/eringen/mdxblog/theme"
	"github.com/eringen/mdxblog/views"
)

const descriptionExcerptLen = 160

func (a *App) homeMeta() views.PageMeta {
	return views.PageMeta{
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "website",
	}
}

func (a *App) blogMeta() views.PageMeta {
	return views.PageMeta{
		Title:       "Blog",
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL, "blog"),
		OGType:      "website",
	}
}

func (a *App) postMeta(post content.PostDetail) views.PageMeta {
	desc := post.Description
	if desc == "" {
		desc = markdown.Excerpt(post.Content, descriptionExcerptLen)
	}
	return views.PageMeta{
		Title:       post.Title,
		Description: desc,
		URL:         BuildURL(a.Config.URL, "blog", post.Slug),
		OGType:      "article",
	}
}

func notFoundMeta() views.PageMeta {
	return views.PageMeta{Title: "Not found"}
}

func (a *App) handleHome(c echo.Context) error {
	posts := a.Posts.ListPosts(c.Request().Context())
	return Render(c, a.Views.Home(a.page(c, a.homeMeta()), posts))
}

func (a *App) handleBlog(c echo.Context) error {
	posts := a.Posts.ListPosts(c.Request().Context())
	filter := views.Filter{
		Tag:   strings.TrimSpace(c.QueryParam("tag")),
		Query: strings.TrimSpace(c.QueryParam("q")),
		Tags:  CollectTags(posts),
	}
	posts = SearchPosts(FilterByTag(posts, filter.Tag), filter.Query)
	return Render(c, a.Views.BlogIndex(a.page(c, a.blogMeta()), posts, filter))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, ok := a.Posts.GetPost(ctx, c.Param("slug"))
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, notFoundMeta())))
	}
	related := views.FilterRelatedPosts(post.PostSummary, a.Posts.ListPosts(ctx))
	return Render(c, a.Views.Post(a.page(c, a.postMeta(post)), post, related))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts := a.Posts.ListPosts(c.Request().Context())
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config, posts)
}

func (a *App) handleRSS(c echo.Context) error {
	posts := a.Posts.ListPosts(c.Request().Context())
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return writeRobots(c.Response(), a.Config)
}

// handleTheme is the theme change operation. Unknown themes select the default.
func (a *App) handleTheme(c echo.Context) error {
	value := c.FormValue("theme")
	if !a.allowedTheme(value) {
		value = theme.Default
	}
	sw := theme.NewSwitcher(theme.NewClassSet(bodyClasses...), theme.NewSessionStorage(c))
	if err := sw.Set(value); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, safeReturnPath(c.FormValue("return")))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, notFoundMeta())))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c, views.PageMeta{Title: "Error"})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
