// Package views renders the blog pages. Pages are html/template files
// embedded in the binary and exposed as templ components so callers can mix
// them with their own templ code.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/mdxblog/content"
	"github.com/eringen/mdxblog/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"formatDate":    FormatDate,
	"themeLabel":    ThemeLabel,
	"tagClass":      TagClass,
	"websiteJSONLD": WebsiteJSONLD,
	"postingJSONLD": BlogPostingJSONLD,
}

var base = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
	"templates/layout.html",
	"templates/partials.html",
))

func mustPage(name string) *template.Template {
	t := template.Must(base.Clone())
	return template.Must(t.ParseFS(templateFS, "templates/"+name)).Lookup("layout.html")
}

var (
	homeTmpl        = mustPage("home.html")
	blogTmpl        = mustPage("blog.html")
	postTmpl        = mustPage("post.html")
	notFoundTmpl    = mustPage("notfound.html")
	serverErrorTmpl = mustPage("servererror.html")
)

type listData struct {
	Page
	Posts  []content.PostSummary
	Filter Filter
}

type postData struct {
	Page
	Post    content.PostDetail
	Body    template.HTML
	Related []content.PostSummary
}

// Home renders the landing page with every post.
func Home(page Page, posts []content.PostSummary) templ.Component {
	return templ.FromGoHTML(homeTmpl, listData{Page: page, Posts: posts})
}

// BlogIndex renders the blog listing narrowed by filter.
func BlogIndex(page Page, posts []content.PostSummary, filter Filter) templ.Component {
	return templ.FromGoHTML(blogTmpl, listData{Page: page, Posts: posts, Filter: filter})
}

// Post renders a single post. The body is rendered from Markdown first so a
// rendering failure surfaces before any output is written.
func Post(page Page, post content.PostDetail, related []content.PostSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, markdown.Markdown(post.Content))
		if err != nil {
			return err
		}
		data := postData{Page: page, Post: post, Body: body, Related: related}
		return templ.FromGoHTML(postTmpl, data).Render(ctx, w)
	})
}

func NotFound(page Page) templ.Component {
	return templ.FromGoHTML(notFoundTmpl, listData{Page: page})
}

func ServerError(page Page) templ.Component {
	return templ.FromGoHTML(serverErrorTmpl, listData{Page: page})
}
