package mdxblog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const testSecret = "test-secret-0123456789abcdef0123"

func testPosts() fstest.MapFS {
	return fstest.MapFS{
		"a.mdx": {Data: []byte("---\ntitle: Alpha\ndate: 2024-01-01\n---\n# Alpha\n\nThe first post body.\n")},
		"b.mdx": {Data: []byte("---\ntitle: Beta\ndescription: Second post\ndate: 2024-06-01\ntags: [x]\n---\nBeta body.\n")},
	}
}

func newTestApp(t *testing.T, posts fstest.MapFS, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithContentFS(posts), WithStaticDir(t.TempDir())}, opts...)
	a := New(SiteConfig{
		Name:          "Notes",
		URL:           "https://example.com",
		Description:   "A test blog",
		Author:        "Ada",
		SessionSecret: testSecret,
	}, opts...)
	a.Echo.Logger.SetOutput(io.Discard)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serve(a, req)
}

func TestSetupRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{})
	if err := a.Setup(); err == nil {
		t.Fatal("Setup should fail without a session secret")
	}
}

func TestNewDefaults(t *testing.T) {
	a := New(SiteConfig{})
	if a.Config.Name != "Blog" || a.Config.Lang != "en" || a.Config.Addr != ":3000" {
		t.Errorf("defaults = %+v", a.Config)
	}
	if a.Config.ContentDir != "content/blog" || a.Config.Extension != ".mdx" {
		t.Errorf("content defaults = %q %q", a.Config.ContentDir, a.Config.Extension)
	}
	if len(a.Config.Themes) != 2 {
		t.Errorf("Themes = %v, want light and dark", a.Config.Themes)
	}
	if a.Posts.Extension() != ".mdx" {
		t.Errorf("lister extension = %q", a.Posts.Extension())
	}
}

func TestHome(t *testing.T) {
	a := newTestApp(t, testPosts())
	rec := get(a, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	beta, alpha := strings.Index(body, `href="/blog/b/"`), strings.Index(body, `href="/blog/a/"`)
	if beta < 0 || alpha < 0 || beta > alpha {
		t.Errorf("home should list Beta before Alpha:\n%s", body)
	}
	if !strings.Contains(body, `<body class="theme-light font-use-geist-mono blog-container">`) {
		t.Errorf("home should start on the default theme:\n%s", body)
	}
	if got := rec.Header().Get("Cache-Control"); got != "private, no-cache" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestHomeMissingContentDir(t *testing.T) {
	a := New(SiteConfig{
		SessionSecret: testSecret,
		ContentDir:    filepath.Join(t.TempDir(), "absent"),
	})
	a.Echo.Logger.SetOutput(io.Discard)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	rec := get(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `class="post-item"`) {
		t.Error("listing should be empty")
	}
}

func TestBlogRedirect(t *testing.T) {
	a := newTestApp(t, testPosts())
	rec := get(a, "/blog")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/" {
		t.Errorf("Location = %q, want /blog/", loc)
	}
}

func TestBlogIndexFilters(t *testing.T) {
	a := newTestApp(t, testPosts())

	tests := []struct {
		target  string
		want    []string
		notWant []string
	}{
		{"/blog/", []string{`href="/blog/a/"`, `href="/blog/b/"`}, nil},
		{"/blog/?tag=x", []string{`href="/blog/b/"`}, []string{`href="/blog/a/"`}},
		{"/blog/?tag=X", []string{`href="/blog/b/"`}, []string{`href="/blog/a/"`}},
		{"/blog/?q=alp", []string{`href="/blog/a/"`}, []string{`href="/blog/b/"`}},
		{"/blog/?q=zzzz", []string{"No posts match."}, []string{`href="/blog/a/"`, `href="/blog/b/"`}},
	}
	for _, tt := range tests {
		rec := get(a, tt.target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", tt.target, rec.Code)
			continue
		}
		body := rec.Body.String()
		for _, w := range tt.want {
			if !strings.Contains(body, w) {
				t.Errorf("%s: body missing %q", tt.target, w)
			}
		}
		for _, w := range tt.notWant {
			if strings.Contains(body, w) {
				t.Errorf("%s: body should not contain %q", tt.target, w)
			}
		}
	}
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, testPosts())
	rec := get(a, "/blog/a/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Alpha | Notes</title>",
		`<h1 class="post-title">Alpha</h1>`,
		`<h1 id="alpha">Alpha</h1>`,
		`The first post body.">`,
		`<link rel="canonical" href="https://example.com/blog/a/">`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestPostNotFound(t *testing.T) {
	a := newTestApp(t, testPosts())
	for _, target := range []string{"/blog/missing/", "/no/such/page/"} {
		rec := get(a, target)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "This page could not be found.") {
			t.Errorf("%s: should render the not-found page", target)
		}
	}
}

func TestPostMalformedIsNotFound(t *testing.T) {
	posts := testPosts()
	posts["bad.mdx"] = &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\n")}
	a := newTestApp(t, posts)
	if rec := get(a, "/blog/bad/"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestThemeSwitch(t *testing.T) {
	a := newTestApp(t, testPosts())

	rec := get(a, "/")
	var csrf *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			csrf = c
		}
	}
	if csrf == nil {
		t.Fatal("expected a CSRF cookie")
	}
	if !strings.Contains(rec.Body.String(), `name="_csrf" value="`+csrf.Value+`"`) {
		t.Fatal("page should embed the CSRF token")
	}

	form := url.Values{"theme": {"theme-dark"}, "_csrf": {csrf.Value}, "return": {"/blog/"}}
	req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(csrf)
	rec = serve(a, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/" {
		t.Errorf("Location = %q, want /blog/", loc)
	}
	var sess *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "blog-theme-preference" {
			sess = c
		}
	}
	if sess == nil {
		t.Fatal("expected the theme session cookie")
	}

	body := get(a, "/", sess, csrf).Body.String()
	if !strings.Contains(body, `<body class="font-use-geist-mono blog-container theme-dark">`) {
		t.Errorf("theme-dark should be applied:\n%s", body)
	}
	if strings.Contains(body, `<body class="theme-light`) {
		t.Error("theme-light should be removed")
	}
}

func TestThemeSwitchRequiresCSRF(t *testing.T) {
	a := newTestApp(t, testPosts())
	req := httptest.NewRequest(http.MethodPost, "/theme/", strings.NewReader("theme=theme-dark"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if rec := serve(a, req); rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRSS(t *testing.T) {
	a := newTestApp(t, testPosts())
	rec := get(a, "/rss.xml")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/rss+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Notes</title>",
		"<link>https://example.com/blog/b/</link>",
		"<category>x</category>",
		"<pubDate>Sat, 01 Jun 2024 00:00:00 +0000</pubDate>",
		"<description>Second post</description>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("rss missing %q", want)
		}
	}
	if strings.Index(body, "/blog/b/") > strings.Index(body, "/blog/a/") {
		t.Error("rss items should be newest first")
	}
}

func TestSitemapAndRobots(t *testing.T) {
	a := newTestApp(t, testPosts())

	body := get(a, "/sitemap.xml").Body.String()
	for _, want := range []string{
		"<loc>https://example.com</loc>",
		"<loc>https://example.com/blog/</loc>",
		"<loc>https://example.com/blog/a/</loc>",
		"<lastmod>2024-06-01</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}

	rec := get(a, "/robots.txt")
	if !strings.Contains(rec.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt = %q", rec.Body.String())
	}
}

func TestEmbeddedStylesheet(t *testing.T) {
	a := newTestApp(t, testPosts())
	rec := get(a, "/public/style.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".theme-dark") {
		t.Error("stylesheet should define the theme classes")
	}
}
