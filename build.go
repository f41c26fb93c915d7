package mdxblog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/mdxblog/views"
)

// maxConcurrentPages bounds the number of post pages rendered at once.
const maxConcurrentPages = 8

// Build writes the whole site as static files under outDir. Unlike the
// server, Build fails on the first unreadable or malformed post instead of
// publishing a partial site.
func (a *App) Build(ctx context.Context, outDir string) error {
	posts, err := a.Posts.Load(ctx)
	if err != nil {
		return fmt.Errorf("mdxblog: build: %w", err)
	}

	pages := map[string]templ.Component{
		"index.html":      a.Views.Home(a.staticPage(a.homeMeta()), posts),
		"blog/index.html": a.Views.BlogIndex(a.staticPage(a.blogMeta()), posts, views.Filter{Tags: CollectTags(posts)}),
		"404.html":        a.Views.NotFound(a.staticPage(notFoundMeta())),
	}
	for name, cmp := range pages {
		if err := writeComponent(ctx, filepath.Join(outDir, name), cmp); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for _, p := range posts {
		g.Go(func() error {
			post, err := a.Posts.Fetch(gctx, p.Slug)
			if err != nil {
				return fmt.Errorf("mdxblog: build %s: %w", p.Slug, err)
			}
			related := views.FilterRelatedPosts(post.PostSummary, posts)
			cmp := a.Views.Post(a.staticPage(a.postMeta(post)), post, related)
			return writeComponent(gctx, filepath.Join(outDir, "blog", p.Slug, "index.html"), cmp)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	feeds := map[string]func(io.Writer) error{
		"rss.xml":     func(w io.Writer) error { return writeRSS(w, a.Config, posts) },
		"sitemap.xml": func(w io.Writer) error { return writeSitemap(w, a.Config, posts) },
		"robots.txt":  func(w io.Writer) error { return writeRobots(w, a.Config) },
	}
	for name, fn := range feeds {
		if err := writeFile(filepath.Join(outDir, name), fn); err != nil {
			return err
		}
	}

	publicDir := filepath.Join(outDir, "public")
	if info, err := os.Stat(a.staticDir); err == nil && info.IsDir() {
		if err := copyTree(publicDir, os.DirFS(a.staticDir)); err != nil {
			return err
		}
	}
	embeddedFS, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		return err
	}
	return copyTree(publicDir, embeddedFS)
}

func writeComponent(ctx context.Context, path string, cmp templ.Component) error {
	return writeFile(path, func(w io.Writer) error {
		return cmp.Render(ctx, w)
	})
}

func writeFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mdxblog: build: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mdxblog: build: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("mdxblog: build %s: %w", path, err)
	}
	return f.Close()
}

// copyTree copies every regular file in fsys under dir, overwriting.
func copyTree(dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		return writeFile(filepath.Join(dir, filepath.FromSlash(p)), func(w io.Writer) error {
			src, err := fsys.Open(p)
			if err != nil {
				return err
			}
			defer src.Close()
			_, err = io.Copy(w, src)
			return err
		})
	})
}
