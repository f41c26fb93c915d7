package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger receives diagnostics for swallowed failures. echo.Logger satisfies it.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// Config locates the content directory.
type Config struct {
	Dir       string // default "content/blog"
	Extension string // default ".mdx"
}

func (c *Config) setDefaults() {
	if c.Dir == "" {
		c.Dir = "content/blog"
	}
	if c.Extension == "" {
		c.Extension = ".mdx"
	}
}

// Lister reads posts from a content directory.
type Lister struct {
	fs  fs.FS
	ext string
	log Logger
}

// Option configures a Lister.
type Option func(*Lister)

// WithFS reads content from fsys instead of the configured directory.
func WithFS(fsys fs.FS) Option {
	return func(l *Lister) {
		l.fs = fsys
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger Logger) Option {
	return func(l *Lister) {
		if logger != nil {
			l.log = logger
		}
	}
}

// NewLister creates a Lister over cfg.Dir.
func NewLister(cfg Config, opts ...Option) *Lister {
	cfg.setDefaults()
	l := &Lister{
		fs:  os.DirFS(cfg.Dir),
		ext: cfg.Extension,
		log: log.New("content"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extension returns the content file extension.
func (l *Lister) Extension() string {
	return l.ext
}

// ListPosts returns every post newest first. Any failure is logged and
// yields an empty, non-nil slice.
func (l *Lister) ListPosts(ctx context.Context) []PostSummary {
	posts, err := l.Load(ctx)
	if err != nil {
		l.log.Errorf("content: list posts: %v", err)
		return []PostSummary{}
	}
	return posts
}

// GetPost returns the post stored under slug. Any failure is logged and
// reported as absent.
func (l *Lister) GetPost(ctx context.Context, slug string) (PostDetail, bool) {
	post, err := l.Fetch(ctx, slug)
	if err != nil {
		l.log.Errorf("content: get post %q: %v", slug, err)
		return PostDetail{}, false
	}
	return post, true
}

// Load is ListPosts with the failure returned.
func (l *Lister) Load(ctx context.Context) ([]PostSummary, error) {
	raws, err := ListEntries(ctx, l.fs, l.ext)
	if err != nil {
		return nil, err
	}
	posts := make([]PostSummary, 0, len(raws))
	for _, r := range raws {
		e, err := ParseEntry(r.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Name, err)
		}
		posts = append(posts, e.Summary(r.Slug))
	}
	SortByDate(posts)
	return posts, nil
}

// Fetch is GetPost with the failure returned.
func (l *Lister) Fetch(ctx context.Context, slug string) (PostDetail, error) {
	if err := ctx.Err(); err != nil {
		return PostDetail{}, err
	}
	if slug == "" || strings.ContainsAny(slug, `/\`) {
		return PostDetail{}, fmt.Errorf("%w: invalid slug %q", ErrNotFound, slug)
	}
	name := slug + l.ext
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return PostDetail{}, wrapFSError("read "+name, err)
	}
	e, err := ParseEntry(data)
	if err != nil {
		return PostDetail{}, fmt.Errorf("%s: %w", name, err)
	}
	return e.Detail(slug), nil
}
