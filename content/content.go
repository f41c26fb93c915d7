// Package content loads blog posts from a flat directory of MDX files.
//
// Every call re-reads the directory; nothing is cached. ListPosts and GetPost
// are fail-soft: failures are logged and collapse to an empty listing or an
// absent post. Load and Fetch expose the same operations with the failure
// kind intact (ErrNotFound, ErrUnreadable, ErrMalformed).
package content

import "errors"

var (
	// ErrNotFound reports a missing content directory or post file.
	ErrNotFound = errors.New("content: not found")
	// ErrUnreadable reports a directory or file that exists but cannot be read.
	ErrUnreadable = errors.New("content: unreadable")
	// ErrMalformed reports front matter that could not be decoded.
	ErrMalformed = errors.New("content: malformed front matter")
)

// PostSummary is the listing form of a post.
type PostSummary struct {
	Slug        string
	Title       string
	Description string
	Date        string
	Tags        []string
}

// Link returns the routing path of the post.
func (p PostSummary) Link() string {
	return "/blog/" + p.Slug + "/"
}

// PostDetail is a post with its raw, unrendered body.
type PostDetail struct {
	PostSummary
	Content string
}
