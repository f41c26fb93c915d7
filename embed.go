package mdxblog

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// style.css, which defines the theme classes.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
