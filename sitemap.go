package mdxblog

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/eringen/mdxblog/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func writeSitemap(w io.Writer, cfg SiteConfig, posts []content.PostSummary) error {
	base := cfg.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "blog")},
	}
	for _, p := range posts {
		u := sitemapURL{Loc: BuildURL(base, "blog", p.Slug)}
		if t, ok := content.ParseDate(p.Date); ok {
			u.LastMod = t.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}

func writeRobots(w io.Writer, cfg SiteConfig) error {
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s\n", strings.TrimRight(BuildURL(cfg.URL), "/")+"/sitemap.xml")
	return err
}
