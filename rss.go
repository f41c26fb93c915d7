package mdxblog

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/eringen/mdxblog/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// writeRSS encodes posts, newest first, as an RSS 2.0 feed.
func writeRSS(w io.Writer, cfg SiteConfig, posts []content.PostSummary) error {
	base := cfg.URL
	items := make([]rssItem, 0, len(posts))
	var newest time.Time
	for _, p := range posts {
		pubDate := ""
		if t, ok := content.ParseDate(p.Date); ok {
			pubDate = t.Format(time.RFC1123Z)
			if t.After(newest) {
				newest = t
			}
		}
		postURL := BuildURL(base, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			PubDate:     pubDate,
			GUID:        postURL,
			Categories:  p.Tags,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        BuildURL(base),
			Description: cfg.Description,
			Language:    cfg.Lang,
			Items:       items,
		},
	}
	if !newest.IsZero() {
		feed.Channel.LastBuildDate = newest.Format(time.RFC1123Z)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
