package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/umputun/myfeeds/pkg/domain"
)

// Generator renders stored articles back out as an RSS 2.0 feed,
// used to re-publish saved and filtered articles
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 document. selfPath is the request path the feed is served from.
func (g *Generator) GenerateRSS(title, selfPath string, articles []domain.Article) ([]byte, error) {
	items := make([]*rssItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, g.toRSSItem(a))
	}

	doc := &rssDoc{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &rssChannel{
			Title:         "MyFeeds - " + title,
			Link:          g.baseURL + "/",
			Description:   title,
			AtomLink:      &atomLink{Href: g.baseURL + selfPath, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().UTC().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}

func (g *Generator) toRSSItem(a domain.Article) *rssItem {
	item := &rssItem{
		Title:       a.Title,
		Link:        a.URL,
		GUID:        rssGUID{Value: a.GUID, IsPermaLink: a.GUID != "" && a.GUID == a.URL},
		Description: a.Summary,
		Source:      a.FeedTitle,
	}
	if item.Description == "" {
		item.Description = a.Content
	}
	if a.PublishedAt != nil {
		item.PubDate = a.PublishedAt.UTC().Format(time.RFC1123Z)
	}
	if a.ImageURL != "" {
		item.Enclosure = &rssEnclosure{URL: a.ImageURL, Type: imageType(a.ImageURL)}
	}
	return item
}

// imageType guesses the enclosure mime type from the url extension
func imageType(imageURL string) string {
	u := imageURL
	if idx := strings.IndexAny(u, "?#"); idx >= 0 {
		u = u[:idx]
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(u))); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
