package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"golang.org/x/net/html"

	"github.com/umputun/myfeeds/pkg/domain"
)

// Parser decodes RSS, Atom and JSON feed documents into normalized entries
type Parser struct{}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes raw feed bytes. A malformed document is accepted as long as some of its entries
// can be recovered, otherwise it is reported as *domain.ParseError.
func (p *Parser) Parse(raw []byte) (*domain.ParsedFeed, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		recovered, ok := recoverTruncated(raw)
		if !ok {
			return nil, &domain.ParseError{Err: fmt.Errorf("parse feed: %w", err)}
		}
		feed = recovered
	}

	result := &domain.ParsedFeed{
		Title:   strings.TrimSpace(feed.Title),
		Link:    strings.TrimSpace(feed.Link),
		Entries: make([]domain.ParsedEntry, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		result.Entries = append(result.Entries, normalizeItem(item))
	}

	return result, nil
}

// recoverTruncated re-parses a cut off document. Everything after the last complete item or entry
// is dropped and the closing tags of the root are appended. Fails if no entries survive.
func recoverTruncated(raw []byte) (*gofeed.Feed, bool) {
	var itemEnd, closing string
	switch gofeed.DetectFeedType(bytes.NewReader(raw)) {
	case gofeed.FeedTypeRSS:
		itemEnd, closing = "</item>", "</channel></rss>"
		if bytes.Contains(raw, []byte("<rdf:RDF")) {
			closing = "</rdf:RDF>" // rss 1.0 items are siblings of the channel
		}
	case gofeed.FeedTypeAtom:
		itemEnd, closing = "</entry>", "</feed>"
	default:
		return nil, false
	}

	pos := bytes.LastIndex(raw, []byte(itemEnd))
	if pos < 0 {
		return nil, false
	}
	repaired := make([]byte, 0, pos+len(itemEnd)+len(closing))
	repaired = append(repaired, raw[:pos+len(itemEnd)]...)
	repaired = append(repaired, closing...)

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(repaired))
	if err != nil || len(feed.Items) == 0 {
		return nil, false
	}
	return feed, true
}

// normalizeItem converts a gofeed item to a parsed entry
func normalizeItem(item *gofeed.Item) domain.ParsedEntry {
	entry := domain.ParsedEntry{
		ID:      strings.TrimSpace(item.GUID),
		Title:   html.UnescapeString(item.Title),
		Summary: html.UnescapeString(item.Description),
		Content: item.Content,
		Link:    strings.TrimSpace(item.Link),
	}

	// published, then updated; both kept in UTC
	switch {
	case item.PublishedParsed != nil:
		ts := item.PublishedParsed.UTC()
		entry.PublishedAt = &ts
	case item.UpdatedParsed != nil:
		ts := item.UpdatedParsed.UTC()
		entry.PublishedAt = &ts
	}

	entry.ImageURL = extractImageURL(item)
	return entry
}

// extractImageURL picks the best image for an item. The order is media:thumbnail,
// image media:content, image enclosure, then the first <img> of the content and summary html.
func extractImageURL(item *gofeed.Item) string {
	media := mediaExtensions(item.Extensions)

	for _, thumb := range media["thumbnail"] {
		if u := thumb.Attrs["url"]; u != "" {
			return u
		}
	}

	for _, mc := range media["content"] {
		if strings.HasPrefix(mc.Attrs["type"], "image/") || mc.Attrs["medium"] == "image" {
			if u := mc.Attrs["url"]; u != "" {
				return u
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	if u := firstImageSrc(item.Content); u != "" {
		return u
	}
	return firstImageSrc(item.Description)
}

// mediaExtensions collects media:* elements, including those nested in media:group
func mediaExtensions(exts ext.Extensions) map[string][]ext.Extension {
	res := map[string][]ext.Extension{}
	media, ok := exts["media"]
	if !ok {
		return res
	}
	for name, elems := range media {
		if name == "group" {
			continue
		}
		res[name] = append(res[name], elems...)
	}
	for _, group := range media["group"] {
		for name, elems := range group.Children {
			res[name] = append(res[name], elems...)
		}
	}
	return res
}

// firstImageSrc returns src of the first img tag in an html fragment
func firstImageSrc(fragment string) string {
	if !strings.Contains(fragment, "<img") && !strings.Contains(fragment, "<IMG") {
		return ""
	}
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			if string(name) != "img" || !hasAttr {
				continue
			}
			for {
				key, val, more := tokenizer.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					return string(val)
				}
				if !more {
					break
				}
			}
		}
	}
}
