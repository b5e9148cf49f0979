// Package opml imports and exports feed subscriptions in OPML format
package opml

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/myfeeds/pkg/domain"
)

// Outline is a feed subscription found in an OPML document
type Outline struct {
	Title   string
	XMLURL  string
	HTMLURL string
}

// FeedAdder subscribes to a feed by url
type FeedAdder interface {
	AddFeed(ctx context.Context, url string) (*domain.Feed, error)
}

// ImportResult summarizes an OPML import
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// Parse collects outlines with an xmlUrl at any nesting depth, in document order.
// A malformed document gives an empty list.
func Parse(r io.Reader) ([]Outline, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var res []Outline
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			lgr.Printf("[WARN] malformed opml document: %v", err)
			return []Outline{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read opml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "outline" {
			continue
		}
		attrs := map[string]string{}
		for _, a := range start.Attr {
			attrs[a.Name.Local] = a.Value
		}
		xmlURL := strings.TrimSpace(attrs["xmlUrl"])
		if xmlURL == "" {
			continue
		}
		title := attrs["title"]
		if title == "" {
			title = attrs["text"]
		}
		if title == "" {
			title = xmlURL
		}
		res = append(res, Outline{Title: title, XMLURL: xmlURL, HTMLURL: attrs["htmlUrl"]})
	}
}

// Import subscribes to every feed of the document. Already subscribed feeds are skipped,
// other failures are collected as "<title>: <message>".
func Import(ctx context.Context, adder FeedAdder, r io.Reader) (ImportResult, error) {
	res := ImportResult{Errors: []string{}}

	outlines, err := Parse(r)
	if err != nil {
		return res, err
	}
	if len(outlines) == 0 {
		res.Errors = append(res.Errors, "no valid feeds found in OPML file")
		return res, nil
	}

	for _, o := range outlines {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		_, err := adder.AddFeed(ctx, o.XMLURL)
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, domain.ErrDuplicateFeed):
			res.Skipped++
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", o.Title, domain.UserMessage(err)))
		}
	}

	lgr.Printf("[INFO] opml import: %d imported, %d skipped, %d failed", res.Imported, res.Skipped, len(res.Errors))
	return res, nil
}

type opmlOutline struct {
	Type    string `xml:"type,attr"`
	Text    string `xml:"text,attr"`
	Title   string `xml:"title,attr"`
	XMLURL  string `xml:"xmlUrl,attr"`
	HTMLURL string `xml:"htmlUrl,attr,omitempty"`
}

type opmlHead struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type opmlDoc struct {
	XMLName  xml.Name      `xml:"opml"`
	Version  string        `xml:"version,attr"`
	Head     opmlHead      `xml:"head"`
	Outlines []opmlOutline `xml:"body>outline"`
}

// Export writes feeds as an OPML 2.0 document
func Export(w io.Writer, feeds []domain.Feed) error {
	doc := opmlDoc{
		Version: "2.0",
		Head: opmlHead{
			Title:       "MyFeeds Subscriptions",
			DateCreated: time.Now().UTC().Format(time.RFC1123Z),
		},
		Outlines: make([]opmlOutline, 0, len(feeds)),
	}
	for _, f := range feeds {
		doc.Outlines = append(doc.Outlines, opmlOutline{
			Type:    "rss",
			Text:    f.DisplayName(),
			Title:   f.DisplayName(),
			XMLURL:  f.URL,
			HTMLURL: f.SiteURL,
		})
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal opml: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write opml: %w", err)
	}
	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("write opml: %w", err)
	}
	return nil
}
