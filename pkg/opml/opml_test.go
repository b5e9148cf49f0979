package opml

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/myfeeds/pkg/domain"
)

type adderFunc func(ctx context.Context, url string) (*domain.Feed, error)

func (f adderFunc) AddFeed(ctx context.Context, url string) (*domain.Feed, error) { return f(ctx, url) }

const sampleOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>subs</title></head>
  <body>
    <outline text="Tech">
      <outline type="rss" text="Go Blog" xmlUrl="https://go.dev/blog/feed.atom" htmlUrl="https://go.dev/blog"/>
      <outline type="rss" title="HN" text="ignored" xmlUrl="https://news.ycombinator.com/rss"/>
    </outline>
    <outline type="rss" xmlUrl="https://example.com/feed.xml"/>
    <outline text="no url here"/>
  </body>
</opml>`

func TestParse(t *testing.T) {
	outlines, err := Parse(strings.NewReader(sampleOPML))
	require.NoError(t, err)
	assert.Equal(t, []Outline{
		{Title: "Go Blog", XMLURL: "https://go.dev/blog/feed.atom", HTMLURL: "https://go.dev/blog"},
		{Title: "HN", XMLURL: "https://news.ycombinator.com/rss"},
		{Title: "https://example.com/feed.xml", XMLURL: "https://example.com/feed.xml"},
	}, outlines)
}

func TestParse_Malformed(t *testing.T) {
	outlines, err := Parse(strings.NewReader(`<opml><body><outline xmlUrl="http://a"`))
	require.NoError(t, err)
	assert.Empty(t, outlines)

	outlines, err = Parse(strings.NewReader("not xml at all <<<"))
	require.NoError(t, err)
	assert.Empty(t, outlines)
}

func TestImport(t *testing.T) {
	doc := `<opml version="2.0"><body>
		<outline text="New" xmlUrl="https://new.example.com/rss"/>
		<outline text="Old" xmlUrl="https://old.example.com/rss"/>
		<outline text="Broken" xmlUrl="https://broken.example.com/rss"/>
	</body></opml>`

	var called []string
	adder := adderFunc(func(_ context.Context, url string) (*domain.Feed, error) {
		called = append(called, url)
		switch url {
		case "https://old.example.com/rss":
			return nil, domain.ErrDuplicateFeed
		case "https://broken.example.com/rss":
			return nil, &domain.FetchError{Kind: domain.FetchNotFound, StatusCode: 404}
		}
		return &domain.Feed{ID: 1, URL: url}, nil
	})

	res, err := Import(context.Background(), adder, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"Broken: nothing found at that URL (404)"}, res.Errors)
	assert.Len(t, called, 3)
}

func TestImport_NoFeeds(t *testing.T) {
	adder := adderFunc(func(context.Context, string) (*domain.Feed, error) {
		t.Fatal("should not be called")
		return nil, nil
	})

	res, err := Import(context.Background(), adder, strings.NewReader(`<opml><body></body></opml>`))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Errors: []string{"no valid feeds found in OPML file"}}, res)

	res, err = Import(context.Background(), adder, strings.NewReader("garbage"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Len(t, res.Errors, 1)
}

func TestImport_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	adder := adderFunc(func(context.Context, string) (*domain.Feed, error) { return nil, errors.New("unexpected") })

	_, err := Import(ctx, adder, strings.NewReader(sampleOPML))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExport(t *testing.T) {
	feeds := []domain.Feed{
		{ID: 1, URL: "https://go.dev/blog/feed.atom", Title: "Go Blog", SiteURL: "https://go.dev/blog"},
		{ID: 2, URL: "https://example.com/rss"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, feeds))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<opml version="2.0">`)
	assert.Contains(t, out, `<title>MyFeeds Subscriptions</title>`)
	assert.Contains(t, out, `<outline type="rss" text="Go Blog" title="Go Blog" xmlUrl="https://go.dev/blog/feed.atom" htmlUrl="https://go.dev/blog"></outline>`)
	assert.Contains(t, out, `<outline type="rss" text="https://example.com/rss" title="https://example.com/rss" xmlUrl="https://example.com/rss"></outline>`)

	// exported document parses back into the same subscriptions
	outlines, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, outlines, 2)
	assert.Equal(t, "https://go.dev/blog", outlines[0].HTMLURL)
	assert.Equal(t, "https://example.com/rss", outlines[1].Title)
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil))
	outlines, err := Parse(&buf)
	require.NoError(t, err)
	assert.Empty(t, outlines)
}
