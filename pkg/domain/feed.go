package domain

import "time"

// Feed represents a subscribed RSS/Atom source
type Feed struct {
	ID              int64
	URL             string
	Title           string
	SiteURL         string
	LastFetched     *time.Time
	FetchErrorCount int
	LastError       string // empty when the last fetch succeeded
	CreatedAt       time.Time

	// projection, populated by listing queries
	UnreadCount int
}

// DisplayName returns the feed title, falling back to the URL
func (f *Feed) DisplayName() string {
	if f.Title != "" {
		return f.Title
	}
	return f.URL
}

// ParsedFeed is a normalized feed document produced by the parser
type ParsedFeed struct {
	Title   string
	Link    string
	Entries []ParsedEntry
}

// ParsedEntry is a single normalized feed entry
type ParsedEntry struct {
	ID          string // entry id/guid as published by the feed
	Title       string
	Summary     string
	Content     string
	Link        string
	ImageURL    string
	PublishedAt *time.Time
}

// GUID returns the deduplication key of the entry: id, then link, then title.
// An empty result means the entry can't be stored.
func (e ParsedEntry) GUID() string {
	switch {
	case e.ID != "":
		return e.ID
	case e.Link != "":
		return e.Link
	default:
		return e.Title
	}
}

// RefreshResult holds the outcome of a single feed refresh
type RefreshResult struct {
	NewArticles int
	Err         error
}
