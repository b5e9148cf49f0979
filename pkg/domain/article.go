package domain

import "time"

// DefaultPageSize is the number of articles returned by a listing when no limit is given
const DefaultPageSize = 50

// Article represents one entry ingested from a feed
type Article struct {
	ID          int64
	FeedID      int64
	GUID        string
	Title       string
	Summary     string
	Content     string
	URL         string
	ImageURL    string
	PublishedAt *time.Time
	IsRead      bool
	IsSaved     bool
	CreatedAt   time.Time

	// joined data, populated by listing queries
	FeedTitle string
}

// ArticleQuery represents listing criteria for articles
type ArticleQuery struct {
	FeedID     *int64
	UnreadOnly bool
	SavedOnly  bool
	Limit      int
	Offset     int
}
