package server

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/myfeeds/pkg/domain"
)

// textPolicy strips all markup from feed supplied html
var textPolicy = bluemonday.StrictPolicy()

type feedView struct {
	ID              int64      `json:"id"`
	URL             string     `json:"url"`
	Title           string     `json:"title"`
	DisplayName     string     `json:"display_name"`
	SiteURL         string     `json:"site_url,omitempty"`
	LastFetched     *time.Time `json:"last_fetched"`
	FetchErrorCount int        `json:"fetch_error_count"`
	LastError       string     `json:"last_error,omitempty"`
	UnreadCount     int        `json:"unread_count"`
	CreatedAt       time.Time  `json:"created_at"`
}

type articleView struct {
	ID          int64      `json:"id"`
	FeedID      int64      `json:"feed_id"`
	FeedTitle   string     `json:"feed_title"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	SummaryText string     `json:"summary_text"`
	Content     string     `json:"content,omitempty"`
	URL         string     `json:"url"`
	ImageURL    string     `json:"image_url,omitempty"`
	PublishedAt *time.Time `json:"published_at"`
	IsRead      bool       `json:"is_read"`
	IsSaved     bool       `json:"is_saved"`
}

type filterView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Pattern    string    `json:"pattern"`
	Target     string    `json:"target"`
	IsActive   bool      `json:"is_active"`
	MatchCount int       `json:"match_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type filterGroupView struct {
	Filter   filterView    `json:"filter"`
	Articles []articleView `json:"articles"`
}

func toFeedView(f domain.Feed) feedView {
	return feedView{
		ID:              f.ID,
		URL:             f.URL,
		Title:           f.Title,
		DisplayName:     f.DisplayName(),
		SiteURL:         f.SiteURL,
		LastFetched:     f.LastFetched,
		FetchErrorCount: f.FetchErrorCount,
		LastError:       f.LastError,
		UnreadCount:     f.UnreadCount,
		CreatedAt:       f.CreatedAt,
	}
}

func toFeedViews(feeds []domain.Feed) []feedView {
	res := make([]feedView, 0, len(feeds))
	for _, f := range feeds {
		res = append(res, toFeedView(f))
	}
	return res
}

func toArticleView(a domain.Article) articleView {
	return articleView{
		ID:          a.ID,
		FeedID:      a.FeedID,
		FeedTitle:   a.FeedTitle,
		Title:       a.Title,
		Summary:     a.Summary,
		SummaryText: plainText(a.Summary),
		Content:     a.Content,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		IsRead:      a.IsRead,
		IsSaved:     a.IsSaved,
	}
}

func toArticleViews(articles []domain.Article) []articleView {
	res := make([]articleView, 0, len(articles))
	for _, a := range articles {
		res = append(res, toArticleView(a))
	}
	return res
}

func toFilterView(f domain.Filter) filterView {
	return filterView{
		ID:         f.ID,
		Name:       f.Name,
		Pattern:    f.Pattern,
		Target:     string(f.Target),
		IsActive:   f.IsActive,
		MatchCount: f.MatchCount,
		CreatedAt:  f.CreatedAt,
	}
}

// plainText strips html tags and entities and collapses whitespace
func plainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(textPolicy.Sanitize(s))), " ")
}
