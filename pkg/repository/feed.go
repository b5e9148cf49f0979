package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/myfeeds/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID              int64          `db:"id"`
	URL             string         `db:"url"`
	Title           string         `db:"title"`
	SiteURL         string         `db:"site_url"`
	LastFetched     *time.Time     `db:"last_fetched"`
	FetchErrorCount int            `db:"fetch_error_count"`
	LastError       sql.NullString `db:"last_error"`
	CreatedAt       time.Time      `db:"created_at"`
	UnreadCount     int            `db:"unread_count"`
}

const feedColumns = `f.id, f.url, f.title, f.site_url, f.last_fetched, f.fetch_error_count, f.last_error, f.created_at,
	(SELECT COUNT(*) FROM articles a WHERE a.feed_id = f.id AND a.is_read = 0) AS unread_count`

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// Create inserts a new feed and sets its ID and CreatedAt.
// A URL that is already registered returns domain.ErrDuplicateFeed.
func (r *FeedRepository) Create(ctx context.Context, feed *domain.Feed) error {
	if feed.CreatedAt.IsZero() {
		feed.CreatedAt = time.Now().UTC()
	}
	sqlFeed := &feedSQL{
		URL:         feed.URL,
		Title:       feed.Title,
		SiteURL:     feed.SiteURL,
		LastFetched: utcPtr(feed.LastFetched),
		CreatedAt:   feed.CreatedAt,
	}

	query := `
		INSERT INTO feeds (url, title, site_url, last_fetched, created_at)
		VALUES (:url, :title, :site_url, :last_fetched, :created_at)
		ON CONFLICT(url) DO NOTHING
	`
	return withRetry(ctx, "create feed", func() error {
		result, err := r.db.NamedExecContext(ctx, query, sqlFeed)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if affected == 0 {
			return domain.ErrDuplicateFeed
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		feed.ID = id
		return nil
	})
}

// Get retrieves a feed by ID with its unread count
func (r *FeedRepository) Get(ctx context.Context, id int64) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := r.db.GetContext(ctx, &sqlFeed, "SELECT "+feedColumns+" FROM feeds f WHERE f.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get feed %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return r.toDomainFeed(&sqlFeed), nil
}

// GetByURL retrieves a feed by its exact URL
func (r *FeedRepository) GetByURL(ctx context.Context, url string) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := r.db.GetContext(ctx, &sqlFeed, "SELECT "+feedColumns+" FROM feeds f WHERE f.url = ?", url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get feed by url: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed by url: %w", err)
	}
	return r.toDomainFeed(&sqlFeed), nil
}

// Exists checks whether a feed with the URL is registered
func (r *FeedRepository) Exists(ctx context.Context, url string) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM feeds WHERE url = ?", url); err != nil {
		return false, fmt.Errorf("check feed exists: %w", err)
	}
	return count > 0, nil
}

// List retrieves all feeds with unread counts, ordered by title case-insensitively
func (r *FeedRepository) List(ctx context.Context) ([]domain.Feed, error) {
	var sqlFeeds []feedSQL
	query := "SELECT " + feedColumns + " FROM feeds f ORDER BY f.title COLLATE NOCASE, f.id"
	if err := r.db.SelectContext(ctx, &sqlFeeds, query); err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}

	feeds := make([]domain.Feed, len(sqlFeeds))
	for i := range sqlFeeds {
		feeds[i] = *r.toDomainFeed(&sqlFeeds[i])
	}
	return feeds, nil
}

// IDs returns ids of all feeds in creation order
func (r *FeedRepository) IDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM feeds ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list feed ids: %w", err)
	}
	return ids, nil
}

// UpdateFetched records a successful fetch: resets the error counter and clears the last error
func (r *FeedRepository) UpdateFetched(ctx context.Context, feedID int64, fetchedAt time.Time) error {
	query := `
		UPDATE feeds
		SET last_fetched = ?,
		    fetch_error_count = 0,
		    last_error = NULL
		WHERE id = ?
	`
	return withRetry(ctx, "update feed fetched", func() error {
		_, err := r.db.ExecContext(ctx, query, fetchedAt.UTC(), feedID)
		return err
	})
}

// UpdateError records a failed fetch, last_fetched is left untouched
func (r *FeedRepository) UpdateError(ctx context.Context, feedID int64, errMsg string) error {
	query := `
		UPDATE feeds
		SET fetch_error_count = fetch_error_count + 1,
		    last_error = ?
		WHERE id = ?
	`
	return withRetry(ctx, "update feed error", func() error {
		_, err := r.db.ExecContext(ctx, query, errMsg, feedID)
		return err
	})
}

// Delete removes a feed, articles and their filter matches go with it
func (r *FeedRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := withRetry(ctx, "delete feed", func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		deleted = affected > 0
		return nil
	})
	return deleted, err
}

// toDomainFeed converts feedSQL to domain.Feed
func (r *FeedRepository) toDomainFeed(sqlFeed *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:              sqlFeed.ID,
		URL:             sqlFeed.URL,
		Title:           sqlFeed.Title,
		SiteURL:         sqlFeed.SiteURL,
		LastFetched:     sqlFeed.LastFetched,
		FetchErrorCount: sqlFeed.FetchErrorCount,
		LastError:       sqlFeed.LastError.String,
		CreatedAt:       sqlFeed.CreatedAt,
		UnreadCount:     sqlFeed.UnreadCount,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
