package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/myfeeds/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID          int64      `db:"id"`
	FeedID      int64      `db:"feed_id"`
	GUID        string     `db:"guid"`
	Title       string     `db:"title"`
	Summary     string     `db:"summary"`
	Content     string     `db:"content"`
	URL         string     `db:"url"`
	ImageURL    string     `db:"image_url"`
	PublishedAt *time.Time `db:"published_at"`
	IsRead      bool       `db:"is_read"`
	IsSaved     bool       `db:"is_saved"`
	CreatedAt   time.Time  `db:"created_at"`

	// joined data (not stored in articles, populated by queries)
	FeedTitle string `db:"feed_title"`
}

const articleColumns = `a.id, a.feed_id, a.guid, a.title, a.summary, a.content, a.url, a.image_url,
	a.published_at, a.is_read, a.is_saved, a.created_at,
	CASE WHEN f.title != '' THEN f.title ELSE f.url END AS feed_title`

// newest first, undated articles after dated ones
const articleOrder = "a.published_at IS NULL, a.published_at DESC, a.id DESC"

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// InsertIfNew stores an entry unless the feed already has an article with the same guid.
// Returns inserted=false and the id of the existing row on conflict; existing content is never overwritten.
func (r *ArticleRepository) InsertIfNew(ctx context.Context, feedID int64, entry domain.ParsedEntry) (inserted bool, id int64, err error) {
	guid := entry.GUID()
	if guid == "" {
		return false, 0, domain.NewValidationError("guid", "entry has no id, link or title")
	}

	row := &articleSQL{
		FeedID:      feedID,
		GUID:        guid,
		Title:       entry.Title,
		Summary:     entry.Summary,
		Content:     entry.Content,
		URL:         entry.Link,
		ImageURL:    entry.ImageURL,
		PublishedAt: utcPtr(entry.PublishedAt),
		CreatedAt:   time.Now().UTC(),
	}

	query := `
		INSERT INTO articles (feed_id, guid, title, summary, content, url, image_url, published_at, created_at)
		VALUES (:feed_id, :guid, :title, :summary, :content, :url, :image_url, :published_at, :created_at)
		ON CONFLICT(feed_id, guid) DO NOTHING
	`
	err = withRetry(ctx, "insert article", func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if affected == 0 {
			inserted = false
			return r.db.GetContext(ctx, &id, "SELECT id FROM articles WHERE feed_id = ? AND guid = ?", feedID, guid)
		}
		inserted = true
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return inserted, id, nil
}

// Get retrieves an article by ID
func (r *ArticleRepository) Get(ctx context.Context, id int64) (*domain.Article, error) {
	var row articleSQL
	query := "SELECT " + articleColumns + " FROM articles a JOIN feeds f ON a.feed_id = f.id WHERE a.id = ?"
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	res := row.toDomain()
	return &res, nil
}

// List retrieves articles matching the query, newest first
func (r *ArticleRepository) List(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
	var conditions []string
	var args []any

	if q.FeedID != nil {
		conditions = append(conditions, "a.feed_id = ?")
		args = append(args, *q.FeedID)
	}
	if q.UnreadOnly {
		conditions = append(conditions, "a.is_read = 0")
	}
	if q.SavedOnly {
		conditions = append(conditions, "a.is_saved = 1")
	}

	query := "SELECT " + articleColumns + " FROM articles a JOIN feeds f ON a.feed_id = f.id"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + articleOrder + " LIMIT ? OFFSET ?"

	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	offset := max(q.Offset, 0)
	args = append(args, limit, offset)

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return toDomainArticles(rows), nil
}

// MarkRead sets the read flag. Returns false if the article doesn't exist.
func (r *ArticleRepository) MarkRead(ctx context.Context, id int64, isRead bool) (bool, error) {
	var found bool
	err := withRetry(ctx, "mark read", func() error {
		result, err := r.db.ExecContext(ctx, "UPDATE articles SET is_read = ? WHERE id = ?", isRead, id)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		found = affected > 0
		return nil
	})
	return found, err
}

// MarkAllRead marks unread articles as read, for one feed when feedID is set or globally otherwise.
// Returns the number of articles changed.
func (r *ArticleRepository) MarkAllRead(ctx context.Context, feedID *int64) (int64, error) {
	query := "UPDATE articles SET is_read = 1 WHERE is_read = 0"
	var args []any
	if feedID != nil {
		query += " AND feed_id = ?"
		args = append(args, *feedID)
	}

	var count int64
	err := withRetry(ctx, "mark all read", func() error {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		count, err = result.RowsAffected()
		return err
	})
	return count, err
}

// ToggleSaved flips the saved flag in a single transaction and returns the new value,
// nil if the article doesn't exist
func (r *ArticleRepository) ToggleSaved(ctx context.Context, id int64) (*bool, error) {
	var saved *bool
	err := withRetry(ctx, "toggle saved", func() error {
		saved = nil
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var current bool
		err = tx.GetContext(ctx, &current, "SELECT is_saved FROM articles WHERE id = ?", id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		next := !current
		if _, err := tx.ExecContext(ctx, "UPDATE articles SET is_saved = ? WHERE id = ?", next, id); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		saved = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// UnreadCount returns the number of unread articles, for one feed when feedID is set
func (r *ArticleRepository) UnreadCount(ctx context.Context, feedID *int64) (int, error) {
	query := "SELECT COUNT(*) FROM articles WHERE is_read = 0"
	var args []any
	if feedID != nil {
		query += " AND feed_id = ?"
		args = append(args, *feedID)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// SavedCount returns the number of saved articles
func (r *ArticleRepository) SavedCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles WHERE is_saved = 1"); err != nil {
		return 0, fmt.Errorf("count saved: %w", err)
	}
	return count, nil
}

func (a *articleSQL) toDomain() domain.Article {
	return domain.Article{
		ID:          a.ID,
		FeedID:      a.FeedID,
		GUID:        a.GUID,
		Title:       a.Title,
		Summary:     a.Summary,
		Content:     a.Content,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		IsRead:      a.IsRead,
		IsSaved:     a.IsSaved,
		CreatedAt:   a.CreatedAt,
		FeedTitle:   a.FeedTitle,
	}
}

func toDomainArticles(rows []articleSQL) []domain.Article {
	res := make([]domain.Article, len(rows))
	for i := range rows {
		res[i] = rows[i].toDomain()
	}
	return res
}
