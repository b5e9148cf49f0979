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

// FilterRepository handles filters and filter matches
type FilterRepository struct {
	db *sqlx.DB
}

// filterSQL represents a filter for SQL operations
type filterSQL struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Pattern    string    `db:"pattern"`
	Target     string    `db:"target"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
	MatchCount int       `db:"match_count"`
}

const filterColumns = `fl.id, fl.name, fl.pattern, fl.target, fl.is_active, fl.created_at,
	(SELECT COUNT(*) FROM filter_matches m WHERE m.filter_id = fl.id) AS match_count`

// NewFilterRepository creates a new filter repository
func NewFilterRepository(database *sqlx.DB) *FilterRepository {
	return &FilterRepository{db: database}
}

// Create inserts a new filter and sets its ID and CreatedAt
func (r *FilterRepository) Create(ctx context.Context, filter *domain.Filter) error {
	if filter.CreatedAt.IsZero() {
		filter.CreatedAt = time.Now().UTC()
	}
	row := &filterSQL{
		Name:      filter.Name,
		Pattern:   filter.Pattern,
		Target:    string(filter.Target),
		IsActive:  filter.IsActive,
		CreatedAt: filter.CreatedAt,
	}
	query := `
		INSERT INTO filters (name, pattern, target, is_active, created_at)
		VALUES (:name, :pattern, :target, :is_active, :created_at)
	`
	return withRetry(ctx, "create filter", func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		filter.ID = id
		return nil
	})
}

// Get retrieves a filter by ID with its match count
func (r *FilterRepository) Get(ctx context.Context, id int64) (*domain.Filter, error) {
	var row filterSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+filterColumns+" FROM filters fl WHERE fl.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get filter %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get filter: %w", err)
	}
	res := row.toDomain()
	return &res, nil
}

// List retrieves all filters ordered by name case-insensitively
func (r *FilterRepository) List(ctx context.Context) ([]domain.Filter, error) {
	return r.list(ctx, "SELECT "+filterColumns+" FROM filters fl ORDER BY fl.name COLLATE NOCASE, fl.id")
}

// ListActive retrieves active filters ordered by name case-insensitively
func (r *FilterRepository) ListActive(ctx context.Context) ([]domain.Filter, error) {
	return r.list(ctx, "SELECT "+filterColumns+" FROM filters fl WHERE fl.is_active = 1 ORDER BY fl.name COLLATE NOCASE, fl.id")
}

func (r *FilterRepository) list(ctx context.Context, query string) ([]domain.Filter, error) {
	var rows []filterSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	res := make([]domain.Filter, len(rows))
	for i := range rows {
		res[i] = rows[i].toDomain()
	}
	return res, nil
}

// Update writes name, pattern, target and active flag of an existing filter
func (r *FilterRepository) Update(ctx context.Context, filter *domain.Filter) error {
	query := "UPDATE filters SET name = ?, pattern = ?, target = ?, is_active = ? WHERE id = ?"
	return withRetry(ctx, "update filter", func() error {
		result, err := r.db.ExecContext(ctx, query, filter.Name, filter.Pattern, string(filter.Target), filter.IsActive, filter.ID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// Delete removes a filter and its matches
func (r *FilterRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := withRetry(ctx, "delete filter", func() error {
		result, err := r.db.ExecContext(ctx, "DELETE FROM filters WHERE id = ?", id)
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

// ClearMatches removes all matches recorded for the filter
func (r *FilterRepository) ClearMatches(ctx context.Context, filterID int64) error {
	return withRetry(ctx, "clear filter matches", func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM filter_matches WHERE filter_id = ?", filterID)
		return err
	})
}

// BackfillCandidates returns unread, unsaved articles the filter hasn't matched yet
func (r *FilterRepository) BackfillCandidates(ctx context.Context, filterID int64) ([]domain.MatchCandidate, error) {
	query := `
		SELECT a.id, a.title, a.summary
		FROM articles a
		WHERE a.is_read = 0 AND a.is_saved = 0
		  AND a.id NOT IN (SELECT article_id FROM filter_matches WHERE filter_id = ?)
		ORDER BY a.id
	`
	var rows []struct {
		ID      int64          `db:"id"`
		Title   sql.NullString `db:"title"`
		Summary sql.NullString `db:"summary"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, filterID); err != nil {
		return nil, fmt.Errorf("get backfill candidates: %w", err)
	}

	res := make([]domain.MatchCandidate, len(rows))
	for i, row := range rows {
		res[i] = domain.MatchCandidate{ID: row.ID, Title: row.Title.String, Summary: row.Summary.String}
	}
	return res, nil
}

// RecordFilterMatches stores matches of one filter against many articles and marks those articles read,
// all in one transaction. Existing pairs are kept as is. Returns the number of new matches.
func (r *FilterRepository) RecordFilterMatches(ctx context.Context, filterID int64, articleIDs []int64) (int, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}
	pairs := make([]matchPair, len(articleIDs))
	for i, id := range articleIDs {
		pairs[i] = matchPair{articleID: id, filterID: filterID}
	}
	var count int
	err := withRetry(ctx, "record filter matches", func() error {
		n, err := r.recordMatches(ctx, pairs, articleIDs)
		count = n
		return err
	})
	return count, err
}

// RecordArticleMatches stores matches of many filters against one article and marks it read once
func (r *FilterRepository) RecordArticleMatches(ctx context.Context, articleID int64, filterIDs []int64) error {
	if len(filterIDs) == 0 {
		return nil
	}
	pairs := make([]matchPair, len(filterIDs))
	for i, id := range filterIDs {
		pairs[i] = matchPair{articleID: articleID, filterID: id}
	}
	return withRetry(ctx, "record article matches", func() error {
		_, err := r.recordMatches(ctx, pairs, []int64{articleID})
		return err
	})
}

type matchPair struct {
	articleID int64
	filterID  int64
}

// recordMatches inserts match pairs and marks articles read in a single transaction
func (r *FilterRepository) recordMatches(ctx context.Context, pairs []matchPair, readIDs []int64) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// saved articles are exempt, an article saved after it was picked as a candidate is skipped
	insertStmt, err := tx.PreparexContext(ctx, `
		INSERT INTO filter_matches (article_id, filter_id, matched_at)
		SELECT id, ?, ? FROM articles WHERE id = ? AND is_saved = 0
		ON CONFLICT(article_id, filter_id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer insertStmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for _, p := range pairs {
		result, err := insertStmt.ExecContext(ctx, p.filterID, now, p.articleID)
		if err != nil {
			return 0, fmt.Errorf("insert match: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected > 0 {
			inserted++
		}
	}

	query, args, err := sqlx.In("UPDATE articles SET is_read = 1 WHERE id IN (?) AND is_saved = 0", readIDs)
	if err != nil {
		return 0, fmt.Errorf("build mark read query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("mark matched read: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// MatchedArticles returns articles matched by the filter, newest first
func (r *FilterRepository) MatchedArticles(ctx context.Context, filterID int64) ([]domain.Article, error) {
	query := "SELECT " + articleColumns + `
		FROM articles a
		JOIN filter_matches m ON a.id = m.article_id
		JOIN feeds f ON a.feed_id = f.id
		WHERE m.filter_id = ?
		ORDER BY ` + articleOrder
	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, filterID); err != nil {
		return nil, fmt.Errorf("get matched articles: %w", err)
	}
	return toDomainArticles(rows), nil
}

// Matches returns match records of the filter
func (r *FilterRepository) Matches(ctx context.Context, filterID int64) ([]domain.FilterMatch, error) {
	var rows []struct {
		ArticleID int64     `db:"article_id"`
		FilterID  int64     `db:"filter_id"`
		MatchedAt time.Time `db:"matched_at"`
	}
	query := "SELECT article_id, filter_id, matched_at FROM filter_matches WHERE filter_id = ? ORDER BY article_id"
	if err := r.db.SelectContext(ctx, &rows, query, filterID); err != nil {
		return nil, fmt.Errorf("get filter matches: %w", err)
	}
	res := make([]domain.FilterMatch, len(rows))
	for i, row := range rows {
		res[i] = domain.FilterMatch{ArticleID: row.ArticleID, FilterID: row.FilterID, MatchedAt: row.MatchedAt}
	}
	return res, nil
}

// TotalFilteredCount returns the number of distinct articles matched by any filter
func (r *FilterRepository) TotalFilteredCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(DISTINCT article_id) FROM filter_matches"); err != nil {
		return 0, fmt.Errorf("count filtered: %w", err)
	}
	return count, nil
}

func (f *filterSQL) toDomain() domain.Filter {
	return domain.Filter{
		ID:         f.ID,
		Name:       f.Name,
		Pattern:    f.Pattern,
		Target:     domain.FilterTarget(f.Target),
		IsActive:   f.IsActive,
		CreatedAt:  f.CreatedAt,
		MatchCount: f.MatchCount,
	}
}
