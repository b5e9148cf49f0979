package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/myfeeds/pkg/domain"
)

// Fetcher retrieves raw feed documents
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Parser decodes raw feed documents
type Parser interface {
	Parse(raw []byte) (*domain.ParsedFeed, error)
}

// FeedManager persists feeds and their fetch status
type FeedManager interface {
	Create(ctx context.Context, feed *domain.Feed) error
	Get(ctx context.Context, id int64) (*domain.Feed, error)
	Exists(ctx context.Context, url string) (bool, error)
	IDs(ctx context.Context) ([]int64, error)
	UpdateFetched(ctx context.Context, feedID int64, fetchedAt time.Time) error
	UpdateError(ctx context.Context, feedID int64, errMsg string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// ArticleManager stores articles
type ArticleManager interface {
	InsertIfNew(ctx context.Context, feedID int64, entry domain.ParsedEntry) (inserted bool, id int64, err error)
}

// FilterApplier evaluates filters against new articles
type FilterApplier interface {
	ApplyToNewArticle(ctx context.Context, articleID int64, title, summary string) ([]int64, error)
}

// FeedProcessor ingests feeds: it fetches and parses documents, stores new articles
// and runs the active filters over each of them.
// Refreshes of the same feed are collapsed, concurrent callers share one run.
type FeedProcessor struct {
	feedManager    FeedManager
	articleManager ArticleManager
	filters        FilterApplier
	fetcher        Fetcher
	parser         Parser

	refreshGroup singleflight.Group
	now          func() time.Time
}

// FeedProcessorConfig holds dependencies of FeedProcessor
type FeedProcessorConfig struct {
	FeedManager    FeedManager
	ArticleManager ArticleManager
	Filters        FilterApplier
	Fetcher        Fetcher
	Parser         Parser
}

// NewFeedProcessor creates a new feed processor
func NewFeedProcessor(cfg FeedProcessorConfig) *FeedProcessor {
	return &FeedProcessor{
		feedManager:    cfg.FeedManager,
		articleManager: cfg.ArticleManager,
		filters:        cfg.Filters,
		fetcher:        cfg.Fetcher,
		parser:         cfg.Parser,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// AddFeed subscribes to the feed at url. The document is fetched and parsed first,
// nothing is stored if that fails.
func (fp *FeedProcessor) AddFeed(ctx context.Context, url string) (*domain.Feed, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domain.NewValidationError("url", "url is required")
	}

	exists, err := fp.feedManager.Exists(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("check feed: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateFeed
	}

	parsed, err := fp.fetchAndParse(ctx, url)
	if err != nil {
		lgr.Printf("[WARN] can't add feed %s: %v", url, err)
		return nil, err
	}

	title := parsed.Title
	if title == "" {
		title = url
	}
	fetchedAt := fp.now()
	feed := &domain.Feed{URL: url, Title: title, SiteURL: parsed.Link, LastFetched: &fetchedAt}
	if err := fp.feedManager.Create(ctx, feed); err != nil {
		if errors.Is(err, domain.ErrDuplicateFeed) {
			return nil, domain.ErrDuplicateFeed
		}
		return nil, fmt.Errorf("create feed: %w", err)
	}

	count := fp.ingest(ctx, feed.ID, parsed.Entries)
	lgr.Printf("[INFO] added feed %q (%s) with %d articles", feed.Title, feed.URL, count)

	return fp.feedManager.Get(ctx, feed.ID)
}

// RefreshFeed fetches a known feed and stores new articles, returning how many were added.
// A failure increments the feed's error counter and is returned; the feed stays subscribed.
func (fp *FeedProcessor) RefreshFeed(ctx context.Context, feedID int64) (int, error) {
	res, err, _ := fp.refreshGroup.Do(strconv.FormatInt(feedID, 10), func() (any, error) {
		return fp.refresh(ctx, feedID)
	})
	if err != nil {
		return 0, err
	}
	return res.(int), nil
}

func (fp *FeedProcessor) refresh(ctx context.Context, feedID int64) (int, error) {
	feed, err := fp.feedManager.Get(ctx, feedID)
	if err != nil {
		return 0, err
	}

	parsed, err := fp.fetchAndParse(ctx, feed.URL)
	if err != nil {
		lgr.Printf("[WARN] failed to refresh feed %d (%s): %v", feed.ID, feed.URL, err)
		if updErr := fp.feedManager.UpdateError(ctx, feed.ID, domain.UserMessage(err)); updErr != nil {
			lgr.Printf("[ERROR] failed to record error for feed %d: %v", feed.ID, updErr)
		}
		return 0, err
	}

	if err := fp.feedManager.UpdateFetched(ctx, feed.ID, fp.now()); err != nil {
		return 0, fmt.Errorf("update feed %d: %w", feed.ID, err)
	}

	count := fp.ingest(ctx, feed.ID, parsed.Entries)
	if count > 0 {
		lgr.Printf("[INFO] added %d new articles from feed %q", count, feed.DisplayName())
	}
	return count, nil
}

// RefreshAllFeeds refreshes every feed one after another. A failing feed doesn't stop the others.
func (fp *FeedProcessor) RefreshAllFeeds(ctx context.Context) map[int64]domain.RefreshResult {
	results := map[int64]domain.RefreshResult{}

	ids, err := fp.feedManager.IDs(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list feeds: %v", err)
		return results
	}

	lgr.Printf("[INFO] refreshing %d feeds", len(ids))
	total := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			lgr.Printf("[WARN] refresh interrupted: %v", ctx.Err())
			break
		}
		count, err := fp.RefreshFeed(ctx, id)
		results[id] = domain.RefreshResult{NewArticles: count, Err: err}
		total += count
	}
	lgr.Printf("[INFO] feed refresh completed, %d new articles", total)
	return results
}

// DeleteFeed unsubscribes from a feed, its articles are removed too
func (fp *FeedProcessor) DeleteFeed(ctx context.Context, feedID int64) (bool, error) {
	deleted, err := fp.feedManager.Delete(ctx, feedID)
	if err != nil {
		return false, fmt.Errorf("delete feed %d: %w", feedID, err)
	}
	if deleted {
		lgr.Printf("[INFO] deleted feed %d", feedID)
	}
	return deleted, nil
}

func (fp *FeedProcessor) fetchAndParse(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	raw, err := fp.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return fp.parser.Parse(raw)
}

// ingest stores entries and applies filters to the new ones, returns the number inserted.
// Store errors of a single entry are logged and skipped.
func (fp *FeedProcessor) ingest(ctx context.Context, feedID int64, entries []domain.ParsedEntry) int {
	count := 0
	for _, entry := range entries {
		if entry.GUID() == "" {
			continue
		}

		inserted, id, err := fp.articleManager.InsertIfNew(ctx, feedID, entry)
		if err != nil {
			lgr.Printf("[WARN] failed to store article %q of feed %d: %v", entry.GUID(), feedID, err)
			continue
		}
		if !inserted {
			continue
		}
		count++

		if fp.filters == nil {
			continue
		}
		matched, err := fp.filters.ApplyToNewArticle(ctx, id, entry.Title, entry.Summary)
		if err != nil {
			lgr.Printf("[WARN] failed to apply filters to article %d: %v", id, err)
			continue
		}
		if len(matched) > 0 {
			lgr.Printf("[DEBUG] article %d muted by filters %v", id, matched)
		}
	}
	return count
}
