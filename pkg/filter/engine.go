// Package filter implements regex mute filters: validation, matching of new articles
// and retroactive evaluation of existing unread articles.
package filter

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/myfeeds/pkg/domain"
)

// Store persists filters and filter matches
type Store interface {
	Create(ctx context.Context, filter *domain.Filter) error
	Get(ctx context.Context, id int64) (*domain.Filter, error)
	List(ctx context.Context) ([]domain.Filter, error)
	ListActive(ctx context.Context) ([]domain.Filter, error)
	Update(ctx context.Context, filter *domain.Filter) error
	Delete(ctx context.Context, id int64) (bool, error)
	ClearMatches(ctx context.Context, filterID int64) error
	BackfillCandidates(ctx context.Context, filterID int64) ([]domain.MatchCandidate, error)
	RecordFilterMatches(ctx context.Context, filterID int64, articleIDs []int64) (int, error)
	RecordArticleMatches(ctx context.Context, articleID int64, filterIDs []int64) error
	MatchedArticles(ctx context.Context, filterID int64) ([]domain.Article, error)
	TotalFilteredCount(ctx context.Context) (int, error)
}

// Engine manages filters and applies them to articles.
// Compiled patterns are cached per filter id and replaced when the pattern changes.
type Engine struct {
	store Store

	mu       sync.RWMutex
	compiled map[int64]compiledPattern
}

type compiledPattern struct {
	pattern string
	re      *regexp.Regexp
}

// NewEngine creates a filter engine over the store
func NewEngine(store Store) *Engine {
	return &Engine{store: store, compiled: map[int64]compiledPattern{}}
}

// Create validates and stores a new active filter, then applies it to existing unread articles
func (e *Engine) Create(ctx context.Context, name, pattern, target string) (*domain.Filter, error) {
	name, pattern = strings.TrimSpace(name), strings.TrimSpace(pattern)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePattern(pattern); err != nil {
		return nil, err
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	if _, err := Compile(pattern); err != nil {
		return nil, domain.NewValidationError("pattern", "invalid regex pattern")
	}

	filter := &domain.Filter{Name: name, Pattern: pattern, Target: domain.FilterTarget(target), IsActive: true}
	if err := e.store.Create(ctx, filter); err != nil {
		return nil, fmt.Errorf("create filter: %w", err)
	}

	n, err := e.backfill(ctx, filter)
	if err != nil {
		return nil, err
	}
	lgr.Printf("[INFO] filter %q created, matched %d existing articles", filter.Name, n)

	return e.store.Get(ctx, filter.ID)
}

// Update applies a partial update. Changing pattern or target, or reactivating the filter,
// drops its recorded matches and re-evaluates existing unread articles.
func (e *Engine) Update(ctx context.Context, id int64, upd domain.FilterUpdate) (*domain.Filter, error) {
	existing, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var name, pattern string
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
	}
	if upd.Pattern != nil {
		pattern = strings.TrimSpace(*upd.Pattern)
		if err := validatePattern(pattern); err != nil {
			return nil, err
		}
	}
	if upd.Target != nil {
		if err := validateTarget(*upd.Target); err != nil {
			return nil, err
		}
	}
	if upd.Pattern != nil {
		if _, err := Compile(pattern); err != nil {
			return nil, domain.NewValidationError("pattern", "invalid regex pattern")
		}
	}

	if upd.Empty() {
		return existing, nil
	}

	updated := *existing
	if upd.Name != nil {
		updated.Name = name
	}
	if upd.Pattern != nil {
		updated.Pattern = pattern
	}
	if upd.Target != nil {
		updated.Target = domain.FilterTarget(*upd.Target)
	}
	if upd.IsActive != nil {
		updated.IsActive = *upd.IsActive
	}

	if err := e.store.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update filter: %w", err)
	}

	patternChanged := upd.Pattern != nil && pattern != existing.Pattern
	targetChanged := upd.Target != nil && domain.FilterTarget(*upd.Target) != existing.Target
	reactivated := upd.IsActive != nil && *upd.IsActive && !existing.IsActive

	if patternChanged || targetChanged || reactivated {
		if err := e.store.ClearMatches(ctx, id); err != nil {
			return nil, fmt.Errorf("clear matches: %w", err)
		}
		n, err := e.backfill(ctx, &updated)
		if err != nil {
			return nil, err
		}
		lgr.Printf("[INFO] filter %q re-evaluated, matched %d articles", updated.Name, n)
	}

	return e.store.Get(ctx, id)
}

// Toggle flips the active flag of a filter, reactivation re-evaluates existing articles
func (e *Engine) Toggle(ctx context.Context, id int64) (*domain.Filter, error) {
	existing, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	active := !existing.IsActive
	return e.Update(ctx, id, domain.FilterUpdate{IsActive: &active})
}

// Delete removes a filter with its matches. Matched articles stay read.
func (e *Engine) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := e.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete filter: %w", err)
	}
	e.mu.Lock()
	delete(e.compiled, id)
	e.mu.Unlock()
	return deleted, nil
}

// Get returns a filter with its match count
func (e *Engine) Get(ctx context.Context, id int64) (*domain.Filter, error) {
	return e.store.Get(ctx, id)
}

// Articles returns the articles matched by a filter, newest first
func (e *Engine) Articles(ctx context.Context, id int64) ([]domain.Article, error) {
	if _, err := e.store.Get(ctx, id); err != nil {
		return nil, err
	}
	articles, err := e.store.MatchedArticles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get articles of filter %d: %w", id, err)
	}
	return articles, nil
}

// List returns all filters with match counts, ordered by name
func (e *Engine) List(ctx context.Context) ([]domain.Filter, error) {
	return e.store.List(ctx)
}

// ApplyToNewArticle evaluates all active filters against a freshly stored article.
// Matches are recorded and the article is marked read once if any filter matched.
func (e *Engine) ApplyToNewArticle(ctx context.Context, articleID int64, title, summary string) ([]int64, error) {
	filters, err := e.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get active filters: %w", err)
	}

	var matched []int64
	for _, f := range filters {
		re, err := e.compile(f.ID, f.Pattern)
		if err != nil {
			lgr.Printf("[WARN] filter %d has invalid pattern %q: %v", f.ID, f.Pattern, err)
			continue
		}
		if Matches(re, f.Target, title, summary) {
			matched = append(matched, f.ID)
		}
	}

	if len(matched) == 0 {
		return nil, nil
	}
	if err := e.store.RecordArticleMatches(ctx, articleID, matched); err != nil {
		return nil, fmt.Errorf("record matches for article %d: %w", articleID, err)
	}
	return matched, nil
}

// Grouped returns filters ordered by name, each with the articles it matched, newest first.
// Filters without matches are skipped.
func (e *Engine) Grouped(ctx context.Context) ([]domain.FilterGroup, error) {
	filters, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}

	var groups []domain.FilterGroup
	for _, f := range filters {
		if f.MatchCount == 0 {
			continue
		}
		articles, err := e.store.MatchedArticles(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("get articles of filter %d: %w", f.ID, err)
		}
		if len(articles) == 0 {
			continue
		}
		groups = append(groups, domain.FilterGroup{Filter: f, Articles: articles})
	}
	return groups, nil
}

// TotalFilteredCount returns the number of distinct articles matched by any filter
func (e *Engine) TotalFilteredCount(ctx context.Context) (int, error) {
	return e.store.TotalFilteredCount(ctx)
}

// backfill applies an active filter to unread, unsaved articles it hasn't matched yet
func (e *Engine) backfill(ctx context.Context, filter *domain.Filter) (int, error) {
	if !filter.IsActive {
		return 0, nil
	}

	re, err := e.compile(filter.ID, filter.Pattern)
	if err != nil {
		return 0, domain.NewValidationError("pattern", "invalid regex pattern")
	}

	candidates, err := e.store.BackfillCandidates(ctx, filter.ID)
	if err != nil {
		return 0, fmt.Errorf("backfill filter %d: %w", filter.ID, err)
	}

	var ids []int64
	for _, c := range candidates {
		if Matches(re, filter.Target, c.Title, c.Summary) {
			ids = append(ids, c.ID)
		}
	}

	n, err := e.store.RecordFilterMatches(ctx, filter.ID, ids)
	if err != nil {
		return 0, fmt.Errorf("backfill filter %d: %w", filter.ID, err)
	}
	return n, nil
}

// compile returns the case-insensitive regex of a filter, cached until the filter's pattern changes
func (e *Engine) compile(id int64, pattern string) (*regexp.Regexp, error) {
	e.mu.RLock()
	c, ok := e.compiled[id]
	e.mu.RUnlock()
	if ok && c.pattern == pattern {
		return c.re, nil
	}

	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.compiled[id] = compiledPattern{pattern: pattern, re: re}
	e.mu.Unlock()
	return re, nil
}

// Compile builds the case-insensitive matcher for a filter pattern
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return re, nil
}

// Matches reports whether the text selected by target contains a match
func Matches(re *regexp.Regexp, target domain.FilterTarget, title, summary string) bool {
	switch target {
	case domain.TargetTitle:
		return re.MatchString(title)
	case domain.TargetSummary:
		return re.MatchString(summary)
	default:
		return re.MatchString(title) || re.MatchString(summary)
	}
}

func validateName(name string) error {
	if name == "" {
		return domain.NewValidationError("name", "name is required")
	}
	return nil
}

func validatePattern(pattern string) error {
	if pattern == "" {
		return domain.NewValidationError("pattern", "pattern is required")
	}
	return nil
}

func validateTarget(target string) error {
	if !domain.FilterTarget(target).Valid() {
		return domain.NewValidationError("target", "target must be 'title', 'summary', or 'both'")
	}
	return nil
}
