package domain

import "time"

// FilterTarget defines which article text a filter pattern is tested against
type FilterTarget string

const (
	TargetTitle   FilterTarget = "title"
	TargetSummary FilterTarget = "summary"
	TargetBoth    FilterTarget = "both"
)

// Valid reports whether the target is one of the known values
func (t FilterTarget) Valid() bool {
	switch t {
	case TargetTitle, TargetSummary, TargetBoth:
		return true
	}
	return false
}

// Filter is a named regex rule that mutes matching unread articles
type Filter struct {
	ID        int64
	Name      string
	Pattern   string
	Target    FilterTarget
	IsActive  bool
	CreatedAt time.Time

	// projection, populated by listing queries
	MatchCount int
}

// FilterUpdate is a partial update of a filter. Nil fields are left untouched.
type FilterUpdate struct {
	Name     *string
	Pattern  *string
	Target   *string
	IsActive *bool
}

// Empty reports whether no field is provided
func (u FilterUpdate) Empty() bool {
	return u.Name == nil && u.Pattern == nil && u.Target == nil && u.IsActive == nil
}

// FilterMatch records that a filter matched an article
type FilterMatch struct {
	ArticleID int64
	FilterID  int64
	MatchedAt time.Time
}

// FilterGroup is a filter together with the articles it matched
type FilterGroup struct {
	Filter   Filter
	Articles []Article
}

// MatchCandidate is the article text a filter is evaluated against
type MatchCandidate struct {
	ID      int64
	Title   string
	Summary string
}
