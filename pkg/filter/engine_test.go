package filter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/myfeeds/pkg/domain"
	"github.com/umputun/myfeeds/pkg/repository"
)

type testEnv struct {
	repos  *repository.Repositories
	engine *Engine
	feedID int64
}

func setupEngine(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:" + t.TempDir() + "/engine.db?_txlock=immediate"
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: dsn, MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	feed := &domain.Feed{URL: "https://example.com/rss", Title: "Example"}
	require.NoError(t, repos.Feed.Create(context.Background(), feed))
	return &testEnv{repos: repos, engine: NewEngine(repos.Filter), feedID: feed.ID}
}

func (e *testEnv) addArticle(t *testing.T, guid, title, summary string) int64 {
	t.Helper()
	inserted, id, err := e.repos.Article.InsertIfNew(context.Background(), e.feedID,
		domain.ParsedEntry{ID: guid, Title: title, Summary: summary})
	require.NoError(t, err)
	require.True(t, inserted)
	return id
}

func (e *testEnv) isRead(t *testing.T, id int64) bool {
	t.Helper()
	a, err := e.repos.Article.Get(context.Background(), id)
	require.NoError(t, err)
	return a.IsRead
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestEngine_CreateValidation(t *testing.T) {
	env := setupEngine(t)

	tests := []struct {
		name                   string
		fName, pattern, target string
		field, msg             string
	}{
		{name: "empty name", fName: "  ", pattern: "x", target: "both", field: "name", msg: "name is required"},
		{name: "name checked first", fName: "", pattern: "", target: "bad", field: "name", msg: "name is required"},
		{name: "empty pattern", fName: "n", pattern: " ", target: "both", field: "pattern", msg: "pattern is required"},
		{name: "pattern before target", fName: "n", pattern: "", target: "bad", field: "pattern", msg: "pattern is required"},
		{name: "bad target", fName: "n", pattern: "x", target: "body", field: "target", msg: "target must be 'title', 'summary', or 'both'"},
		{name: "target before regex", fName: "n", pattern: "(", target: "body", field: "target", msg: "target must be 'title', 'summary', or 'both'"},
		{name: "bad regex", fName: "n", pattern: "(unclosed", target: "title", field: "pattern", msg: "invalid regex pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := env.engine.Create(context.Background(), tt.fName, tt.pattern, tt.target)
			require.Error(t, err)
			assert.Nil(t, f)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.msg, verr.Message)
		})
	}

	filters, err := env.engine.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, filters, "nothing persisted on validation failure")
}

func TestEngine_CreateBackfill(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	a1 := env.addArticle(t, "1", "Python 3.13 released", "")
	a2 := env.addArticle(t, "2", "Rust news", "all about PYTHON bindings")
	a3 := env.addArticle(t, "3", "Go generics", "nothing here")
	saved := env.addArticle(t, "4", "Python tips", "")
	_, err := env.repos.Article.ToggleSaved(ctx, saved)
	require.NoError(t, err)

	f, err := env.engine.Create(ctx, "  Python  ", "  python ", "both")
	require.NoError(t, err)
	assert.Equal(t, "Python", f.Name, "name trimmed")
	assert.Equal(t, "python", f.Pattern, "pattern trimmed")
	assert.True(t, f.IsActive)
	assert.Equal(t, 2, f.MatchCount)

	assert.True(t, env.isRead(t, a1))
	assert.True(t, env.isRead(t, a2), "case-insensitive summary match")
	assert.False(t, env.isRead(t, a3))
	assert.False(t, env.isRead(t, saved), "saved articles are exempt")
}

func TestEngine_TargetTitleIgnoresSummary(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	inTitle := env.addArticle(t, "1", "Football results", "")
	inSummary := env.addArticle(t, "2", "Weekend", "football everywhere")

	f, err := env.engine.Create(ctx, "sports", "football", "title")
	require.NoError(t, err)
	assert.Equal(t, 1, f.MatchCount)
	assert.True(t, env.isRead(t, inTitle))
	assert.False(t, env.isRead(t, inSummary))

	s, err := env.engine.Create(ctx, "sports summary", "football", "summary")
	require.NoError(t, err)
	assert.Equal(t, 1, s.MatchCount)
	assert.True(t, env.isRead(t, inSummary))
}

func TestEngine_UpdateReevaluates(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	a1 := env.addArticle(t, "1", "Python news", "")
	a2 := env.addArticle(t, "2", "More python", "")
	a3 := env.addArticle(t, "3", "Rust release", "systems language")
	a4 := env.addArticle(t, "4", "Go generics", "")

	f, err := env.engine.Create(ctx, "lang", "nonexistent", "both")
	require.NoError(t, err)
	assert.Zero(t, f.MatchCount)
	for _, id := range []int64{a1, a2, a3, a4} {
		assert.False(t, env.isRead(t, id))
	}

	f, err = env.engine.Update(ctx, f.ID, domain.FilterUpdate{Pattern: strPtr("python")})
	require.NoError(t, err)
	assert.Equal(t, "python", f.Pattern)
	assert.Equal(t, 2, f.MatchCount)
	assert.True(t, env.isRead(t, a1))
	assert.True(t, env.isRead(t, a2))
	assert.False(t, env.isRead(t, a3))
	assert.False(t, env.isRead(t, a4))

	articles, err := env.engine.Articles(ctx, f.ID)
	require.NoError(t, err)
	ids := make([]int64, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []int64{a1, a2}, ids)
}

func TestEngine_UpdateTriggers(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	env.addArticle(t, "1", "Crypto crash", "")
	f, err := env.engine.Create(ctx, "crypto", "crypto", "title")
	require.NoError(t, err)
	require.Equal(t, 1, f.MatchCount)

	t.Run("name only keeps matches", func(t *testing.T) {
		f, err := env.engine.Update(ctx, f.ID, domain.FilterUpdate{Name: strPtr(" Crypto stuff ")})
		require.NoError(t, err)
		assert.Equal(t, "Crypto stuff", f.Name)
		assert.Equal(t, 1, f.MatchCount)
	})

	t.Run("same pattern keeps matches", func(t *testing.T) {
		f, err := env.engine.Update(ctx, f.ID, domain.FilterUpdate{Pattern: strPtr(" crypto ")})
		require.NoError(t, err)
		assert.Equal(t, 1, f.MatchCount)
	})

	t.Run("target change clears, read articles not re-matched", func(t *testing.T) {
		f, err := env.engine.Update(ctx, f.ID, domain.FilterUpdate{Target: strPtr("both")})
		require.NoError(t, err)
		assert.Equal(t, domain.TargetBoth, f.Target)
		assert.Zero(t, f.MatchCount, "matched article is read now, so not a candidate")
	})

	t.Run("deactivate then reactivate", func(t *testing.T) {
		fresh := env.addArticle(t, "2", "crypto again", "")

		f, err := env.engine.Update(ctx, f.ID, domain.FilterUpdate{IsActive: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, f.IsActive)
		assert.False(t, env.isRead(t, fresh))

		// pattern change while inactive clears but doesn't backfill
		f, err = env.engine.Update(ctx, f.ID, domain.FilterUpdate{Pattern: strPtr("CRYPTO")})
		require.NoError(t, err)
		assert.Zero(t, f.MatchCount)
		assert.False(t, env.isRead(t, fresh))

		f, err = env.engine.Update(ctx, f.ID, domain.FilterUpdate{IsActive: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, f.IsActive)
		assert.Equal(t, 1, f.MatchCount)
		assert.True(t, env.isRead(t, fresh))
	})

	t.Run("no fields returns existing", func(t *testing.T) {
		got, err := env.engine.Update(ctx, f.ID, domain.FilterUpdate{})
		require.NoError(t, err)
		assert.Equal(t, f.ID, got.ID)
	})

	t.Run("validation before mutation", func(t *testing.T) {
		_, err := env.engine.Update(ctx, f.ID, domain.FilterUpdate{Name: strPtr("renamed"), Pattern: strPtr("[")})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "invalid regex pattern", verr.Message)

		_, err = env.engine.Update(ctx, f.ID, domain.FilterUpdate{Name: strPtr("  ")})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name is required", verr.Message)

		_, err = env.engine.Update(ctx, f.ID, domain.FilterUpdate{Target: strPtr("content")})
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "target", verr.Field)

		got, err := env.engine.Get(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, "Crypto stuff", got.Name)
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := env.engine.Update(ctx, 9999, domain.FilterUpdate{Name: strPtr("x")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEngine_Toggle(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	f, err := env.engine.Create(ctx, "ads", "sponsored", "both")
	require.NoError(t, err)

	f, err = env.engine.Toggle(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, f.IsActive)

	a := env.addArticle(t, "1", "Sponsored post", "")
	matched, err := env.engine.ApplyToNewArticle(ctx, a, "Sponsored post", "")
	require.NoError(t, err)
	assert.Empty(t, matched, "inactive filter not applied")

	f, err = env.engine.Toggle(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, f.IsActive)
	assert.Equal(t, 1, f.MatchCount, "reactivation backfills")

	_, err = env.engine.Toggle(ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEngine_ApplyToNewArticle(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	py, err := env.engine.Create(ctx, "python", "python", "title")
	require.NoError(t, err)
	snake, err := env.engine.Create(ctx, "snakes", "snake|python", "both")
	require.NoError(t, err)
	_, err = env.engine.Create(ctx, "go", `\bgo\b`, "title")
	require.NoError(t, err)

	a := env.addArticle(t, "1", "PYTHON wrangling", "")
	matched, err := env.engine.ApplyToNewArticle(ctx, a, "PYTHON wrangling", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{py.ID, snake.ID}, matched)
	assert.True(t, env.isRead(t, a))

	b := env.addArticle(t, "2", "Gopher", "")
	matched, err = env.engine.ApplyToNewArticle(ctx, b, "Gopher", "")
	require.NoError(t, err)
	assert.Empty(t, matched)
	assert.False(t, env.isRead(t, b))

	count, err := env.engine.TotalFilteredCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "distinct articles, not match rows")
}

func TestEngine_GroupedAndDelete(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	pub := func(h int) *time.Time { ts := time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC); return &ts }
	add := func(guid, title string, at *time.Time) int64 {
		_, id, err := env.repos.Article.InsertIfNew(ctx, env.feedID, domain.ParsedEntry{ID: guid, Title: title, PublishedAt: at})
		require.NoError(t, err)
		return id
	}
	older := add("1", "python old", pub(1))
	newer := add("2", "python new", pub(5))
	sport := add("3", "sports", pub(3))
	add("4", "unrelated", nil)

	_, err := env.engine.Create(ctx, "zz sports", "sports", "title")
	require.NoError(t, err)
	py, err := env.engine.Create(ctx, "Python", "python", "title")
	require.NoError(t, err)
	_, err = env.engine.Create(ctx, "empty", "nomatch", "title")
	require.NoError(t, err)

	groups, err := env.engine.Grouped(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2, "filter without matches skipped")
	assert.Equal(t, "Python", groups[0].Filter.Name)
	assert.Equal(t, "zz sports", groups[1].Filter.Name)
	require.Len(t, groups[0].Articles, 2)
	assert.Equal(t, newer, groups[0].Articles[0].ID)
	assert.Equal(t, older, groups[0].Articles[1].ID)
	assert.Equal(t, sport, groups[1].Articles[0].ID)

	total, err := env.engine.TotalFilteredCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	deleted, err := env.engine.Delete(ctx, py.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, env.isRead(t, newer), "articles stay read after filter removal")

	total, err = env.engine.TotalFilteredCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	deleted, err = env.engine.Delete(ctx, py.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestEngine_Articles(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()

	matched := env.addArticle(t, "1", "go release", "")
	env.addArticle(t, "2", "other news", "")
	f, err := env.engine.Create(ctx, "go", `\bgo\b`, "title")
	require.NoError(t, err)

	articles, err := env.engine.Articles(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, matched, articles[0].ID)

	_, err = env.engine.Articles(ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatches(t *testing.T) {
	re, err := Compile("foo")
	require.NoError(t, err)

	assert.True(t, Matches(re, domain.TargetTitle, "FOO bar", ""))
	assert.False(t, Matches(re, domain.TargetTitle, "", "foo"))
	assert.True(t, Matches(re, domain.TargetSummary, "", "a Foo"))
	assert.False(t, Matches(re, domain.TargetSummary, "foo", ""))
	assert.True(t, Matches(re, domain.TargetBoth, "", "foo"))
	assert.True(t, Matches(re, domain.TargetBoth, "foo", ""))
	assert.False(t, Matches(re, domain.TargetBoth, "", ""))

	_, err = Compile("(")
	require.Error(t, err)
}

func TestEngine_CompileCache(t *testing.T) {
	e := NewEngine(nil)
	re1, err := e.compile(1, "abc")
	require.NoError(t, err)
	re2, err := e.compile(1, "abc")
	require.NoError(t, err)
	assert.Same(t, re1, re2)
	assert.Len(t, e.compiled, 1)

	// new pattern replaces the entry of the filter
	re3, err := e.compile(1, "xyz")
	require.NoError(t, err)
	assert.NotSame(t, re1, re3)
	assert.Len(t, e.compiled, 1)
	assert.Equal(t, "xyz", e.compiled[1].pattern)
}

func TestEngine_CompileCacheLifecycle(t *testing.T) {
	env := setupEngine(t)
	ctx := context.Background()
	env.addArticle(t, "1", "Crypto crash", "")

	f, err := env.engine.Create(ctx, "crypto", "crypto", "title")
	require.NoError(t, err)
	require.Len(t, env.engine.compiled, 1)

	_, err = env.engine.Update(ctx, f.ID, domain.FilterUpdate{Pattern: strPtr("bitcoin")})
	require.NoError(t, err)
	require.Len(t, env.engine.compiled, 1, "old pattern dropped")
	assert.Equal(t, "bitcoin", env.engine.compiled[f.ID].pattern)

	deleted, err := env.engine.Delete(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	assert.Empty(t, env.engine.compiled)
}
