package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/myfeeds/pkg/domain"
)

func TestServer_Feeds(t *testing.T) {
	fetched := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("list", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.feedList.ListFunc = func(context.Context) ([]domain.Feed, error) {
			return []domain.Feed{
				{ID: 1, URL: "https://a.example.com/rss", Title: "A", LastFetched: &fetched, UnreadCount: 3},
				{ID: 2, URL: "https://b.example.com/rss", FetchErrorCount: 2, LastError: "that site took too long to respond"},
			}, nil
		}

		w := do(t, srv, "GET", "/api/v1/feeds", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp []feedView
		decodeBody(t, w, &resp)
		require.Len(t, resp, 2)
		assert.Equal(t, "A", resp[0].DisplayName)
		assert.Equal(t, 3, resp[0].UnreadCount)
		assert.Equal(t, "https://b.example.com/rss", resp[1].DisplayName)
		assert.Equal(t, 2, resp[1].FetchErrorCount)
	})

	t.Run("add", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.feeds.AddFeedFunc = func(_ context.Context, url string) (*domain.Feed, error) {
			return &domain.Feed{ID: 7, URL: url, Title: "New", UnreadCount: 5}, nil
		}

		w := do(t, srv, "POST", "/api/v1/feeds", `{"url":"https://new.example.com/rss"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var resp feedView
		decodeBody(t, w, &resp)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, 5, resp.UnreadCount)
		require.Len(t, deps.feeds.AddFeedCalls(), 1)
		assert.Equal(t, "https://new.example.com/rss", deps.feeds.AddFeedCalls()[0].URL)
	})

	t.Run("add errors", func(t *testing.T) {
		tests := []struct {
			name string
			body string
			err  error
			code int
			msg  string
		}{
			{name: "bad json", body: `{"url":`, code: http.StatusBadRequest, msg: "invalid JSON body"},
			{name: "duplicate", body: `{"url":"x"}`, err: domain.ErrDuplicateFeed, code: http.StatusConflict, msg: "feed already exists"},
			{name: "fetch", body: `{"url":"x"}`, err: &domain.FetchError{Kind: domain.FetchForbidden, StatusCode: 403},
				code: http.StatusUnprocessableEntity, msg: "that site blocked the request (403)"},
			{name: "not a feed", body: `{"url":"x"}`, err: &domain.ParseError{}, code: http.StatusUnprocessableEntity,
				msg: "that URL doesn't contain a valid RSS/Atom feed"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				srv, deps := testServer(t, ":8080")
				deps.feeds.AddFeedFunc = func(context.Context, string) (*domain.Feed, error) { return nil, tt.err }

				w := do(t, srv, "POST", "/api/v1/feeds", tt.body)
				assert.Equal(t, tt.code, w.Code)
				var resp map[string]string
				decodeBody(t, w, &resp)
				assert.Equal(t, tt.msg, resp["error"])
			})
		}
	})

	t.Run("refresh one", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.feeds.RefreshFeedFunc = func(_ context.Context, id int64) (int, error) {
			if id == 404 {
				return 0, domain.ErrNotFound
			}
			return 4, nil
		}

		w := do(t, srv, "POST", "/api/v1/feeds/3/refresh", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":3,"new_articles":4}`, w.Body.String())

		w = do(t, srv, "POST", "/api/v1/feeds/404/refresh", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, srv, "POST", "/api/v1/feeds/abc/refresh", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("refresh all", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.refresher.RefreshNowFunc = func(context.Context) map[int64]domain.RefreshResult {
			return map[int64]domain.RefreshResult{
				1: {NewArticles: 2},
				2: {NewArticles: 3},
				3: {Err: &domain.FetchError{Kind: domain.FetchTimeout}},
			}
		}

		w := do(t, srv, "POST", "/api/v1/feeds/refresh", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"feeds":3,"new_articles":5,"errors":{"3":"that site took too long to respond"}}`, w.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.feeds.DeleteFeedFunc = func(_ context.Context, id int64) (bool, error) { return id == 1, nil }

		w := do(t, srv, "DELETE", "/api/v1/feeds/1", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, srv, "DELETE", "/api/v1/feeds/2", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_Articles(t *testing.T) {
	pub := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("list with query", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.articles.ListFunc = func(_ context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
			return []domain.Article{{ID: 10, FeedID: 2, FeedTitle: "A", Title: "Hello",
				Summary: "<p>Some <i>text</i></p>", PublishedAt: &pub}}, nil
		}
		deps.articles.UnreadCountFunc = func(context.Context, *int64) (int, error) { return 12, nil }
		deps.articles.SavedCountFunc = func(context.Context) (int, error) { return 1, nil }

		w := do(t, srv, "GET", "/api/v1/articles?feed_id=2&unread=1&limit=10&offset=20", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Articles    []articleView `json:"articles"`
			UnreadCount int           `json:"unread_count"`
			SavedCount  int           `json:"saved_count"`
		}
		decodeBody(t, w, &resp)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "Some text", resp.Articles[0].SummaryText)
		assert.Equal(t, "<p>Some <i>text</i></p>", resp.Articles[0].Summary)
		assert.Equal(t, 12, resp.UnreadCount)
		assert.Equal(t, 1, resp.SavedCount)

		require.Len(t, deps.articles.ListCalls(), 1)
		q := deps.articles.ListCalls()[0].Q
		require.NotNil(t, q.FeedID)
		assert.Equal(t, int64(2), *q.FeedID)
		assert.True(t, q.UnreadOnly)
		assert.False(t, q.SavedOnly)
		assert.Equal(t, 10, q.Limit)
		assert.Equal(t, 20, q.Offset)
		require.NotNil(t, deps.articles.UnreadCountCalls()[0].FeedID)
	})

	t.Run("list defaults", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.articles.ListFunc = func(context.Context, domain.ArticleQuery) ([]domain.Article, error) { return nil, nil }
		deps.articles.UnreadCountFunc = func(context.Context, *int64) (int, error) { return 0, nil }
		deps.articles.SavedCountFunc = func(context.Context) (int, error) { return 0, nil }

		w := do(t, srv, "GET", "/api/v1/articles?saved=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"articles":[]`)
		q := deps.articles.ListCalls()[0].Q
		assert.Nil(t, q.FeedID)
		assert.True(t, q.SavedOnly)
		assert.Equal(t, domain.DefaultPageSize, q.Limit)
	})

	t.Run("list bad params", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		for _, target := range []string{"/api/v1/articles?feed_id=x", "/api/v1/articles?limit=0", "/api/v1/articles?offset=-1"} {
			w := do(t, srv, "GET", target, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, target)
		}
		assert.Empty(t, deps.articles.ListCalls())
	})

	t.Run("list store failure", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.articles.ListFunc = func(context.Context, domain.ArticleQuery) ([]domain.Article, error) {
			return nil, errors.New("db gone")
		}
		w := do(t, srv, "GET", "/api/v1/articles", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("read and unread", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.articles.MarkReadFunc = func(_ context.Context, id int64, _ bool) (bool, error) { return id != 99, nil }

		w := do(t, srv, "POST", "/api/v1/articles/5/read", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"is_read":true}`, w.Body.String())

		w = do(t, srv, "POST", "/api/v1/articles/5/unread", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"is_read":false}`, w.Body.String())

		w = do(t, srv, "POST", "/api/v1/articles/99/read", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		calls := deps.articles.MarkReadCalls()
		require.Len(t, calls, 3)
		assert.True(t, calls[0].IsRead)
		assert.False(t, calls[1].IsRead)
	})

	t.Run("save toggle", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.articles.ToggleSavedFunc = func(_ context.Context, id int64) (*bool, error) {
			if id == 99 {
				return nil, nil
			}
			saved := true
			return &saved, nil
		}

		w := do(t, srv, "POST", "/api/v1/articles/5/save", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"is_saved":true}`, w.Body.String())

		w = do(t, srv, "POST", "/api/v1/articles/99/save", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("read all", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.articles.MarkAllReadFunc = func(_ context.Context, feedID *int64) (int64, error) {
			if feedID != nil {
				return 2, nil
			}
			return 9, nil
		}

		w := do(t, srv, "POST", "/api/v1/articles/read-all?feed_id=3", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"marked":2}`, w.Body.String())

		w = do(t, srv, "POST", "/api/v1/articles/read-all", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"marked":9}`, w.Body.String())
	})
}

func TestServer_Filters(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("create", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.filters.CreateFunc = func(_ context.Context, name, pattern, target string) (*domain.Filter, error) {
			if target == "bad" {
				return nil, domain.NewValidationError("target", "target must be 'title', 'summary', or 'both'")
			}
			return &domain.Filter{ID: 1, Name: name, Pattern: pattern, Target: domain.FilterTarget(target),
				IsActive: true, MatchCount: 2, CreatedAt: created}, nil
		}

		w := do(t, srv, "POST", "/api/v1/filters", `{"name":"Sports","pattern":"football","target":"both"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var resp filterView
		decodeBody(t, w, &resp)
		assert.Equal(t, filterView{ID: 1, Name: "Sports", Pattern: "football", Target: "both", IsActive: true,
			MatchCount: 2, CreatedAt: created}, resp)

		w = do(t, srv, "POST", "/api/v1/filters", `{"name":"x","pattern":"y","target":"bad"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"target must be 'title', 'summary', or 'both'"}`, w.Body.String())
	})

	t.Run("update passes only provided fields", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.filters.UpdateFunc = func(_ context.Context, id int64, upd domain.FilterUpdate) (*domain.Filter, error) {
			if id == 404 {
				return nil, domain.ErrNotFound
			}
			return &domain.Filter{ID: id, Name: "n", Pattern: *upd.Pattern, Target: domain.TargetTitle}, nil
		}

		w := do(t, srv, "PUT", "/api/v1/filters/4", `{"pattern":"python"}`)
		require.Equal(t, http.StatusOK, w.Code)
		upd := deps.filters.UpdateCalls()[0].Upd
		require.NotNil(t, upd.Pattern)
		assert.Equal(t, "python", *upd.Pattern)
		assert.Nil(t, upd.Name)
		assert.Nil(t, upd.Target)
		assert.Nil(t, upd.IsActive)

		w = do(t, srv, "PUT", "/api/v1/filters/404", `{"pattern":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update rejects explicit null", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.filters.UpdateFunc = func(_ context.Context, id int64, _ domain.FilterUpdate) (*domain.Filter, error) {
			return &domain.Filter{ID: id, Name: "n", Pattern: "p", Target: domain.TargetTitle}, nil
		}

		tests := []struct {
			name, body, msg string
		}{
			{name: "pattern", body: `{"pattern":null}`, msg: "pattern can't be null"},
			{name: "target with valid name", body: `{"name":"x","target":null}`, msg: "target can't be null"},
			{name: "is_active", body: `{"is_active":null}`, msg: "is_active can't be null"},
			{name: "wrong type", body: `{"is_active":"yes"}`, msg: "invalid is_active"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := do(t, srv, "PUT", "/api/v1/filters/4", tt.body)
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `{"error":"`+tt.msg+`"}`, w.Body.String())
			})
		}
		assert.Empty(t, deps.filters.UpdateCalls())

		// omitted fields are an empty update, not an error
		w := do(t, srv, "PUT", "/api/v1/filters/4", `{"is_active":false}`)
		require.Equal(t, http.StatusOK, w.Code)
		upd := deps.filters.UpdateCalls()[0].Upd
		require.NotNil(t, upd.IsActive)
		assert.False(t, *upd.IsActive)
		assert.Nil(t, upd.Name)
		assert.Nil(t, upd.Pattern)
		assert.Nil(t, upd.Target)
	})

	t.Run("toggle, list and delete", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.filters.ToggleFunc = func(_ context.Context, id int64) (*domain.Filter, error) {
			return &domain.Filter{ID: id, Name: "f", IsActive: false}, nil
		}
		deps.filters.ListFunc = func(context.Context) ([]domain.Filter, error) {
			return []domain.Filter{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, nil
		}
		deps.filters.DeleteFunc = func(_ context.Context, id int64) (bool, error) { return id == 1, nil }

		w := do(t, srv, "POST", "/api/v1/filters/1/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"is_active":false`)

		w = do(t, srv, "GET", "/api/v1/filters", "")
		require.Equal(t, http.StatusOK, w.Code)
		var list []filterView
		decodeBody(t, w, &list)
		assert.Len(t, list, 2)

		assert.Equal(t, http.StatusNoContent, do(t, srv, "DELETE", "/api/v1/filters/1", "").Code)
		assert.Equal(t, http.StatusNotFound, do(t, srv, "DELETE", "/api/v1/filters/2", "").Code)
	})

	t.Run("filtered groups", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.filters.GroupedFunc = func(context.Context) ([]domain.FilterGroup, error) {
			return []domain.FilterGroup{
				{Filter: domain.Filter{ID: 1, Name: "Python", MatchCount: 2},
					Articles: []domain.Article{{ID: 11, Title: "py 1"}, {ID: 12, Title: "py 2"}}},
			}, nil
		}
		deps.filters.TotalFilteredCountFunc = func(context.Context) (int, error) { return 2, nil }

		w := do(t, srv, "GET", "/api/v1/filtered", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Total  int               `json:"total"`
			Groups []filterGroupView `json:"groups"`
		}
		decodeBody(t, w, &resp)
		assert.Equal(t, 2, resp.Total)
		require.Len(t, resp.Groups, 1)
		assert.Equal(t, "Python", resp.Groups[0].Filter.Name)
		assert.Len(t, resp.Groups[0].Articles, 2)
	})
}

func TestServer_Settings(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.settings.RefreshIntervalFunc = func(context.Context) int { return 45 }
		deps.settings.AutoRefreshEnabledFunc = func(context.Context) bool { return true }

		w := do(t, srv, "GET", "/api/v1/settings", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"refresh_interval_minutes":45,"auto_refresh_enabled":true}`, w.Body.String())
	})

	t.Run("save clamps and keeps omitted fields", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.settings.RefreshIntervalFunc = func(context.Context) int { return 45 }
		deps.settings.AutoRefreshEnabledFunc = func(context.Context) bool { return true }
		deps.settings.SaveFunc = func(_ context.Context, minutes int, _ bool) (int, error) {
			return domain.ClampRefreshInterval(minutes), nil
		}

		w := do(t, srv, "PUT", "/api/v1/settings", `{"refresh_interval_minutes":1}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"refresh_interval_minutes":5,"auto_refresh_enabled":true}`, w.Body.String())

		w = do(t, srv, "PUT", "/api/v1/settings", `{"auto_refresh_enabled":false}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"refresh_interval_minutes":45,"auto_refresh_enabled":false}`, w.Body.String())

		calls := deps.settings.SaveCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, 1, calls[0].IntervalMinutes)
		assert.True(t, calls[0].AutoRefresh)
		assert.Equal(t, 45, calls[1].IntervalMinutes)
		assert.False(t, calls[1].AutoRefresh)
	})

	t.Run("save failure", func(t *testing.T) {
		srv, deps := testServer(t, ":8080")
		deps.settings.RefreshIntervalFunc = func(context.Context) int { return 30 }
		deps.settings.AutoRefreshEnabledFunc = func(context.Context) bool { return true }
		deps.settings.SaveFunc = func(context.Context, int, bool) (int, error) { return 0, errors.New("locked") }

		w := do(t, srv, "PUT", "/api/v1/settings", `{"refresh_interval_minutes":60}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
