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

func TestServer_savedRSSHandler(t *testing.T) {
	pub := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	srv, deps := testServer(t, ":8080")
	deps.articles.ListFunc = func(_ context.Context, q domain.ArticleQuery) ([]domain.Article, error) {
		assert.True(t, q.SavedOnly)
		assert.Equal(t, domain.DefaultPageSize, q.Limit)
		return []domain.Article{{ID: 1, GUID: "g1", Title: "Kept for later", URL: "https://example.com/1",
			Summary: "summary", FeedTitle: "Example", PublishedAt: &pub, IsSaved: true}}, nil
	}

	w := do(t, srv, "GET", "/rss/saved", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `<title>MyFeeds - Saved</title>`)
	assert.Contains(t, body, `<title>Kept for later</title>`)
	assert.Contains(t, body, `href="http://feeds.example.com/rss/saved"`)
}

func TestServer_savedRSSHandler_Error(t *testing.T) {
	srv, deps := testServer(t, ":8080")
	deps.articles.ListFunc = func(context.Context, domain.ArticleQuery) ([]domain.Article, error) {
		return nil, errors.New("db error")
	}

	w := do(t, srv, "GET", "/rss/saved", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to generate RSS feed")
}

func TestServer_filterRSSHandler(t *testing.T) {
	srv, deps := testServer(t, ":8080")
	deps.filters.GetFunc = func(_ context.Context, id int64) (*domain.Filter, error) {
		if id != 3 {
			return nil, domain.ErrNotFound
		}
		return &domain.Filter{ID: 3, Name: "Crypto"}, nil
	}
	deps.filters.ArticlesFunc = func(_ context.Context, id int64) ([]domain.Article, error) {
		return []domain.Article{{ID: 1, GUID: "g1", Title: "Bitcoin again", URL: "https://example.com/btc"}}, nil
	}

	w := do(t, srv, "GET", "/rss/filters/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<title>MyFeeds - Filter: Crypto</title>`)
	assert.Contains(t, w.Body.String(), `<title>Bitcoin again</title>`)

	w = do(t, srv, "GET", "/rss/filters/4", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, "GET", "/rss/filters/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, deps.filters.ArticlesCalls(), 1)
}
