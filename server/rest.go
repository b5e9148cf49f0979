package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/rest"

	"github.com/umputun/myfeeds/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listFeedsHandler returns all subscriptions with unread counts
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.feedList.List(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, toFeedViews(feeds))
}

// addFeedHandler subscribes to a feed, the feed is fetched before it is stored
func (s *Server) addFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	f, err := s.feeds.AddFeed(r.Context(), req.URL)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, toFeedView(*f))
}

// refreshFeedHandler fetches a single feed now
func (s *Server) refreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	count, err := s.feeds.RefreshFeed(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "new_articles": count})
}

// refreshAllHandler fetches all feeds now, failures of single feeds are reported per feed
func (s *Server) refreshAllHandler(w http.ResponseWriter, r *http.Request) {
	results := s.refresher.RefreshNow(r.Context())

	resp := struct {
		Feeds       int              `json:"feeds"`
		NewArticles int              `json:"new_articles"`
		Errors      map[int64]string `json:"errors"`
	}{Feeds: len(results), Errors: map[int64]string{}}
	for id, res := range results {
		if res.Err != nil {
			resp.Errors[id] = domain.UserMessage(res.Err)
			continue
		}
		resp.NewArticles += res.NewArticles
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// deleteFeedHandler unsubscribes a feed with all its articles
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	deleted, err := s.feeds.DeleteFeed(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if !deleted {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listArticlesHandler returns a page of articles, newest first.
// Query: feed_id, unread, saved, limit, offset.
func (s *Server) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	q, err := articleQuery(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	articles, err := s.articles.List(ctx, q)
	if err != nil {
		renderError(w, r, err)
		return
	}
	unread, err := s.articles.UnreadCount(ctx, q.FeedID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	saved, err := s.articles.SavedCount(ctx)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, rest.JSON{
		"articles":     toArticleViews(articles),
		"unread_count": unread,
		"saved_count":  saved,
	})
}

// markReadHandler makes a handler setting the read flag of an article
func (s *Server) markReadHandler(isRead bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			renderError(w, r, err)
			return
		}

		found, err := s.articles.MarkRead(r.Context(), id, isRead)
		if err != nil {
			renderError(w, r, err)
			return
		}
		if !found {
			renderError(w, r, domain.ErrNotFound)
			return
		}
		renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "is_read": isRead})
	}
}

// toggleSavedHandler flips the saved flag of an article
func (s *Server) toggleSavedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	saved, err := s.articles.ToggleSaved(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if saved == nil {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"id": id, "is_saved": *saved})
}

// markAllReadHandler marks unread articles read, of one feed when feed_id is given
func (s *Server) markAllReadHandler(w http.ResponseWriter, r *http.Request) {
	feedID, err := queryInt64(r, "feed_id")
	if err != nil {
		renderError(w, r, err)
		return
	}

	count, err := s.articles.MarkAllRead(r.Context(), feedID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"marked": count})
}

// listFiltersHandler returns all filters with match counts
func (s *Server) listFiltersHandler(w http.ResponseWriter, r *http.Request) {
	filters, err := s.filters.List(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	res := make([]filterView, 0, len(filters))
	for _, f := range filters {
		res = append(res, toFilterView(f))
	}
	renderJSON(w, r, http.StatusOK, res)
}

// createFilterHandler adds a filter and applies it to existing unread articles
func (s *Server) createFilterHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Pattern string `json:"pattern"`
		Target  string `json:"target"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	f, err := s.filters.Create(r.Context(), req.Name, req.Pattern, req.Target)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, toFilterView(*f))
}

// updateFilterHandler changes provided fields of a filter
func (s *Server) updateFilterHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	upd, err := decodeFilterUpdate(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	f, err := s.filters.Update(r.Context(), id, upd)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, toFilterView(*f))
}

// decodeFilterUpdate reads a partial filter update. Omitted fields stay nil,
// an explicit null is rejected since none of the fields is nullable.
func decodeFilterUpdate(r *http.Request) (domain.FilterUpdate, error) {
	var fields map[string]json.RawMessage
	if err := decodeJSON(r, &fields); err != nil {
		return domain.FilterUpdate{}, err
	}

	var upd domain.FilterUpdate
	var err error
	if upd.Name, err = optionalField[string](fields, "name"); err != nil {
		return upd, err
	}
	if upd.Pattern, err = optionalField[string](fields, "pattern"); err != nil {
		return upd, err
	}
	if upd.Target, err = optionalField[string](fields, "target"); err != nil {
		return upd, err
	}
	if upd.IsActive, err = optionalField[bool](fields, "is_active"); err != nil {
		return upd, err
	}
	return upd, nil
}

// optionalField decodes a field if present, nil means the field was not provided
func optionalField[T any](fields map[string]json.RawMessage, name string) (*T, error) {
	raw, ok := fields[name]
	if !ok {
		return nil, nil
	}
	if string(raw) == "null" {
		return nil, domain.NewValidationError(name, name+" can't be null")
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, domain.NewValidationError(name, "invalid "+name)
	}
	return &v, nil
}

// toggleFilterHandler flips the active flag of a filter
func (s *Server) toggleFilterHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	f, err := s.filters.Toggle(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, toFilterView(*f))
}

// deleteFilterHandler removes a filter
func (s *Server) deleteFilterHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	deleted, err := s.filters.Delete(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if !deleted {
		renderError(w, r, domain.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// filteredHandler returns muted articles grouped by filter
func (s *Server) filteredHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groups, err := s.filters.Grouped(ctx)
	if err != nil {
		renderError(w, r, err)
		return
	}
	total, err := s.filters.TotalFilteredCount(ctx)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]filterGroupView, 0, len(groups))
	for _, g := range groups {
		res = append(res, filterGroupView{Filter: toFilterView(g.Filter), Articles: toArticleViews(g.Articles)})
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"total": total, "groups": res})
}

type settingsView struct {
	RefreshInterval    int  `json:"refresh_interval_minutes"`
	AutoRefreshEnabled bool `json:"auto_refresh_enabled"`
}

// getSettingsHandler returns refresh settings
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	renderJSON(w, r, http.StatusOK, settingsView{
		RefreshInterval:    s.settings.RefreshInterval(ctx),
		AutoRefreshEnabled: s.settings.AutoRefreshEnabled(ctx),
	})
}

// saveSettingsHandler stores refresh settings, omitted fields keep their current values.
// The interval is clamped to allowed bounds and applied to the scheduler right away.
func (s *Server) saveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshInterval    *int  `json:"refresh_interval_minutes"`
		AutoRefreshEnabled *bool `json:"auto_refresh_enabled"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err)
		return
	}

	ctx := r.Context()
	resp := settingsView{RefreshInterval: s.settings.RefreshInterval(ctx), AutoRefreshEnabled: s.settings.AutoRefreshEnabled(ctx)}
	if req.RefreshInterval != nil {
		resp.RefreshInterval = *req.RefreshInterval
	}
	if req.AutoRefreshEnabled != nil {
		resp.AutoRefreshEnabled = *req.AutoRefreshEnabled
	}

	saved, err := s.settings.Save(ctx, resp.RefreshInterval, resp.AutoRefreshEnabled)
	if err != nil {
		renderError(w, r, err)
		return
	}
	resp.RefreshInterval = saved
	renderJSON(w, r, http.StatusOK, resp)
}

// articleQuery builds listing criteria from query parameters
func articleQuery(r *http.Request) (domain.ArticleQuery, error) {
	feedID, err := queryInt64(r, "feed_id")
	if err != nil {
		return domain.ArticleQuery{}, err
	}
	q := domain.ArticleQuery{
		FeedID:     feedID,
		UnreadOnly: queryBool(r, "unread"),
		SavedOnly:  queryBool(r, "saved"),
	}
	if q.Limit, err = queryInt(r, "limit", domain.DefaultPageSize); err != nil {
		return domain.ArticleQuery{}, err
	}
	if q.Offset, err = queryInt(r, "offset", 0); err != nil {
		return domain.ArticleQuery{}, err
	}
	if q.Limit < 1 || q.Offset < 0 {
		return domain.ArticleQuery{}, domain.NewValidationError("limit", "limit must be positive and offset non-negative")
	}
	return q, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", "invalid id")
	}
	return id, nil
}

// queryInt64 returns nil when the parameter is absent
func queryInt64(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError(name, "invalid "+name)
	}
	return &n, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "invalid "+name)
	}
	return n, nil
}

func queryBool(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
