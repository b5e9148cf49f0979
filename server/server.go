package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/myfeeds/pkg/domain"
	"github.com/umputun/myfeeds/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/feed_service.go -pkg mocks -skip-ensure -fmt goimports . FeedService
//go:generate moq -out mocks/feed_lister.go -pkg mocks -skip-ensure -fmt goimports . FeedLister
//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/filter_service.go -pkg mocks -skip-ensure -fmt goimports . FilterService
//go:generate moq -out mocks/settings_service.go -pkg mocks -skip-ensure -fmt goimports . SettingsService
//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . Refresher

const maxOPMLSize = 5 * 1024 * 1024

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	feeds     FeedService
	feedList  FeedLister
	articles  ArticleStore
	filters   FilterService
	settings  SettingsService
	refresher Refresher
	generator *feed.Generator
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// FeedService subscribes, refreshes and removes feeds
type FeedService interface {
	AddFeed(ctx context.Context, url string) (*domain.Feed, error)
	RefreshFeed(ctx context.Context, feedID int64) (int, error)
	DeleteFeed(ctx context.Context, feedID int64) (bool, error)
}

// FeedLister lists subscribed feeds with unread counts
type FeedLister interface {
	List(ctx context.Context) ([]domain.Feed, error)
}

// ArticleStore reads articles and changes their read and saved state
type ArticleStore interface {
	List(ctx context.Context, q domain.ArticleQuery) ([]domain.Article, error)
	MarkRead(ctx context.Context, id int64, isRead bool) (bool, error)
	MarkAllRead(ctx context.Context, feedID *int64) (int64, error)
	ToggleSaved(ctx context.Context, id int64) (*bool, error)
	UnreadCount(ctx context.Context, feedID *int64) (int, error)
	SavedCount(ctx context.Context) (int, error)
}

// FilterService manages mute filters
type FilterService interface {
	Create(ctx context.Context, name, pattern, target string) (*domain.Filter, error)
	Update(ctx context.Context, id int64, upd domain.FilterUpdate) (*domain.Filter, error)
	Toggle(ctx context.Context, id int64) (*domain.Filter, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Get(ctx context.Context, id int64) (*domain.Filter, error)
	List(ctx context.Context) ([]domain.Filter, error)
	Articles(ctx context.Context, id int64) ([]domain.Article, error)
	Grouped(ctx context.Context) ([]domain.FilterGroup, error)
	TotalFilteredCount(ctx context.Context) (int, error)
}

// SettingsService reads and saves user settings
type SettingsService interface {
	All(ctx context.Context) (map[string]string, error)
	RefreshInterval(ctx context.Context) int
	AutoRefreshEnabled(ctx context.Context) bool
	Save(ctx context.Context, intervalMinutes int, autoRefresh bool) (int, error)
}

// Refresher refreshes all feeds on demand
type Refresher interface {
	RefreshNow(ctx context.Context) map[int64]domain.RefreshResult
}

// Params defines server dependencies
type Params struct {
	Config    ConfigProvider
	Feeds     FeedService
	FeedList  FeedLister
	Articles  ArticleStore
	Filters   FilterService
	Settings  SettingsService
	Refresher Refresher
	BaseURL   string // public address used in generated RSS feeds
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(params Params) *Server {
	s := &Server{
		config:    params.Config,
		feeds:     params.Feeds,
		feedList:  params.FeedList,
		articles:  params.Articles,
		filters:   params.Filters,
		settings:  params.Settings,
		refresher: params.Refresher,
		generator: feed.NewGenerator(params.BaseURL),
		version:   params.Version,
		debug:     params.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      10 * timeout, // refresh-all is synchronous
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler returns the server router, used by tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("myfeeds", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(maxOPMLSize))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.addFeedHandler)
		r.HandleFunc("POST /feeds/refresh", s.refreshAllHandler)
		r.HandleFunc("POST /feeds/{id}/refresh", s.refreshFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)

		r.HandleFunc("GET /articles", s.listArticlesHandler)
		r.HandleFunc("POST /articles/read-all", s.markAllReadHandler)
		r.HandleFunc("POST /articles/{id}/read", s.markReadHandler(true))
		r.HandleFunc("POST /articles/{id}/unread", s.markReadHandler(false))
		r.HandleFunc("POST /articles/{id}/save", s.toggleSavedHandler)

		r.HandleFunc("GET /filters", s.listFiltersHandler)
		r.HandleFunc("POST /filters", s.createFilterHandler)
		r.HandleFunc("PUT /filters/{id}", s.updateFilterHandler)
		r.HandleFunc("DELETE /filters/{id}", s.deleteFilterHandler)
		r.HandleFunc("POST /filters/{id}/toggle", s.toggleFilterHandler)
		r.HandleFunc("GET /filtered", s.filteredHandler)

		r.HandleFunc("GET /settings", s.getSettingsHandler)
		r.HandleFunc("PUT /settings", s.saveSettingsHandler)

		r.HandleFunc("POST /opml/import", s.importOPMLHandler)
		r.HandleFunc("GET /opml/export", s.exportOPMLHandler)
	})

	s.router.HandleFunc("GET /rss/saved", s.savedRSSHandler)
	s.router.HandleFunc("GET /rss/filters/{id}", s.filterRSSHandler)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON, the status is derived from the error kind
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	}
	renderJSON(w, r, code, rest.JSON{"error": domain.UserMessage(err)})
}

// errorStatus maps domain errors to http status codes
func errorStatus(err error) int {
	var validationErr *domain.ValidationError
	var fetchErr *domain.FetchError
	var parseErr *domain.ParseError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateFeed):
		return http.StatusConflict
	case errors.As(err, &fetchErr), errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a json request body into v, failures are reported as validation errors
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "request body is required")
		}
		return domain.NewValidationError("body", "invalid JSON body")
	}
	return nil
}
