package server

import (
	"log"
	"net/http"

	"github.com/umputun/myfeeds/pkg/domain"
)

// savedRSSHandler re-publishes saved articles as an RSS feed
func (s *Server) savedRSSHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.articles.List(r.Context(), domain.ArticleQuery{SavedOnly: true, Limit: domain.DefaultPageSize})
	if err != nil {
		log.Printf("[ERROR] failed to get saved articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}
	s.writeRSS(w, r, "Saved", articles)
}

// filterRSSHandler re-publishes articles muted by a filter as an RSS feed
func (s *Server) filterRSSHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid filter id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	f, err := s.filters.Get(ctx, id)
	if err != nil {
		http.Error(w, "Filter not found", errorStatus(err))
		return
	}
	articles, err := s.filters.Articles(ctx, id)
	if err != nil {
		log.Printf("[ERROR] failed to get articles of filter %d for RSS: %v", id, err)
		http.Error(w, "Failed to generate RSS feed", errorStatus(err))
		return
	}
	s.writeRSS(w, r, "Filter: "+f.Name, articles)
}

func (s *Server) writeRSS(w http.ResponseWriter, r *http.Request, title string, articles []domain.Article) {
	rss, err := s.generator.GenerateRSS(title, r.URL.Path, articles)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write(rss); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
