package server

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/umputun/myfeeds/pkg/domain"
	"github.com/umputun/myfeeds/pkg/opml"
)

// importOPMLHandler subscribes to all feeds of an uploaded OPML document.
// Accepts a multipart form with a "file" field or the raw document as body.
func (s *Server) importOPMLHandler(w http.ResponseWriter, r *http.Request) {
	body, err := opmlBody(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res, err := opml.Import(r.Context(), s.feeds, bytes.NewReader(body))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// exportOPMLHandler downloads all subscriptions as OPML
func (s *Server) exportOPMLHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.feedList.List(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := opml.Export(&buf, feeds); err != nil {
		renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="myfeeds.opml"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}

func opmlBody(r *http.Request) ([]byte, error) {
	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, domain.NewValidationError("file", "OPML file is required")
		}
		defer file.Close()
		src = file
	}

	body, err := io.ReadAll(io.LimitReader(src, maxOPMLSize))
	if err != nil {
		return nil, domain.NewValidationError("file", "can't read OPML file")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.NewValidationError("file", "OPML file is required")
	}
	return body, nil
}
