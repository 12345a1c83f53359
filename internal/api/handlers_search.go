package api

import (
	"net/http"
	"strconv"
	"strings"

	"blocksearch/internal/searcher"
	"github.com/go-chi/chi/v5"
)

// handleIndexRebuild discards and rebuilds the document index.
func (s *Server) handleIndexRebuild(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Index().Rebuild(); err != nil {
		jsonError(w, "index rebuild failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"documents": s.engine.Index().Len(),
	})
}

// handleSearch evaluates a query against the index.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	desc, _ := strconv.ParseBool(q.Get("desc"))
	includePath := s.cfg.IncludePath
	if v := q.Get("path"); v != "" {
		includePath, _ = strconv.ParseBool(v)
	}

	results := s.engine.Search(q.Get("q"), searcher.SearchOptions{
		SortKey:     q.Get("sort"),
		Reverse:     desc,
		IncludePath: includePath,
	})
	if results == nil {
		results = []*searcher.DocumentRecord{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

// handleContext rebuilds a record's original-document context from
// sidecar metadata.
func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	stem := chi.URLParam(r, "stem")
	rec, ok := s.engine.Index().Get(strings.ToLower(stem))
	if !ok {
		jsonError(w, "document not found: "+stem, http.StatusNotFound)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"context": s.engine.Context(rec),
	})
}

// handleClipboard asks the host editor to copy a document's content.
func (s *Server) handleClipboard(w http.ResponseWriter, r *http.Request) {
	stem := chi.URLParam(r, "stem")
	rec, ok := s.engine.Index().Get(strings.ToLower(stem))
	if !ok {
		jsonError(w, "document not found: "+stem, http.StatusNotFound)
		return
	}
	if !s.auto.CopyToClipboard(rec.Path) {
		jsonError(w, "no host editor available", http.StatusNotImplemented)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"copied": rec.Path})
}

// handleEditorDocuments lists documents open in the host editor.
func (s *Server) handleEditorDocuments(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"documents": s.auto.ListOpenDocuments(),
	})
}
