package api

import (
	"encoding/json"
	"net/http"

	"blocksearch/internal/searcher"
	"github.com/go-chi/chi/v5"
)

// handleListPrefixes returns every prefix with its routed folders.
func (s *Server) handleListPrefixes(w http.ResponseWriter, r *http.Request) {
	router := s.engine.Router()
	routes := make(map[string][]string)
	for _, prefix := range router.Prefixes() {
		routes[prefix] = router.FoldersForPrefix(prefix)
	}
	jsonResponse(w, http.StatusOK, map[string]any{"prefixes": routes})
}

type prefixFolderRequest struct {
	Folder string `json:"folder"`
}

// handleAddPrefixFolder associates a folder with a prefix.
func (s *Server) handleAddPrefixFolder(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "prefix")
	var req prefixFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Folder == "" {
		jsonError(w, "folder is required", http.StatusBadRequest)
		return
	}
	if !s.engine.Router().AddPrefixFolder(prefix, req.Folder) {
		jsonError(w, "invalid prefix: must be non-empty and alphanumeric", http.StatusBadRequest)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"prefix":  prefix,
		"folders": s.engine.Router().FoldersForPrefix(prefix),
	})
}

// handleRemovePrefixFolder removes a routed folder; the folder comes from
// the "folder" query parameter.
func (s *Server) handleRemovePrefixFolder(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "prefix")
	folder := r.URL.Query().Get("folder")
	if folder == "" {
		jsonError(w, "folder query parameter is required", http.StatusBadRequest)
		return
	}
	if !s.engine.Router().RemovePrefixFolder(prefix, folder) {
		jsonError(w, "unknown prefix: "+prefix, http.StatusNotFound)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"prefix":  prefix,
		"folders": s.engine.Router().FoldersForPrefix(prefix),
	})
}

// handleVerifyPrefixes checks every routed folder against the search
// root and reports dangling (prefix, folder) pairs.
func (s *Server) handleVerifyPrefixes(w http.ResponseWriter, r *http.Request) {
	missing := s.engine.Router().VerifyFolders(s.cfg.SearchRoot)
	if missing == nil {
		missing = []searcher.RouteFolder{}
	}
	out := make([]map[string]string, 0, len(missing))
	for _, m := range missing {
		out = append(out, map[string]string{"prefix": m.Prefix, "folder": m.Folder})
	}
	jsonResponse(w, http.StatusOK, map[string]any{"missing": out})
}

// handleListExclusions returns the folders hidden from unprefixed search.
func (s *Server) handleListExclusions(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"excluded": s.engine.Router().Exclusions(),
	})
}

type exclusionRequest struct {
	Folder   string `json:"folder"`
	Excluded bool   `json:"excluded"`
}

// handleSetExclusion adds or removes a folder from the exclusion set.
func (s *Server) handleSetExclusion(w http.ResponseWriter, r *http.Request) {
	var req exclusionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Folder == "" {
		jsonError(w, "folder is required", http.StatusBadRequest)
		return
	}
	s.engine.Router().SetFolderExclusion(req.Folder, req.Excluded)
	jsonResponse(w, http.StatusOK, map[string]any{
		"excluded": s.engine.Router().Exclusions(),
	})
}
