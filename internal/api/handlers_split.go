package api

import (
	"encoding/json"
	"net/http"
	"os"

	"blocksearch/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type splitRequest struct {
	InputPath         string `json:"input_path"`
	TemplatePath      string `json:"template_path,omitempty"`
	OutputDir         string `json:"output_dir,omitempty"`
	TargetLevel       int    `json:"target_level,omitempty"`
	Clean             bool   `json:"clean,omitempty"`
	CreateArchive     bool   `json:"create_archive,omitempty"`
	PreserveHierarchy bool   `json:"preserve_hierarchy,omitempty"`
}

// handleSplit starts a split job.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.InputPath == "" {
		jsonError(w, "input_path is required", http.StatusBadRequest)
		return
	}
	if _, err := os.Stat(req.InputPath); err != nil {
		jsonError(w, "input document not found: "+req.InputPath, http.StatusBadRequest)
		return
	}
	if req.TemplatePath != "" {
		if _, err := os.Stat(req.TemplatePath); err != nil {
			jsonError(w, "template document not found: "+req.TemplatePath, http.StatusBadRequest)
			return
		}
	}
	if req.OutputDir == "" {
		req.OutputDir = s.cfg.OutputDir
	}

	job := s.runner.Submit(pipeline.SplitRequest{
		InputPath:         req.InputPath,
		TemplatePath:      req.TemplatePath,
		OutputDir:         req.OutputDir,
		TargetLevel:       req.TargetLevel,
		Clean:             req.Clean,
		CreateArchive:     req.CreateArchive,
		PreserveHierarchy: req.PreserveHierarchy,
	})
	jsonResponse(w, http.StatusAccepted, job.Snapshot())
}

// handleSplitStatus reports a job's progress.
func (s *Server) handleSplitStatus(w http.ResponseWriter, r *http.Request) {
	job := s.runner.Jobs().Get(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, http.StatusOK, job.Snapshot())
}

// handleSplitCancel requests cooperative cancellation; the in-flight
// section still completes before the job stops.
func (s *Server) handleSplitCancel(w http.ResponseWriter, r *http.Request) {
	job := s.runner.Jobs().Get(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	job.Cancel()
	jsonResponse(w, http.StatusOK, job.Snapshot())
}
