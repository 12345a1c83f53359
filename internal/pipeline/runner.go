package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"blocksearch/internal/blockdoc"
	"blocksearch/internal/config"
	"blocksearch/internal/parser"
	"blocksearch/internal/splitter"
)

// SplitRequest describes one split run.
type SplitRequest struct {
	InputPath         string
	TemplatePath      string
	OutputDir         string
	TargetLevel       int
	Clean             bool
	CreateArchive     bool
	PreserveHierarchy bool
}

// Runner drives split jobs. All of a job's work runs on one goroutine;
// only its cancellation token is touched from outside. The runner holds
// the single active-operation reference: a second split against the same
// source must wait for the first to finish.
type Runner struct {
	jobs *JobStore
	cfg  config.Config
	log  *slog.Logger
}

// NewRunner creates a runner with a TTL-evicting job store.
func NewRunner(cfg config.Config, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		jobs: NewJobStore(cfg.JobTTL),
		cfg:  cfg,
		log:  log,
	}
}

// Jobs returns the job store.
func (r *Runner) Jobs() *JobStore { return r.jobs }

// Submit registers a job for the request and starts it on its own
// goroutine. The returned job is immediately queryable.
func (r *Runner) Submit(req SplitRequest) *Job {
	job := &Job{
		ID:        newJobID(),
		InputPath: req.InputPath,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		cancel:    splitter.NewToken(),
	}
	r.jobs.Put(job)
	go r.run(job, req)
	return job
}

// Run executes a split synchronously, reporting into the given job.
func (r *Runner) run(job *Job, req SplitRequest) {
	r.jobs.Cleanup()

	stage := func(s JobStatus) { job.SetStatus(s, job.Snapshot().Phase) }
	result, err := r.split(req, job.CancelToken(), stage, job.SetPhase, job.SetPercent, job.SetTotalSections)
	switch {
	case errors.Is(err, splitter.ErrCanceled):
		job.SetStatus(StatusCanceled, "Operation canceled; partial output remains on disk")
	case err != nil:
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, err.Error())
	default:
		job.SetOutputPath(result)
		job.SetPercent(100)
		job.SetStatus(StatusCompleted, fmt.Sprintf("Output written to %s", result))
	}
}

// Split performs one split run: parse, optionally clean, build the
// section tree, assemble and package. Returns the output path, or
// splitter.ErrCanceled when the token was observed.
func (r *Runner) Split(req SplitRequest, cancel *splitter.Token, status func(string), progress func(int), totals func(int)) (string, error) {
	return r.split(req, cancel, nil, status, progress, totals)
}

func (r *Runner) split(req SplitRequest, cancel *splitter.Token, stage func(JobStatus), status func(string), progress func(int), totals func(int)) (string, error) {
	if stage == nil {
		stage = func(JobStatus) {}
	}
	if status == nil {
		status = func(string) {}
	}
	if progress == nil {
		progress = func(int) {}
	}
	if totals == nil {
		totals = func(int) {}
	}
	target := req.TargetLevel
	if target <= 0 {
		target = r.cfg.TargetLevel
	}

	stage(StatusParsing)
	status("Loading document...")
	doc, err := r.parseDocument(req.InputPath)
	if err != nil {
		return "", fmt.Errorf("load input document: %w", err)
	}

	var template *blockdoc.Document
	if req.TemplatePath != "" {
		template, err = r.parseDocument(req.TemplatePath)
		if err != nil {
			return "", fmt.Errorf("load template document: %w", err)
		}
	}

	split := splitter.New(doc, req.InputPath, splitter.Options{
		Template: template,
		Status:   status,
		Progress: progress,
		Cancel:   cancel,
		Log:      r.log,
	})

	if req.Clean {
		stage(StatusCleaning)
		if !split.Clean(target) {
			return "", splitter.ErrCanceled
		}
	}

	sections := split.ParseSections(target)
	totals(len(sections))

	stage(StatusSplitting)
	out, err := split.Process(req.OutputDir, target, req.CreateArchive, req.PreserveHierarchy)
	if err != nil {
		return "", err
	}
	r.log.Info("split complete", "input", req.InputPath, "sections", len(sections), "output", out)
	return out, nil
}

// parseDocument selects a parser for the path and applies runner-level
// parser configuration before reading.
func (r *Runner) parseDocument(path string) (*blockdoc.Document, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = r.cfg.PDFFallbackPdftotext
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return p.Parse(f, filepath.Base(path))
}

func newJobID() string {
	var b [6]byte
	rand.Read(b[:])
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(b[:]))
}
