package pipeline

import (
	"sync"
	"time"

	"blocksearch/internal/splitter"
)

// JobStatus represents the state of a split job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusCleaning  JobStatus = "cleaning"
	StatusSplitting JobStatus = "splitting"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCanceled  JobStatus = "canceled"
)

// Job tracks the state of a single document split.
type Job struct {
	mu sync.Mutex

	ID        string `json:"job_id"`
	InputPath string `json:"input_path"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	OutputPath string    `json:"output_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Internal: not serialized.
	cancel *splitter.Token
	errors []string
}

// Progress tracks split progress. Percent is only meaningful once total
// work is known; before that the job is in an indeterminate phase.
type Progress struct {
	Percent       int      `json:"percent"`
	TotalSections int      `json:"total_sections"`
	Errors        []string `json:"errors"`
}

// CancelToken returns the job's cancellation token.
func (j *Job) CancelToken() *splitter.Token {
	return j.cancel
}

// Cancel requests cooperative cancellation of the job.
func (j *Job) Cancel() {
	j.cancel.Cancel()
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetPhase updates only the phase message.
func (j *Job) SetPhase(phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// SetPercent records overall percent complete.
func (j *Job) SetPercent(percent int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Percent = percent
	j.UpdatedAt = time.Now()
}

// SetTotalSections records total section count.
func (j *Job) SetTotalSections(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalSections = n
	j.UpdatedAt = time.Now()
}

// SetOutputPath records the finished output location.
func (j *Job) SetOutputPath(path string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.OutputPath = path
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// updatedAt reads the last-touched time under the job's own lock, so the
// store can age jobs without racing their worker goroutines.
func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID         string    `json:"job_id"`
	InputPath  string    `json:"input_path"`
	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	Progress   Progress  `json:"progress"`
	OutputPath string    `json:"output_path,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:        j.ID,
		InputPath: j.InputPath,
		Status:    j.Status,
		Phase:     j.Phase,
		Progress: Progress{
			Percent:       j.Progress.Percent,
			TotalSections: j.Progress.TotalSections,
			Errors:        errs,
		},
		OutputPath: j.OutputPath,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
