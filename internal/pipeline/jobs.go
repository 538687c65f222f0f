package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/linklabel/internal/linkfix"
	"github.com/dgallion1/linklabel/internal/parser"
)

// JobStatus represents the state of a batch transform job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Kind is the content filter a unit came from.
type Kind string

const (
	KindPost    Kind = "post"
	KindWidget  Kind = "widget"
	KindComment Kind = "comment"
)

// ParseKind normalizes a kind name. Empty means post.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindPost, nil
	case KindPost, KindWidget, KindComment:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported content kind: %s", s)
	}
}

// Unit is one piece of user content to transform.
type Unit struct {
	ID      string        `json:"id,omitempty"`
	Kind    Kind          `json:"kind"`
	Format  parser.Format `json:"format"`
	Content string        `json:"content"`
}

// UnitResult is the outcome of transforming one Unit.
type UnitResult struct {
	ID          string            `json:"id,omitempty"`
	Kind        Kind              `json:"kind"`
	HTML        string            `json:"html"`
	Changed     bool              `json:"changed"`
	Labeled     []linkfix.Labeled `json:"labeled"`
	ContentHash string            `json:"content_hash"`
	Error       string            `json:"error,omitempty"`
}

// Job tracks the state of a batch of units.
type Job struct {
	mu sync.Mutex

	ID     string    `json:"job_id"`
	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	units   []Unit
	results []UnitResult
	errors  []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalUnits     int      `json:"total_units"`
	UnitsProcessed int      `json:"units_processed"`
	UnitsChanged   int      `json:"units_changed"`
	LinksLabeled   int      `json:"links_labeled"`
	Errors         []string `json:"errors"`
}

// NewJob creates a queued job over units.
func NewJob(units []Unit) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Phase:     "queued",
		Progress:  Progress{TotalUnits: len(units)},
		CreatedAt: now,
		UpdatedAt: now,
		units:     units,
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
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
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

// AddResult records a finished unit and updates progress counters.
func (j *Job) AddResult(r UnitResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, r)
	j.Progress.UnitsProcessed++
	if r.Changed {
		j.Progress.UnitsChanged++
	}
	j.Progress.LinksLabeled += len(r.Labeled)
	j.UpdatedAt = time.Now()
}

// Units returns the units queued on the job.
func (j *Job) Units() []Unit {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.units
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string       `json:"job_id"`
	Status    JobStatus    `json:"status"`
	Phase     string       `json:"phase"`
	Progress  Progress     `json:"progress"`
	Results   []UnitResult `json:"results"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	results := append([]UnitResult{}, j.results...)
	return JobSnapshot{
		ID:     j.ID,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			TotalUnits:     j.Progress.TotalUnits,
			UnitsProcessed: j.Progress.UnitsProcessed,
			UnitsChanged:   j.Progress.UnitsChanged,
			LinksLabeled:   j.Progress.LinksLabeled,
			Errors:         errs,
		},
		Results:   results,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
