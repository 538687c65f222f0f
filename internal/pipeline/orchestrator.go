package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/linklabel/internal/config"
	"github.com/dgallion1/linklabel/internal/linkfix"
	"github.com/dgallion1/linklabel/internal/metrics"
	"github.com/dgallion1/linklabel/internal/settings"
)

// ErrQueueFull is returned by Submit when the job queue has no room.
var ErrQueueFull = errors.New("job queue is full")

// Orchestrator runs batch transform jobs on a bounded worker pool and serves
// synchronous single-unit transforms.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	store    settings.Store
	defaults []string
	labeler  *linkfix.Labeler
	recorder metrics.Recorder
	window   *metrics.Window
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. defaults is the generic text list used
// when the settings store cannot be read.
func NewOrchestrator(cfg config.Config, store settings.Store, defaults []string, rec metrics.Recorder, window *metrics.Window, log *slog.Logger) *Orchestrator {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		store:    store,
		defaults: settings.Normalize(defaults),
		labeler:  linkfix.New(linkfix.Options{HiddenClass: cfg.HiddenClass}),
		recorder: rec,
		window:   window,
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := o.newWorker()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job, o.Settings(workerCtx))
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

func (o *Orchestrator) newWorker() *Worker {
	return NewWorker(o.labeler, o.recorder, o.window, o.log)
}

// Settings returns the labeling configuration snapshot. A store failure is
// logged and the built-in defaults apply.
func (o *Orchestrator) Settings(ctx context.Context) linkfix.Config {
	s, err := o.store.Load(ctx)
	if err != nil {
		o.log.Warn("settings load failed, using defaults", "error", err)
		s = settings.Defaults(o.defaults)
	}
	return linkfix.ConfigFrom(s)
}

// Transform processes one unit synchronously.
func (o *Orchestrator) Transform(ctx context.Context, u Unit) (UnitResult, error) {
	return o.newWorker().TransformUnit(o.Settings(ctx), u)
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		o.recorder.IncJob(string(StatusFailed))
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Window returns the latency window fed by transforms, or nil.
func (o *Orchestrator) Window() *metrics.Window {
	return o.window
}
