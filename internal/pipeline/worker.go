package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/linklabel/internal/linkfix"
	"github.com/dgallion1/linklabel/internal/metrics"
	"github.com/dgallion1/linklabel/internal/parser"
)

// Worker transforms content units.
type Worker struct {
	labeler  *linkfix.Labeler
	recorder metrics.Recorder
	window   *metrics.Window
	log      *slog.Logger
}

func NewWorker(labeler *linkfix.Labeler, rec metrics.Recorder, window *metrics.Window, log *slog.Logger) *Worker {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Worker{
		labeler:  labeler,
		recorder: rec,
		window:   window,
		log:      log,
	}
}

// TransformUnit renders u to HTML according to its format and labels its
// generic links under cfg.
func (w *Worker) TransformUnit(cfg linkfix.Config, u Unit) (UnitResult, error) {
	res := UnitResult{ID: u.ID, Kind: u.Kind, Labeled: []linkfix.Labeled{}}

	r, err := parser.ForFormat(u.Format)
	if err != nil {
		return res, err
	}
	fragment, err := r.Render(u.Content)
	if err != nil {
		return res, fmt.Errorf("render %s: %w", u.Format, err)
	}

	start := time.Now()
	out := w.labeler.Process(fragment, cfg)
	elapsed := time.Since(start)

	w.recorder.ObserveTransform(string(u.Kind), elapsed)
	w.recorder.IncUnit(string(u.Kind), out.Changed)
	for _, l := range out.Labeled {
		w.recorder.IncLabeled(string(l.Strategy))
	}
	if w.window != nil {
		w.window.Record(elapsed)
	}

	res.HTML = out.HTML
	res.Changed = out.Changed
	if len(out.Labeled) > 0 {
		res.Labeled = out.Labeled
	}
	res.ContentHash = ContentHashHex([]byte(out.HTML))
	return res, nil
}

// Process transforms every unit of a job with a single settings snapshot.
func (w *Worker) Process(ctx context.Context, job *Job, cfg linkfix.Config) {
	log := w.log.With("job_id", job.ID)

	units := job.Units()
	job.SetStatus(StatusRunning, "transforming")

	failed := 0
	for i, u := range units {
		if err := ctx.Err(); err != nil {
			log.Warn("job cancelled", "processed", i, "error", err)
			job.AddError(fmt.Sprintf("cancelled: %s", err))
			job.SetStatus(StatusFailed, "cancelled")
			w.recorder.IncJob(string(StatusFailed))
			return
		}

		res, err := w.TransformUnit(cfg, u)
		if err != nil {
			log.Error("unit transform failed", "unit", i, "unit_id", u.ID, "error", err)
			res.Error = err.Error()
			job.AddError(fmt.Sprintf("unit %d: %s", i, err))
			failed++
		}
		job.AddResult(res)
	}

	snap := job.Snapshot()
	log.Info("job complete",
		"units", len(units),
		"changed", snap.Progress.UnitsChanged,
		"labeled", snap.Progress.LinksLabeled,
		"failed", failed,
	)

	var status JobStatus
	switch {
	case failed == 0:
		status = StatusCompleted
	case failed < len(units):
		status = StatusPartial
	default:
		status = StatusFailed
	}
	job.SetStatus(status, "done")
	w.recorder.IncJob(string(status))
}
