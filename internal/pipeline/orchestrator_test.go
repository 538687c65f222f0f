package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/linklabel/internal/config"
	"github.com/dgallion1/linklabel/internal/linkfix"
	"github.com/dgallion1/linklabel/internal/metrics"
	"github.com/dgallion1/linklabel/internal/parser"
	"github.com/dgallion1/linklabel/internal/settings"
)

type failingStore struct{}

func (failingStore) Load(context.Context) (settings.Settings, error) {
	return settings.Settings{}, errors.New("disk on fire")
}
func (failingStore) Save(context.Context, settings.Settings) error { return errors.New("disk on fire") }
func (failingStore) Delete(context.Context) error                  { return errors.New("disk on fire") }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.Config {
	return config.Config{
		WorkerCount:  2,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
	}
}

func waitForJob(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := job.Snapshot()
		switch snap.Status {
		case StatusCompleted, StatusFailed, StatusPartial:
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", job.ID)
	return JobSnapshot{}
}

func TestWorker_TransformUnitFormats(t *testing.T) {
	cfg := linkfix.Config{Enabled: true, Patterns: []string{"click here"}}
	w := NewWorker(linkfix.New(linkfix.Options{}), nil, metrics.NewWindow(time.Minute), testLogger())

	tests := []struct {
		name   string
		unit   Unit
		label  string
		change bool
	}{
		{
			name:   "html heading",
			unit:   Unit{Kind: KindPost, Format: parser.FormatHTML, Content: `<h2>Pricing Plans</h2><p><a href="/x">click here</a></p>`},
			label:  "about Pricing Plans",
			change: true,
		},
		{
			name:   "markdown heading",
			unit:   Unit{Kind: KindWidget, Format: parser.FormatMarkdown, Content: "## Pricing Plans\n\n[click here](/x)\n"},
			label:  "about Pricing Plans",
			change: true,
		},
		{
			name:   "text is escaped, no anchors",
			unit:   Unit{Kind: KindComment, Format: parser.FormatText, Content: `<a href="/x">click here</a>`},
			change: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := w.TransformUnit(cfg, tt.unit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Changed != tt.change {
				t.Errorf("expected changed=%v, got %v (html %q)", tt.change, res.Changed, res.HTML)
			}
			if tt.label != "" {
				if len(res.Labeled) != 1 || res.Labeled[0].Label != tt.label {
					t.Fatalf("expected one label %q, got %+v", tt.label, res.Labeled)
				}
				if !strings.Contains(res.HTML, `aria-label="`+tt.label+`"`) {
					t.Errorf("expected aria-label in output, got %q", res.HTML)
				}
			}
			if res.ContentHash != ContentHashHex([]byte(res.HTML)) {
				t.Errorf("expected content hash of output html")
			}
			if res.Kind != tt.unit.Kind {
				t.Errorf("expected kind %q, got %q", tt.unit.Kind, res.Kind)
			}
		})
	}

	if snap := w.window.Snapshot(); snap.Count != len(tests) {
		t.Errorf("expected %d window samples, got %d", len(tests), snap.Count)
	}
}

func TestWorker_TransformUnitBadFormat(t *testing.T) {
	w := NewWorker(linkfix.New(linkfix.Options{}), nil, nil, testLogger())
	_, err := w.TransformUnit(linkfix.Config{Enabled: true}, Unit{Format: "pdf"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestOrchestrator_TransformUsesStore(t *testing.T) {
	store := settings.NewMemoryStore(nil)
	if err := store.Save(context.Background(), settings.Settings{Enabled: true, GenericTexts: []string{"go"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	o := NewOrchestrator(testConfig(), store, nil, nil, nil, testLogger())

	res, err := o.Transform(context.Background(), Unit{Kind: KindPost, Content: `<a href="/docs/setup.php">go</a>`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Labeled) != 1 || res.Labeled[0].Label != "about Setup" {
		t.Fatalf("expected label %q, got %+v", "about Setup", res.Labeled)
	}

	// "click here" is not configured, so nothing changes.
	res, err = o.Transform(context.Background(), Unit{Kind: KindPost, Content: `<a href="/x">click here</a>`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Changed {
		t.Errorf("expected unchanged output, got %q", res.HTML)
	}
}

func TestOrchestrator_StoreFailureFallsBackToDefaults(t *testing.T) {
	o := NewOrchestrator(testConfig(), failingStore{}, nil, nil, nil, testLogger())

	cfg := o.Settings(context.Background())
	if !cfg.Enabled {
		t.Error("expected defaults to be enabled")
	}
	res, err := o.Transform(context.Background(), Unit{Content: `<a href="">click here</a>`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Labeled) != 1 || res.Labeled[0].Label != "about this content" {
		t.Fatalf("expected fallback label, got %+v", res.Labeled)
	}
}

func TestOrchestrator_BatchJob(t *testing.T) {
	o := NewOrchestrator(testConfig(), settings.NewMemoryStore(nil), nil, nil, nil, testLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob([]Unit{
		{ID: "1", Kind: KindPost, Content: `<a href="#my-section">read more</a>`},
		{ID: "2", Kind: KindComment, Content: `<p>no links</p>`},
		{ID: "3", Kind: KindWidget, Format: "pdf", Content: "x"},
	})
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.GetJob(job.ID) != job {
		t.Fatal("expected submitted job to be retrievable")
	}

	snap := waitForJob(t, job)
	if snap.Status != StatusPartial {
		t.Errorf("expected status %q, got %q", StatusPartial, snap.Status)
	}
	if snap.Progress.UnitsProcessed != 3 {
		t.Errorf("expected 3 units processed, got %d", snap.Progress.UnitsProcessed)
	}
	if snap.Progress.LinksLabeled != 1 {
		t.Errorf("expected 1 link labeled, got %d", snap.Progress.LinksLabeled)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", snap.Progress.Errors)
	}
	if got := snap.Results[0].Labeled[0].Label; got != "about My Section" {
		t.Errorf("expected %q, got %q", "about My Section", got)
	}
	if snap.Results[2].Error == "" {
		t.Error("expected per-unit error for unsupported format")
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	o := NewOrchestrator(cfg, settings.NewMemoryStore(nil), nil, nil, nil, testLogger())
	// Workers are not started, so the queue never drains.
	defer o.Stop()

	if err := o.Submit(NewJob([]Unit{{Content: "a"}})); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second := NewJob([]Unit{{Content: "b"}})
	err := o.Submit(second)
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	snap := second.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %s/%s", snap.Status, snap.Phase)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
