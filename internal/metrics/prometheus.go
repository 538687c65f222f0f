package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	transformDuration *prom.HistogramVec
	units             *prom.CounterVec
	labeled           *prom.CounterVec
	jobs              *prom.CounterVec
}

// NewPrometheusRecorder creates the collectors and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		transformDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "linklabel",
			Name:      "transform_duration_seconds",
			Help:      "Time spent transforming one content unit",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"kind"}),
		units: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "linklabel",
			Name:      "units_total",
			Help:      "Content units transformed, by kind and whether markup changed",
		}, []string{"kind", "changed"}),
		labeled: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "linklabel",
			Name:      "links_labeled_total",
			Help:      "Generic links labeled, by label strategy",
		}, []string{"strategy"}),
		jobs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "linklabel",
			Name:      "jobs_total",
			Help:      "Batch jobs by final status",
		}, []string{"status"}),
	}
	reg.MustRegister(pr.transformDuration, pr.units, pr.labeled, pr.jobs)
	return pr
}

func (p *PrometheusRecorder) ObserveTransform(kind string, d time.Duration) {
	p.transformDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncUnit(kind string, changed bool) {
	c := "false"
	if changed {
		c = "true"
	}
	p.units.WithLabelValues(kind, c).Inc()
}

func (p *PrometheusRecorder) IncLabeled(strategy string) {
	p.labeled.WithLabelValues(strategy).Inc()
}

func (p *PrometheusRecorder) IncJob(status string) {
	p.jobs.WithLabelValues(status).Inc()
}

// HTTPHandler serves the metrics gathered by reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
