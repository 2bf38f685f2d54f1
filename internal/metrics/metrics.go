// Package metrics records the outcome of a scan as Prometheus gauges and
// writes them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crimson-sun/scanlog/internal/model"
)

const namespace = "scanlog"

// Run summarises one completed scan.
type Run struct {
	Files    int
	Skipped  int
	Stats    model.Stats
	Fallback bool
	Duration time.Duration
	Finished time.Time
}

// Recorder owns a private registry so tests and library callers never
// touch the global default registry.
type Recorder struct {
	registry *prometheus.Registry

	lines               prometheus.Gauge
	files               prometheus.Gauge
	skippedFiles        prometheus.Gauge
	anomalies           prometheus.Gauge
	normals             prometheus.Gauge
	keywordHits         prometheus.Gauge
	statisticalOutliers prometheus.Gauge
	keywordFallback     prometheus.Gauge
	runDuration         prometheus.Gauge
	lastRun             prometheus.Gauge
}

// New registers every gauge on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	gauge := func(name, help string) prometheus.Gauge {
		return f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	return &Recorder{
		registry:            reg,
		lines:               gauge("lines", "Log lines loaded in the last scan."),
		files:               gauge("files", "Log files read in the last scan."),
		skippedFiles:        gauge("skipped_files", "Unreadable log files skipped in the last scan."),
		anomalies:           gauge("anomalies", "Lines classified as anomalous in the last scan."),
		normals:             gauge("normals", "Lines classified as normal in the last scan."),
		keywordHits:         gauge("keyword_hits", "Lines flagged by a keyword rule in the last scan."),
		statisticalOutliers: gauge("statistical_outliers", "Lines flagged by the outlier detector in the last scan."),
		keywordFallback:     gauge("keyword_fallback", "1 when the last scan classified with keyword rules only."),
		runDuration:         gauge("run_duration_seconds", "Wall time of the last scan."),
		lastRun:             gauge("last_run_timestamp_seconds", "Unix time the last scan finished."),
	}
}

// Observe sets every gauge from r.
func (rec *Recorder) Observe(r Run) {
	rec.lines.Set(float64(r.Stats.Total))
	rec.files.Set(float64(r.Files))
	rec.skippedFiles.Set(float64(r.Skipped))
	rec.anomalies.Set(float64(r.Stats.Anomalies))
	rec.normals.Set(float64(r.Stats.Normals))
	rec.keywordHits.Set(float64(r.Stats.KeywordOnly + r.Stats.Both))
	rec.statisticalOutliers.Set(float64(r.Stats.StatisticalOnly + r.Stats.Both))
	if r.Fallback {
		rec.keywordFallback.Set(1)
	} else {
		rec.keywordFallback.Set(0)
	}
	rec.runDuration.Set(r.Duration.Seconds())
	if !r.Finished.IsZero() {
		rec.lastRun.Set(float64(r.Finished.UnixNano()) / 1e9)
	}
}

// WriteTextfile atomically writes the registry to path.
func (rec *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, rec.registry); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

// Registry exposes the underlying registry.
func (rec *Recorder) Registry() *prometheus.Registry {
	return rec.registry
}
