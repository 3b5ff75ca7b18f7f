package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"switchyard/internal/logging"
)

// Metrics holds Prometheus counters and gauges for the session tick loop.
type Metrics struct {
	registry *prometheus.Registry

	FramesRendered     prometheus.Counter
	FramesStandby      prometheus.Counter
	RenderDuration     prometheus.Histogram
	ActiveSources      prometheus.Gauge
	LiveTaps           prometheus.Gauge
	AssetFailuresTotal prometheus.Counter
}

// New creates and registers Prometheus metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	framesRendered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "switchyard_frames_rendered_total",
		Help: "Total number of program frames rendered",
	})
	framesStandby := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "switchyard_frames_standby_total",
		Help: "Total number of frames rendered with zero drawable sources",
	})
	renderDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "switchyard_render_duration_seconds",
		Help:    "Wall time spent producing one program frame",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
	activeSources := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "switchyard_active_sources",
		Help: "Number of registered sources",
	})
	liveTaps := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "switchyard_live_taps",
		Help: "Number of taps connected to the mix bus",
	})
	assetFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "switchyard_asset_failures_total",
		Help: "Total number of overlay asset loads that failed",
	})

	registry.MustRegister(framesRendered, framesStandby, renderDuration,
		activeSources, liveTaps, assetFailures)

	return &Metrics{
		registry:           registry,
		FramesRendered:     framesRendered,
		FramesStandby:      framesStandby,
		RenderDuration:     renderDuration,
		ActiveSources:      activeSources,
		LiveTaps:           liveTaps,
		AssetFailuresTotal: assetFailures,
	}
}

// Handler returns the exposition endpoint for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs the exposition server on bind until ctx is canceled. Failures
// are logged, not fatal; a session without metrics still streams.
func (m *Metrics) Serve(ctx context.Context, bind string, logger *slog.Logger) {
	log := logging.NewComponentLogger(logger, "metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Addr: bind, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("metrics exposition listening", logging.String("bind", bind))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn("metrics server stopped", logging.Error(err))
	}
}
