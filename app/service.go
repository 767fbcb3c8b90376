// Package app wires the engine, sinks, publisher and HTTP surface into a
// runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kerguelen/boatgrid/api/report"
	"github.com/kerguelen/boatgrid/config"
	"github.com/kerguelen/boatgrid/core/engine"
	coremetrics "github.com/kerguelen/boatgrid/core/metrics"
	"github.com/kerguelen/boatgrid/core/model"
	"github.com/kerguelen/boatgrid/infra/logger"
	"github.com/kerguelen/boatgrid/infra/metrics"
	"github.com/kerguelen/boatgrid/infra/mqtt"
	"github.com/kerguelen/boatgrid/internal/eventbus"
)

// Service orchestrates the engine and its collaborators.
type Service struct {
	Engine *engine.Engine

	cfg *config.Config
	bus *eventbus.Bus
	pub mqtt.Publisher
	log logger.Logger

	mu     sync.RWMutex
	latest *engine.Result
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	eng, err := engine.New(cfg.Electrical, engine.WithLogger(logg), engine.WithSink(sink))
	if err != nil {
		return nil, err
	}

	svc := &Service{Engine: eng, cfg: cfg, bus: eventbus.New(), log: logg}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
	}
	return svc, nil
}

// Bus exposes the internal event bus, letting callers feed graph updates
// programmatically.
func (s *Service) Bus() *eventbus.Bus { return s.bus }

// Analyze runs the engine over a snapshot, stores the result as the
// latest report and fans it out to subscribers and the MQTT topic.
func (s *Service) Analyze(nodes []model.Node, conns []model.Connection) engine.Result {
	res := s.Engine.Analyze(nodes, conns)
	s.mu.Lock()
	s.latest = &res
	s.mu.Unlock()

	s.bus.Publish(eventbus.ReportReady{Result: res})
	if s.pub != nil {
		if err := s.pub.PublishReport(res); err != nil {
			s.log.Errorf("publish report: %v", err)
		}
	}
	return res
}

// Latest returns the last computed report, if any.
func (s *Service) Latest() (engine.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return engine.Result{}, false
	}
	return *s.latest, true
}

// Run starts the HTTP API (and the Prometheus endpoint when enabled) and
// re-analyses every graph update published on the bus. It blocks until
// the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	sub := s.bus.Subscribe()
	go func() {
		for ev := range sub {
			if up, ok := ev.(eventbus.GraphUpdated); ok {
				s.Analyze(up.Nodes, up.Connections)
			}
		}
	}()

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			addr := ":" + s.cfg.Metrics.PrometheusPort
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/analyze", report.NewAnalyzeHandler(s))
	mux.Handle("/api/report", report.NewReportHandler(s))
	mux.Handle("/healthz", report.NewHealthHandler())
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.pub != nil {
		s.pub.Close()
	}
	return nil
}
