package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gnhen/sports/internal/config"
	"github.com/gnhen/sports/internal/detail"
	httpserver "github.com/gnhen/sports/internal/http"
	"github.com/gnhen/sports/internal/leagues"
	"github.com/gnhen/sports/internal/metrics"
	"github.com/gnhen/sports/internal/scoreboard"
)

var metricsSetup = metrics.Setup

// Server owns the long-lived pieces: the working-set service, the refresh
// loop, and the HTTP and metrics listeners.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	registry      *leagues.Registry
	service       *scoreboard.Service
	refresher     *scoreboard.Refresher
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server from config.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	source := buildUpstream(cfg, logger)
	fetcher := scoreboard.NewFetcher(source, registry, logger, recorder)
	service := scoreboard.NewService(fetcher, logger, recorder)
	refresher := scoreboard.NewRefresher(service, logger, cfg.RefreshInterval, cfg.ActiveLeagues)
	enricher := detail.NewEnricher(source, registry, logger, recorder)

	handler := httpserver.NewHandler(service, refresher, enricher, registry, logger, httpserver.HandlerConfig{
		DefaultActive: cfg.ActiveLeagues,
		MaxAge:        cfg.RefreshInterval,
	})
	router := httpserver.NewRouter(handler, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		registry:      registry,
		service:       service,
		refresher:     refresher,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

func buildRegistry(cfg config.Config) (*leagues.Registry, error) {
	if cfg.LeaguesFile != "" {
		return leagues.LoadFile(cfg.LeaguesFile)
	}
	return leagues.Default(), nil
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Run starts the refresher and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.refresher.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop refresher", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
