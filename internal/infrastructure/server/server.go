package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/ucalc/internal/api/http"
	"github.com/GriffinCanCode/ucalc/internal/api/middleware"
	"github.com/GriffinCanCode/ucalc/internal/api/ws"
	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/config"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/ucalc/internal/session"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *catalog.Registry
	sessions *session.Manager
	store    session.Store
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	stop     context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
		Service:     "ucalc",
	})
	if err != nil {
		return nil, err
	}
	return newServer(ctx, cfg, logger)
}

func newServer(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing ucalc server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("units_dir", cfg.Catalog.Dir),
		zap.String("units_url", cfg.Catalog.URL),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("ucalc", logger.Component("tracing"))

	registry, err := BuildRegistry(ctx, cfg.Catalog, logger.Component("catalog"))
	if err != nil {
		tracer.Close()
		return nil, err
	}
	metrics.SetCatalogUnits(registry.Len())
	logger.Info("Unit catalogue ready", zap.Int("units", registry.Len()))

	store, err := newStore(cfg.Session)
	if err != nil {
		tracer.Close()
		return nil, err
	}
	sessions := session.NewManager(registry, store, logger.Component("session")).WithMetrics(metrics)

	janitorCtx, stop := context.WithCancel(context.Background())
	sessions.StartJanitor(janitorCtx, janitorInterval(cfg.Session.MaxIdle), cfg.Session.MaxIdle)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
		if rps := cfg.RateLimit.GlobalRequestsPerSecond; rps > 0 {
			burst := max(cfg.RateLimit.GlobalBurst, rps)
			logger.Info("Global rate limit enabled", zap.Int("rps", rps), zap.Int("burst", burst))
			router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
				RequestsPerSecond: rps,
				Burst:             burst,
			}))
		}
	}

	handlers := apihttp.NewHandlers(registry, sessions, metrics, logger.Component("http"))
	handlers.Register(router)

	wsHandler := ws.NewHandler(sessions, metrics, logger.Component("ws"))
	router.GET("/stream", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		sessions: sessions,
		store:    store,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		stop:     stop,
		http: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// BuildRegistry extends the built-in catalogue with definitions from the
// configured directory and URL.
func BuildRegistry(ctx context.Context, cfg config.CatalogConfig, log *zap.Logger) (*catalog.Registry, error) {
	registry := catalog.Default()

	if cfg.Dir != "" {
		list, err := catalog.NewLoader(log).LoadDir(ctx, cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("load units from %s: %w", cfg.Dir, err)
		}
		if registry, err = registry.Extend(list...); err != nil {
			return nil, err
		}
	}

	if cfg.URL != "" {
		remote := catalog.DefaultRemoteConfig()
		if cfg.Timeout > 0 {
			remote.Timeout = cfg.Timeout
		}
		list, err := catalog.NewRemoteClient(remote, log).Fetch(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("fetch units from %s: %w", cfg.URL, err)
		}
		if registry, err = registry.Extend(list...); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func newStore(cfg config.SessionConfig) (session.Store, error) {
	if cfg.StorePath == "" {
		return session.NewMemoryStore(), nil
	}
	return session.NewFileStore(cfg.StorePath)
}

func janitorInterval(maxIdle time.Duration) time.Duration {
	if maxIdle <= 0 {
		return 0
	}
	return min(maxIdle/2, time.Minute)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	s.stop()

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown failed", zap.Error(err))
	}

	s.tracer.Close()
	if fs, ok := s.store.(*session.FileStore); ok {
		if cerr := fs.Close(); cerr != nil {
			s.logger.Warn("Failed to close snapshot store", zap.Error(cerr))
		}
	}

	_ = s.logger.Sync()
	return err
}
