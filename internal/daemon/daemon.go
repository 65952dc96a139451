package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stepling-app/stepling/internal/api"
	"github.com/stepling-app/stepling/internal/app"
	"github.com/stepling-app/stepling/internal/app/cosmetic"
	"github.com/stepling-app/stepling/internal/health"
	_ "github.com/stepling-app/stepling/internal/infra/metrics" // Register Prometheus metrics
	"github.com/stepling-app/stepling/internal/infra/sqlite"
)

// Daemon is the core Stepling runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *app.Orchestrator
	Shop   *cosmetic.Manager
	Server *api.Server
	Health *health.Checker
	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(steplingHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	engine := app.NewOrchestrator(db, app.Config{
		Premium:  func() bool { return cfg.Engine.Premium },
		Baseline: cfg.Engine.Baseline,
	})
	shop := cosmetic.NewManager(db, engine.Coins())

	srv := api.NewServer(engine, shop)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config: cfg,
		DB:     db,
		Engine: engine,
		Shop:   shop,
		Server: srv,
		Health: health.NewChecker(db, steplingHome()),
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker loop
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Stepling serving on http://%s\n", addr)
	if d.Config.Engine.Premium {
		fmt.Printf("  Premium: enabled (config override)\n")
	}
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
