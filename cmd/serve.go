package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/fleetflow/contract-lifecycle/internal/api"
	"github.com/fleetflow/contract-lifecycle/internal/config"
	"github.com/fleetflow/contract-lifecycle/internal/directory"
	"github.com/fleetflow/contract-lifecycle/internal/engine"
	"github.com/fleetflow/contract-lifecycle/internal/logging"
	"github.com/fleetflow/contract-lifecycle/internal/mcp"
	"github.com/fleetflow/contract-lifecycle/internal/migrations"
	"github.com/fleetflow/contract-lifecycle/internal/notify"
	"github.com/fleetflow/contract-lifecycle/internal/recommend"
	"github.com/fleetflow/contract-lifecycle/internal/repository"
)

var serveDemo bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lifecycle HTTP and MCP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "load demo vendor fixtures into the directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("configuration loading failed: %w", err)
	}

	logger.Info("Starting contract lifecycle service", "environment", cfg.Environment)

	// Optional Postgres archive
	var archive repository.WorkflowStore
	var dbPool *pgxpool.Pool
	if cfg.DB.Enable {
		dbPool, err = initDatabase(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("database initialization failed: %w", err)
		}
		defer dbPool.Close()

		if err := migrations.Run(dbPool); err != nil {
			return fmt.Errorf("database migration failed: %w", err)
		}

		archive = repository.NewPostgresWorkflowStore(dbPool)
		logger.Info("Workflow archive connected")
	}

	// Vendor directory
	dir := directory.NewInMemoryDirectory()
	if serveDemo {
		directory.SeedDemo(dir, time.Now().UTC())
		logger.Info("Demo vendor fixtures loaded")
	}

	// Notifier
	var notifier notify.Notifier = notify.NewRecorder()
	if cfg.Notifier.GatewayURL != "" {
		notifier = notify.NewHTTPNotifier(cfg.Notifier.GatewayURL, cfg.Notifier.FromEmail)
	} else {
		logger.Warn("No notification gateway configured; deliveries are recorded in memory only")
	}

	// Recommender: sidecar with basic fallback, or basic alone
	var recommender recommend.Recommender = recommend.NewBasic()
	if cfg.Recommender.SidecarURL != "" {
		recommender = recommend.NewFallback(recommend.NewHTTPRecommender(cfg.Recommender.SidecarURL), logger)
	}

	eng := engine.New(engine.Params{
		Directory:        dir,
		Notifier:         notifier,
		Recommender:      recommender,
		Archive:          archive,
		Logger:           logger,
		ProcurementInbox: cfg.Monitor.ProcurementBox,
		LegalInbox:       cfg.Monitor.LegalBox,
	})

	if err := eng.LoadFromArchive(ctx); err != nil {
		return err
	}

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	e.Use(otelecho.Middleware("contract-lifecycle"))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	apiServer := api.NewServer(eng)
	apiServer.RegisterRoutes(e.Group("/api/v1"))
	e.GET("/health", apiServer.HandleHealth)

	logger.Info("REST API handlers mounted")

	mcpServer := mcp.NewServer(eng)
	mcpHandlers := http.NewServeMux()
	mcp.MountHTTPHandlers(mcpHandlers, mcpServer.GetMCPServer())
	e.Any("/mcp/*", echo.WrapHandler(mcpHandlers))

	logger.Info("MCP protocol handlers mounted")

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Recurring monitoring sweep
	sweepCtx, stopSweeps := context.WithCancel(ctx)
	defer stopSweeps()
	go runMonitor(sweepCtx, eng, cfg.Monitor.Interval, logger)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", cfg.Server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", "signal", sig)
		stopSweeps()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			if err := server.Close(); err != nil {
				logger.Error("Server close error", "error", err)
			}
		}

		logger.Info("Server stopped gracefully")
	}

	return nil
}

// runMonitor runs the vendor scan and overdue sweep once immediately, then on
// every tick until the context is cancelled.
func runMonitor(ctx context.Context, eng *engine.Engine, interval time.Duration, logger *logging.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}

	sweep := func() {
		if initiated, err := eng.ScanVendors(ctx); err != nil {
			logger.Error("Vendor scan failed", "error", err)
		} else if initiated > 0 {
			logger.Info("Vendor scan initiated workflows", "count", initiated)
		}
		if flagged := eng.SweepOverdue(ctx); flagged > 0 {
			logger.Warn("Overdue workflows flagged", "count", flagged)
		}
	}

	sweep()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*pgxpool.Pool, error) {
	logger.Debug("Initializing database connection")

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
