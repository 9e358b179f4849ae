package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"sales-sync/core/config"
	"sales-sync/core/loader"
	"sales-sync/core/logger"
	"sales-sync/core/metrics"
	"sales-sync/core/middleware/auth"
	"sales-sync/core/middleware/rayid"
	"sales-sync/feature/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sales sync server",
	Long:  `Starts the HTTP server exposing sync triggers, sale lookups and metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		syncMetrics := metrics.NewSyncMetrics(reg)

		// The database is optional at startup: without it the sales feature stays disabled
		var svc *sales.Service
		if s, _, err := newSalesService(cfg, logg, syncMetrics, true); err != nil {
			logg.Warn("Sales store unavailable, sync endpoints disabled", zap.Error(err))
		} else {
			svc = s
			logg.Info("Connected to sales store", zap.String("driver", cfg.Database.Driver))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           cfg.Server.ReadTimeout(),
		})

		mgr := loader.NewManager()
		mgr.Register(sales.NewFeature(svc))

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Metrics stay public for scrapers
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

		if cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is empty, API endpoints are unauthenticated")
		}
		if cfg.Sync.SnapshotDir == "" {
			logg.Info("SYNC_SNAPSHOT_DIR is empty, HTTP syncs accept s3:// locators only")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
