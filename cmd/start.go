package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photofeed/core/config"
	"photofeed/core/loader"
	"photofeed/core/logger"
	"photofeed/core/middleware/rayid"
	"photofeed/core/props"
	"photofeed/core/storage"
	"photofeed/feature/feed"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "photofeed/docs/swagger"
)

// @title Photofeed API
// @version 1.0
// @description API for the photo feed reconciliation service.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the photo feed server",
	Long:  `Starts the HTTP server, the upload event listener, and the periodic reconciliation trigger.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Redis (optional: property store + pass lock)
		var rdb *redis.Client
		if cfg.Redis.Addr != "" {
			_, conn := props.Connect(cfg.Redis)
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := conn.Ping(pingCtx).Err(); err != nil {
				logg.Warn("Optional Redis connection failed, property store and pass lock disabled", zap.Error(err))
				_ = conn.Close()
			} else {
				rdb = conn
				logg.Info("Connected to Redis")
			}
			cancel()
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging middleware (Zap + RayID)
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

		// Swagger documentation and metrics (public)
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		// 6. Initialize Feed Service + Feature Loader
		svc := feed.NewService(store, cfg.Storage, cfg.Feed, rdb, logg)

		mgr := loader.NewManager()
		mgr.Register(feed.NewFeature(svc, logg, cfg.Server.ApiKey))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Reconciliation Triggers
		ctx, stop := context.WithCancel(context.Background())
		go svc.RunEventListener(ctx, cfg.Storage.Bucket)
		go svc.RunPeriodic(ctx, time.Duration(cfg.Feed.SyncIntervalSeconds)*time.Second)

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
