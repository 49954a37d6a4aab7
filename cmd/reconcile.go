package cmd

import (
	"context"
	"fmt"

	"photofeed/core/config"
	"photofeed/core/logger"
	"photofeed/core/props"
	"photofeed/core/storage"
	"photofeed/feature/feed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd runs a single reconciliation pass and exits.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one reconciliation pass",
	Long: `Scans the configured upload folder, indexes objects not yet in the feed,
and persists the merged index. Safe to re-run: a pass with no new uploads
writes nothing.`,
	RunE: runReconcile,
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	_, rdb := props.Connect(cfg.Redis)
	if err := rdb.Ping(ctx).Err(); err != nil {
		l.Warn("Redis unavailable, running without property store and pass lock", zap.Error(err))
		_ = rdb.Close()
		rdb = nil
	}

	svc := feed.NewService(client, cfg.Storage, cfg.Feed, rdb, l)

	l.Info("Starting reconciliation pass")
	report, err := svc.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	l.Info("Reconciliation report",
		zap.String("folder", report.Folder),
		zap.Bool("skipped", report.Skipped),
		zap.Int("scanned", report.Scanned),
		zap.Int("new", report.New),
		zap.Int("trimmed", report.Trimmed),
		zap.Int("grant_failures", report.GrantFailures),
		zap.Bool("persisted", report.Persisted),
		zap.Duration("duration", report.Duration),
	)
	return nil
}
