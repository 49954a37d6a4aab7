package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"photofeed/core/config"
	"photofeed/core/logger"
	"photofeed/core/storage"
	"photofeed/feature/feed"

	"github.com/spf13/cobra"
)

// indexCmd groups the persisted-index administration commands.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect or rebuild the persisted feed index",
}

var indexShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted index as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := connectFeed()
		if err != nil {
			return err
		}
		entries, err := svc.Index(context.Background())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persisted index document",
	Long:  `Deletes the index document. The next reconciliation pass rebuilds the feed from the currently discoverable objects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := connectFeed()
		if err != nil {
			return err
		}
		if err := svc.ClearIndex(context.Background()); err != nil {
			return err
		}
		fmt.Println("index cleared")
		return nil
	},
}

func init() {
	indexCmd.AddCommand(indexShowCmd)
	indexCmd.AddCommand(indexClearCmd)
	RootCmd.AddCommand(indexCmd)
}

// connectFeed builds a feed service without Redis; index inspection and
// clearing need neither the property store nor the pass lock.
func connectFeed() (*feed.Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	return feed.NewService(client, cfg.Storage, cfg.Feed, nil, l), nil
}
