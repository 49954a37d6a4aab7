package cmd

import (
	"context"
	"fmt"

	"photofeed/core/config"
	"photofeed/core/props"

	"github.com/spf13/cobra"
)

// folderCmd groups the folder reference administration commands.
var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage the scanned upload folder reference",
}

var folderGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the effective folder reference",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, rdb, err := connectProps()
		if err != nil {
			return err
		}
		defer rdb.Close()

		folder, err := store.Folder(context.Background())
		if err != nil {
			return err
		}
		if folder == "" {
			folder = cfg.Feed.Folder
		}
		if folder == "" {
			fmt.Println("(not configured)")
			return nil
		}
		fmt.Println(folder)
		return nil
	},
}

var folderSetCmd = &cobra.Command{
	Use:   "set <folder>",
	Short: "Store the folder reference in the property store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, rdb, err := connectProps()
		if err != nil {
			return err
		}
		defer rdb.Close()

		if err := store.SetFolder(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("folder set to %q\n", args[0])
		return nil
	},
}

func init() {
	folderCmd.AddCommand(folderGetCmd)
	folderCmd.AddCommand(folderSetCmd)
	RootCmd.AddCommand(folderCmd)
}

func connectProps() (*config.Config, props.Store, interface{ Close() error }, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	store, rdb := props.Connect(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return cfg, store, rdb, nil
}
