package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ggdaltoso/aleph.js/core/config"
	"github.com/ggdaltoso/aleph.js/core/server"
	"github.com/ggdaltoso/aleph.js/core/watcher"
)

// devCmd represents the dev command
var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Run the dev server",
	Long:  "Serves the app with fast-refresh instrumentation and pushes HMR updates on edit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		srv := server.NewDevServer(cfg)

		mw, err := watcher.NewModuleWatcher(cfg.Dev.AppDir, cfg.Dev.Exclude)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer mw.Close()
		mw.SetOnChange(srv.NotifyUpdate)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()
		go func() {
			errCh <- mw.Watch()
		}()
		return <-errCh
	},
}

func init() {
	rootCmd.AddCommand(devCmd)
}
