package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ggdaltoso/aleph.js/core/config"
	"github.com/ggdaltoso/aleph.js/core/jsast"
	"github.com/ggdaltoso/aleph.js/core/logger"
	"github.com/ggdaltoso/aleph.js/core/parser"
	"github.com/ggdaltoso/aleph.js/core/refresh"
)

var refreshOut string

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh [file]",
	Short: "Instrument a module for fast refresh",
	Long: `Parses a JavaScript module, applies the fast-refresh instrumentation
pass and prints the rewritten module. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src []byte
		var err error
		if len(args) == 1 {
			src, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
		} else {
			src, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		mod, err := parser.ParseModule(cmd.Context(), src)
		if err != nil {
			return fmt.Errorf("failed to parse module: %w", err)
		}

		out := refresh.Transform(mod, refresh.Options{
			RegFunc: cfg.Refresh.RegFunc,
			SigFunc: cfg.Refresh.SigFunc,
		})
		code := jsast.Print(out)

		if refreshOut != "" {
			if err := os.WriteFile(refreshOut, []byte(code), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", refreshOut, err)
			}
			logger.Info("Wrote %s", refreshOut)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), code)
		return nil
	},
}

func init() {
	refreshCmd.Flags().StringVarP(&refreshOut, "output", "o", "", "File to write the rewritten module to")
	rootCmd.AddCommand(refreshCmd)
}
