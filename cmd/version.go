/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ggdaltoso/aleph.js/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of Aleph",
	Long:  `Displays the version of Aleph.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Aleph %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
