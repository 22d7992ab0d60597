// Package cmd defines the notifyd command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notifyd/notifyd/internal/build"
)

var rootCmd = &cobra.Command{
	Use:     "notifyd",
	Short:   "User notification preferences and dispatch service",
	Long:    "notifyd stores per-user contact preferences and forwards messages to the external delivery service over the enabled channels.",
	Version: build.String(),
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
