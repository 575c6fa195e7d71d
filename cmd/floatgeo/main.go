// Package main is the entry point for floatgeo, a floating wireframe
// icosahedron that follows the pointer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/floating-geometry/internal/config"
	"github.com/Faultbox/floating-geometry/internal/logger"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "floatgeo",
	Short: "A floating wireframe icosahedron",
	Long: `floatgeo draws a slowly rotating icosahedron that tilts toward the
pointer, in a native window, in the terminal, or into image files.

Run without a subcommand to open a window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init must work even when the current file is broken.
		if cmd.HasParent() && cmd.Parent().Name() == "config" {
			cfg = config.Default()
			return logger.Init("info", "")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// The terminal UI owns stdout, so it logs to file only.
		if cmd.Name() == "term" {
			logFile := cfg.Logging.LogFile
			if logFile == "" {
				logFile = "floatgeo.log"
			}
			return logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false)
		}
		return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	RunE: runWindow,
}

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(config.FlagSet())

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(meshCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
