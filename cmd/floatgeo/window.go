package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/floating-geometry/internal/app"
	"github.com/Faultbox/floating-geometry/internal/config"
	"github.com/Faultbox/floating-geometry/internal/engine/capture"
	"github.com/Faultbox/floating-geometry/internal/engine/window"
	"github.com/Faultbox/floating-geometry/internal/logger"
	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/internal/wireframe"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open a native window (default)",
	Long: `Open an OpenGL window showing the wireframe.

Keys:
  ESC  quit
  F12  save a screenshot`,
	RunE: runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	opts, err := cfg.Geometry.Options()
	if err != nil {
		return err
	}
	background, err := surface.Hex(cfg.Window.Background)
	if err != nil {
		return err
	}
	format, err := capture.ParseFormat(cfg.Window.ScreenshotFormat)
	if err != nil {
		return err
	}

	a, err := app.New(app.Config{
		Window: window.Config{
			Title:      cfg.Window.Title,
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			Fullscreen: cfg.Window.Fullscreen,
			VSync:      cfg.Window.VSync,
		},
		Background:       background,
		ScreenshotDir:    cfg.Window.ScreenshotDir,
		ScreenshotFormat: format,
	}, logger.Named("app"))
	if err != nil {
		return err
	}
	defer a.Close()

	g := wireframe.New(opts, logger.Named("wireframe"))
	g.Mount(a)
	defer g.Unmount()

	ctx, cancel := signalContext()
	defer cancel()

	tasks := make(chan func())
	go watchConfig(ctx, tasks, func(c *config.Config) {
		retune(g, c)
		if bg, err := surface.Hex(c.Window.Background); err == nil {
			a.SetBackground(bg)
		}
	})

	return a.Run(ctx, tasks)
}

// watchConfig follows the config file, if there is one, and hands each
// reloaded config to the host loop through tasks.
func watchConfig(ctx context.Context, tasks chan<- func(), apply func(*config.Config)) {
	path := config.Path()
	if path == "" {
		return
	}
	log := logger.Named("config")
	err := config.Watch(ctx, path, log, func(c *config.Config) {
		select {
		case tasks <- func() { apply(c) }:
		case <-ctx.Done():
		}
	})
	if err != nil {
		log.Warn("config watch disabled", zap.Error(err))
	}
}

// retune applies the reloadable parts of c to a running wireframe.
func retune(g *wireframe.Geometry, c *config.Config) {
	logger.SetLevel(c.Logging.Level)

	opts, err := c.Geometry.Options()
	if err == nil {
		err = g.Retune(opts)
	}
	if err != nil {
		logger.Warn("geometry reload rejected", zap.Error(err))
	}
}
