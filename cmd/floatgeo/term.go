package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/Faultbox/floating-geometry/internal/clock"
	"github.com/Faultbox/floating-geometry/internal/config"
	"github.com/Faultbox/floating-geometry/internal/logger"
	"github.com/Faultbox/floating-geometry/internal/term"
	"github.com/Faultbox/floating-geometry/internal/wireframe"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Draw in the terminal",
	Long: `Draw the wireframe with truecolor half blocks in the terminal.
Move the mouse to tilt it. ESC, q or Ctrl-C quits.

Logs go to the configured log file, or floatgeo.log.`,
	RunE: runTerm,
}

func runTerm(cmd *cobra.Command, args []string) error {
	opts, err := cfg.Geometry.Options()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	h, err := term.New(screen, term.Options{
		FPS:       cfg.Terminal.FPS,
		CellWidth: cfg.Terminal.CellWidth,
	}, clock.Real{}, logger.Named("term"))
	if err != nil {
		return err
	}
	defer h.Close()

	g := wireframe.New(opts, logger.Named("wireframe"))
	g.Mount(h)
	defer g.Unmount()

	ctx, cancel := signalContext()
	defer cancel()

	tasks := make(chan func())
	go watchConfig(ctx, tasks, func(c *config.Config) { retune(g, c) })

	return h.Run(ctx, tasks)
}
