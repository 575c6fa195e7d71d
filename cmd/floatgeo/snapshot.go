package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/floating-geometry/internal/engine/capture"
	"github.com/Faultbox/floating-geometry/internal/logger"
	"github.com/Faultbox/floating-geometry/internal/snapshot"
)

var (
	snapFrames int
	snapOut    string
	snapFormat string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render frames to image files",
	Long: `Render frames offscreen on a simulated clock and write them as
numbered PNG or BMP files. Settings come from the snapshot config
section; the flags below override it.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 0, "Number of frames (default from config)")
	snapshotCmd.Flags().StringVar(&snapOut, "out", "", "Output directory (default from config)")
	snapshotCmd.Flags().StringVar(&snapFormat, "format", "", "png or bmp (default from config)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	s := cfg.Snapshot
	if snapFrames > 0 {
		s.Frames = snapFrames
	}
	if snapOut != "" {
		s.OutDir = snapOut
	}
	if snapFormat != "" {
		s.Format = snapFormat
	}

	geo, err := cfg.Geometry.Options()
	if err != nil {
		return err
	}
	format, err := capture.ParseFormat(s.Format)
	if err != nil {
		return err
	}

	opts := snapshot.Options{
		Width:    s.Width,
		Height:   s.Height,
		Density:  s.Density,
		Frames:   s.Frames,
		Interval: s.Interval,
		OutDir:   s.OutDir,
		Prefix:   s.Prefix,
		Format:   format,
		Workers:  s.Workers,
	}
	if s.PointerX >= 0 && s.PointerY >= 0 {
		opts.Pointer = &[2]float64{s.PointerX, s.PointerY}
	}

	ctx, cancel := signalContext()
	defer cancel()

	names, err := snapshot.Render(ctx, geo, opts, logger.Named("snapshot"))
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
