// Package snapshot renders the wireframe offscreen and writes the frames
// as image files.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/floating-geometry/internal/clock"
	"github.com/Faultbox/floating-geometry/internal/engine/capture"
	"github.com/Faultbox/floating-geometry/internal/host"
	"github.com/Faultbox/floating-geometry/internal/surface/raster"
	"github.com/Faultbox/floating-geometry/internal/wireframe"
)

// Options describes a snapshot run.
type Options struct {
	Width, Height int     // logical size
	Density       float64 // device pixels per logical pixel
	Frames        int
	Interval      time.Duration // simulated time between frames

	// Pointer is the logical pointer position; nil leaves it centred.
	Pointer *[2]float64

	OutDir  string
	Prefix  string
	Format  capture.Format
	Workers int // concurrent encoders
}

// Render draws opts.Frames frames of a wireframe configured by geo on a
// simulated clock and writes them to numbered files. It returns the file
// names in frame order.
func Render(ctx context.Context, geo wireframe.Options, opts Options, log *zap.Logger) ([]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("frame count must be positive, got %d", opts.Frames)
	}

	if err := geo.Validate(); err != nil {
		return nil, fmt.Errorf("geometry: %w", err)
	}

	clk := clock.NewManual(time.Unix(0, 0))
	surf := raster.New(0, 0, opts.Density)
	bounds := host.Rect{W: float64(opts.Width), H: float64(opts.Height)}
	h := host.NewHeadless(surf, bounds, opts.Density, clk)

	g := wireframe.New(geo, log.Named("wireframe"))
	g.Mount(h)
	defer g.Unmount()
	if !g.Mounted() {
		return nil, fmt.Errorf("wireframe did not mount")
	}
	if p := opts.Pointer; p != nil {
		h.Move(p[0], p[1])
	}

	out := capture.New(opts.OutDir, opts.Prefix, opts.Format)
	names := make([]string, opts.Frames)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, opts.Workers))
	for i := 0; i < opts.Frames; i++ {
		if err := egCtx.Err(); err != nil {
			break
		}
		h.Step()
		clk.Advance(opts.Interval)

		img := cloneRGBA(surf.Image())
		name := out.Numbered(i)
		names[i] = name
		i := i
		eg.Go(func() error {
			if err := out.WriteFile(name, img); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			log.Debug("frame written", zap.String("file", name))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("snapshot complete",
		zap.Int("frames", opts.Frames),
		zap.String("dir", opts.OutDir),
		zap.String("format", string(opts.Format)),
	)
	return names, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
