// Package config handles configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Faultbox/floating-geometry/internal/engine/capture"
	"github.com/Faultbox/floating-geometry/internal/motion"
	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/internal/wireframe"
)

// Config holds all settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Terminal TerminalConfig `yaml:"terminal"`
	Geometry GeometryConfig `yaml:"geometry"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds the SDL window settings.
type WindowConfig struct {
	Title            string `yaml:"title"`
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	Fullscreen       bool   `yaml:"fullscreen"`
	VSync            bool   `yaml:"vsync"`
	Background       string `yaml:"background"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"`
}

// TerminalConfig holds the terminal host settings.
type TerminalConfig struct {
	FPS       int     `yaml:"fps"`
	CellWidth float64 `yaml:"cell_width"` // logical pixels per column
}

// GeometryConfig holds the wireframe look and motion.
type GeometryConfig struct {
	Radius        float64       `yaml:"radius"`
	FocalLength   float64       `yaml:"focal_length"`
	Sensitivity   float64       `yaml:"sensitivity"`
	Damping       float64       `yaml:"damping"`
	AutoRotateX   float64       `yaml:"auto_rotate_x"` // rad/ms
	AutoRotateY   float64       `yaml:"auto_rotate_y"` // rad/ms
	DepthRange    float64       `yaml:"depth_range"`
	LineWidth     float64       `yaml:"line_width"`
	EdgeOpacity   OpacityRange  `yaml:"edge_opacity"`
	VertexOpacity OpacityRange  `yaml:"vertex_opacity"`
	Palette       PaletteConfig `yaml:"palette"`
}

// OpacityRange bounds a depth-derived opacity.
type OpacityRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PaletteConfig holds hex colors.
type PaletteConfig struct {
	Start string `yaml:"start"`
	Mid   string `yaml:"mid"`
	End   string `yaml:"end"`
	Glow  string `yaml:"glow"`
	Core  string `yaml:"core"`
}

// SnapshotConfig holds the headless renderer settings.
type SnapshotConfig struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Density  float64       `yaml:"density"`
	Frames   int           `yaml:"frames"`
	Interval time.Duration `yaml:"interval"`
	PointerX float64       `yaml:"pointer_x"` // logical pixels; negative means centred
	PointerY float64       `yaml:"pointer_y"`
	OutDir   string        `yaml:"out_dir"`
	Prefix   string        `yaml:"prefix"`
	Format   string        `yaml:"format"`
	Workers  int           `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := wireframe.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Title:            "Floating Geometry",
			Width:            800,
			Height:           600,
			Fullscreen:       false,
			VSync:            true,
			Background:       "#0b1020",
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Terminal: TerminalConfig{
			FPS:       30,
			CellWidth: 8,
		},
		Geometry: GeometryConfig{
			Radius:        opts.Radius,
			FocalLength:   opts.FocalLength,
			Sensitivity:   opts.Motion.Sensitivity,
			Damping:       opts.Motion.Damping,
			AutoRotateX:   opts.Motion.AutoX,
			AutoRotateY:   opts.Motion.AutoY,
			DepthRange:    opts.DepthRange,
			LineWidth:     opts.LineWidth,
			EdgeOpacity:   OpacityRange{Min: opts.EdgeOpacity.Min, Max: opts.EdgeOpacity.Max},
			VertexOpacity: OpacityRange{Min: opts.VertexOpacity.Min, Max: opts.VertexOpacity.Max},
			Palette: PaletteConfig{
				Start: opts.Palette.Start.Hex(),
				Mid:   opts.Palette.Mid.Hex(),
				End:   opts.Palette.End.Hex(),
				Glow:  opts.Palette.Glow.Hex(),
				Core:  opts.Palette.Core.Hex(),
			},
		},
		Snapshot: SnapshotConfig{
			Width:    500,
			Height:   500,
			Density:  1,
			Frames:   1,
			Interval: 16 * time.Millisecond,
			PointerX: -1,
			PointerY: -1,
			OutDir:   "snapshots",
			Prefix:   "frame",
			Format:   "png",
			Workers:  4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the geometry section into component options.
func (g GeometryConfig) Options() (wireframe.Options, error) {
	var p wireframe.Palette
	var errs []error
	for _, c := range []struct {
		name string
		hex  string
		dst  *surface.Color
	}{
		{"start", g.Palette.Start, &p.Start},
		{"mid", g.Palette.Mid, &p.Mid},
		{"end", g.Palette.End, &p.End},
		{"glow", g.Palette.Glow, &p.Glow},
		{"core", g.Palette.Core, &p.Core},
	} {
		col, err := surface.Hex(c.hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("palette.%s: %w", c.name, err))
			continue
		}
		*c.dst = col
	}
	if err := errors.Join(errs...); err != nil {
		return wireframe.Options{}, err
	}

	return wireframe.Options{
		Radius:      g.Radius,
		FocalLength: g.FocalLength,
		Motion: motion.Params{
			Sensitivity: g.Sensitivity,
			Damping:     g.Damping,
			AutoX:       g.AutoRotateX,
			AutoY:       g.AutoRotateY,
		},
		DepthRange:    g.DepthRange,
		LineWidth:     g.LineWidth,
		EdgeOpacity:   wireframe.Range{Min: g.EdgeOpacity.Min, Max: g.EdgeOpacity.Max},
		VertexOpacity: wireframe.Range{Min: g.VertexOpacity.Min, Max: g.VertexOpacity.Max},
		Palette:       p,
	}, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if _, err := surface.Hex(c.Window.Background); err != nil {
		errs = append(errs, fmt.Errorf("window.background: %w", err))
	}
	if _, err := capture.ParseFormat(c.Window.ScreenshotFormat); err != nil {
		errs = append(errs, fmt.Errorf("window.screenshot_format: %w", err))
	}

	if c.Terminal.FPS <= 0 {
		errs = append(errs, fmt.Errorf("terminal: fps must be positive, got %d", c.Terminal.FPS))
	}
	if !(c.Terminal.CellWidth > 0) || math.IsInf(c.Terminal.CellWidth, 1) {
		errs = append(errs, fmt.Errorf("terminal: cell_width must be positive, got %v", c.Terminal.CellWidth))
	}

	if opts, err := c.Geometry.Options(); err != nil {
		errs = append(errs, fmt.Errorf("geometry: %w", err))
	} else if err := opts.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("geometry: %w", err))
	}

	s := c.Snapshot
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("snapshot: size %dx%d must be positive", s.Width, s.Height))
	}
	if !(s.Density > 0) || math.IsInf(s.Density, 1) {
		errs = append(errs, fmt.Errorf("snapshot: density must be positive, got %v", s.Density))
	}
	if s.Frames <= 0 {
		errs = append(errs, fmt.Errorf("snapshot: frames must be positive, got %d", s.Frames))
	}
	if s.Interval < 0 {
		errs = append(errs, fmt.Errorf("snapshot: interval must not be negative, got %v", s.Interval))
	}
	if s.Workers <= 0 {
		errs = append(errs, fmt.Errorf("snapshot: workers must be positive, got %d", s.Workers))
	}
	if _, err := capture.ParseFormat(s.Format); err != nil {
		errs = append(errs, fmt.Errorf("snapshot.format: %w", err))
	}

	return errors.Join(errs...)
}
