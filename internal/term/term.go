// Package term hosts the wireframe in a terminal. Each character cell
// shows two vertically stacked pixels of a software raster using half
// block glyphs in truecolor.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/floating-geometry/internal/clock"
	"github.com/Faultbox/floating-geometry/internal/frame"
	"github.com/Faultbox/floating-geometry/internal/host"
	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/internal/surface/raster"
)

// Options configures the terminal host.
type Options struct {
	FPS       int     // frames per second; terminals have no vsync
	CellWidth float64 // logical pixels per column; a row is twice as tall
}

// DefaultOptions returns 30 fps with 8 logical pixels per column.
func DefaultOptions() Options {
	return Options{FPS: 30, CellWidth: 8}
}

// Host is a host.Host backed by a tcell screen.
type Host struct {
	host.Listeners

	screen tcell.Screen
	surf   *raster.Surface
	queue  *frame.Queue
	opts   Options
	log    *zap.Logger

	cols, rows int
}

// New initializes screen and wraps it in a host. The caller must Close
// the host to restore the terminal.
func New(screen tcell.Screen, opts Options, clk clock.Clock, log *zap.Logger) (*Host, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.FPS <= 0 || opts.CellWidth <= 0 {
		return nil, fmt.Errorf("invalid terminal options: fps %d, cell width %v", opts.FPS, opts.CellWidth)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	h := &Host{
		screen: screen,
		surf:   raster.New(0, 0, 1),
		queue:  frame.NewQueue(clk),
		opts:   opts,
		log:    log,
	}
	h.cols, h.rows = screen.Size()
	log.Info("terminal initialized",
		zap.Int("cols", h.cols),
		zap.Int("rows", h.rows),
		zap.Int("colors", screen.Colors()),
	)
	return h, nil
}

// Close restores the terminal.
func (h *Host) Close() {
	h.screen.Fini()
}

// Surface returns the raster the terminal displays.
func (h *Host) Surface() (surface.Surface, error) { return h.surf, nil }

// Bounds returns the screen size in logical pixels.
func (h *Host) Bounds() host.Rect {
	cw := h.opts.CellWidth
	return host.Rect{W: float64(h.cols) * cw, H: float64(h.rows) * 2 * cw}
}

// Density maps logical pixels to raster pixels: one raster pixel per
// column and two per row.
func (h *Host) Density() float64 { return 1 / h.opts.CellWidth }

// Frames returns the frame requester.
func (h *Host) Frames() frame.Requester { return h.queue }

// CellToClient returns the logical position of the centre of cell
// (col, row).
func (h *Host) CellToClient(col, row int) (float64, float64) {
	cw := h.opts.CellWidth
	return (float64(col) + 0.5) * cw, (float64(row) + 0.5) * 2 * cw
}

// Step dispatches one frame and shows the raster.
func (h *Host) Step() int {
	n := h.queue.Dispatch()
	h.present()
	h.screen.Show()
	return n
}

// Run pumps terminal events and dispatches frames until the user quits
// (ESC, q or Ctrl-C) or ctx is done. Functions received on tasks run on
// the loop goroutine between frames.
func (h *Host) Run(ctx context.Context, tasks <-chan func()) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go h.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.handle(ev) {
				h.log.Info("quit requested")
				return nil
			}

		case fn := <-tasks:
			fn()

		case <-ticker.C:
			h.Step()
		}
	}
}

// handle processes one event and reports whether to keep running.
func (h *Host) handle(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyCtrlC:
			return false
		case e.Key() == tcell.KeyRune && (e.Rune() == 'q' || e.Rune() == 'Q'):
			return false
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		h.EmitPointer(h.CellToClient(x, y))

	case *tcell.EventResize:
		h.cols, h.rows = e.Size()
		h.screen.Clear()
		h.log.Debug("terminal resized", zap.Int("cols", h.cols), zap.Int("rows", h.rows))
		h.EmitResize(h.Bounds(), h.Density())
	}
	return true
}

// present copies the raster into the screen's cell buffer.
func (h *Host) present() {
	img := h.surf.Image()
	w, ht := h.surf.Size()
	for row := 0; row < h.rows; row++ {
		for col := 0; col < h.cols; col++ {
			var upper, lower tcell.Color = tcell.ColorDefault, tcell.ColorDefault
			if col < w && 2*row < ht {
				upper = cellColor(img.Pix[img.PixOffset(col, 2*row):])
			}
			if col < w && 2*row+1 < ht {
				lower = cellColor(img.Pix[img.PixOffset(col, 2*row+1):])
			}

			switch {
			case upper == tcell.ColorDefault && lower == tcell.ColorDefault:
				h.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
			case upper == tcell.ColorDefault:
				h.screen.SetContent(col, row, '▄', nil, tcell.StyleDefault.Foreground(lower))
			default:
				h.screen.SetContent(col, row, '▀', nil, tcell.StyleDefault.Foreground(upper).Background(lower))
			}
		}
	}
}

// cellColor converts a premultiplied RGBA pixel to a terminal color,
// composited over black. Fully transparent pixels keep the terminal's
// own background.
func cellColor(pix []uint8) tcell.Color {
	if pix[3] == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(pix[0]), int32(pix[1]), int32(pix[2]))
}
