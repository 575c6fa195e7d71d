// Package app hosts the wireframe in a native SDL2/OpenGL window.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/floating-geometry/internal/clock"
	"github.com/Faultbox/floating-geometry/internal/engine/capture"
	"github.com/Faultbox/floating-geometry/internal/engine/input"
	"github.com/Faultbox/floating-geometry/internal/engine/renderer"
	"github.com/Faultbox/floating-geometry/internal/engine/window"
	"github.com/Faultbox/floating-geometry/internal/frame"
	"github.com/Faultbox/floating-geometry/internal/host"
	"github.com/Faultbox/floating-geometry/internal/surface"
)

// Config holds app configuration.
type Config struct {
	Window           window.Config
	Background       surface.Color
	ScreenshotDir    string
	ScreenshotFormat capture.Format
}

// App is a host.Host backed by an SDL window. All methods must be called
// from the main goroutine.
type App struct {
	host.Listeners

	config   Config
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	queue    *frame.Queue
	shots    *capture.Capture

	running    bool
	screenshot bool
}

// New opens the window and prepares the renderer.
func New(cfg Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing app",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		config: cfg,
		log:    log,
		input:  input.New(),
		queue:  frame.NewQueue(clock.Real{}),
		shots:  capture.New(cfg.ScreenshotDir, "floatgeo", cfg.ScreenshotFormat),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(cfg.Window, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(cfg.Background, log.Named("renderer"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	log.Info("app initialized successfully")
	return a, nil
}

// Surface returns the OpenGL surface.
func (a *App) Surface() (surface.Surface, error) {
	return a.renderer, nil
}

// Bounds returns the window's logical client rectangle.
func (a *App) Bounds() host.Rect {
	w, h := a.window.Size()
	return host.Rect{W: float64(w), H: float64(h)}
}

// Density returns framebuffer pixels per logical pixel.
func (a *App) Density() float64 {
	return a.window.Density()
}

// Frames returns the per-vsync frame requester.
func (a *App) Frames() frame.Requester {
	return a.queue
}

// SetBackground changes the clear color.
func (a *App) SetBackground(c surface.Color) {
	a.renderer.SetBackground(c)
}

// Run drives the window until it is closed, ESC is pressed or ctx is
// done. Functions received on tasks run on the main goroutine between
// frames.
func (a *App) Run(ctx context.Context, tasks <-chan func()) error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event)
		}

		// 2. Apply work handed over from other goroutines
		a.drain(tasks)
		if ctx.Err() != nil {
			break
		}

		// 3. Render
		a.queue.Dispatch()
		a.renderer.Flush()
		if a.screenshot {
			a.screenshot = false
			a.capture()
		}

		// 4. Present (swap buffers, waits for vsync)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("main loop stopped")
	return nil
}

func (a *App) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		a.EmitResize(a.Bounds(), a.Density())
	case input.EventMouseMove:
		a.EmitPointer(float64(event.MouseX), float64(event.MouseY))
	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
		case sdl.SCANCODE_F12:
			a.screenshot = true
		}
	}
}

func (a *App) drain(tasks <-chan func()) {
	for {
		select {
		case fn := <-tasks:
			fn()
		default:
			return
		}
	}
}

func (a *App) capture() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.shots.FromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases the renderer and the window.
func (a *App) Close() {
	a.log.Info("closing app")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
