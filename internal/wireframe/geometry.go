// Package wireframe draws a slowly rotating icosahedron that tilts toward
// the pointer. A Geometry is mounted on a host, which supplies the drawing
// surface, the pointer and resize notifications and the frame clock.
package wireframe

import (
	"go.uber.org/zap"

	"github.com/Faultbox/floating-geometry/internal/frame"
	"github.com/Faultbox/floating-geometry/internal/host"
	"github.com/Faultbox/floating-geometry/internal/mesh"
	"github.com/Faultbox/floating-geometry/internal/motion"
	"github.com/Faultbox/floating-geometry/internal/projection"
	"github.com/Faultbox/floating-geometry/internal/surface"
)

// Geometry is the mountable wireframe component. All methods must be
// called from the host's loop goroutine.
type Geometry struct {
	opts Options
	log  *zap.Logger

	// Valid while mounted.
	host      host.Host
	surf      surface.Surface
	mesh      *mesh.Mesh
	proj      projection.Projector
	state     *motion.State
	loop      *frame.Loop
	pointerID host.ListenerID
	resizeID  host.ListenerID
	mounted   bool

	points []projection.Point
	stops  [3]surface.Stop
	frames uint64
}

// New creates an unmounted component. A nil logger discards output.
func New(opts Options, log *zap.Logger) *Geometry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Geometry{opts: opts, log: log}
}

// Mount attaches the component to h and starts rendering. If the options
// are invalid or the host cannot provide a surface nothing is registered
// and nothing is drawn.
func (g *Geometry) Mount(h host.Host) {
	if g.mounted {
		g.log.Warn("geometry already mounted")
		return
	}
	if err := g.opts.Validate(); err != nil {
		g.log.Warn("invalid options, geometry disabled", zap.Error(err))
		return
	}

	surf, err := h.Surface()
	if err != nil {
		g.log.Warn("no drawing surface, geometry disabled", zap.Error(err))
		return
	}

	g.host = h
	g.surf = surf
	g.mesh = mesh.Icosahedron(g.opts.Radius)
	g.proj = projection.New(g.opts.FocalLength)
	g.state = motion.NewState(g.opts.Motion)
	g.points = make([]projection.Point, 0, mesh.VertexCount)

	g.resize(h.Bounds(), h.Density())
	g.resizeID = h.AddResizeListener(g.resize)
	g.pointerID = h.AddPointerListener(g.pointer)
	g.loop = frame.Start(h.Frames(), g.frame)
	g.mounted = true

	b := h.Bounds()
	g.log.Info("geometry mounted",
		zap.Float64("width", b.W),
		zap.Float64("height", b.H),
		zap.Float64("density", h.Density()),
	)
}

// Unmount stops the render loop and removes the listeners. It is safe to
// call more than once and on a component whose mount failed.
func (g *Geometry) Unmount() {
	if !g.mounted {
		return
	}
	g.loop.Cancel()
	g.host.RemoveResizeListener(g.resizeID)
	g.host.RemovePointerListener(g.pointerID)
	g.frames = g.loop.Frames()

	g.state.Reset()
	g.host = nil
	g.surf = nil
	g.state = nil
	g.loop = nil
	g.mounted = false
	g.log.Debug("geometry unmounted", zap.Uint64("frames", g.frames))
}

// Retune applies new options. A mounted component rebuilds its mesh and
// projector but keeps the current rotation.
func (g *Geometry) Retune(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	g.opts = opts
	if g.mounted {
		g.mesh = mesh.Icosahedron(opts.Radius)
		g.proj = projection.New(opts.FocalLength)
		g.state.Tune(opts.Motion)
	}
	g.log.Info("geometry retuned",
		zap.Float64("radius", opts.Radius),
		zap.Float64("focal_length", opts.FocalLength),
		zap.Float64("damping", opts.Motion.Damping),
	)
	return nil
}

// Options returns the active options.
func (g *Geometry) Options() Options { return g.opts }

// Mounted reports whether the component is rendering.
func (g *Geometry) Mounted() bool { return g.mounted }

// Rotation returns the angles used for the last frame.
func (g *Geometry) Rotation() motion.Rotation {
	if g.state == nil {
		return motion.Rotation{}
	}
	return g.state.Rotation()
}

// Projected returns a copy of the last projected vertices.
func (g *Geometry) Projected() []projection.Point {
	out := make([]projection.Point, len(g.points))
	copy(out, g.points)
	return out
}

// Frames returns the number of frames rendered.
func (g *Geometry) Frames() uint64 {
	if g.loop != nil {
		return g.loop.Frames()
	}
	return g.frames
}

func (g *Geometry) resize(bounds host.Rect, density float64) {
	w, h := host.BufferSize(bounds, density)
	g.surf.Resize(w, h, density)
	g.log.Debug("surface resized",
		zap.Int("buffer_width", w),
		zap.Int("buffer_height", h),
		zap.Float64("density", density),
	)
}

func (g *Geometry) pointer(clientX, clientY float64) {
	b := g.host.Bounds()
	g.state.SetPointer(clientX, clientY, motion.Bounds{
		Left:   b.X,
		Top:    b.Y,
		Width:  b.W,
		Height: b.H,
	})
}
