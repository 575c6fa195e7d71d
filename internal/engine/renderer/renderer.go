// Package renderer draws the wireframe with OpenGL. It implements
// surface.Surface by batching colored triangles and flushing them once
// per frame.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/floating-geometry/internal/engine/shader"
	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/pkg/math"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const fragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// Renderer is an OpenGL drawing surface.
type Renderer struct {
	log *zap.Logger

	program *shader.Program
	vao     uint32
	vbo     uint32

	batch      *Batch
	width      int
	height     int
	scale      float64
	proj       math.Mat4
	background surface.Color
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(background surface.Color, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		log:        log,
		batch:      NewBatch(4096),
		scale:      1,
		proj:       math.Identity(),
		background: background,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.createBuffers()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// SetBackground changes the clear color.
func (r *Renderer) SetBackground(c surface.Color) {
	r.background = c
}

// Resize sets the viewport to the backing buffer and scales logical
// coordinates by scale.
func (r *Renderer) Resize(width, height int, scale float64) {
	r.width, r.height, r.scale = width, height, scale
	r.batch.Reset()
	gl.Viewport(0, 0, int32(width), int32(height))
	r.proj = Projection(width, height, scale)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("scale", scale),
	)
}

// Projection maps logical pixels (origin top left) to clip space for a
// width x height pixel buffer at the given scale.
func Projection(width, height int, scale float64) math.Mat4 {
	s := float32(scale)
	return math.Ortho(0, float32(width), float32(height), 0, -1, 1).Mul(math.Scale(s, s, 1))
}

// Clear starts a new frame.
func (r *Renderer) Clear() {
	r.batch.Reset()
	c := r.background
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// StrokeLine queues a gradient line.
func (r *Renderer) StrokeLine(from, to math.Vec2, width float64, stops []surface.Stop) {
	r.batch.Line(from, to, width, stops)
}

// FillGlow queues a radial gradient disc.
func (r *Renderer) FillGlow(center math.Vec2, radius float64, inner, outer surface.Color) {
	r.batch.Fan(center, radius, inner, outer, surface.Segments(radius*r.scale))
}

// FillDisc queues a solid disc.
func (r *Renderer) FillDisc(center math.Vec2, radius float64, c surface.Color) {
	r.batch.Fan(center, radius, c, c, surface.Segments(radius*r.scale))
}

// Flush draws everything queued since Clear.
func (r *Renderer) Flush() {
	if r.batch.Len() == 0 {
		return
	}
	data := r.batch.Data()

	r.program.Use()
	r.program.SetMat4("uProjection", r.proj.Ptr())

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(r.batch.Len()))

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	r.batch.Reset()
}

// ReadPixels returns the framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return pixels, r.width, r.height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, r.width, r.height
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("vertex buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}
