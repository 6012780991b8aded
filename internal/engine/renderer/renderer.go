// Package renderer draws gear meshes and debug lines with OpenGL 4.1.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gearworks/internal/engine/lighting"
	"github.com/Faultbox/gearworks/internal/engine/shader"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// View is the per-frame camera and light state.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	Light      lighting.Light
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	gearProgram *shader.Program
	lineProgram *shader.Program

	lineVAO, lineVBO uint32
	lineCapacity     int

	view    View
	uploads int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config: cfg,
		log:    log.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	if r.gearProgram, err = shader.NewProgram(gearVertexShader, gearFragmentShader); err != nil {
		return nil, fmt.Errorf("gear shader: %w", err)
	}
	if r.lineProgram, err = shader.NewProgram(lineVertexShader, lineFragmentShader); err != nil {
		r.gearProgram.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources. Meshes must be released by their owners.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("uploads", r.uploads))
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	r.gearProgram.Delete()
	r.lineProgram.Delete()
}

// Resize handles window resize. width and height are in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetBackground changes the clear colour.
func (r *Renderer) SetBackground(c [3]float32) {
	r.config.Background = c
	gl.ClearColor(c[0], c[1], c[2], 1.0)
}

// Begin clears the frame and installs the camera and light.
func (r *Renderer) Begin(v View) {
	r.view = v
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.gearProgram
	p.Use()
	p.SetMat4("uView", v.View)
	p.SetMat4("uProjection", v.Projection)
	p.SetVec3("uEye", v.Eye)
	p.SetVec3("uLightPos", v.Light.Position)
	p.SetFloat("uAmbient", v.Light.Ambient)
	p.SetFloat("uDiffuse", v.Light.Diffuse)
	p.SetFloat("uSpecular", v.Light.Specular)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawMesh draws a mesh previously returned by Upload.
func (r *Renderer) DrawMesh(res gear.Resource, model math.Mat4, mat lighting.Material, highlight bool) error {
	m, ok := res.(*Mesh)
	if !ok {
		return fmt.Errorf("draw: %T was not uploaded by this renderer", res)
	}
	if m.vao == 0 {
		return fmt.Errorf("draw: mesh already released")
	}

	p := r.gearProgram
	p.Use()
	p.SetMat4("uModel", model)
	p.SetVec3("uColor", math.Vec3{X: mat.Color[0], Y: mat.Color[1], Z: mat.Color[2]})
	p.SetFloat("uShininess", mat.Shininess)
	p.SetBool("uHighlight", highlight)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	return nil
}

// DrawLines draws a line list of [x y z] world-space vertices.
func (r *Renderer) DrawLines(vertices []float32, color [3]float32) {
	if len(vertices) < 6 {
		return
	}

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(vertices) > r.lineCapacity {
		r.lineCapacity = len(vertices)
		gl.BufferData(gl.ARRAY_BUFFER, r.lineCapacity*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	p := r.lineProgram
	p.Use()
	p.SetMat4("uViewProjection", r.view.Projection.Mul(r.view.View))
	p.SetVec3("uColor", math.Vec3{X: color[0], Y: color[1], Z: color[2]})

	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
