// Package preview renders gear meshes to images without a GPU.
//
// Triangles are projected through the same orbit camera the viewer uses,
// back-face culled by winding, depth tested and flat shaded with the
// viewer's Phong model. The frame is drawn at Supersample times the target
// size and downscaled with Catmull-Rom filtering.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"

	"github.com/Faultbox/gearworks/internal/engine/camera"
	"github.com/Faultbox/gearworks/internal/engine/debug"
	"github.com/Faultbox/gearworks/internal/engine/lighting"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

var (
	// ErrEmptyMesh is returned when there is nothing to draw.
	ErrEmptyMesh = errors.New("preview: mesh has no triangles")
	// ErrInvalidSize is returned for non-positive image dimensions.
	ErrInvalidSize = errors.New("preview: image size must be positive")
)

// Options controls a preview render.
type Options struct {
	Width       int
	Height      int
	Supersample int
	Yaw         float32 // camera orbit, radians
	Pitch       float32
	Light       lighting.Light
	Material    lighting.Material
	Background  color.RGBA
}

// DefaultOptions is a 512x512 three-quarter view.
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		Supersample: 2,
		Yaw:         0.35,
		Pitch:       0.45,
		Light:       lighting.DefaultLight(),
		Material:    lighting.DefaultMaterial(),
		Background:  color.RGBA{R: 26, G: 26, B: 31, A: 255},
	}
}

// Render draws mesh placed by model.
func Render(mesh *gear.Mesh, model math.Mat4, opts Options) (*image.RGBA, error) {
	if mesh == nil || mesh.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}

	cam := frame(mesh, model, opts)
	t := newTarget(opts.Width*ss, opts.Height*ss, opts.Background)
	cam.SetViewport(t.w, t.h)

	r := rasterizer{
		target:   t,
		viewProj: cam.ViewProjection(),
		eye:      cam.Position(),
		light:    opts.Light,
		material: opts.Material,
	}
	r.drawMesh(mesh, model)

	if ss == 1 {
		return t.img, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), t.img, t.img.Bounds(), draw.Src, nil)
	return dst, nil
}

// RenderFile renders and writes the image; the format follows the extension.
func RenderFile(path string, mesh *gear.Mesh, model math.Mat4, opts Options) error {
	img, err := Render(mesh, model, opts)
	if err != nil {
		return err
	}
	return debug.SaveImage(path, img)
}

// frame fits an orbit camera around the transformed mesh bounds.
func frame(mesh *gear.Mesh, model math.Mat4, opts Options) *camera.OrbitCamera {
	lo := math.Vec3{X: mesh.Bounds.Min[0], Y: mesh.Bounds.Min[1], Z: mesh.Bounds.Min[2]}
	hi := math.Vec3{X: mesh.Bounds.Max[0], Y: mesh.Bounds.Max[1], Z: mesh.Bounds.Max[2]}

	var wmin, wmax math.Vec3
	for i := 0; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		p := model.TransformPoint(c)
		if i == 0 {
			wmin, wmax = p, p
			continue
		}
		wmin, wmax = wmin.Min(p), wmax.Max(p)
	}

	cam := camera.NewOrbitCamera()
	cam.MinDistance = 0
	cam.FitToBounds(wmin, wmax)
	cam.Yaw = opts.Yaw
	cam.Pitch = opts.Pitch
	return cam
}

type target struct {
	img   *image.RGBA
	depth []float32
	w, h  int
}

func newTarget(w, h int, bg color.RGBA) *target {
	t := &target{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		depth: make([]float32, w*h),
		w:     w,
		h:     h,
	}
	draw.Draw(t.img, t.img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	for i := range t.depth {
		t.depth[i] = math32.Inf(1)
	}
	return t
}

type rasterizer struct {
	target   *target
	viewProj math.Mat4
	eye      math.Vec3
	light    lighting.Light
	material lighting.Material

	drawn, culled int
}

// screen vertex: pixel x, pixel y, NDC depth
type sv struct{ x, y, z float32 }

func (r *rasterizer) drawMesh(mesh *gear.Mesh, model math.Mat4) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		var world [3]math.Vec3
		var scr [3]sv
		visible := true
		for k := 0; k < 3; k++ {
			v := mesh.Vertices[mesh.Indices[i+k]]
			world[k] = model.TransformPoint(math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]})
			c := r.viewProj.MulVec4(math.Vec4{world[k].X, world[k].Y, world[k].Z, 1})
			if c[3] <= 0 {
				visible = false
				break
			}
			nx, ny, nz := c[0]/c[3], c[1]/c[3], c[2]/c[3]
			scr[k] = sv{
				x: (nx*0.5 + 0.5) * float32(r.target.w),
				y: (0.5 - ny*0.5) * float32(r.target.h),
				z: nz,
			}
		}
		if !visible {
			continue
		}

		// Screen y points down, so counter-clockwise triangles have negative area.
		area := edge(scr[0], scr[1], scr[2])
		if area >= 0 {
			r.culled++
			continue
		}

		n0 := mesh.Vertices[mesh.Indices[i]].Normal
		n := model.TransformDirection(math.Vec3{X: n0[0], Y: n0[1], Z: n0[2]})
		centroid := world[0].Add(world[1]).Add(world[2]).Scale(1.0 / 3)
		c := r.light.Shade(r.material, centroid, n, r.eye)
		col := color.RGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: 255}

		r.fill(scr, area, col)
		r.drawn++
	}
}

func edge(a, b, p sv) float32 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

func (r *rasterizer) fill(v [3]sv, area float32, col color.RGBA) {
	t := r.target
	x0 := clampInt(int(math32.Floor(min3(v[0].x, v[1].x, v[2].x))), 0, t.w-1)
	x1 := clampInt(int(math32.Ceil(max3(v[0].x, v[1].x, v[2].x))), 0, t.w-1)
	y0 := clampInt(int(math32.Floor(min3(v[0].y, v[1].y, v[2].y))), 0, t.h-1)
	y1 := clampInt(int(math32.Ceil(max3(v[0].y, v[1].y, v[2].y))), 0, t.h-1)

	inv := 1 / area
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := sv{x: float32(x) + 0.5, y: float32(y) + 0.5}
			w0 := edge(v[1], v[2], p) * inv
			w1 := edge(v[2], v[0], p) * inv
			w2 := edge(v[0], v[1], p) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*v[0].z + w1*v[1].z + w2*v[2].z
			idx := y*t.w + x
			if z >= t.depth[idx] || z < -1 || z > 1 {
				continue
			}
			t.depth[idx] = z
			t.img.SetRGBA(x, y, col)
		}
	}
}

func to8(c float32) uint8 {
	return uint8(math32.Round(math32.Min(math32.Max(c, 0), 1) * 255))
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }
func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
