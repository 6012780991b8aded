package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gearworks/pkg/math"
)

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// BoxWireframe returns line-list vertices [x y z ...] for the edges of a box.
func BoxWireframe(min, max math.Vec3) []float32 {
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z
	return []float32{
		// bottom
		x0, y0, z0, x1, y0, z0,
		x1, y0, z0, x1, y0, z1,
		x1, y0, z1, x0, y0, z1,
		x0, y0, z1, x0, y0, z0,
		// top
		x0, y1, z0, x1, y1, z0,
		x1, y1, z0, x1, y1, z1,
		x1, y1, z1, x0, y1, z1,
		x0, y1, z1, x0, y1, z0,
		// verticals
		x0, y0, z0, x0, y1, z0,
		x1, y0, z0, x1, y1, z0,
		x1, y0, z1, x1, y1, z1,
		x0, y0, z1, x0, y1, z1,
	}
}

// CylinderWireframe returns line-list vertices for a Z-aligned cylinder:
// a ring at each cap plus a spoke from the axis on the top ring, so the
// wireframe shows the body's rotation. Vertices are transformed by m.
func CylinderWireframe(radius, halfHeight float32, segments int, m math.Mat4) []float32 {
	if segments < 3 {
		segments = 3
	}
	out := make([]float32, 0, (segments*4+2)*3*2)
	add := func(a, b math.Vec3) {
		a, b = m.TransformPoint(a), m.TransformPoint(b)
		out = append(out, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
	}

	step := 2 * math32.Pi / float32(segments)
	for i := 0; i < segments; i++ {
		s0, c0 := math32.Sincos(float32(i) * step)
		s1, c1 := math32.Sincos(float32(i+1) * step)
		p0 := math.Vec2{X: radius * c0, Y: radius * s0}
		p1 := math.Vec2{X: radius * c1, Y: radius * s1}
		add(p0.Vec3(halfHeight), p1.Vec3(halfHeight))
		add(p0.Vec3(-halfHeight), p1.Vec3(-halfHeight))
		add(p0.Vec3(halfHeight), p0.Vec3(-halfHeight))
		if i == 0 {
			add(math.Vec3{Z: halfHeight}, p0.Vec3(halfHeight))
		}
	}
	return out
}
