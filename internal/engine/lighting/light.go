// Package lighting holds the Phong light and material model shared by the
// GL shader and the software preview.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gearworks/pkg/math"
)

// Light is a single white point light.
type Light struct {
	Position math.Vec3
	Ambient  float32
	Diffuse  float32
	Specular float32
}

// DefaultLight matches the viewer's default config.
func DefaultLight() Light {
	return Light{
		Position: math.Vec3{X: 2.5, Y: 2.5, Z: 5},
		Ambient:  0.1,
		Diffuse:  0.7,
		Specular: 0.3,
	}
}

// Material is a flat-coloured surface.
type Material struct {
	Color     [3]float32
	Shininess float32
}

// DefaultMaterial is a neutral steel grey.
func DefaultMaterial() Material {
	return Material{Color: [3]float32{0.6, 0.62, 0.65}, Shininess: 32}
}

// Shade evaluates the Phong model at pos with surface normal n seen from eye.
// It mirrors the fragment shader so previews match the viewer. The result is
// clamped to [0, 1].
func (l Light) Shade(m Material, pos, n, eye math.Vec3) [3]float32 {
	n = n.Normalize()
	toLight := l.Position.Sub(pos).Normalize()
	toEye := eye.Sub(pos).Normalize()

	diff := math32.Max(n.Dot(toLight), 0)

	var spec float32
	if diff > 0 {
		// reflect(-L, N) = -L + 2(N·L)N
		r := toLight.Scale(-1).Add(n.Scale(2 * n.Dot(toLight)))
		spec = math32.Pow(math32.Max(r.Dot(toEye), 0), m.Shininess)
	}

	var out [3]float32
	for i := range out {
		c := m.Color[i]*(l.Ambient+l.Diffuse*diff) + l.Specular*spec
		out[i] = math32.Min(math32.Max(c, 0), 1)
	}
	return out
}
