// Package math provides the small float32 linear algebra kit shared by the
// gear generator, the physics proxies and the renderer.
package math

import "github.com/chewxy/math32"

// Vec2 is a point or direction in the gear plane.
type Vec2 struct {
	X, Y float32
}

// Polar returns the point at radius r and the angle whose cosine and sine are
// given. Callers pass cached trig values so repeated samples stay bit-identical.
func Polar(r, cos, sin float32) Vec2 {
	return Vec2{r * cos, r * sin}
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Perp returns v rotated a quarter turn clockwise, (y, -x).
// For an edge walked counter-clockwise around the origin this points outward.
func (v Vec2) Perp() Vec2 {
	return Vec2{v.Y, -v.X}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector, or the zero vector when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// Vec3 lifts v into 3D at height z.
func (v Vec2) Vec3(z float32) Vec3 {
	return Vec3{v.X, v.Y, z}
}
