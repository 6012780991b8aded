package physics

import (
	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"github.com/Faultbox/gearworks/internal/engine/picking"
	"github.com/Faultbox/gearworks/pkg/math"
)

// BodyType selects how a body integrates.
type BodyType int

const (
	// Dynamic bodies respond to constraints.
	Dynamic BodyType = iota
	// Kinematic bodies spin at a fixed rate and push dynamic ones.
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// BodyDef describes a body to add to a World.
type BodyDef struct {
	Shape           *Shape
	Type            BodyType
	Mass            float32 // ignored for kinematic bodies
	Position        math.Vec3
	Angle           float32
	AngularVelocity float32 // about +Z, rad/s
}

// Body is a rigid body that rotates about its own z axis. Positions are
// fixed; gears only spin.
type Body struct {
	ID              uuid.UUID
	Shape           *Shape
	Type            BodyType
	Position        math.Vec3
	Angle           float32
	AngularVelocity float32

	invInertia float32
}

// Orientation returns the body rotation as a quaternion.
func (b *Body) Orientation() math.Quat {
	return math.QuatFromAxisAngle(math.UnitZ, b.Angle)
}

// Transform is the body's world matrix.
func (b *Body) Transform() math.Mat4 {
	return math.TranslateVec(b.Position).Mul(b.Orientation().ToMat4())
}

// Bounds returns the world-space box. The proxy is symmetric about z so
// rotation does not change it.
func (b *Body) Bounds() picking.AABB {
	local := b.Shape.LocalBounds()
	return picking.AABB{Min: local.Min.Add(b.Position), Max: local.Max.Add(b.Position)}
}

// Kinematic reports whether the body is driven at a fixed rate.
func (b *Body) Kinematic() bool {
	return b.Type == Kinematic
}

func (b *Body) integrate(dt float32) {
	b.Angle = math32.Mod(b.Angle+b.AngularVelocity*dt, 2*math32.Pi)
}
