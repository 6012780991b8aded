package physics

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/Faultbox/gearworks/internal/engine/picking"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

// Shape is a z-aligned cylinder centred on the body origin. The distance
// field comes from sdfx so picking can sphere-trace it.
type Shape struct {
	Radius     float32
	HalfHeight float32

	sdf sdf.SDF3
}

// NewCylinder builds a cylinder proxy.
func NewCylinder(radius, halfHeight float32) (*Shape, error) {
	if !(radius > 0) || !(halfHeight > 0) {
		return nil, fmt.Errorf("%w: radius %g, half height %g", ErrInvalidShape, radius, halfHeight)
	}
	s, err := sdf.Cylinder3D(float64(2*halfHeight), float64(radius), 0)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return &Shape{Radius: radius, HalfHeight: halfHeight, sdf: s}, nil
}

// CylinderFor returns the collision proxy of a gear: a cylinder at the pitch
// radius with the given half height.
func CylinderFor(spec gear.Spec, halfHeight float32) (*Shape, error) {
	return NewCylinder(spec.OuterRadius, halfHeight)
}

// Distance is the signed distance from a body-local point to the surface.
// Negative inside.
func (s *Shape) Distance(local math.Vec3) float32 {
	return float32(s.sdf.Evaluate(v3.Vec{X: float64(local.X), Y: float64(local.Y), Z: float64(local.Z)}))
}

// Inertia about the z axis for a solid cylinder of the given mass.
func (s *Shape) Inertia(mass float32) float32 {
	return 0.5 * mass * s.Radius * s.Radius
}

// LocalBounds is the body-local bounding box.
func (s *Shape) LocalBounds() picking.AABB {
	bb := s.sdf.BoundingBox()
	return picking.AABB{
		Min: math.Vec3{X: float32(bb.Min.X), Y: float32(bb.Min.Y), Z: float32(bb.Min.Z)},
		Max: math.Vec3{X: float32(bb.Max.X), Y: float32(bb.Max.Y), Z: float32(bb.Max.Z)},
	}
}
