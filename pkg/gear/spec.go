// Package gear builds triangle meshes for spur gears with square teeth.
//
// A gear is described by a Spec. Build walks the teeth, samples five angles
// per tooth and emits six face categories per tooth (front cap, front flank,
// back cap, back flank, outward walls, bore). Vertices are never shared
// between faces so every triangle carries its own flat normal.
package gear

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/gearworks/pkg/math"
)

var (
	// ErrInvalidTeeth is returned by Build and Validate when Teeth <= 0.
	ErrInvalidTeeth = errors.New("gear: tooth count must be positive")
	// ErrInvertedRadii means the bore reaches past the tooth root.
	ErrInvertedRadii = errors.New("gear: inner radius must be below the tooth root radius")
	// ErrNonPositiveWidth means the gear has no thickness.
	ErrNonPositiveWidth = errors.New("gear: width must be positive")
	// ErrNotFinite means a parameter is NaN or infinite.
	ErrNotFinite = errors.New("gear: parameters must be finite")
)

// Spec describes one gear. The zero Position and Angle place the gear at the
// origin with tooth 0 starting on +X.
type Spec struct {
	Width       float32 // axial thickness, the gear spans z in [-Width/2, +Width/2]
	InnerRadius float32 // bore radius
	OuterRadius float32 // pitch radius, teeth extend ToothDepth/2 either side
	ToothDepth  float32
	Teeth       int

	Position math.Vec3
	Angle    float32 // rotation about +Z in radians
}

// Default returns the gear the viewer starts with.
func Default() Spec {
	return Spec{
		Width:       0.5,
		InnerRadius: 0.7,
		OuterRadius: 3.0,
		ToothDepth:  0.7,
		Teeth:       13,
	}
}

// Profile holds the derived radii shared by all emitters.
type Profile struct {
	R0        float32 // bore
	R1        float32 // tooth root
	R2        float32 // tooth tip
	HalfWidth float32
}

// Profile derives the emitter radii. No validation is applied.
func (s Spec) Profile() Profile {
	return Profile{
		R0:        s.InnerRadius,
		R1:        s.OuterRadius - s.ToothDepth/2,
		R2:        s.OuterRadius + s.ToothDepth/2,
		HalfWidth: s.Width / 2,
	}
}

// ToothAngle is the angular pitch of one tooth.
func (s Spec) ToothAngle() float32 {
	if s.Teeth <= 0 {
		return 0
	}
	return 2 * math32.Pi / float32(s.Teeth)
}

// Phase is a quarter of the tooth pitch. Rotating a neighbouring gear of the
// same tooth count by Phase makes its teeth fall into this gear's gaps.
func (s Spec) Phase() float32 {
	return s.ToothAngle() / 4
}

// Transform places the gear in the world.
func (s Spec) Transform() math.Mat4 {
	return math.TranslateVec(s.Position).Mul(math.RotateZ(s.Angle))
}

// Validate reports parameter combinations that produce a nonsensical solid.
// Build does not call it.
func (s Spec) Validate() error {
	for _, v := range []float32{s.Width, s.InnerRadius, s.OuterRadius, s.ToothDepth} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return ErrNotFinite
		}
	}
	if s.Teeth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTeeth, s.Teeth)
	}
	if s.Width <= 0 {
		return fmt.Errorf("%w: got %g", ErrNonPositiveWidth, s.Width)
	}
	p := s.Profile()
	if p.R0 >= p.R1 {
		return fmt.Errorf("%w: inner %g, root %g", ErrInvertedRadii, p.R0, p.R1)
	}
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Spec) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddFloat32("width", s.Width)
	enc.AddFloat32("inner", s.InnerRadius)
	enc.AddFloat32("outer", s.OuterRadius)
	enc.AddFloat32("depth", s.ToothDepth)
	enc.AddInt("teeth", s.Teeth)
	if s.Position != (math.Vec3{}) {
		enc.AddString("position", fmt.Sprintf("%.2f,%.2f,%.2f", s.Position.X, s.Position.Y, s.Position.Z))
	}
	return nil
}
