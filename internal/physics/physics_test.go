package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gearworks/internal/engine/picking"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

func gearShape(t *testing.T) *Shape {
	t.Helper()
	s, err := CylinderFor(gear.Default(), 0.5)
	require.NoError(t, err)
	return s
}

func TestCylinderShape(t *testing.T) {
	s := gearShape(t)

	assert.Equal(t, float32(3), s.Radius)
	assert.InDelta(t, 0, s.Distance(math.Vec3{X: 3}), 1e-5)
	assert.InDelta(t, -0.5, s.Distance(math.Vec3{}), 1e-5)
	assert.InDelta(t, 1, s.Distance(math.Vec3{Y: 4}), 1e-5)
	assert.InDelta(t, 0.5, s.Distance(math.Vec3{Z: 1}), 1e-5)
	assert.InDelta(t, 0.5*6.28*9, s.Inertia(6.28), 1e-4)

	b := s.LocalBounds()
	assert.InDelta(t, -3, b.Min.X, 1e-5)
	assert.InDelta(t, 3, b.Max.Y, 1e-5)
	assert.InDelta(t, 0.5, b.Max.Z, 1e-5)
}

func TestNewCylinderRejectsDegenerate(t *testing.T) {
	for _, tc := range []struct{ r, h float32 }{{0, 1}, {1, 0}, {-1, 1}, {math32.NaN(), 1}} {
		_, err := NewCylinder(tc.r, tc.h)
		assert.ErrorIs(t, err, ErrInvalidShape)
	}
}

func TestAddBodyValidation(t *testing.T) {
	w := NewWorld(0, nil)

	_, err := w.AddBody(BodyDef{})
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = w.AddBody(BodyDef{Shape: gearShape(t), Type: Dynamic})
	assert.ErrorIs(t, err, ErrInvalidMass)

	motor, err := w.AddBody(BodyDef{Shape: gearShape(t), Type: Kinematic, AngularVelocity: 3.5})
	require.NoError(t, err)
	assert.True(t, motor.Kinematic())
	assert.Equal(t, 1, w.Len())

	got, ok := w.Body(motor.ID)
	require.True(t, ok)
	assert.Same(t, motor, got)
}

func TestGearTrainCounterRotates(t *testing.T) {
	w := NewWorld(DefaultIterations, nil)
	shape := gearShape(t)

	left, err := w.AddBody(BodyDef{Shape: shape, Type: Kinematic, Position: math.Vec3{X: 6}, AngularVelocity: 3.5})
	require.NoError(t, err)
	center, err := w.AddBody(BodyDef{Shape: shape, Mass: 6.28})
	require.NoError(t, err)
	right, err := w.AddBody(BodyDef{Shape: shape, Mass: 6.28, Position: math.Vec3{X: -6}})
	require.NoError(t, err)

	_, err = w.AddGearConstraint(left.ID, center.ID, 1)
	require.NoError(t, err)
	_, err = w.AddGearConstraint(center.ID, right.ID, 1)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		w.Step(1.0 / 60)
	}

	assert.Equal(t, float32(3.5), left.AngularVelocity)
	assert.InDelta(t, -3.5, center.AngularVelocity, 1e-3)
	assert.InDelta(t, 3.5, right.AngularVelocity, 1e-3)
	for _, c := range w.Constraints() {
		assert.InDelta(t, 0, c.Violation(), 1e-3)
	}
	assert.InDelta(t, 3.5*10.0/60, left.Angle, 1e-4)
}

func TestGearRatio(t *testing.T) {
	w := NewWorld(20, nil)
	big, err := CylinderFor(gear.Spec{OuterRadius: 4}, 0.5)
	require.NoError(t, err)

	motor, err := w.AddBody(BodyDef{Shape: gearShape(t), Type: Kinematic, AngularVelocity: 2})
	require.NoError(t, err)
	driven, err := w.AddBody(BodyDef{Shape: big, Mass: 1})
	require.NoError(t, err)

	// 13 teeth driving 26 teeth halves the speed.
	_, err = w.AddGearConstraint(motor.ID, driven.ID, 2)
	require.NoError(t, err)
	w.Step(0.01)

	assert.InDelta(t, -1, driven.AngularVelocity, 1e-5)
}

func TestAddGearConstraintErrors(t *testing.T) {
	w := NewWorld(0, nil)
	a, err := w.AddBody(BodyDef{Shape: gearShape(t), Mass: 1})
	require.NoError(t, err)

	_, err = w.AddGearConstraint(a.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrUnknownBody)

	_, err = w.AddGearConstraint(a.ID, a.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidRatio)
}

func TestRemoveBodyDropsConstraints(t *testing.T) {
	w := NewWorld(0, nil)
	a, _ := w.AddBody(BodyDef{Shape: gearShape(t), Mass: 1})
	b, _ := w.AddBody(BodyDef{Shape: gearShape(t), Mass: 1})
	_, err := w.AddGearConstraint(a.ID, b.ID, 1)
	require.NoError(t, err)

	require.NoError(t, w.RemoveBody(a.ID))
	assert.Empty(t, w.Constraints())
	assert.Equal(t, []*Body{b}, w.Bodies())
	assert.ErrorIs(t, w.RemoveBody(a.ID), ErrUnknownBody)
}

func TestRaycast(t *testing.T) {
	w := NewWorld(0, nil)
	near, err := w.AddBody(BodyDef{Shape: gearShape(t), Mass: 1, Position: math.Vec3{Z: 2}})
	require.NoError(t, err)
	_, err = w.AddBody(BodyDef{Shape: gearShape(t), Mass: 1, Position: math.Vec3{X: 6}})
	require.NoError(t, err)

	hit, ok := w.Raycast(picking.Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}})
	require.True(t, ok)
	assert.Same(t, near, hit.Body)
	assert.InDelta(t, 7.5, hit.Distance, traceEpsilon)
	assert.InDelta(t, 2.5, hit.Point.Z, traceEpsilon)

	hit, ok = w.Raycast(picking.Ray{Origin: math.Vec3{X: 20}, Direction: math.Vec3{X: -1}})
	require.True(t, ok)
	assert.InDelta(t, 11, hit.Distance, traceEpsilon)

	_, ok = w.Raycast(picking.Ray{Origin: math.Vec3{X: 20, Y: 20}, Direction: math.Vec3{Z: -1}})
	assert.False(t, ok)
}

func TestBodyTransform(t *testing.T) {
	w := NewWorld(0, nil)
	b, err := w.AddBody(BodyDef{Shape: gearShape(t), Mass: 1, Position: math.Vec3{X: 1, Y: 2}, Angle: math32.Pi / 2})
	require.NoError(t, err)

	p := b.Transform().TransformPoint(math.Vec3{X: 1})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 3, p.Y, 1e-5)
	assert.InDelta(t, math32.Pi/2, b.Orientation().AngleZ(), 1e-5)
}

func TestSetShape(t *testing.T) {
	w := NewWorld(0, nil)
	b, err := w.AddBody(BodyDef{Shape: gearShape(t), Mass: 2})
	require.NoError(t, err)

	bigger, err := NewCylinder(5, 0.5)
	require.NoError(t, err)
	require.NoError(t, w.SetShape(b.ID, bigger, 2))
	assert.Same(t, bigger, b.Shape)
	assert.InDelta(t, 1/bigger.Inertia(2), b.invInertia, 1e-6)

	assert.ErrorIs(t, w.SetShape(b.ID, nil, 2), ErrInvalidShape)
	assert.ErrorIs(t, w.SetShape(b.ID, bigger, 0), ErrInvalidMass)
	assert.ErrorIs(t, w.SetShape(uuid.New(), bigger, 2), ErrUnknownBody)
}
