// Package physics is a small rigid-body world for meshing gears. Bodies are
// cylinders that spin about z; gear constraints couple their angular
// velocities.
package physics

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/gearworks/internal/engine/picking"
	"github.com/Faultbox/gearworks/pkg/math"
)

var (
	// ErrUnknownBody is returned when an ID does not name a body in the world.
	ErrUnknownBody = errors.New("physics: unknown body")
	// ErrInvalidShape is returned for missing or degenerate shapes.
	ErrInvalidShape = errors.New("physics: invalid shape")
	// ErrInvalidMass is returned when a dynamic body has no positive mass.
	ErrInvalidMass = errors.New("physics: dynamic body needs positive mass")
	// ErrInvalidRatio is returned for a non-finite or zero gear ratio.
	ErrInvalidRatio = errors.New("physics: gear ratio must be finite and non-zero")
)

// DefaultIterations is the solver pass count per step.
const DefaultIterations = 10

// Hit is the result of a raycast.
type Hit struct {
	Body     *Body
	Point    math.Vec3
	Distance float32
}

// World owns bodies and constraints.
type World struct {
	bodies      map[uuid.UUID]*Body
	order       []uuid.UUID
	constraints []*GearConstraint
	iterations  int
	log         *zap.Logger
}

// NewWorld creates an empty world. iterations <= 0 selects DefaultIterations.
func NewWorld(iterations int, log *zap.Logger) *World {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		bodies:     make(map[uuid.UUID]*Body),
		iterations: iterations,
		log:        log.Named("physics"),
	}
}

// AddBody creates a body from def.
func (w *World) AddBody(def BodyDef) (*Body, error) {
	if def.Shape == nil {
		return nil, fmt.Errorf("%w: nil shape", ErrInvalidShape)
	}
	b := &Body{
		ID:              uuid.New(),
		Shape:           def.Shape,
		Type:            def.Type,
		Position:        def.Position,
		Angle:           def.Angle,
		AngularVelocity: def.AngularVelocity,
	}
	if def.Type == Dynamic {
		if !(def.Mass > 0) {
			return nil, fmt.Errorf("%w: got %g", ErrInvalidMass, def.Mass)
		}
		b.invInertia = 1 / def.Shape.Inertia(def.Mass)
	}

	w.bodies[b.ID] = b
	w.order = append(w.order, b.ID)
	w.log.Debug("body added",
		zap.Stringer("id", b.ID),
		zap.Stringer("type", b.Type),
		zap.Float32("radius", def.Shape.Radius),
	)
	return b, nil
}

// SetShape swaps a body's proxy and recomputes its inertia. mass is ignored
// for kinematic bodies.
func (w *World) SetShape(id uuid.UUID, shape *Shape, mass float32) error {
	b, ok := w.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	if shape == nil {
		return fmt.Errorf("%w: nil shape", ErrInvalidShape)
	}
	if b.Type == Dynamic {
		if !(mass > 0) {
			return fmt.Errorf("%w: got %g", ErrInvalidMass, mass)
		}
		b.invInertia = 1 / shape.Inertia(mass)
	}
	b.Shape = shape
	return nil
}

// RemoveBody deletes a body and every constraint that references it.
func (w *World) RemoveBody(id uuid.UUID) error {
	if _, ok := w.bodies[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	delete(w.bodies, id)
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	kept := w.constraints[:0]
	for _, c := range w.constraints {
		if c.A.ID != id && c.B.ID != id {
			kept = append(kept, c)
		}
	}
	w.constraints = kept
	return nil
}

// Body looks up a body by ID.
func (w *World) Body(id uuid.UUID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.bodies[id])
	}
	return out
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.order)
}

// Constraints returns the gear constraints in creation order.
func (w *World) Constraints() []*GearConstraint {
	return w.constraints
}

// AddGearConstraint couples a and b so that ωa + ratio·ωb = 0.
func (w *World) AddGearConstraint(a, b uuid.UUID, ratio float32) (*GearConstraint, error) {
	ba, ok := w.bodies[a]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, a)
	}
	bb, ok := w.bodies[b]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, b)
	}
	if ratio == 0 || math32.IsNaN(ratio) || math32.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidRatio, ratio)
	}

	c := &GearConstraint{A: ba, B: bb, Ratio: ratio}
	w.constraints = append(w.constraints, c)
	w.log.Debug("gear constraint added",
		zap.Stringer("a", a),
		zap.Stringer("b", b),
		zap.Float32("ratio", ratio),
	)
	return c, nil
}

// Step solves constraints and advances every body by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for i := 0; i < w.iterations; i++ {
		for _, c := range w.constraints {
			c.solve()
		}
	}
	for _, id := range w.order {
		w.bodies[id].integrate(dt)
	}
}

// Raycast returns the nearest body hit by ray.
func (w *World) Raycast(ray picking.Ray) (Hit, bool) {
	var best Hit
	found := false
	for _, id := range w.order {
		b := w.bodies[id]
		t, ok := w.trace(b, ray)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Body: b, Point: ray.At(t), Distance: t}
			found = true
		}
	}
	return best, found
}

const (
	traceEpsilon  = 1e-3
	traceMaxSteps = 64
)

// trace sphere-traces the body's distance field inside its bounding box.
func (w *World) trace(b *Body, ray picking.Ray) (float32, bool) {
	box := b.Bounds()
	var t float32
	if !box.Contains(ray.Origin) {
		entry, ok := ray.IntersectAABB(box)
		if !ok {
			return 0, false
		}
		t = entry
	}
	limit := t + box.Max.Sub(box.Min).Length()

	for i := 0; i < traceMaxSteps && t <= limit; i++ {
		d := b.Shape.Distance(ray.At(t).Sub(b.Position))
		if d < traceEpsilon {
			return t, true
		}
		t += d
	}
	return 0, false
}
