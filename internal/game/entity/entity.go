// Package entity tracks the gears in the viewer: their parameters, meshes,
// GPU resources and physics bodies.
package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/gearworks/internal/engine/lighting"
	"github.com/Faultbox/gearworks/internal/engine/picking"
	"github.com/Faultbox/gearworks/internal/physics"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

// ErrUnknownEntity is returned when an ID does not name a live entity.
var ErrUnknownEntity = errors.New("entity: unknown entity")

// Entity is one gear in the scene.
type Entity struct {
	ID       uuid.UUID
	Name     string
	Spec     gear.Spec
	Mesh     *gear.Mesh
	Resource gear.Resource // nil when the manager has no uploader
	Material lighting.Material
	Body     *physics.Body
	Selected bool
}

// Transform is the entity's world matrix, driven by its physics body.
func (e *Entity) Transform() math.Mat4 {
	if e.Body == nil {
		return e.Spec.Transform()
	}
	return e.Body.Transform()
}

// Options configures a Manager.
type Options struct {
	Mass            float32
	ProxyHalfHeight float32
}

// DefaultOptions uses mass 2π and a unit-thick proxy.
func DefaultOptions() Options {
	return Options{Mass: 6.28, ProxyHalfHeight: 0.5}
}

// SpawnOptions controls how a gear enters the scene.
type SpawnOptions struct {
	Name     string
	Material lighting.Material
	// Motor makes the gear kinematic, spinning at Speed rad/s.
	Motor bool
	Speed float32
}

// Manager manages all gears in the viewer.
type Manager struct {
	entities map[uuid.UUID]*Entity
	byBody   map[uuid.UUID]*Entity
	order    []uuid.UUID

	uploader gear.Uploader
	world    *physics.World
	opts     Options
	log      *zap.Logger
}

// NewManager creates a new entity manager. uploader may be nil for headless
// use, in which case entities carry meshes but no GPU resources.
func NewManager(uploader gear.Uploader, world *physics.World, opts Options, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		entities: make(map[uuid.UUID]*Entity),
		byBody:   make(map[uuid.UUID]*Entity),
		uploader: uploader,
		world:    world,
		opts:     opts,
		log:      log.Named("entity"),
	}
}

// World returns the physics world the manager drives.
func (m *Manager) World() *physics.World {
	return m.world
}

// Spawn builds, uploads and simulates a new gear.
func (m *Manager) Spawn(spec gear.Spec, opts SpawnOptions) (*Entity, error) {
	mesh, res, err := m.buildMesh(spec)
	if err != nil {
		return nil, err
	}

	shape, err := physics.CylinderFor(spec, m.opts.ProxyHalfHeight)
	if err != nil {
		release(res)
		return nil, fmt.Errorf("spawn: %w", err)
	}
	def := physics.BodyDef{
		Shape:    shape,
		Mass:     m.opts.Mass,
		Position: spec.Position,
		Angle:    spec.Angle,
	}
	if opts.Motor {
		def.Type = physics.Kinematic
		def.AngularVelocity = opts.Speed
	}
	body, err := m.world.AddBody(def)
	if err != nil {
		release(res)
		return nil, fmt.Errorf("spawn: %w", err)
	}

	e := &Entity{
		ID:       uuid.New(),
		Name:     opts.Name,
		Spec:     spec,
		Mesh:     mesh,
		Resource: res,
		Material: opts.Material,
		Body:     body,
	}
	if e.Name == "" {
		e.Name = fmt.Sprintf("gear-%d", len(m.order)+1)
	}
	m.add(e)

	m.log.Info("spawned gear",
		zap.String("name", e.Name),
		zap.Stringer("id", e.ID),
		zap.Object("gear", spec),
		zap.Bool("motor", opts.Motor),
	)
	return e, nil
}

func (m *Manager) buildMesh(spec gear.Spec) (*gear.Mesh, gear.Resource, error) {
	mesh, err := gear.Build(spec)
	if err != nil {
		return nil, nil, fmt.Errorf("build mesh: %w", err)
	}
	if mesh.DegenerateChords > 0 {
		m.log.Warn("degenerate wall chords",
			zap.Int("count", mesh.DegenerateChords),
			zap.Object("gear", spec),
		)
	}
	if m.uploader == nil {
		return mesh, nil, nil
	}
	res, err := m.uploader.Upload(mesh.Handle())
	if err != nil {
		return nil, nil, fmt.Errorf("upload mesh: %w", err)
	}
	return mesh, res, nil
}

func release(r gear.Resource) {
	if r != nil {
		r.Release()
	}
}

func (m *Manager) add(e *Entity) {
	m.entities[e.ID] = e
	m.byBody[e.Body.ID] = e
	m.order = append(m.order, e.ID)
}

// Link meshes a with b. The ratio is teeth(b)/teeth(a) so the pitch circles
// roll without slipping.
func (m *Manager) Link(a, b uuid.UUID) error {
	ea, ok := m.entities[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, a)
	}
	eb, ok := m.entities[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, b)
	}
	if ea.Spec.Teeth <= 0 {
		return fmt.Errorf("link %s: %w", ea.Name, gear.ErrInvalidTeeth)
	}
	ratio := float32(eb.Spec.Teeth) / float32(ea.Spec.Teeth)
	if _, err := m.world.AddGearConstraint(ea.Body.ID, eb.Body.ID, ratio); err != nil {
		return fmt.Errorf("link %s to %s: %w", ea.Name, eb.Name, err)
	}
	return nil
}

// Regenerate rebuilds an entity's mesh and proxy from spec, keeping its
// position and current angle. The old GPU resource is released only after
// the new one uploads.
func (m *Manager) Regenerate(id uuid.UUID, spec gear.Spec) error {
	e, ok := m.entities[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	spec.Position = e.Spec.Position
	spec.Angle = e.Body.Angle

	mesh, res, err := m.buildMesh(spec)
	if err != nil {
		return fmt.Errorf("regenerate %s: %w", e.Name, err)
	}
	shape, err := physics.CylinderFor(spec, m.opts.ProxyHalfHeight)
	if err != nil {
		release(res)
		return fmt.Errorf("regenerate %s: %w", e.Name, err)
	}
	if err := m.world.SetShape(e.Body.ID, shape, m.opts.Mass); err != nil {
		release(res)
		return fmt.Errorf("regenerate %s: %w", e.Name, err)
	}

	release(e.Resource)
	e.Spec, e.Mesh, e.Resource = spec, mesh, res

	m.log.Debug("regenerated gear",
		zap.String("name", e.Name),
		zap.Object("gear", spec),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return nil
}

// Remove deletes an entity, its body and its GPU resource.
func (m *Manager) Remove(id uuid.UUID) error {
	e, ok := m.entities[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	if err := m.world.RemoveBody(e.Body.ID); err != nil {
		return fmt.Errorf("remove %s: %w", e.Name, err)
	}
	release(e.Resource)
	e.Resource = nil

	delete(m.entities, id)
	delete(m.byBody, e.Body.ID)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.log.Info("removed gear", zap.String("name", e.Name))
	return nil
}

// Clear removes every entity.
func (m *Manager) Clear() {
	for len(m.order) > 0 {
		_ = m.Remove(m.order[len(m.order)-1])
	}
}

// Get returns an entity by ID, or nil.
func (m *Manager) Get(id uuid.UUID) *Entity {
	return m.entities[id]
}

// All returns all entities in spawn order.
func (m *Manager) All() []*Entity {
	result := make([]*Entity, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.entities[id])
	}
	return result
}

// Each calls fn for every entity in spawn order until fn returns false.
func (m *Manager) Each(fn func(*Entity) bool) {
	for _, id := range m.order {
		if !fn(m.entities[id]) {
			return
		}
	}
}

// Count returns the total number of entities.
func (m *Manager) Count() int {
	return len(m.order)
}

// Selected returns the selected entity, or nil.
func (m *Manager) Selected() *Entity {
	for _, id := range m.order {
		if e := m.entities[id]; e.Selected {
			return e
		}
	}
	return nil
}

// Select marks one entity as selected. A nil ID clears the selection.
func (m *Manager) Select(id uuid.UUID) {
	for _, e := range m.entities {
		e.Selected = e.ID == id
	}
}

// Pick returns the entity hit by ray.
func (m *Manager) Pick(ray picking.Ray) (*Entity, bool) {
	hit, ok := m.world.Raycast(ray)
	if !ok {
		return nil, false
	}
	e, ok := m.byBody[hit.Body.ID]
	return e, ok
}

// Update advances the physics world.
func (m *Manager) Update(dt float32) {
	m.world.Step(dt)
}
