package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/gearworks/internal/engine/lighting"
	"github.com/Faultbox/gearworks/internal/engine/picking"
	"github.com/Faultbox/gearworks/internal/physics"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

type fakeResource struct {
	released int
}

func (r *fakeResource) Release() { r.released++ }

type fakeUploader struct {
	uploads []*gear.Handle
	made    []*fakeResource
	fail    error
}

func (u *fakeUploader) Upload(h *gear.Handle) (gear.Resource, error) {
	if u.fail != nil {
		return nil, u.fail
	}
	u.uploads = append(u.uploads, h)
	r := &fakeResource{}
	u.made = append(u.made, r)
	return r, nil
}

func newManager(t *testing.T, up gear.Uploader) *Manager {
	t.Helper()
	log := zaptest.NewLogger(t)
	return NewManager(up, physics.NewWorld(physics.DefaultIterations, log), DefaultOptions(), log)
}

func TestSpawnUploadsMeshAndCreatesBody(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(t, up)

	spec := gear.Default()
	spec.Position = math.Vec3{Y: 6}
	e, err := m.Spawn(spec, SpawnOptions{Material: lighting.DefaultMaterial()})
	require.NoError(t, err)

	assert.Equal(t, "gear-1", e.Name)
	assert.Equal(t, 13*gear.VerticesPerTooth, e.Mesh.VertexCount())
	require.Len(t, up.uploads, 1)
	assert.Equal(t, gear.Triangles, up.uploads[0].Topology)
	assert.Same(t, up.made[0], e.Resource)

	require.NotNil(t, e.Body)
	assert.Equal(t, physics.Dynamic, e.Body.Type)
	assert.Equal(t, spec.Position, e.Body.Position)
	assert.Equal(t, float32(3), e.Body.Shape.Radius)

	assert.Same(t, e, m.Get(e.ID))
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1, m.World().Len())
}

func TestSpawnHeadless(t *testing.T) {
	m := newManager(t, nil)
	e, err := m.Spawn(gear.Default(), SpawnOptions{Name: "solo"})
	require.NoError(t, err)
	assert.Nil(t, e.Resource)
	assert.Equal(t, "solo", e.Name)
}

func TestSpawnErrors(t *testing.T) {
	m := newManager(t, &fakeUploader{})

	bad := gear.Default()
	bad.Teeth = 0
	_, err := m.Spawn(bad, SpawnOptions{})
	assert.ErrorIs(t, err, gear.ErrInvalidTeeth)

	boom := errors.New("no context")
	m = newManager(t, &fakeUploader{fail: boom})
	_, err = m.Spawn(gear.Default(), SpawnOptions{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, m.Count())
	assert.Zero(t, m.World().Len())
}

func TestSpawnTrain(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(t, up)

	train, err := m.SpawnTrain(TrainOptions{Template: gear.Default(), Spacing: 6, DriverSpeed: 3.5})
	require.NoError(t, err)
	require.Len(t, train, 3)

	driver, center, idler := train[0], train[1], train[2]
	assert.Equal(t, float32(6), driver.Body.Position.X)
	assert.True(t, driver.Body.Kinematic())
	assert.InDelta(t, gear.Default().Phase(), center.Body.Angle, 1e-6)
	assert.Equal(t, float32(-6), idler.Body.Position.X)
	assert.Len(t, m.World().Constraints(), 2)

	for i := 0; i < 30; i++ {
		m.Update(1.0 / 60)
	}
	assert.InDelta(t, -3.5, center.Body.AngularVelocity, 1e-3)
	assert.InDelta(t, 3.5, idler.Body.AngularVelocity, 1e-3)
	assert.Equal(t, []*Entity{driver, center, idler}, m.All())
}

func TestLinkRatio(t *testing.T) {
	m := newManager(t, nil)
	small, err := m.Spawn(gear.Default(), SpawnOptions{Motor: true, Speed: 2})
	require.NoError(t, err)

	bigSpec := gear.Default()
	bigSpec.Teeth = 26
	bigSpec.OuterRadius = 6
	big, err := m.Spawn(bigSpec, SpawnOptions{})
	require.NoError(t, err)

	require.NoError(t, m.Link(small.ID, big.ID))
	assert.Equal(t, float32(2), m.World().Constraints()[0].Ratio)

	m.Update(0.01)
	assert.InDelta(t, -1, big.Body.AngularVelocity, 1e-4)

	assert.ErrorIs(t, m.Link(small.ID, uuid.New()), ErrUnknownEntity)
}

func TestRegenerateReleasesOldResource(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(t, up)
	e, err := m.Spawn(gear.Default(), SpawnOptions{})
	require.NoError(t, err)
	old := up.made[0]

	spec := gear.Default()
	spec.Teeth = 20
	spec.OuterRadius = 4
	require.NoError(t, m.Regenerate(e.ID, spec))

	assert.Equal(t, 1, old.released)
	assert.Same(t, up.made[1], e.Resource)
	assert.Equal(t, 20*gear.VerticesPerTooth, e.Mesh.VertexCount())
	assert.Equal(t, float32(4), e.Body.Shape.Radius)
	assert.Equal(t, 20, e.Spec.Teeth)

	bad := spec
	bad.Teeth = -1
	assert.ErrorIs(t, m.Regenerate(e.ID, bad), gear.ErrInvalidTeeth)
	assert.Zero(t, up.made[1].released, "failed regenerate must keep the current mesh")
	assert.ErrorIs(t, m.Regenerate(uuid.New(), spec), ErrUnknownEntity)
}

func TestRemoveAndClear(t *testing.T) {
	up := &fakeUploader{}
	m := newManager(t, up)
	train, err := m.SpawnTrain(TrainOptions{Template: gear.Default(), Spacing: 6, DriverSpeed: 3.5})
	require.NoError(t, err)

	require.NoError(t, m.Remove(train[1].ID))
	assert.Equal(t, 1, up.made[1].released)
	assert.Nil(t, m.Get(train[1].ID))
	assert.Empty(t, m.World().Constraints())
	assert.ErrorIs(t, m.Remove(train[1].ID), ErrUnknownEntity)

	m.Clear()
	assert.Zero(t, m.Count())
	assert.Zero(t, m.World().Len())
	for _, r := range up.made {
		assert.Equal(t, 1, r.released)
	}
}

func TestPickAndSelect(t *testing.T) {
	m := newManager(t, nil)
	train, err := m.SpawnTrain(TrainOptions{Template: gear.Default(), Spacing: 6})
	require.NoError(t, err)

	e, ok := m.Pick(picking.Ray{Origin: math.Vec3{X: -6, Z: 15}, Direction: math.Vec3{Z: -1}})
	require.True(t, ok)
	assert.Same(t, train[2], e)

	m.Select(e.ID)
	assert.Same(t, e, m.Selected())
	m.Select(uuid.Nil)
	assert.Nil(t, m.Selected())

	_, ok = m.Pick(picking.Ray{Origin: math.Vec3{Y: 20, Z: 15}, Direction: math.Vec3{Z: -1}})
	assert.False(t, ok)
}

func TestEachStopsEarly(t *testing.T) {
	m := newManager(t, nil)
	_, err := m.SpawnTrain(TrainOptions{Template: gear.Default(), Spacing: 6})
	require.NoError(t, err)

	var seen []string
	m.Each(func(e *Entity) bool {
		seen = append(seen, e.Name)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"driver", "center"}, seen)
}

func TestEntityTransformFollowsBody(t *testing.T) {
	m := newManager(t, nil)
	e, err := m.Spawn(gear.Default(), SpawnOptions{Motor: true, Speed: 1})
	require.NoError(t, err)

	m.Update(0.5)
	p := e.Transform().TransformPoint(math.Vec3{X: 1})
	assert.InDelta(t, 0.8775826, p.X, 1e-5)
	assert.InDelta(t, 0.4794255, p.Y, 1e-5)
}
