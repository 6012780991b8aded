package entity

import (
	"fmt"

	"github.com/Faultbox/gearworks/internal/engine/lighting"
	"github.com/Faultbox/gearworks/pkg/gear"
	"github.com/Faultbox/gearworks/pkg/math"
)

// TrainOptions lays out the startup scene.
type TrainOptions struct {
	Template    gear.Spec
	Spacing     float32 // centre distance between neighbours
	DriverSpeed float32 // rad/s of the +X gear
	Materials   [3]lighting.Material
}

// SpawnTrain creates three meshing gears on the X axis: a motor-driven gear
// at +Spacing, a centre gear rotated by a quarter pitch so its teeth fall
// into the driver's gaps, and an idler at -Spacing. Returned in that order.
func (m *Manager) SpawnTrain(opts TrainOptions) ([]*Entity, error) {
	layout := []struct {
		name  string
		x     float32
		angle float32
		motor bool
	}{
		{"driver", opts.Spacing, 0, true},
		{"center", 0, opts.Template.Phase(), false},
		{"idler", -opts.Spacing, 0, false},
	}

	train := make([]*Entity, 0, len(layout))
	for i, l := range layout {
		spec := opts.Template
		spec.Position = math.Vec3{X: l.x}
		spec.Angle = l.angle

		e, err := m.Spawn(spec, SpawnOptions{
			Name:     l.name,
			Material: opts.Materials[i],
			Motor:    l.motor,
			Speed:    opts.DriverSpeed,
		})
		if err != nil {
			return train, fmt.Errorf("spawn %s: %w", l.name, err)
		}
		train = append(train, e)
	}

	for i := 1; i < len(train); i++ {
		if err := m.Link(train[i-1].ID, train[i].ID); err != nil {
			return train, err
		}
	}
	return train, nil
}
