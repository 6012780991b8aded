package lighting

import (
	"testing"

	"github.com/Faultbox/gearworks/pkg/math"
)

func TestShade(t *testing.T) {
	l := Light{Position: math.Vec3{Z: 10}, Ambient: 0.1, Diffuse: 0.7, Specular: 0.3}
	m := Material{Color: [3]float32{1, 0.5, 0}, Shininess: 32}
	eye := math.Vec3{Z: 10}

	tests := []struct {
		name string
		n    math.Vec3
		want [3]float32
	}{
		{"facing light", math.Vec3{Z: 1}, [3]float32{1, 0.7, 0.3}},
		{"facing away", math.Vec3{Z: -1}, [3]float32{0.1, 0.05, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Shade(m, math.Vec3{}, tt.n, eye)
			for i := range got {
				if d := got[i] - tt.want[i]; d > 1e-4 || d < -1e-4 {
					t.Errorf("Shade() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestShadeGrazingIsDarker(t *testing.T) {
	l := DefaultLight()
	m := DefaultMaterial()
	eye := math.Vec3{Z: 15}

	head := l.Shade(m, math.Vec3{}, math.Vec3{Z: 1}, eye)
	side := l.Shade(m, math.Vec3{}, math.Vec3{X: -1}, eye)
	if side[0] >= head[0] {
		t.Errorf("side-lit %v should be darker than front-lit %v", side, head)
	}
}
