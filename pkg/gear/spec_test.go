package gear

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gearworks/pkg/math"
)

func TestProfile(t *testing.T) {
	p := Default().Profile()
	want := Profile{R0: 0.7, R1: 2.65, R2: 3.35, HalfWidth: 0.25}
	if math32.Abs(p.R0-want.R0) > 1e-6 || math32.Abs(p.R1-want.R1) > 1e-6 ||
		math32.Abs(p.R2-want.R2) > 1e-6 || p.HalfWidth != want.HalfWidth {
		t.Errorf("Profile() = %+v, want %+v", p, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Spec)
		want   error
	}{
		{"default", func(*Spec) {}, nil},
		{"zero teeth", func(s *Spec) { s.Teeth = 0 }, ErrInvalidTeeth},
		{"flat", func(s *Spec) { s.Width = 0 }, ErrNonPositiveWidth},
		{"bore past root", func(s *Spec) { s.InnerRadius = 2.8 }, ErrInvertedRadii},
		{"nan", func(s *Spec) { s.OuterRadius = math32.NaN() }, ErrNotFinite},
		{"inf", func(s *Spec) { s.ToothDepth = math32.Inf(1) }, ErrNotFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPhase(t *testing.T) {
	s := specWithTeeth(4)
	if got, want := s.Phase(), math32.Pi/8; math32.Abs(got-want) > 1e-6 {
		t.Errorf("Phase() = %v, want %v", got, want)
	}
	if got := specWithTeeth(0).Phase(); got != 0 {
		t.Errorf("Phase() with no teeth = %v, want 0", got)
	}
}

func TestTransform(t *testing.T) {
	s := Default()
	s.Position = math.Vec3{X: 6}
	s.Angle = math32.Pi / 2

	got := s.Transform().TransformPoint(math.Vec3{X: 1})
	want := math.Vec3{X: 6, Y: 1}
	if got.Distance(want) > 1e-5 {
		t.Errorf("Transform() maps (1,0,0) to %v, want %v", got, want)
	}
}

func TestSpecLogObject(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zap.New(core).Info("built", zap.Object("gear", Default()))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	g, ok := fields["gear"].(map[string]interface{})
	if !ok {
		t.Fatalf("gear field = %#v, want object", fields["gear"])
	}
	if g["teeth"] != 13 {
		t.Errorf("teeth = %#v, want 13", g["teeth"])
	}
	if _, ok := g["position"]; ok {
		t.Error("position logged for a gear at the origin")
	}
}
