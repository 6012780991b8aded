package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/gearworks/internal/engine/input"
	"github.com/Faultbox/gearworks/pkg/gear"
)

func newTestEditor() *Editor {
	return NewEditor(gear.Default(), rand.New(rand.NewPCG(1, 2)))
}

func TestEditorInactiveIgnoresEdits(t *testing.T) {
	e := newTestEditor()
	changed, err := e.Apply(input.ActionMoreTeeth)
	if changed || err != nil {
		t.Fatalf("Apply() = %v, %v; want no change while inactive", changed, err)
	}
	if e.Template.Teeth != 13 {
		t.Errorf("Teeth = %d, want 13", e.Template.Teeth)
	}
}

func TestEditorApply(t *testing.T) {
	tests := []struct {
		action input.Action
		check  func(gear.Spec) bool
	}{
		{input.ActionMoreTeeth, func(s gear.Spec) bool { return s.Teeth == 15 }},
		{input.ActionFewerTeeth, func(s gear.Spec) bool { return s.Teeth == 11 }},
		{input.ActionGrowOuter, func(s gear.Spec) bool { return s.OuterRadius > 3.09 && s.OuterRadius < 3.11 }},
		{input.ActionShrinkOuter, func(s gear.Spec) bool { return s.OuterRadius > 2.89 && s.OuterRadius < 2.91 }},
		{input.ActionGrowInner, func(s gear.Spec) bool { return s.InnerRadius > 0.79 && s.InnerRadius < 0.81 }},
		{input.ActionShrinkInner, func(s gear.Spec) bool { return s.InnerRadius > 0.59 && s.InnerRadius < 0.61 }},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			e := newTestEditor()
			e.Active = true
			changed, err := e.Apply(tt.action)
			if err != nil || !changed {
				t.Fatalf("Apply() = %v, %v", changed, err)
			}
			if !tt.check(e.Template) {
				t.Errorf("unexpected template %+v", e.Template)
			}
		})
	}
}

func TestEditorRejectsInvalid(t *testing.T) {
	e := newTestEditor()
	e.Active = true
	e.Template.Teeth = 1

	changed, err := e.Apply(input.ActionFewerTeeth)
	if changed || !errors.Is(err, gear.ErrInvalidTeeth) {
		t.Fatalf("Apply() = %v, %v; want ErrInvalidTeeth", changed, err)
	}
	if e.Template.Teeth != 1 {
		t.Errorf("rejected edit changed Teeth to %d", e.Template.Teeth)
	}

	// inner radius cannot reach the tooth root at 2.65
	e.Template = gear.Default()
	e.Template.InnerRadius = 2.6
	if _, err := e.Apply(input.ActionGrowInner); !errors.Is(err, gear.ErrInvertedRadii) {
		t.Errorf("Apply(grow inner) error = %v, want ErrInvertedRadii", err)
	}
}

func TestEditorIgnoresOtherActions(t *testing.T) {
	e := newTestEditor()
	e.Active = true
	if changed, err := e.Apply(input.ActionScreenshot); changed || err != nil {
		t.Errorf("Apply(screenshot) = %v, %v", changed, err)
	}
}

func TestEditorColor(t *testing.T) {
	e := newTestEditor()
	first := e.Color
	for _, c := range first {
		if c < 0.2 || c > 1 {
			t.Fatalf("colour component %v out of range", c)
		}
	}
	e.NextColor()
	if e.Color == first {
		t.Error("NextColor() repeated the colour")
	}
}

func TestEditorStatus(t *testing.T) {
	e := newTestEditor()
	if got, want := e.Status(), "[view] teeth 13  outer 3.0  inner 0.7"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}
	e.Active = true
	if got := e.Status(); got[:6] != "[edit]" {
		t.Errorf("Status() = %q", got)
	}
}
