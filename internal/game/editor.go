package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/gearworks/internal/engine/input"
	"github.com/Faultbox/gearworks/pkg/gear"
)

const (
	teethStep  = 2
	radiusStep = 0.1
)

// Editor holds the template for new gears and applies edit-mode actions
// to it.
type Editor struct {
	Active   bool
	Template gear.Spec
	Color    [3]float32

	rng *rand.Rand
}

// NewEditor starts with template and a random colour drawn from rng.
func NewEditor(template gear.Spec, rng *rand.Rand) *Editor {
	e := &Editor{Template: template, rng: rng}
	e.NextColor()
	return e
}

// NextColor picks a fresh colour for the next spawned gear.
func (e *Editor) NextColor() {
	for i := range e.Color {
		e.Color[i] = 0.2 + 0.8*e.rng.Float32()
	}
}

// Apply edits the template for a parameter action. It reports whether the
// template changed. Edits that would make the template invalid are rejected
// with the validation error and leave it untouched. Apply ignores actions
// while the editor is inactive.
func (e *Editor) Apply(a input.Action) (bool, error) {
	if !e.Active {
		return false, nil
	}

	next := e.Template
	switch a {
	case input.ActionMoreTeeth:
		next.Teeth += teethStep
	case input.ActionFewerTeeth:
		next.Teeth -= teethStep
	case input.ActionGrowOuter:
		next.OuterRadius += radiusStep
	case input.ActionShrinkOuter:
		next.OuterRadius -= radiusStep
	case input.ActionGrowInner:
		next.InnerRadius += radiusStep
	case input.ActionShrinkInner:
		next.InnerRadius -= radiusStep
	default:
		return false, nil
	}

	if err := next.Validate(); err != nil {
		return false, fmt.Errorf("%s: %w", a, err)
	}
	e.Template = next
	return true, nil
}

// Status is a short summary for the window title.
func (e *Editor) Status() string {
	mode := "view"
	if e.Active {
		mode = "edit"
	}
	t := e.Template
	return fmt.Sprintf("[%s] teeth %d  outer %.1f  inner %.1f", mode, t.Teeth, t.OuterRadius, t.InnerRadius)
}
