package input

import (
	"reflect"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestActions(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   []Action
	}{
		{
			name:   "single press",
			events: []Event{{Type: EventKeyDown, Key: sdl.SCANCODE_TAB}},
			want:   []Action{ActionToggleEdit},
		},
		{
			name: "repeat edits but not toggles",
			events: []Event{
				{Type: EventKeyDown, Key: sdl.SCANCODE_UP},
				{Type: EventKeyDown, Key: sdl.SCANCODE_UP, Repeat: true},
				{Type: EventKeyDown, Key: sdl.SCANCODE_TAB, Repeat: true},
			},
			want: []Action{ActionMoreTeeth, ActionMoreTeeth},
		},
		{
			name: "key up and unbound keys ignored",
			events: []Event{
				{Type: EventKeyUp, Key: sdl.SCANCODE_RETURN},
				{Type: EventKeyDown, Key: sdl.SCANCODE_Q},
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New()
			for _, e := range tt.events {
				in.push(e)
			}
			got := in.Actions(DefaultBindings())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Actions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragRequiresHeldButton(t *testing.T) {
	in := New()
	in.push(Event{Type: EventMouseMove, DeltaX: 5, DeltaY: 2})
	if dx, dy := in.Drag(sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		t.Errorf("Drag() without button = (%d, %d), want (0, 0)", dx, dy)
	}

	in.push(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 10, MouseY: 20})
	in.push(Event{Type: EventMouseMove, DeltaX: 3, DeltaY: -1})
	if dx, dy := in.Drag(sdl.BUTTON_LEFT); dx != 8 || dy != 1 {
		t.Errorf("Drag() = (%d, %d), want (8, 1)", dx, dy)
	}
	if clicks := in.Clicks(sdl.BUTTON_LEFT); len(clicks) != 1 || clicks[0] != [2]int{10, 20} {
		t.Errorf("Clicks() = %v", clicks)
	}

	in.push(Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT})
	if in.IsButtonHeld(sdl.BUTTON_LEFT) {
		t.Error("button still held after release")
	}
}

func TestWheel(t *testing.T) {
	in := New()
	in.push(Event{Type: EventMouseWheel, DeltaY: 1})
	in.push(Event{Type: EventMouseWheel, DeltaY: 2})
	if got := in.Wheel(); got != 3 {
		t.Errorf("Wheel() = %d, want 3", got)
	}
}

func TestActionString(t *testing.T) {
	if ActionSpawn.String() != "spawn" {
		t.Errorf("ActionSpawn.String() = %q", ActionSpawn.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
