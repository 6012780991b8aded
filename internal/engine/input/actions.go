package input

import "github.com/veandco/go-sdl2/sdl"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleEdit
	ActionMoreTeeth
	ActionFewerTeeth
	ActionGrowOuter
	ActionShrinkOuter
	ActionGrowInner
	ActionShrinkInner
	ActionSpawn
	ActionScreenshot
	ActionToggleDebug
	ActionToggleFullscreen
	ActionPause
	ActionSaveTemplate
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionQuit:             "quit",
	ActionToggleEdit:       "toggle-edit",
	ActionMoreTeeth:        "more-teeth",
	ActionFewerTeeth:       "fewer-teeth",
	ActionGrowOuter:        "grow-outer",
	ActionShrinkOuter:      "shrink-outer",
	ActionGrowInner:        "grow-inner",
	ActionShrinkInner:      "shrink-inner",
	ActionSpawn:            "spawn",
	ActionScreenshot:       "screenshot",
	ActionToggleDebug:      "toggle-debug",
	ActionToggleFullscreen: "toggle-fullscreen",
	ActionPause:            "pause",
	ActionSaveTemplate:     "save-template",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Bindings maps keys to actions.
type Bindings map[sdl.Scancode]Action

// DefaultBindings is the viewer keymap. Parameter edits only apply while
// edit mode (Tab) is on; the game decides that.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_ESCAPE:   ActionQuit,
		sdl.SCANCODE_TAB:      ActionToggleEdit,
		sdl.SCANCODE_UP:       ActionMoreTeeth,
		sdl.SCANCODE_DOWN:     ActionFewerTeeth,
		sdl.SCANCODE_RIGHT:    ActionGrowOuter,
		sdl.SCANCODE_LEFT:     ActionShrinkOuter,
		sdl.SCANCODE_PAGEUP:   ActionGrowInner,
		sdl.SCANCODE_PAGEDOWN: ActionShrinkInner,
		sdl.SCANCODE_RETURN:   ActionSpawn,
		sdl.SCANCODE_F12:      ActionScreenshot,
		sdl.SCANCODE_F1:       ActionToggleDebug,
		sdl.SCANCODE_F11:      ActionToggleFullscreen,
		sdl.SCANCODE_SPACE:    ActionPause,
		sdl.SCANCODE_F5:       ActionSaveTemplate,
	}
}

// repeatable actions fire on auto-repeat; toggles do not.
var repeatable = map[Action]bool{
	ActionMoreTeeth:   true,
	ActionFewerTeeth:  true,
	ActionGrowOuter:   true,
	ActionShrinkOuter: true,
	ActionGrowInner:   true,
	ActionShrinkInner: true,
}

// Actions returns the actions triggered this frame, in event order.
func (i *Input) Actions(b Bindings) []Action {
	var out []Action
	for _, e := range i.events {
		if e.Type != EventKeyDown {
			continue
		}
		a, ok := b[e.Key]
		if !ok {
			continue
		}
		if e.Repeat && !repeatable[a] {
			continue
		}
		out = append(out, a)
	}
	return out
}
