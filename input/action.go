package input

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Action discriminates what a key press means to the loop
type Action uint8

const (
	ActionNone Action = iota

	// System
	ActionQuit
	ActionCapture // save presentation surface
	ActionResize  // terminal resized, not bindable

	// Mirror flag
	ActionMirrorOn
	ActionMirrorOff

	// Active band
	ActionBandDown
	ActionBandUp
	ActionBandReset

	// Scene
	ActionClearBalls
	ActionToggleMask
	ActionToggleMute
)

// actionNames maps canonical names, as used in config keymaps, to actions
var actionNames = map[string]Action{
	"none":        ActionNone,
	"quit":        ActionQuit,
	"capture":     ActionCapture,
	"mirror_on":   ActionMirrorOn,
	"mirror_off":  ActionMirrorOff,
	"band_down":   ActionBandDown,
	"band_up":     ActionBandUp,
	"band_reset":  ActionBandReset,
	"clear_balls": ActionClearBalls,
	"toggle_mask": ActionToggleMask,
	"toggle_mute": ActionToggleMute,
}

// ParseAction resolves a canonical action name
func ParseAction(name string) (Action, error) {
	a, ok := actionNames[name]
	if !ok {
		return ActionNone, errors.Errorf("unknown action %q, want one of %s", name, strings.Join(ActionNames(), ", "))
	}
	return a, nil
}

// ActionNames returns every bindable action name, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for k := range actionNames {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (a Action) String() string {
	if a == ActionResize {
		return "resize"
	}
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}
