package input

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]Action

	// Printable rune bindings
	Runes map[rune]Action
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
		},
		Runes: map[rune]Action{
			'q': ActionQuit,
			'p': ActionCapture,
			'a': ActionMirrorOn,
			'd': ActionMirrorOff,
			's': ActionBandDown,
			'w': ActionBandUp,
			'x': ActionBandReset,
			'c': ActionClearBalls,
			'b': ActionToggleMask,
			'm': ActionToggleMute,
		},
	}
}

// Resolve returns the action bound to a key event, ActionNone if unbound
func (t *KeyTable) Resolve(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		return t.Runes[ev.Rune()]
	}
	return t.SpecialKeys[ev.Key()]
}

// Apply overrides rune bindings from a keymap of single-character keys to action names
// "none" unbinds the key
func (t *KeyTable) Apply(keymap map[string]string) error {
	for key, name := range keymap {
		if utf8.RuneCountInString(key) != 1 {
			return errors.Errorf("keymap key %q must be a single character", key)
		}
		action, err := ParseAction(name)
		if err != nil {
			return errors.Wrapf(err, "keymap key %q", key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		if action == ActionNone {
			delete(t.Runes, r)
			continue
		}
		t.Runes[r] = action
	}
	return nil
}
