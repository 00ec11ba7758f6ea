package engine

import "github.com/vovakirdan/console-flappy/internal/core"

// KeyMap translates raw key events to input commands.
// This centralizes key bindings and makes them testable.
type KeyMap struct {
	chars map[rune]core.InputCommand
	keys  map[uint16]core.InputCommand
}

// DefaultKeyMap returns the w/a/s/d/q letter bindings plus arrows, Escape,
// Ctrl+C and Space.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		chars: map[rune]core.InputCommand{
			'q': core.CommandQuit,
			'w': core.CommandUp,
			's': core.CommandDown,
			'a': core.CommandLeft,
			'd': core.CommandRight,
			' ': core.CommandJump,
		},
		keys: map[uint16]core.InputCommand{
			core.VKEscape: core.CommandQuit,
			core.VKCancel: core.CommandQuit,
			core.VKUp:     core.CommandUp,
			core.VKDown:   core.CommandDown,
			core.VKLeft:   core.CommandLeft,
			core.VKRight:  core.CommandRight,
			core.VKSpace:  core.CommandJump,
		},
	}
}

// Map returns the command for a raw key event.
// Key-up records and unmapped keys yield CommandNone; records carrying
// neither a character nor a virtual key yield CommandUndefined.
func (k KeyMap) Map(ev core.KeyEvent) core.InputCommand {
	if !ev.Down {
		return core.CommandNone
	}
	if ev.Char == 0 && ev.VirtualKey == 0 {
		return core.CommandUndefined
	}

	// Character bindings win over virtual keys
	if cmd, ok := k.chars[ev.Char]; ok && ev.Char != 0 {
		return cmd
	}
	if cmd, ok := k.keys[ev.VirtualKey]; ok && ev.VirtualKey != 0 {
		return cmd
	}
	return core.CommandNone
}
