package core

// InputCommand is a discrete game command derived from a raw key press.
// Commands are produced once per frame and discarded after the frame.
type InputCommand int

const (
	CommandUndefined InputCommand = iota - 1
	CommandNone
	CommandQuit  // q, Esc, Ctrl+C
	CommandUp    // w, Up arrow
	CommandDown  // s, Down arrow
	CommandLeft  // a, Left arrow
	CommandRight // d, Right arrow
	CommandJump  // Space
)

// String returns a human-readable name for the command.
func (c InputCommand) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandQuit:
		return "Quit"
	case CommandUp:
		return "Up"
	case CommandDown:
		return "Down"
	case CommandLeft:
		return "Left"
	case CommandRight:
		return "Right"
	case CommandJump:
		return "Jump"
	default:
		return "Undefined"
	}
}

// Virtual key codes carried by raw key events. The numbering follows the
// Windows console virtual-key table.
const (
	VKCancel uint16 = 0x03
	VKEscape uint16 = 0x1B
	VKSpace  uint16 = 0x20
	VKLeft   uint16 = 0x25
	VKUp     uint16 = 0x26
	VKRight  uint16 = 0x27
	VKDown   uint16 = 0x28
)

// KeyEvent is a raw key record read from the console.
type KeyEvent struct {
	Down       bool   // false for key-up records
	Char       rune   // Unicode character, 0 when the key has none
	VirtualKey uint16 // Virtual key code, 0 when unknown
}

// KeyDown builds a key-down record for a printable character.
func KeyDown(r rune) KeyEvent {
	return KeyEvent{Down: true, Char: r}
}

// VirtualKeyDown builds a key-down record for a non-printable key.
func VirtualKeyDown(vk uint16) KeyEvent {
	return KeyEvent{Down: true, VirtualKey: vk}
}

// ContainsCommand reports whether cmds holds c.
func ContainsCommand(cmds []InputCommand, c InputCommand) bool {
	for _, x := range cmds {
		if x == c {
			return true
		}
	}
	return false
}
