package console

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/console-flappy/internal/core"
)

// virtualKeys maps tcell special keys to the virtual key numbers the engine
// key table uses.
var virtualKeys = map[tcell.Key]uint16{
	tcell.KeyEscape: core.VKEscape,
	tcell.KeyCtrlC:  core.VKCancel,
	tcell.KeyUp:     core.VKUp,
	tcell.KeyDown:   core.VKDown,
	tcell.KeyLeft:   core.VKLeft,
	tcell.KeyRight:  core.VKRight,
}

// translateKey converts a tcell key event to a raw key-down record.
// Terminals report presses only, so every record is a key-down. Keys with no
// character and no virtual key number are dropped.
func translateKey(ev *tcell.EventKey) (core.KeyEvent, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return core.KeyEvent{Down: true, Char: r, VirtualKey: core.VKSpace}, true
		}
		return core.KeyDown(r), true
	}
	if vk, ok := virtualKeys[ev.Key()]; ok {
		return core.VirtualKeyDown(vk), true
	}
	return core.KeyEvent{}, false
}

// Style converts a cell attribute to a tcell style.
func Style(a core.Attr) tcell.Style {
	st := tcell.StyleDefault
	if c := a.Color(); c != core.ColorDefault {
		st = st.Foreground(tcell.PaletteColor(c.ANSI()))
	}
	if a.Has(core.AttrBold) {
		st = st.Bold(true)
	}
	if a.Has(core.AttrReverse) {
		st = st.Reverse(true)
	}
	if a.Has(core.AttrDim) {
		st = st.Dim(true)
	}
	return st
}
