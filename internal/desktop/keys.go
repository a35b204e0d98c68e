//go:build !android

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"rvcook/internal/game"
)

var namedKeys = map[glfw.Key]string{
	glfw.KeySpace:        "space",
	glfw.KeyEnter:        "enter",
	glfw.KeyTab:          "tab",
	glfw.KeyBackspace:    "backspace",
	glfw.KeyUp:           "up",
	glfw.KeyDown:         "down",
	glfw.KeyLeft:         "left",
	glfw.KeyRight:        "right",
	glfw.KeyLeftShift:    "shift",
	glfw.KeyRightShift:   "shift",
	glfw.KeyLeftControl:  "ctrl",
	glfw.KeyRightControl: "ctrl",
}

// keyName maps a glfw key to the lower-case name used by bindings. Letters
// and digits map to themselves; unknown keys return "".
func keyName(k glfw.Key) string {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return string(rune('a' + (k - glfw.KeyA)))
	case k >= glfw.Key0 && k <= glfw.Key9:
		return string(rune('0' + (k - glfw.Key0)))
	}
	return namedKeys[k]
}

// attachInput routes window key events into in. OS auto-repeat is ignored and
// every key is released when the window loses focus, so no key stays stuck.
func attachInput(w *glfw.Window, in *game.InputState) {
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		name := keyName(key)
		if name == "" {
			return
		}
		switch action {
		case glfw.Press:
			in.SetKey(name, true)
		case glfw.Release:
			in.SetKey(name, false)
		}
	})
	w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			in.Reset()
		}
	})
}
