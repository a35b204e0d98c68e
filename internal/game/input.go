package game

import "strings"

// KeySet is a per-frame copy of the pressed keys.
type KeySet map[string]bool

func (k KeySet) Pressed(key string) bool { return k[key] }

// InputState records which logical keys are held. The capture collaborator
// writes it through SetKey; the session reads it once per tick.
type InputState struct {
	pressed map[string]bool
	presses []string
}

func NewInputState() *InputState {
	return &InputState{
		pressed: make(map[string]bool),
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// SetKey applies one keydown/keyup event. A keydown for a key that is already
// held (OS auto-repeat) does not queue another press.
func (in *InputState) SetKey(key string, pressed bool) {
	key = normalizeKey(key)
	if key == "" {
		return
	}
	if pressed && !in.pressed[key] {
		in.presses = append(in.presses, key)
	}
	if pressed {
		in.pressed[key] = true
	} else {
		delete(in.pressed, key)
	}
}

func (in *InputState) Pressed(key string) bool {
	return in.pressed[normalizeKey(key)]
}

// Snapshot copies the held keys for one frame.
func (in *InputState) Snapshot() KeySet {
	out := make(KeySet, len(in.pressed))
	for k := range in.pressed {
		out[k] = true
	}
	return out
}

// DrainPresses returns the edge-triggered presses queued since the last call,
// in arrival order.
func (in *InputState) DrainPresses() []string {
	if len(in.presses) == 0 {
		return nil
	}
	out := in.presses
	in.presses = nil
	return out
}

// Reset releases every key and drops queued presses.
func (in *InputState) Reset() {
	clear(in.pressed)
	in.presses = nil
}
