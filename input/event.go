// Package input provides a global hook over keyboard and mouse button
// transitions. A Listener is a producer device: Start returns a channel
// of events in hardware delivery order, Stop tears the hook down, and
// Err reports why delivery ended after the channel closes.
package input

import "fmt"

// Key identifies a physical key or button. It is opaque to consumers and
// only used as a map key.
type Key uint16

// Kind is the closed set of transition kinds the dispatcher reacts to.
type Kind int

const (
	// KeyPress is a keyboard key going down, including kernel
	// auto-repeats of a held key.
	KeyPress Kind = iota
	// KeyRelease is a keyboard key coming up.
	KeyRelease
	// ButtonPress is a mouse button going down.
	ButtonPress
	// ButtonRelease is a mouse button coming up.
	ButtonRelease
	// Other covers key-like events outside the four tracked categories
	// (touchpad tool switches, joystick buttons). Dispatch ignores them.
	Other
)

func (k Kind) String() string {
	switch k {
	case KeyPress:
		return "key-press"
	case KeyRelease:
		return "key-release"
	case ButtonPress:
		return "button-press"
	case ButtonRelease:
		return "button-release"
	case Other:
		return "other"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is one hardware transition.
type Event struct {
	Kind Kind
	Key  Key
}
