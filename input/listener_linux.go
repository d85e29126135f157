//go:build linux

package input

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// Listener reads key and button events from every evdev keyboard and
// mouse it can open, fanning them into a single channel. One goroutine
// per device; the channel preserves arrival order and never drops.
type Listener struct {
	devices []*evdev.InputDevice
	events  chan Event
	wg      sync.WaitGroup

	mu      sync.Mutex
	err     error
	closing bool
}

// NewListener enumerates /dev/input and opens every device that looks
// like a keyboard or a mouse. Devices that cannot be opened (typically a
// permission problem) are skipped; finding none at all is an error.
func NewListener() (*Listener, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var devices []*evdev.InputDevice
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		if isKeyboard(dev) || isMouse(dev) {
			devices = append(devices, dev)
		} else {
			dev.Close()
		}
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no keyboard or mouse devices found under /dev/input (missing permissions on the input group?)")
	}
	return &Listener{devices: devices}, nil
}

// isKeyboard reports whether the device carries the key capabilities a
// physical keyboard has.
func isKeyboard(dev *evdev.InputDevice) bool {
	hasA, hasEnter := false, false
	for _, c := range dev.CapableEvents(evdev.EV_KEY) {
		if c == evdev.KEY_A {
			hasA = true
		}
		if c == evdev.KEY_ENTER {
			hasEnter = true
		}
	}
	return hasA && hasEnter
}

func isMouse(dev *evdev.InputDevice) bool {
	for _, c := range dev.CapableEvents(evdev.EV_KEY) {
		if c == evdev.BTN_LEFT {
			return true
		}
	}
	return false
}

// Start begins delivery. The returned channel closes once every device
// reader has stopped; call Err afterwards for the reason.
func (l *Listener) Start() (<-chan Event, error) {
	if l.events != nil {
		return nil, fmt.Errorf("listener already started")
	}
	l.events = make(chan Event, 64)

	for _, dev := range l.devices {
		l.wg.Add(1)
		go l.readDevice(dev)
	}
	go func() {
		l.wg.Wait()
		close(l.events)
	}()
	return l.events, nil
}

func (l *Listener) readDevice(dev *evdev.InputDevice) {
	defer l.wg.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			l.mu.Lock()
			if !l.closing && l.err == nil {
				l.err = fmt.Errorf("read input device: %w", err)
			}
			l.mu.Unlock()
			return
		}
		if e, ok := classify(ev); ok {
			// Blocking send: events must arrive at the dispatcher in
			// order with none dropped, so backpressure beats shedding.
			l.events <- e
		}
	}
}

// classify maps a raw evdev event onto a transition. Non-key events
// (motion, wheel, sync) are discarded here rather than forwarded; they
// are far too chatty to push through the dispatch lock. Kernel
// auto-repeat (value 2) is delivered as a press so that repeat
// suppression stays the dispatcher's decision.
func classify(ev *evdev.InputEvent) (Event, bool) {
	if ev.Type != evdev.EV_KEY {
		return Event{}, false
	}

	key := Key(ev.Code)
	press := ev.Value != 0

	switch {
	case ev.Code >= evdev.BTN_MOUSE && ev.Code < evdev.BTN_JOYSTICK:
		if press {
			return Event{Kind: ButtonPress, Key: key}, true
		}
		return Event{Kind: ButtonRelease, Key: key}, true
	case ev.Code >= evdev.BTN_MISC && ev.Code < evdev.KEY_OK:
		// Key-like codes that are neither keyboard keys nor mouse
		// buttons: digitizer tools, joystick and wheel buttons.
		return Event{Kind: Other, Key: key}, true
	default:
		if press {
			return Event{Kind: KeyPress, Key: key}, true
		}
		return Event{Kind: KeyRelease, Key: key}, true
	}
}

// Stop closes all devices, which unblocks the readers and closes the
// event channel. A stopped listener reports no terminal error.
func (l *Listener) Stop() error {
	l.mu.Lock()
	if l.closing {
		l.mu.Unlock()
		return nil
	}
	l.closing = true
	l.mu.Unlock()

	for _, dev := range l.devices {
		dev.Close()
	}
	return nil
}

// Err returns the terminal delivery error, if any. Only meaningful after
// the event channel has closed.
func (l *Listener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closing {
		return nil
	}
	return l.err
}
