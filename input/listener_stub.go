//go:build !linux

package input

import (
	"fmt"
	"runtime"
)

// Listener is not available on this platform.
type Listener struct{}

func NewListener() (*Listener, error) {
	return nil, fmt.Errorf("global input hook is not supported on %s", runtime.GOOS)
}

func (l *Listener) Start() (<-chan Event, error) {
	return nil, fmt.Errorf("global input hook is not supported on %s", runtime.GOOS)
}

func (l *Listener) Stop() error { return nil }

func (l *Listener) Err() error { return nil }
