// Package engine decides whether a hardware transition makes a sound.
// It tracks per-key pressed state to suppress kernel auto-repeat, picks
// a random sample from the matching pool, and hands it to the output
// sink without ever blocking on playback.
package engine

import (
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/thockd/thock/audio"
	"github.com/thockd/thock/input"
)

// Sink accepts non-blocking play requests. It must be safe to call from
// the dispatch goroutine without extra synchronization.
type Sink interface {
	Play(*audio.Sample) error
}

// Engine dispatches hardware events to the sink. One mutex serializes
// the whole of each dispatch (state lookup, mutation, sample draw, play
// request), so events for the same key can never interleave and the
// order of triggers matches the order of events.
type Engine struct {
	mu   sync.Mutex
	keys map[input.Key]bool // key -> currently held; absent means never seen
	lib  *audio.Library
	sink Sink
	rng  *rand.Rand
}

// New builds an engine over a fully loaded sample library. Every pool
// must be non-empty; dispatch assumes it can always draw a sample.
func New(lib *audio.Library, sink Sink, rng *rand.Rand) (*Engine, error) {
	for _, p := range []struct {
		name string
		pool []*audio.Sample
	}{
		{"keydown", lib.KeyDown},
		{"keyup", lib.KeyUp},
		{"mousedown", lib.MouseDown},
		{"mouseup", lib.MouseUp},
	} {
		if len(p.pool) == 0 {
			return nil, fmt.Errorf("empty %s sample pool", p.name)
		}
	}
	return &Engine{
		keys: make(map[input.Key]bool),
		lib:  lib,
		sink: sink,
		rng:  rng,
	}, nil
}

// HandleEvent dispatches one event. Per event there is at most one state
// mutation and at most one play request.
//
// Key events only trigger on an edge: a press while the key is already
// held is a kernel auto-repeat and stays silent, as does a release of a
// key that is already up. The first event ever seen for a key always
// triggers. Mouse buttons have no auto-repeat, so they trigger
// unconditionally and are not tracked.
func (e *Engine) HandleEvent(ev input.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev.Kind {
	case input.KeyPress:
		held, seen := e.keys[ev.Key]
		if !seen || !held {
			e.keys[ev.Key] = true
			e.play(e.lib.KeyDown)
		}
	case input.KeyRelease:
		held, seen := e.keys[ev.Key]
		if !seen || held {
			e.keys[ev.Key] = false
			e.play(e.lib.KeyUp)
		}
	case input.ButtonPress:
		e.play(e.lib.MouseDown)
	case input.ButtonRelease:
		e.play(e.lib.MouseUp)
	case input.Other:
		// No side effects.
	}
}

// play draws uniformly with replacement and issues the play request. A
// failed request is a fault of that one playback, not of the engine:
// log it and keep dispatching.
func (e *Engine) play(pool []*audio.Sample) {
	s := pool[e.rng.Intn(len(pool))]
	if err := e.sink.Play(s); err != nil {
		log.Printf("Playback failed for %s: %v", s.Name, err)
	}
}

// Run dispatches events until the channel closes.
func (e *Engine) Run(events <-chan input.Event) {
	for ev := range events {
		e.HandleEvent(ev)
	}
}
