package audio

import (
	"fmt"
	"math"
)

// maxVoices bounds the number of clips playing at once. Beyond this the
// summed signal is clipping noise anyway, and an unbounded mixer would
// grow without limit if the device stalls.
const maxVoices = 64

// Play enqueues one playback of the sample and returns immediately. The
// clip is rendered by the device callback; Play never waits for it.
// It is safe to call from any goroutine.
func (k *Sink) Play(s *Sample) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return fmt.Errorf("output sink is closed")
	}
	if k.mixer.Len() >= maxVoices {
		return fmt.Errorf("dropping %s: %d clips already playing", s.Name, k.mixer.Len())
	}
	k.mixer.Add(s.Cursor())
	return nil
}

// mix renders the next batch of frames from the mixer into the scratch
// buffer. The scratch buffer is only ever touched by the device callback
// goroutine; the lock protects the mixer itself against concurrent Play
// calls.
func (k *Sink) mix(frames int) [][2]float64 {
	if cap(k.scratch) < frames {
		k.scratch = make([][2]float64, frames)
	}
	buf := k.scratch[:frames]
	for i := range buf {
		buf[i] = [2]float64{}
	}

	k.mu.Lock()
	k.mixer.Stream(buf)
	k.mu.Unlock()
	return buf
}

// channelSample maps a stereo frame onto output channel c. A mono output
// gets the mid signal; wider outputs repeat the stereo pair.
func (k *Sink) channelSample(frame [2]float64, c int) float64 {
	if k.channels == 1 {
		return (frame[0] + frame[1]) / 2
	}
	return frame[c%2]
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func (k *Sink) fillF32(out []float32) {
	buf := k.mix(len(out) / k.channels)
	idx := 0
	for _, frame := range buf {
		for c := 0; c < k.channels; c++ {
			out[idx] = float32(clamp(k.channelSample(frame, c)))
			idx++
		}
	}
}

func (k *Sink) fillI32(out []int32) {
	buf := k.mix(len(out) / k.channels)
	idx := 0
	for _, frame := range buf {
		for c := 0; c < k.channels; c++ {
			out[idx] = int32(clamp(k.channelSample(frame, c)) * math.MaxInt32)
			idx++
		}
	}
}

func (k *Sink) fillI16(out []int16) {
	buf := k.mix(len(out) / k.channels)
	idx := 0
	for _, frame := range buf {
		for c := 0; c < k.channels; c++ {
			out[idx] = int16(clamp(k.channelSample(frame, c)) * math.MaxInt16)
			idx++
		}
	}
}

func (k *Sink) fillI8(out []int8) {
	buf := k.mix(len(out) / k.channels)
	idx := 0
	for _, frame := range buf {
		for c := 0; c < k.channels; c++ {
			out[idx] = int8(clamp(k.channelSample(frame, c)) * math.MaxInt8)
			idx++
		}
	}
}

func (k *Sink) fillU8(out []uint8) {
	buf := k.mix(len(out) / k.channels)
	idx := 0
	for _, frame := range buf {
		for c := 0; c < k.channels; c++ {
			out[idx] = uint8((clamp(k.channelSample(frame, c)) + 1) / 2 * math.MaxUint8)
			idx++
		}
	}
}
