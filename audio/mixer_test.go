package audio

import (
	"fmt"
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clipOf(t *testing.T, left, right float64, frames int) *Sample {
	t.Helper()
	buffer := beep.NewBuffer(testFormat)
	buffer.Append(&tone{left: left, right: right, remaining: frames})
	return &Sample{Name: fmt.Sprintf("clip-%g", left), buffer: buffer}
}

func TestPlayRendersThenDrains(t *testing.T) {
	k := &Sink{channels: 2}
	require.NoError(t, k.Play(clipOf(t, 0.5, 0.5, 64)))

	out := make([]float32, 64*2)
	k.fillF32(out)
	assert.InDelta(t, 0.5, out[0], 0.01)
	assert.InDelta(t, 0.5, out[len(out)-1], 0.01)

	// The clip is exhausted; the next buffer is silence.
	k.fillF32(out)
	for _, v := range out {
		assert.Zero(t, v)
	}
}

func TestConcurrentVoicesAreSummed(t *testing.T) {
	k := &Sink{channels: 2}
	require.NoError(t, k.Play(clipOf(t, 0.25, 0.25, 16)))
	require.NoError(t, k.Play(clipOf(t, 0.25, 0.25, 16)))

	out := make([]float32, 16*2)
	k.fillF32(out)
	assert.InDelta(t, 0.5, out[0], 0.01)
}

func TestPlayingSameSampleTwiceDoesNotCorruptIt(t *testing.T) {
	k := &Sink{channels: 2}
	s := clipOf(t, 0.25, 0.25, 16)
	require.NoError(t, k.Play(s))
	require.NoError(t, k.Play(s))

	out := make([]float32, 16*2)
	k.fillF32(out)
	assert.InDelta(t, 0.5, out[0], 0.01)
	assert.Equal(t, 16, s.Len())
}

func TestMonoOutputTakesMidSignal(t *testing.T) {
	k := &Sink{channels: 1}
	require.NoError(t, k.Play(clipOf(t, 1.0, 0.0, 8)))

	out := make([]float32, 8)
	k.fillF32(out)
	assert.InDelta(t, 0.5, out[0], 0.01)
}

func TestIntegerConversionsClamp(t *testing.T) {
	// Two full-scale voices sum to 2.0, which must clamp at full scale.
	makeSink := func(channels int) *Sink {
		k := &Sink{channels: channels}
		require.NoError(t, k.Play(clipOf(t, 1.0, 1.0, 8)))
		require.NoError(t, k.Play(clipOf(t, 1.0, 1.0, 8)))
		return k
	}

	i16 := make([]int16, 16)
	makeSink(2).fillI16(i16)
	assert.EqualValues(t, math.MaxInt16, i16[0])

	i32 := make([]int32, 16)
	makeSink(2).fillI32(i32)
	assert.EqualValues(t, math.MaxInt32, i32[0])

	i8 := make([]int8, 16)
	makeSink(2).fillI8(i8)
	assert.EqualValues(t, math.MaxInt8, i8[0])

	u8 := make([]uint8, 16)
	makeSink(2).fillU8(u8)
	assert.EqualValues(t, math.MaxUint8, u8[0])
}

func TestUnsignedConversionCentersSilence(t *testing.T) {
	k := &Sink{channels: 2}
	u8 := make([]uint8, 16)
	k.fillU8(u8)
	assert.EqualValues(t, math.MaxUint8/2, u8[0])
}

func TestPlayLimitsConcurrentVoices(t *testing.T) {
	k := &Sink{channels: 2}
	s := clipOf(t, 0.1, 0.1, 4)
	for i := 0; i < maxVoices; i++ {
		require.NoError(t, k.Play(s))
	}
	err := k.Play(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already playing")

	// Draining the mixer frees the voices again.
	out := make([]float32, 4*2)
	k.fillF32(out)
	k.fillF32(out)
	assert.NoError(t, k.Play(s))
}

func TestPlayAfterCloseFails(t *testing.T) {
	k := &Sink{channels: 2, closed: true}
	err := k.Play(clipOf(t, 0.5, 0.5, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestCloseIsIdempotent(t *testing.T) {
	// A sink that is already closed must not touch the stream or
	// portaudio again; callers may close explicitly on the error path
	// on top of a deferred Close.
	k := &Sink{channels: 2, closed: true}
	assert.NoError(t, k.Close())
	assert.NoError(t, k.Close())
}
