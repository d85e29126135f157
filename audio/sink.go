package audio

// Playback goes through portaudio.
// macos:	brew install portaudio
// debian:	sudo apt-get install portaudio19-dev
// windows:	pacman -S mingw-w64-x86_64-portaudio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gordonklaus/portaudio"

	"github.com/thockd/thock/options"
)

// Sink is the single output handle for the process. It owns a portaudio
// output stream and a mixer of in-flight playback cursors; the stream
// callback drains the mixer into the device buffer. All playback shares
// this one stream.
type Sink struct {
	mu      sync.Mutex
	mixer   beep.Mixer
	closed  bool
	scratch [][2]float64

	stream   *portaudio.Stream
	channels int
}

// OpenDefault opens a sink on the default host's default output device
// with high-latency parameters, stereo, float32 samples.
func OpenDefault() (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	host, err := portaudio.DefaultHostApi()
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("default host api: %w", err)
	}
	dev := host.DefaultOutputDevice
	if dev == nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("host %s has no default output device", host.Name)
	}

	params := portaudio.HighLatencyParameters(nil, dev)
	if params.Output.Channels > 2 {
		params.Output.Channels = 2
	}

	k, err := newSink(params, options.FormatF32)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	return k, nil
}

// Open opens a sink on an explicitly configured device. The host must be
// available, the device name must match one of the host's output devices
// exactly, and the sample format must be one the backend can deliver.
func Open(cfg *options.StreamConfig) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}

	dev, err := findOutputDevice(cfg.Host, cfg.DeviceName)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	params := portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: cfg.NumChannels,
			Latency:  dev.DefaultHighOutputLatency,
		},
		SampleRate:      float64(cfg.SampleRate),
		FramesPerBuffer: cfg.BufferSize,
	}

	k, err := newSink(params, cfg.Format)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	return k, nil
}

// newSink opens and starts the output stream. The stream's buffer type,
// and with it the sample format on the wire, is fixed by the callback
// signature, so each supported format gets its own callback.
func newSink(params portaudio.StreamParameters, format options.SampleFormat) (*Sink, error) {
	k := &Sink{channels: params.Output.Channels}

	var callback interface{}
	switch format {
	case options.FormatF32:
		callback = func(out []float32) { k.fillF32(out) }
	case options.FormatI32:
		callback = func(out []int32) { k.fillI32(out) }
	case options.FormatI16:
		callback = func(out []int16) { k.fillI16(out) }
	case options.FormatI8:
		callback = func(out []int8) { k.fillI8(out) }
	case options.FormatU8:
		callback = func(out []uint8) { k.fillU8(out) }
	default:
		return nil, fmt.Errorf("sample format %s is not supported by the output backend", format)
	}

	stream, err := portaudio.OpenStream(params, callback)
	if err != nil {
		return nil, fmt.Errorf("open output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("start output stream: %w", err)
	}
	k.stream = stream
	return k, nil
}

// Close stops the stream and tears down portaudio. Play calls after
// Close fail; in-flight playback is cut off.
func (k *Sink) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	k.mu.Unlock()

	if k.stream != nil {
		if err := k.stream.Stop(); err != nil {
			k.stream.Close()
			portaudio.Terminate()
			return fmt.Errorf("stop output stream: %w", err)
		}
		if err := k.stream.Close(); err != nil {
			portaudio.Terminate()
			return fmt.Errorf("close output stream: %w", err)
		}
	}
	return portaudio.Terminate()
}
