package audio

import (
	"fmt"
	"io"

	"github.com/gordonklaus/portaudio"

	"github.com/thockd/thock/options"
)

func hostType(h options.HostAPI) portaudio.HostApiType {
	switch h {
	case options.HostASIO:
		return portaudio.ASIO
	case options.HostWASAPI:
		return portaudio.WASAPI
	}
	return portaudio.InDevelopment
}

func findHost(api options.HostAPI) (*portaudio.HostApiInfo, error) {
	hosts, err := portaudio.HostApis()
	if err != nil {
		return nil, fmt.Errorf("enumerate host apis: %w", err)
	}
	want := hostType(api)
	for _, h := range hosts {
		if h.Type == want {
			return h, nil
		}
	}
	return nil, fmt.Errorf("audio host %s is not available", api)
}

func findOutputDevice(api options.HostAPI, name string) (*portaudio.DeviceInfo, error) {
	host, err := findHost(api)
	if err != nil {
		return nil, err
	}
	for _, dev := range host.Devices {
		if dev.MaxOutputChannels > 0 && dev.Name == name {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("output device %q not found on host %s", name, api)
}

// ListDevices writes every host api and its output devices to w. Explicit
// device configuration matches on the exact names printed here.
func ListDevices(w io.Writer) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	hosts, err := portaudio.HostApis()
	if err != nil {
		return fmt.Errorf("enumerate host apis: %w", err)
	}
	for _, h := range hosts {
		fmt.Fprintf(w, "%s:\n", h.Name)
		for _, dev := range h.Devices {
			if dev.MaxOutputChannels == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s (channels: %d, default rate: %g Hz)\n",
				dev.Name, dev.MaxOutputChannels, dev.DefaultSampleRate)
		}
	}
	return nil
}
