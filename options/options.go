package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DeviceConfig describes an explicit audio output device. Every field is
// optional in the file; Resolve enforces which ones are required.
type DeviceConfig struct {
	Host        *string `json:"host"`
	DeviceName  *string `json:"device_name"`
	NumChannels *int    `json:"num_channels"`
	SampleRate  *int    `json:"sample_rate"`
	BufferSize  *int    `json:"buffer_size"`
	Format      *string `json:"format"`
}

// Config is the persisted configuration record.
type Config struct {
	UseDefault bool         `json:"use_default"`
	Device     DeviceConfig `json:"device_config"`
}

// Default returns the configuration written on first run: use the system
// default output device, all explicit device fields absent.
func Default() *Config {
	return &Config{UseDefault: true}
}

// Load reads the config file at path, or creates it with defaults if it
// does not exist. A file that exists but cannot be parsed is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode default config: %w", err)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return nil, fmt.Errorf("write default config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// StreamConfig is a fully resolved explicit device configuration.
type StreamConfig struct {
	Host        HostAPI
	DeviceName  string
	NumChannels int
	SampleRate  int
	BufferSize  int
	Format      SampleFormat
}

// Resolve validates the config and produces the resolved stream
// configuration. It returns nil when the system default device should be
// used. When an explicit device is requested, every device field must be
// present and well formed.
func (c *Config) Resolve() (*StreamConfig, error) {
	if c.UseDefault {
		return nil, nil
	}

	d := c.Device
	if d.Host == nil {
		return nil, fmt.Errorf("device host not specified")
	}
	host, err := ParseHostAPI(*d.Host)
	if err != nil {
		return nil, err
	}
	if d.DeviceName == nil {
		return nil, fmt.Errorf("device name not specified")
	}
	if d.NumChannels == nil {
		return nil, fmt.Errorf("number of channels not specified")
	}
	if *d.NumChannels <= 0 {
		return nil, fmt.Errorf("number of channels must be positive, got %d", *d.NumChannels)
	}
	if d.SampleRate == nil {
		return nil, fmt.Errorf("sample rate not specified")
	}
	if *d.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", *d.SampleRate)
	}
	if d.BufferSize == nil {
		return nil, fmt.Errorf("buffer size not specified")
	}
	if *d.BufferSize <= 0 {
		return nil, fmt.Errorf("buffer size must be positive, got %d", *d.BufferSize)
	}
	if d.Format == nil {
		return nil, fmt.Errorf("sample format not specified")
	}
	format, err := ParseSampleFormat(*d.Format)
	if err != nil {
		return nil, err
	}

	return &StreamConfig{
		Host:        host,
		DeviceName:  *d.DeviceName,
		NumChannels: *d.NumChannels,
		SampleRate:  *d.SampleRate,
		BufferSize:  *d.BufferSize,
		Format:      format,
	}, nil
}
