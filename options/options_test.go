package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.UseDefault)

	// The file must now exist and round-trip to the same record.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	assert.True(t, again.UseDefault)
	assert.Nil(t, again.Device.Host)
	assert.Nil(t, again.Device.DeviceName)
	assert.Nil(t, again.Device.NumChannels)
	assert.Nil(t, again.Device.SampleRate)
	assert.Nil(t, again.Device.BufferSize)
	assert.Nil(t, again.Device.Format)
}

func TestLoadRejectsUnparseableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadParsesExplicitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"use_default": false,
		"device_config": {
			"host": "WASAPI",
			"device_name": "Speakers",
			"num_channels": 2,
			"sample_rate": 48000,
			"buffer_size": 256,
			"format": "F32"
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	stream, err := cfg.Resolve()
	require.NoError(t, err)
	require.NotNil(t, stream)
	assert.Equal(t, HostWASAPI, stream.Host)
	assert.Equal(t, "Speakers", stream.DeviceName)
	assert.Equal(t, 2, stream.NumChannels)
	assert.Equal(t, 48000, stream.SampleRate)
	assert.Equal(t, 256, stream.BufferSize)
	assert.Equal(t, FormatF32, stream.Format)
}

func TestResolveDefaultNeedsNoDeviceFields(t *testing.T) {
	stream, err := Default().Resolve()
	require.NoError(t, err)
	assert.Nil(t, stream)
}

func explicit() *Config {
	host := "asio"
	name := "Speakers"
	channels := 2
	rate := 44100
	buffer := 512
	format := "i16"
	return &Config{
		UseDefault: false,
		Device: DeviceConfig{
			Host:        &host,
			DeviceName:  &name,
			NumChannels: &channels,
			SampleRate:  &rate,
			BufferSize:  &buffer,
			Format:      &format,
		},
	}
}

func TestResolveRequiresEveryDeviceField(t *testing.T) {
	for _, tc := range []struct {
		strip   func(*Config)
		wantErr string
	}{
		{func(c *Config) { c.Device.Host = nil }, "host not specified"},
		{func(c *Config) { c.Device.DeviceName = nil }, "device name not specified"},
		{func(c *Config) { c.Device.NumChannels = nil }, "channels not specified"},
		{func(c *Config) { c.Device.SampleRate = nil }, "sample rate not specified"},
		{func(c *Config) { c.Device.BufferSize = nil }, "buffer size not specified"},
		{func(c *Config) { c.Device.Format = nil }, "format not specified"},
	} {
		cfg := explicit()
		tc.strip(cfg)
		_, err := cfg.Resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), tc.wantErr)
	}
}

func TestResolveRejectsNonPositiveValues(t *testing.T) {
	cfg := explicit()
	*cfg.Device.NumChannels = 0
	_, err := cfg.Resolve()
	require.Error(t, err)

	cfg = explicit()
	*cfg.Device.SampleRate = -1
	_, err = cfg.Resolve()
	require.Error(t, err)

	cfg = explicit()
	*cfg.Device.BufferSize = 0
	_, err = cfg.Resolve()
	require.Error(t, err)
}

func TestParseHostAPI(t *testing.T) {
	for s, want := range map[string]HostAPI{
		"asio": HostASIO, "ASIO": HostASIO, "Asio": HostASIO,
		"wasapi": HostWASAPI, "WASAPI": HostWASAPI,
	} {
		got, err := ParseHostAPI(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseHostAPI("alsa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alsa")
}

func TestParseSampleFormat(t *testing.T) {
	for s, want := range map[string]SampleFormat{
		"i8": FormatI8, "i16": FormatI16, "i32": FormatI32, "i64": FormatI64,
		"u8": FormatU8, "u16": FormatU16, "u32": FormatU32, "u64": FormatU64,
		"f32": FormatF32, "f64": FormatF64,
		"F32": FormatF32, "I16": FormatI16,
	} {
		got, err := ParseSampleFormat(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseSampleFormat("s24le")
	require.Error(t, err)

	for f, name := range formatNames {
		assert.Equal(t, name, SampleFormat(f).String())
	}
}
