package options

import (
	"fmt"
	"strings"
)

// HostAPI identifies an audio host backend. Only the hosts the original
// device selection supports are recognized.
type HostAPI int

const (
	HostASIO HostAPI = iota
	HostWASAPI
)

func (h HostAPI) String() string {
	switch h {
	case HostASIO:
		return "asio"
	case HostWASAPI:
		return "wasapi"
	}
	return fmt.Sprintf("HostAPI(%d)", int(h))
}

// ParseHostAPI parses a host string from the config file,
// case-insensitively.
func ParseHostAPI(s string) (HostAPI, error) {
	switch strings.ToLower(s) {
	case "asio":
		return HostASIO, nil
	case "wasapi":
		return HostWASAPI, nil
	}
	return 0, fmt.Errorf("unrecognized audio host %q", s)
}

// SampleFormat is the wire format of samples delivered to the output
// device.
type SampleFormat int

const (
	FormatI8 SampleFormat = iota
	FormatI16
	FormatI32
	FormatI64
	FormatU8
	FormatU16
	FormatU32
	FormatU64
	FormatF32
	FormatF64
)

var formatNames = [...]string{
	FormatI8:  "i8",
	FormatI16: "i16",
	FormatI32: "i32",
	FormatI64: "i64",
	FormatU8:  "u8",
	FormatU16: "u16",
	FormatU32: "u32",
	FormatU64: "u64",
	FormatF32: "f32",
	FormatF64: "f64",
}

func (f SampleFormat) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

// ParseSampleFormat parses a sample format string from the config file,
// case-insensitively.
func ParseSampleFormat(s string) (SampleFormat, error) {
	want := strings.ToLower(s)
	for f, name := range formatNames {
		if name == want {
			return SampleFormat(f), nil
		}
	}
	return 0, fmt.Errorf("unrecognized sample format %q", s)
}
