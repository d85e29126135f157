package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// Sample is one immutable, pre-decoded clip. The underlying buffer is
// shared between all playbacks of the clip; Cursor hands out an
// independent streamer over it, so the same clip can play concurrently
// without mutating the source.
type Sample struct {
	Name   string
	Format beep.Format
	buffer *beep.Buffer
}

// Cursor returns a fresh playback position at the start of the clip.
func (s *Sample) Cursor() beep.StreamSeeker {
	return s.buffer.Streamer(0, s.buffer.Len())
}

// Len returns the clip length in frames.
func (s *Sample) Len() int {
	return s.buffer.Len()
}

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	},
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return mp3.Decode(f)
	},
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(f)
	},
	".ogg": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return vorbis.Decode(f)
	},
}

// Library holds the four sample pools, one per trigger category. It is
// built once at startup and read-only afterwards.
type Library struct {
	KeyDown   []*Sample
	KeyUp     []*Sample
	MouseDown []*Sample
	MouseUp   []*Sample
}

// LoadLibrary loads the four sample pools from the keydown, keyup,
// mousedown and mouseup subdirectories of root. A category with no
// decodable files is an error; a half-loaded library has no valid use.
func LoadLibrary(root string) (*Library, error) {
	lib := &Library{}
	for _, c := range []struct {
		name string
		pool *[]*Sample
	}{
		{"keydown", &lib.KeyDown},
		{"keyup", &lib.KeyUp},
		{"mousedown", &lib.MouseDown},
		{"mouseup", &lib.MouseUp},
	} {
		dir := filepath.Join(root, c.name)
		samples, err := loadDirectory(dir)
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			return nil, fmt.Errorf("no %s samples in %s", c.name, dir)
		}
		*c.pool = samples
	}
	return lib, nil
}

// loadDirectory decodes every audio file directly inside dir
// (non-recursive). Files without a known audio extension are ignored;
// files that fail to decode are skipped with a warning.
func loadDirectory(dir string) ([]*Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sample directory: %w", err)
	}

	var samples []*Sample
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		decode, ok := decoders[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		s, err := loadFile(path, decode)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func loadFile(path string, decode decodeFunc) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return &Sample{
		Name:   filepath.Base(path),
		Format: format,
		buffer: buffer,
	}, nil
}
