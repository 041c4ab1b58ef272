// SPDX-License-Identifier: EPL-2.0

package audstream

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audstream/engine"
	"github.com/ik5/audstream/formats/aiff"
	"github.com/ik5/audstream/formats/mp3"
	"github.com/ik5/audstream/formats/vorbis"
	"github.com/ik5/audstream/formats/wav"
)

// ErrUnsupportedFormat is returned by OpenFile for file extensions with no
// registered decoder.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DefaultRegistry returns a registry with every built-in format decoder
// registered under its usual file extensions.
func DefaultRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// OpenFile opens an audio file and decodes it with the decoder matching its
// extension. Closing the returned engine also closes the file.
func OpenFile(path string) (engine.Engine, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	dec, ok := DefaultRegistry().Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	eng, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return &fileEngine{Engine: eng, f: f}, nil
}

// fileEngine ties the lifetime of the backing file to the engine.
type fileEngine struct {
	engine.Engine
	f *os.File
}

func (e *fileEngine) Close() error {
	err := e.Engine.Close()
	if cerr := e.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// TotalFrames forwards the inner engine's length when it knows one.
func (e *fileEngine) TotalFrames() int64 {
	if s, ok := e.Engine.(engine.Sized); ok {
		return s.TotalFrames()
	}
	return -1
}
