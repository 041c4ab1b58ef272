// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audstream/engine"
	"github.com/ik5/audstream/utils"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	Length() int64
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	floatBuf   []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// TotalFrames reports the stream length in frames, or -1 when the input is
// not seekable and oggvorbis cannot determine it.
func (s *source) TotalFrames() int64 {
	l := s.dec.Length()
	if l <= 0 {
		return -1
	}
	return l
}

func (s *source) Render(dst []int16) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, engine.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.floatBuf) < len(dst) {
		s.floatBuf = make([]float32, len(dst))
	}
	s.floatBuf = s.floatBuf[:len(dst)]

	// oggvorbis returns the number of float32 values read, always a
	// multiple of the channel count.
	n, err := s.dec.Read(s.floatBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	for i := 0; i < n; i++ {
		dst[i] = utils.Float32ToInt16(s.floatBuf[i])
	}

	return n / s.channels, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (engine.Engine, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		floatBuf:   make([]float32, 4096),
	}, nil
}
