// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audstream/engine"
	"github.com/ik5/audstream/utils"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// TotalFrames reports the decoded stream length, or -1 when go-mp3 cannot
// determine it (non-seekable input).
func (s *source) TotalFrames() int64 {
	// go-mp3 reports decoded bytes: 2 bytes per sample, stereo interleaved.
	l := s.dec.Length()
	if l <= 0 {
		return -1
	}
	return l / int64(2*s.channels)
}

func (s *source) Render(dst []int16) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, engine.ErrInvalidDstSize
	}

	// go-mp3 returns 16-bit little-endian PCM bytes (stereo interleaved),
	// always a whole number of frames per read.
	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := utils.Int16FromLE(dst, s.buf[:n])
	return samples / s.channels, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (engine.Engine, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// go-mp3 always outputs stereo interleaved frames
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		buf:        make([]byte, 8192),
	}, nil
}
