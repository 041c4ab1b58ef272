// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audstream/engine"
)

// fakeMP3 feeds canned little-endian PCM bytes through the mp3Reader seam.
type fakeMP3 struct {
	data       []byte
	pos        int
	sampleRate int
	length     int64
	readErr    error
}

func (f *fakeMP3) SampleRate() int { return f.sampleRate }
func (f *fakeMP3) Length() int64   { return f.length }

func (f *fakeMP3) Read(p []byte) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}

// pcmBytes encodes interleaved int16 values as little-endian bytes.
func pcmBytes(values ...int16) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		buf.WriteByte(byte(uint16(v)))
		buf.WriteByte(byte(uint16(v) >> 8))
	}
	return buf.Bytes()
}

func TestSource_RenderConvertsBytes(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeMP3{data: pcmBytes(100, -100, 200, -200), sampleRate: 44100},
		sampleRate: 44100,
		channels:   2,
		buf:        make([]byte, 16),
	}

	dst := make([]int16, 4)
	n, err := src.Render(dst)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n != 2 {
		t.Fatalf("Render() = %d frames, want 2", n)
	}

	want := []int16{100, -100, 200, -200}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestSource_RenderEOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeMP3{sampleRate: 44100},
		sampleRate: 44100,
		channels:   2,
	}

	n, err := src.Render(make([]int16, 8))
	if n != 0 || err != io.EOF {
		t.Errorf("Render() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_RenderRejectsUnalignedDst(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeMP3{sampleRate: 44100},
		sampleRate: 44100,
		channels:   2,
	}

	if _, err := src.Render(make([]int16, 3)); err != engine.ErrInvalidDstSize {
		t.Errorf("Render() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestSource_RenderPropagatesError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("corrupt stream")
	src := &source{
		dec:        &fakeMP3{readErr: readErr, sampleRate: 44100},
		sampleRate: 44100,
		channels:   2,
	}

	if _, err := src.Render(make([]int16, 4)); !errors.Is(err, readErr) {
		t.Errorf("Render() error = %v, want %v", err, readErr)
	}
}

func TestSource_TotalFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		length int64
		want   int64
	}{
		{"known length", 400, 100}, // 400 bytes / 4 bytes per stereo frame
		{"unknown length", 0, -1},
		{"negative length", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &source{
				dec:      &fakeMP3{length: tt.length},
				channels: 2,
			}
			if got := src.TotalFrames(); got != tt.want {
				t.Errorf("TotalFrames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("definitely not an mp3"))); err == nil {
		t.Error("Decode() accepted garbage input")
	}
}
