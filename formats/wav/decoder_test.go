// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"io"
	"testing"
)

// fixture renders interleaved samples into an in-memory WAV file.
func fixture(t *testing.T, sampleRate, channels int, samples []int16) *bytes.Reader {
	t.Helper()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, sampleRate, channels, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestDecoder_DecodeRoundTrip(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200, 300, -300, 400, -400}
	eng, err := (Decoder{}).Decode(fixture(t, 44100, 2, samples))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer eng.Close()

	if eng.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", eng.SampleRate())
	}
	if eng.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", eng.Channels())
	}

	got := make([]int16, 0, len(samples))
	dst := make([]int16, 4)
	for {
		n, err := eng.Render(dst)
		got = append(got, dst[:n*2]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	if len(got) != len(samples) {
		t.Fatalf("rendered %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestDecoder_ReportsTotalFrames(t *testing.T) {
	t.Parallel()

	// The frame count must come from the PCM data alone; the 36 bytes of
	// RIFF/fmt headers must not leak into it at any frame count.
	tests := []struct {
		name     string
		channels int
		frames   int
	}{
		{"one second stereo", 2, 44100},
		{"three frames stereo", 2, 3},
		{"five frames mono", 1, 5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := make([]int16, tt.frames*tt.channels)
			eng, err := (Decoder{}).Decode(fixture(t, 44100, tt.channels, samples))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer eng.Close()

			sized, ok := eng.(interface{ TotalFrames() int64 })
			if !ok {
				t.Fatal("wav engine does not report TotalFrames")
			}
			if got := sized.TotalFrames(); got != int64(tt.frames) {
				t.Errorf("TotalFrames() = %d, want %d", got, tt.frames)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	samples := []int16{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 2, samples); err != nil {
		t.Fatal(err)
	}

	// bytes.Buffer is not an io.ReadSeeker, forcing the in-memory fallback.
	eng, err := (Decoder{}).Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() from non-seekable reader error = %v", err)
	}
	defer eng.Close()

	dst := make([]int16, 4)
	n, _ := eng.Render(dst)
	if n != 2 {
		t.Fatalf("Render() = %d frames, want 2", n)
	}
	for i, want := range samples {
		if dst[i] != want {
			t.Errorf("sample %d = %d, want %d", i, dst[i], want)
		}
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := (Decoder{}).Decode(bytes.NewReader([]byte("RIFFnope")))
	if err == nil {
		t.Error("Decode() accepted garbage input")
	}
}

func TestWriteWAV16_Validation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if err := WriteWAV16(&buf, 8000, 0, nil); err != ErrUnsupportedWavLayout {
		t.Errorf("WriteWAV16() with zero channels error = %v, want ErrUnsupportedWavLayout", err)
	}
	if err := WriteWAV16(&buf, 8000, 2, make([]int16, 3)); err != ErrPartialFrame {
		t.Errorf("WriteWAV16() with partial frame error = %v, want ErrPartialFrame", err)
	}
}

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, []int16{0, 0}); err != nil {
		t.Fatal(err)
	}

	b := buf.Bytes()
	if len(b) != 48 {
		t.Fatalf("output length = %d, want 48", len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE magic")
	}
	if string(b[36:40]) != "data" {
		t.Error("missing data chunk header")
	}
}
