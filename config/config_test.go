// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParse_EmptyInputKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	def := Default()
	if *cfg != *def {
		t.Errorf("empty input produced %+v, want defaults %+v", cfg, def)
	}
}

func TestParse_OverridesMergeWithDefaults(t *testing.T) {
	t.Parallel()

	const doc = `
stream:
  sample_rate: 48000
  quantum_frames: 256
guard:
  enabled: false
logging:
  level: debug
  json: true
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Stream.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.Stream.SampleRate)
	}
	if cfg.Stream.QuantumFrames != 256 {
		t.Errorf("QuantumFrames = %d, want 256", cfg.Stream.QuantumFrames)
	}
	// Untouched keys keep their defaults.
	if cfg.Stream.Channels != Default().Stream.Channels {
		t.Errorf("Channels = %d, want default %d", cfg.Stream.Channels, Default().Stream.Channels)
	}
	if cfg.Guard.Enabled {
		t.Error("Guard.Enabled = true, want false")
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.JSON {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
}

func TestParse_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "stream:\n  sample_rte: 48000\n"},
		{"zero sample rate", "stream:\n  sample_rate: 0\n"},
		{"capacity not multiple of quantum", "stream:\n  capacity_frames: 1000\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"guard window zero", "guard:\n  sample_frame_count: 0\n"},
		{"malformed yaml", "stream: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Error("Parse accepted invalid input")
			}
		})
	}
}

func TestConfig_PlayerDerivesGuardCadence(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Stream.SampleRate = 44100
	cfg.Stream.QuantumFrames = 128

	pc := cfg.Player(nil)
	if pc.Guard == nil {
		t.Fatal("Guard not set despite guard.enabled")
	}

	// 128 frames at 44.1 kHz is about 2.9 ms per callback.
	got := pc.Guard.IdealFrameDurationMs
	if got < 2.9 || got > 2.91 {
		t.Errorf("IdealFrameDurationMs = %v, want ~2.902", got)
	}
}

func TestConfig_PlayerHonorsExplicitCadence(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Guard.IdealFrameDurationMs = 10

	pc := cfg.Player(nil)
	if pc.Guard == nil || pc.Guard.IdealFrameDurationMs != 10 {
		t.Errorf("Guard = %+v, want explicit 10 ms cadence", pc.Guard)
	}
}

func TestConfig_PlayerOmitsGuardWhenDisabled(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Guard.Enabled = false

	if pc := cfg.Player(nil); pc.Guard != nil {
		t.Errorf("Guard = %+v, want nil", pc.Guard)
	}
}

func TestConfig_Logger(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logging.Level = "debug"
	cfg.Logging.JSON = true

	log := cfg.Logger()
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSONFormatter", log.Formatter)
	}
}

func TestValidate_BadValueSentinel(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Stream.Channels = 0

	if err := cfg.Validate(); !errors.Is(err, ErrBadValue) {
		t.Errorf("Validate = %v, want ErrBadValue", err)
	}
}
