// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audstream/player"
	"github.com/ik5/audstream/schedule"
)

type Config struct {
	Stream  StreamConfig  `yaml:"stream"`
	Guard   GuardConfig   `yaml:"guard"`
	Logging LoggingConfig `yaml:"logging"`
}

type StreamConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`

	CapacityFrames int `yaml:"capacity_frames"`
	PrerollFrames  int `yaml:"preroll_frames"`
	BurstFrames    int `yaml:"burst_frames"`
	QuantumFrames  int `yaml:"quantum_frames"`

	LoadTimeoutMs      int `yaml:"load_timeout_ms"`
	ProgressIntervalMs int `yaml:"progress_interval_ms"`
}

type GuardConfig struct {
	Enabled          bool `yaml:"enabled"`
	SampleFrameCount int  `yaml:"sample_frame_count"`
	// WarningBudgetMs is the allowed average overshoot per callback window.
	WarningBudgetMs float64 `yaml:"warning_budget_ms"`
	// IdealFrameDurationMs overrides the cadence derived from
	// quantum_frames / sample_rate when non-zero.
	IdealFrameDurationMs float64 `yaml:"ideal_frame_duration_ms"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration: 44.1 kHz stereo, guard enabled
// with a 2 ms budget, warn-level text logging.
func Default() *Config {
	return &Config{
		Stream: StreamConfig{
			SampleRate:         player.DefaultSampleRate,
			Channels:           player.DefaultChannels,
			CapacityFrames:     player.DefaultCapacityFrames,
			PrerollFrames:      player.DefaultPrerollFrames,
			BurstFrames:        player.DefaultBurstFrames,
			QuantumFrames:      player.DefaultQuantumFrames,
			LoadTimeoutMs:      int(player.DefaultLoadTimeout / time.Millisecond),
			ProgressIntervalMs: int(player.DefaultProgressInterval / time.Millisecond),
		},
		Guard: GuardConfig{
			Enabled:          true,
			SampleFrameCount: 32,
			WarningBudgetMs:  2,
		},
		Logging: LoggingConfig{
			Level: "warning",
		},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads YAML on top of the defaults, rejecting unknown keys.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Stream.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate %d", ErrBadValue, c.Stream.SampleRate)
	}
	if c.Stream.Channels <= 0 {
		return fmt.Errorf("%w: channels %d", ErrBadValue, c.Stream.Channels)
	}
	if c.Stream.QuantumFrames <= 0 {
		return fmt.Errorf("%w: quantum_frames %d", ErrBadValue, c.Stream.QuantumFrames)
	}
	if c.Stream.CapacityFrames%c.Stream.QuantumFrames != 0 {
		return fmt.Errorf("%w: capacity_frames %d is not a multiple of quantum_frames %d",
			ErrBadValue, c.Stream.CapacityFrames, c.Stream.QuantumFrames)
	}
	if c.Guard.Enabled && c.Guard.SampleFrameCount <= 0 {
		return fmt.Errorf("%w: guard sample_frame_count %d", ErrBadValue, c.Guard.SampleFrameCount)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging level %q", ErrBadValue, c.Logging.Level)
	}
	return nil
}

// Player converts the file representation into a player configuration,
// deriving the guard's ideal callback cadence from the quantum when it is
// not set explicitly.
func (c *Config) Player(log logrus.FieldLogger) player.Config {
	pc := player.Config{
		SampleRate:       c.Stream.SampleRate,
		Channels:         c.Stream.Channels,
		CapacityFrames:   c.Stream.CapacityFrames,
		PrerollFrames:    c.Stream.PrerollFrames,
		BurstFrames:      c.Stream.BurstFrames,
		QuantumFrames:    c.Stream.QuantumFrames,
		LoadTimeout:      time.Duration(c.Stream.LoadTimeoutMs) * time.Millisecond,
		ProgressInterval: time.Duration(c.Stream.ProgressIntervalMs) * time.Millisecond,
		Logger:           log,
	}

	if c.Guard.Enabled {
		ideal := c.Guard.IdealFrameDurationMs
		if ideal <= 0 {
			ideal = float64(c.Stream.QuantumFrames) / float64(c.Stream.SampleRate) * 1000
		}
		pc.Guard = &schedule.Config{
			SampleFrameCount:     c.Guard.SampleFrameCount,
			WarningBudgetMs:      c.Guard.WarningBudgetMs,
			IdealFrameDurationMs: ideal,
		}
	}

	return pc
}

// Logger builds a logrus logger matching the logging section.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)

	if c.Logging.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}
