package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"hdxstems/internal/codec"
	"hdxstems/internal/logger"
	"hdxstems/pkg/audioengine"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Output
	SampleRate      int
	Buffer          time.Duration // speaker buffer
	ScheduleMargin  time.Duration // shared start lead time
	ResampleQuality int

	// Loading and analysis
	DecodeWorkers  int
	SummaryBuckets int
	KickThreshold  float64
	KickCutoffHz   float64
	KickWindow     int // ± samples
	KickSpacing    time.Duration

	// Control server
	Socket   string
	LogLevel logger.Level
}

// Load reads configuration from environment variables with sane defaults.
// Values that do not parse or are out of range keep the default.
func Load() Config {
	kick := codec.DefaultTransientConfig()
	level, err := logger.ParseLevel(envStr("HDX_STEMS_LOG_LEVEL", "info"))
	if err != nil {
		level = logger.LevelInfo
	}

	return Config{
		SampleRate:      envPositive("HDX_STEMS_SAMPLE_RATE", audioengine.SampleRate),
		Buffer:          time.Duration(envPositive("HDX_STEMS_BUFFER_MS", 20)) * time.Millisecond,
		ScheduleMargin:  time.Duration(envPositive("HDX_STEMS_SCHEDULE_MARGIN_MS", 10)) * time.Millisecond,
		ResampleQuality: envRange("HDX_STEMS_RESAMPLE_QUALITY", audioengine.ResampleQuality, 1, 6),

		DecodeWorkers:  envPositive("HDX_STEMS_DECODE_WORKERS", audioengine.DecodeWorkers),
		SummaryBuckets: envPositive("HDX_STEMS_SUMMARY_BUCKETS", 200),
		KickThreshold:  envFloatRange("HDX_STEMS_KICK_THRESHOLD", kick.Threshold, 0, 1),
		KickCutoffHz:   envFloatRange("HDX_STEMS_KICK_CUTOFF_HZ", kick.CutoffHz, 1, 20000),
		KickWindow:     envPositive("HDX_STEMS_KICK_WINDOW", kick.Window),
		KickSpacing:    time.Duration(envPositive("HDX_STEMS_KICK_SPACING_MS", int(kick.MinSpacing/time.Millisecond))) * time.Millisecond,

		Socket:   envStr("HDX_STEMS_SOCKET", "/tmp/hdx-stems.sock"),
		LogLevel: level,
	}
}

// Transient is the detector configuration.
func (c Config) Transient() codec.TransientConfig {
	return codec.TransientConfig{
		Threshold:  c.KickThreshold,
		CutoffHz:   c.KickCutoffHz,
		Window:     c.KickWindow,
		MinSpacing: c.KickSpacing,
	}
}

// EngineOptions maps the config onto audioengine.Options.
func (c Config) EngineOptions(log *logger.Logger) audioengine.Options {
	return audioengine.Options{
		SampleRate:      c.SampleRate,
		ScheduleMargin:  c.ScheduleMargin,
		ResampleQuality: c.ResampleQuality,
		DecodeWorkers:   c.DecodeWorkers,
		Transient:       c.Transient(),
		Logger:          log,
	}
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

func envPositive(key string, fallback int) int {
	if n := envInt(key, fallback); n > 0 {
		return n
	}
	return fallback
}

func envRange(key string, fallback, lo, hi int) int {
	if n := envInt(key, fallback); n >= lo && n <= hi {
		return n
	}
	return fallback
}

func envFloatRange(key string, fallback, lo, hi float64) float64 {
	if f := envFloat(key, fallback); f >= lo && f <= hi {
		return f
	}
	return fallback
}
