package config

import (
	"os"
	"strconv"
	"strings"
)

// Config stores runtime configuration for the speech page.
type Config struct {
	Recognition RecognitionConfig
	Synthesis   SynthesisConfig
	Log         LogConfig
}

type RecognitionConfig struct {
	Language       string
	Continuous     bool
	InterimResults bool
}

type SynthesisConfig struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

type LogConfig struct {
	Level string
}

// Load resolves configuration from environment variables and sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Recognition: RecognitionConfig{
			Language:       envOrDefault("SAYBOARD_LANGUAGE", "en-US"),
			Continuous:     envOrDefaultBool("SAYBOARD_CONTINUOUS", true),
			InterimResults: envOrDefaultBool("SAYBOARD_INTERIM_RESULTS", true),
		},
		Synthesis: SynthesisConfig{
			Rate:   envOrDefaultFloat("SAYBOARD_RATE", 1.0),
			Pitch:  envOrDefaultFloat("SAYBOARD_PITCH", 1.0),
			Volume: envOrDefaultFloat("SAYBOARD_VOLUME", 1.0),
		},
		Log: LogConfig{
			Level: envOrDefault("SAYBOARD_LOG_LEVEL", "info"),
		},
	}

	// Host synthesis ranges: rate 0.1-10, pitch 0-2, volume 0-1.
	cfg.Synthesis.Rate = clamp(cfg.Synthesis.Rate, 0.1, 10)
	cfg.Synthesis.Pitch = clamp(cfg.Synthesis.Pitch, 0, 2)
	cfg.Synthesis.Volume = clamp(cfg.Synthesis.Volume, 0, 1)

	if strings.TrimSpace(cfg.Recognition.Language) == "" {
		cfg.Recognition.Language = "en-US"
	}

	return cfg, nil
}

func clamp(value float64, low float64, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func envOrDefaultFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
