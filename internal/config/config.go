// Package config resolves lightrig defaults from LIGHTRIG_* environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when LIGHTRIG_ENV_FILE
// is not set.
const DefaultEnvFile = ".env"

// Config holds CLI defaults; flags given on the command line take precedence.
type Config struct {
	// Preset is the default preset key from LIGHTRIG_PRESET.
	Preset string `env:"LIGHTRIG_PRESET" envDefault:"Basic3Point"`
	// LogLevel is the logging level from LIGHTRIG_LOG_LEVEL.
	LogLevel string `env:"LIGHTRIG_LOG_LEVEL" envDefault:"info"`
	// EnvFile is the dotenv path from LIGHTRIG_ENV_FILE.
	EnvFile string `env:"LIGHTRIG_ENV_FILE" envDefault:".env"`
	// PreviewSize is the preview edge in pixels from LIGHTRIG_PREVIEW_SIZE.
	PreviewSize int `env:"LIGHTRIG_PREVIEW_SIZE" envDefault:"512"`
	// FrameCamera toggles camera framing from LIGHTRIG_FRAME_CAMERA.
	FrameCamera bool `env:"LIGHTRIG_FRAME_CAMERA" envDefault:"true"`
	// HideTarget toggles hiding the rig target from LIGHTRIG_HIDE_TARGET.
	HideTarget bool `env:"LIGHTRIG_HIDE_TARGET" envDefault:"true"`
}

// Load reads the env file named by LIGHTRIG_ENV_FILE (or .env) without
// overriding variables already set, then parses Config. A missing default
// env file is not an error; a missing explicit one is.
func Load() (Config, error) {
	path, explicit := os.LookupEnv("LIGHTRIG_ENV_FILE")
	if !explicit || path == "" {
		path, explicit = DefaultEnvFile, false
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse LIGHTRIG_* env: %w", err)
	}
	if cfg.PreviewSize <= 0 {
		return Config{}, fmt.Errorf("LIGHTRIG_PREVIEW_SIZE must be positive, got %d", cfg.PreviewSize)
	}
	return cfg, nil
}
