package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/playground/internal/logging"
	"github.com/thruflo/playground/internal/sprite"
)

// DirName is the per-project configuration directory.
const DirName = ".playground"

// FileName is the configuration file inside DirName.
const FileName = "config.yaml"

// Default values for Config.
const (
	DefaultStageWidth  = 480
	DefaultStageHeight = 360
	DefaultSpriteSize  = 48
	DefaultStepDelayMS = 280
	DefaultNotifyMS    = 2800
	DefaultFrameMS     = 33
	DefaultLogLevel    = "warn"
)

// DefaultEmojis is the sprite emoji palette.
func DefaultEmojis() []string {
	return append([]string(nil), sprite.DefaultEmojis...)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Stage: Stage{
			Width:      DefaultStageWidth,
			Height:     DefaultStageHeight,
			SpriteSize: DefaultSpriteSize,
		},
		Timing: Timing{
			StepDelayMS: DefaultStepDelayMS,
			NotifyMS:    DefaultNotifyMS,
			FrameMS:     DefaultFrameMS,
		},
		Sprites: Sprites{
			Emojis: DefaultEmojis(),
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Path returns the config file path under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, DirName, FileName)
}

// LoadConfig reads .playground/config.yaml from basePath. A missing file
// yields the defaults; fields absent from the file keep their defaults.
func LoadConfig(basePath string) (*Config, error) {
	data, err := os.ReadFile(Path(basePath))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are usable.
func ValidateConfig(cfg *Config) error {
	if cfg.Stage.Width <= 0 {
		return ValidationError{Field: "stage.width", Message: "must be positive"}
	}
	if cfg.Stage.Height <= 0 {
		return ValidationError{Field: "stage.height", Message: "must be positive"}
	}
	if cfg.Stage.SpriteSize <= 0 {
		return ValidationError{Field: "stage.sprite_size", Message: "must be positive"}
	}
	if cfg.Timing.StepDelayMS < 0 {
		return ValidationError{Field: "timing.step_delay_ms", Message: "must not be negative"}
	}
	if cfg.Timing.NotifyMS <= 0 {
		return ValidationError{Field: "timing.notify_ms", Message: "must be positive"}
	}
	if cfg.Timing.FrameMS <= 0 {
		return ValidationError{Field: "timing.frame_ms", Message: "must be positive"}
	}
	if len(cfg.Sprites.Emojis) == 0 {
		return ValidationError{Field: "sprites.emojis", Message: "must list at least one emoji"}
	}
	for i, e := range cfg.Sprites.Emojis {
		if e == "" {
			return ValidationError{Field: fmt.Sprintf("sprites.emojis[%d]", i), Message: "must not be empty"}
		}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	return nil
}

// Template returns the commented default config file written by init.
func Template() string {
	return `# Playground configuration

stage:
  # Stage size in stage units; sprite positions use the same units
  width: 480
  height: 360

  # Edge length of a sprite, used for drawing and collision bounds
  sprite_size: 48

timing:
  # Pause after every block
  step_delay_ms: 280

  # How long notifications stay on screen
  notify_ms: 2800

  # Redraw interval while sprites glide
  frame_ms: 33

sprites:
  # Emoji palette for new sprites
  emojis: ["😺", "🐶", "🦁", "🐘", "🦒", "🐻", "🐰", "🦊", "🐼", "🐨"]

  # Random seed for sprite placement; 0 uses the clock
  seed: 0

log:
  # debug, info, warn or error
  level: warn
`
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
