package config

import "time"

// Stage describes the stage geometry in stage units.
type Stage struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	SpriteSize int `yaml:"sprite_size"`
}

// Timing holds the run and UI timings in milliseconds.
type Timing struct {
	StepDelayMS int `yaml:"step_delay_ms"`
	NotifyMS    int `yaml:"notify_ms"`
	FrameMS     int `yaml:"frame_ms"`
}

// StepDelay returns the pause after every block.
func (t Timing) StepDelay() time.Duration {
	return time.Duration(t.StepDelayMS) * time.Millisecond
}

// NotifyDuration returns how long a toast stays on screen.
func (t Timing) NotifyDuration() time.Duration {
	return time.Duration(t.NotifyMS) * time.Millisecond
}

// FrameInterval returns the TUI redraw interval while something animates.
func (t Timing) FrameInterval() time.Duration {
	return time.Duration(t.FrameMS) * time.Millisecond
}

// Sprites configures how new sprites are created.
type Sprites struct {
	Emojis []string `yaml:"emojis"`
	Seed   int64    `yaml:"seed"` // 0 seeds from the clock
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents the .playground/config.yaml file.
type Config struct {
	Stage   Stage   `yaml:"stage"`
	Timing  Timing  `yaml:"timing"`
	Sprites Sprites `yaml:"sprites"`
	Log     Log     `yaml:"log"`
}
