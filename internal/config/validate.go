package config

import (
	"errors"
	"fmt"
)

var validLayouts = map[string]struct{}{
	"solo":           {},
	"pip":            {},
	"side-by-side":   {},
	"hero-below":     {},
	"split-vertical": {},
	"cinematic":      {},
	"sidebar":        {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateStage(); err != nil {
		return err
	}
	if err := c.validateSimulate(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return errors.New("video.width and video.height must be positive")
	}
	if c.Video.Width%2 != 0 || c.Video.Height%2 != 0 {
		return errors.New("video.width and video.height must be even")
	}
	if c.Video.FPS <= 0 || c.Video.FPS > 240 {
		return errors.New("video.fps must be between 1 and 240")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return errors.New("audio.channels must be 1 or 2")
	}
	if c.Audio.SampleRate%c.Video.FPS != 0 {
		return fmt.Errorf("audio.sample_rate %d must be divisible by video.fps %d so audio quanta stay frame-aligned", c.Audio.SampleRate, c.Video.FPS)
	}
	return nil
}

func (c *Config) validateStage() error {
	if _, ok := validLayouts[c.Stage.DefaultLayout]; !ok {
		return fmt.Errorf("stage.default_layout: unknown layout mode %q", c.Stage.DefaultLayout)
	}
	return nil
}

func (c *Config) validateSimulate() error {
	if c.Simulate.Cameras < 0 || c.Simulate.Screens < 0 {
		return errors.New("simulate.cameras and simulate.screens must not be negative")
	}
	if c.Simulate.Cameras+c.Simulate.Screens > 16 {
		return errors.New("simulate: at most 16 synthetic sources are supported")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
