package testsupport

import (
	"path/filepath"
	"testing"

	"switchyard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AssetDir = filepath.Join(base, "assets")
	cfg.Video.Width = 320
	cfg.Video.Height = 180
	cfg.Video.FPS = 30
	cfg.Simulate.Cameras = 0
	cfg.Simulate.Screens = 0
	cfg.Hotplug.Enabled = false
	cfg.Metrics.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithVideo overrides the canvas geometry on the test config.
func WithVideo(width, height, fps int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Video.Width = width
		cfg.Video.Height = height
		cfg.Video.FPS = fps
	}
}

// WithSim enables simulated sources on the test config.
func WithSim(cameras, screens int, tone bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Simulate.Cameras = cameras
		cfg.Simulate.Screens = screens
		cfg.Simulate.Tone = tone
	}
}
