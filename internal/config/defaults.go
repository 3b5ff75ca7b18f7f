package config

const (
	defaultStateDir      = "~/.local/share/switchyard"
	defaultLogDir        = "~/.local/share/switchyard/logs"
	defaultAssetDir      = "~/.local/share/switchyard/assets"
	defaultCanvasWidth   = 1280
	defaultCanvasHeight  = 720
	defaultFPS           = 30
	defaultSampleRate    = 48000
	defaultChannels      = 2
	defaultLayout        = "solo"
	defaultDevicePrefix  = "/dev/video"
	defaultMetricsBind   = "127.0.0.1:9421"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultSimCameras    = 2
	defaultSimScreens    = 1
	defaultSimToneEnable = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			AssetDir: defaultAssetDir,
		},
		Video: Video{
			Width:  defaultCanvasWidth,
			Height: defaultCanvasHeight,
			FPS:    defaultFPS,
		},
		Audio: Audio{
			SampleRate: defaultSampleRate,
			Channels:   defaultChannels,
		},
		Stage: Stage{
			DefaultLayout: defaultLayout,
		},
		Simulate: Simulate{
			Cameras: defaultSimCameras,
			Screens: defaultSimScreens,
			Tone:    defaultSimToneEnable,
		},
		Hotplug: Hotplug{
			Enabled:      false,
			DevicePrefix: defaultDevicePrefix,
		},
		Metrics: Metrics{
			Enabled: false,
			Bind:    defaultMetricsBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
