package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFPS        = flag.Int("fps", -1, "Frame rate limit (0 = unlimited)")
	flagHour       = flag.Float64("hour", -1, "Starting hour of day [0,24)")
	flagPanel      = flag.Int("panel", 0, "Panel model in watts (160, 330 or 610)")
	flagTelemetry  = flag.String("telemetry", "", "Record samples to this sqlite file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFPS >= 0 {
		cfg.Graphics.FPSLimit = *flagFPS
	}
	if *flagHour >= 0 {
		cfg.Simulation.Hour = float32(*flagHour)
	}
	if *flagPanel > 0 {
		cfg.Simulation.Panel = *flagPanel
	}
	if *flagTelemetry != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Driver = DriverSQLite
		cfg.Telemetry.DSN = *flagTelemetry
	}
}
