// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/solarfarm/internal/sim"
)

// Config holds all application settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Camera     CameraConfig     `yaml:"camera"`
	Simulation SimulationConfig `yaml:"simulation"`
	Assets     AssetsConfig     `yaml:"assets"`
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	CaptureMouse bool   `yaml:"capture_mouse"`
}

// GraphicsConfig holds rendering settings.
type GraphicsConfig struct {
	FPSLimit         int        `yaml:"fps_limit"`
	ShadowResolution int        `yaml:"shadow_resolution"`
	ShadowExtent     float32    `yaml:"shadow_extent"`
	Ambient          float32    `yaml:"ambient"`
	ClearColor       [3]float32 `yaml:"clear_color"`
	ScreenshotDir    string     `yaml:"screenshot_dir"`
}

// CameraConfig holds the starting pose and feel of the fly camera.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
}

// SimulationConfig seeds the farm simulation.
type SimulationConfig struct {
	Hour        float32 `yaml:"hour"`
	Panel       int     `yaml:"panel"`
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Tilt        float32 `yaml:"tilt"`
	Azimuth     float32 `yaml:"azimuth"`
	LoadKW      float32 `yaml:"load_kw"`
	CapacityKWh float32 `yaml:"capacity_kwh"`
	InitialKWh  float32 `yaml:"initial_kwh"`
	MaxChargeKW float32 `yaml:"max_charge_kw"`

	// SaveOnExit writes the hour, panel, columns and azimuth chosen at the
	// keyboard back to the config file when the farm closes.
	SaveOnExit bool `yaml:"save_on_exit"`
}

// AssetsConfig lists extra asset directories and the texture for each
// material. Later directories shadow earlier ones and the embedded set.
type AssetsConfig struct {
	Dirs     []string       `yaml:"dirs"`
	Textures TexturesConfig `yaml:"textures"`
}

// TexturesConfig names the image for each scene material.
type TexturesConfig struct {
	Grass string `yaml:"grass"`
	Panel string `yaml:"panel"`
	Metal string `yaml:"metal"`
	Red   string `yaml:"red"`
	Green string `yaml:"green"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// TelemetryConfig controls the sample recorder.
type TelemetryConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Driver   string        `yaml:"driver"` // sqlite or postgres
	DSN      string        `yaml:"dsn"`
	Interval time.Duration `yaml:"interval"`
	// MetricsFile receives the exported gauges as JSON lines; empty disables
	// the export.
	MetricsFile string `yaml:"metrics_file"`
}

// Telemetry drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	p := sim.DefaultParams()
	return &Config{
		Window: WindowConfig{
			Title:        "Fazenda Solar",
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			CaptureMouse: true,
		},
		Graphics: GraphicsConfig{
			FPSLimit:         60,
			ShadowResolution: 2048,
			ShadowExtent:     40,
			Ambient:          0.25,
			ClearColor:       [3]float32{0.5, 0.8, 1.0},
			ScreenshotDir:    "screenshots",
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 2.5, 8},
			Yaw:         -90,
			Pitch:       0,
			Speed:       5,
			Sensitivity: 0.1,
			FOV:         45,
		},
		Simulation: SimulationConfig{
			Hour:        p.Hour,
			Panel:       p.Wattage,
			Rows:        p.Rows,
			Cols:        p.Cols,
			Tilt:        p.TiltDeg,
			Azimuth:     p.AzimuthDeg,
			LoadKW:      p.LoadKW,
			CapacityKWh: p.CapacityKWh,
			InitialKWh:  p.InitialKWh,
			MaxChargeKW: p.MaxChargeKW,
		},
		Assets: AssetsConfig{
			Textures: TexturesConfig{
				Grass: "textures/grass.png",
				Panel: "textures/solar_cell.png",
				Metal: "textures/metal_frame.png",
				Red:   "textures/red.png",
				Green: "textures/green.png",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Driver:      DriverSQLite,
			DSN:         "solarfarm.db",
			Interval:    5 * time.Second,
			MetricsFile: "solarfarm-metrics.json",
		},
	}
}

// Params converts the section into simulation parameters.
func (s SimulationConfig) Params() sim.Params {
	return sim.Params{
		Hour:        s.Hour,
		Wattage:     s.Panel,
		Rows:        s.Rows,
		Cols:        s.Cols,
		TiltDeg:     s.Tilt,
		AzimuthDeg:  s.Azimuth,
		LoadKW:      s.LoadKW,
		CapacityKWh: s.CapacityKWh,
		InitialKWh:  s.InitialKWh,
		MaxChargeKW: s.MaxChargeKW,
	}
}

// Validate reports every setting the application cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps_limit %d must not be negative", c.Graphics.FPSLimit))
	}
	if c.Graphics.Ambient < 0 || c.Graphics.Ambient > 1 {
		errs = append(errs, fmt.Errorf("ambient %v outside [0, 1]", c.Graphics.Ambient))
	}
	if c.Graphics.ShadowResolution <= 0 {
		errs = append(errs, fmt.Errorf("shadow_resolution %d must be positive", c.Graphics.ShadowResolution))
	}
	if c.Camera.Position[1] <= 0 {
		errs = append(errs, fmt.Errorf("camera eye height %v must be positive", c.Camera.Position[1]))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v outside (0, 180)", c.Camera.FOV))
	}
	if err := c.Simulation.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Telemetry.Enabled {
		switch c.Telemetry.Driver {
		case DriverSQLite, DriverPostgres:
		default:
			errs = append(errs, fmt.Errorf("telemetry driver %q is not sqlite or postgres", c.Telemetry.Driver))
		}
		if c.Telemetry.Interval <= 0 {
			errs = append(errs, fmt.Errorf("telemetry interval %v must be positive", c.Telemetry.Interval))
		}
	}
	return errors.Join(errs...)
}

// Validate checks the simulation section on its own; reloads only touch it.
func (s SimulationConfig) Validate() error {
	var errs []error
	if _, ok := sim.LookupPanel(s.Panel); !ok {
		errs = append(errs, fmt.Errorf("panel %dW is not in the catalog", s.Panel))
	}
	if s.Rows < 1 {
		errs = append(errs, fmt.Errorf("rows %d must be at least 1", s.Rows))
	}
	if s.Cols < sim.MinCols || s.Cols > sim.MaxCols {
		errs = append(errs, fmt.Errorf("cols %d outside [%d, %d]", s.Cols, sim.MinCols, sim.MaxCols))
	}
	if s.LoadKW < 0 {
		errs = append(errs, fmt.Errorf("load_kw %v must not be negative", s.LoadKW))
	}
	if s.CapacityKWh <= 0 {
		errs = append(errs, fmt.Errorf("capacity_kwh %v must be positive", s.CapacityKWh))
	}
	if s.InitialKWh < 0 || s.InitialKWh > s.CapacityKWh {
		errs = append(errs, fmt.Errorf("initial_kwh %v outside [0, %v]", s.InitialKWh, s.CapacityKWh))
	}
	if s.MaxChargeKW <= 0 {
		errs = append(errs, fmt.Errorf("max_charge_kw %v must be positive", s.MaxChargeKW))
	}
	return errors.Join(errs...)
}
