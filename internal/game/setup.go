package game

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/config"
	"github.com/Faultbox/solarfarm/internal/engine/camera"
	"github.com/Faultbox/solarfarm/internal/engine/renderer"
	"github.com/Faultbox/solarfarm/internal/engine/texture"
	"github.com/Faultbox/solarfarm/internal/logger"
	"github.com/Faultbox/solarfarm/internal/sim"
	"github.com/Faultbox/solarfarm/internal/telemetry"
	"github.com/Faultbox/solarfarm/pkg/math"
)

func textureFiles(c config.TexturesConfig) texture.Files {
	return texture.Files{
		Grass: c.Grass,
		Panel: c.Panel,
		Metal: c.Metal,
		Red:   c.Red,
		Green: c.Green,
	}
}

func rendererOptions(c config.GraphicsConfig) renderer.Options {
	opts := renderer.DefaultOptions()
	if c.ShadowResolution > 0 {
		opts.ShadowResolution = int32(c.ShadowResolution)
	}
	if c.ShadowExtent > 0 {
		opts.Frustum.HalfExtent = c.ShadowExtent
	}
	opts.Light.Ambient = c.Ambient
	opts.ClearColor = math.Vec3{X: c.ClearColor[0], Y: c.ClearColor[1], Z: c.ClearColor[2]}
	return opts
}

func newCamera(c config.CameraConfig) *camera.FlyCamera {
	cam := camera.NewFlyCamera()
	cam.Position = math.Vec3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]}
	cam.EyeHeight = c.Position[1]
	cam.Yaw = c.Yaw
	cam.Pitch = c.Pitch
	if c.Speed > 0 {
		cam.Speed = c.Speed
	}
	if c.Sensitivity > 0 {
		cam.Sensitivity = c.Sensitivity
	}
	if c.FOV > 0 {
		cam.FOV = c.FOV
	}
	// A zero delta clamps the pitch and rebuilds the basis.
	cam.UpdateOrientation(0, 0)
	return cam
}

// newTelemetry starts the recorder when telemetry is enabled. Gauges and
// sample counters are exported by an SDK meter provider to the metrics file;
// samples are stored when the store opens. Both results are nil when there is
// nothing to record to.
func newTelemetry(ctx context.Context, c config.TelemetryConfig) (*telemetry.Recorder, *telemetry.Metrics, error) {
	if !c.Enabled {
		return nil, nil, nil
	}
	interval := c.Interval
	if interval <= 0 {
		interval = config.Default().Telemetry.Interval
	}

	var (
		metrics *telemetry.Metrics
		gauges  *telemetry.Gauges
		opts    []telemetry.RecorderOption
		err     error
	)
	if c.MetricsFile != "" {
		out := logger.RotatingWriter(logger.DefaultFileConfig(c.MetricsFile))
		metrics, err = telemetry.NewMetrics(out, interval)
		if err != nil {
			out.Close()
			return nil, nil, err
		}
		gauges, err = telemetry.NewGauges(metrics.Meter())
		if err != nil {
			metrics.Shutdown(context.Background())
			return nil, nil, err
		}
		opts = append(opts, telemetry.WithMeter(metrics.Meter()))
	}

	var sink telemetry.Sink
	store, err := telemetry.Open(c.Driver, c.DSN)
	if err != nil {
		logger.Warn("telemetry store unavailable",
			zap.String("driver", c.Driver), zap.Error(err))
	} else {
		sink = store
	}

	if sink == nil && gauges == nil {
		logger.Warn("telemetry disabled, no store and no metrics file")
		return nil, nil, nil
	}

	rec, err := telemetry.NewRecorder(ctx, sink, gauges, interval, opts...)
	if err != nil {
		if sink != nil {
			sink.Close()
		}
		if metrics != nil {
			metrics.Shutdown(context.Background())
		}
		return nil, nil, err
	}
	return rec, metrics, nil
}

// applyReload takes the operating conditions from a reloaded config: load,
// tilt and battery limits. The hour, panel model, layout and azimuth stay
// under keyboard control.
func applyReload(state *sim.SimulationState, cfg *config.Config) {
	s := cfg.Simulation
	state.LoadKW = s.LoadKW
	state.TiltDeg = s.Tilt

	b := &state.Battery
	b.MaxChargeKW = s.MaxChargeKW
	b.CapacityKWh = s.CapacityKWh
	if b.CurrentKWh > b.CapacityKWh {
		b.CurrentKWh = b.CapacityKWh
	}

	logger.SetLevel(cfg.Logging.Level)
	logger.Info("simulation settings reloaded",
		zap.Float32("load_kw", state.LoadKW),
		zap.Float32("tilt", state.TiltDeg),
		zap.Float32("capacity_kwh", b.CapacityKWh),
	)
}

// rememberSession copies the keyboard-controlled settings into s.
func rememberSession(s *config.SimulationConfig, state *sim.SimulationState) {
	s.Hour = state.Hour
	s.Panel = state.Wattage
	s.Cols = state.Layout.Cols
	s.Azimuth = state.AzimuthDeg
}

// saveSession persists the session to path, or to the user config
// directory when the farm was started without a config file.
func saveSession(cfg *config.Config, state *sim.SimulationState, path string) error {
	rememberSession(&cfg.Simulation, state)
	if path == "" {
		return cfg.Save()
	}
	return cfg.SaveTo(path)
}
