package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/solarfarm/internal/config"
	"github.com/Faultbox/solarfarm/internal/engine/camera"
	"github.com/Faultbox/solarfarm/internal/sim"
	"github.com/Faultbox/solarfarm/pkg/math"
)

func TestTextureFilesFromConfig(t *testing.T) {
	files := textureFiles(config.Default().Assets.Textures)

	assert.Equal(t, "textures/grass.png", files.Grass)
	assert.Equal(t, "textures/solar_cell.png", files.Panel)
	assert.Equal(t, "textures/metal_frame.png", files.Metal)
	assert.Equal(t, "textures/red.png", files.Red)
	assert.Equal(t, "textures/green.png", files.Green)
}

func TestRendererOptions(t *testing.T) {
	g := config.Default().Graphics
	g.ShadowResolution = 1024
	g.ShadowExtent = 25
	g.ClearColor = [3]float32{0.1, 0.2, 0.3}
	g.Ambient = 0.4

	opts := rendererOptions(g)
	assert.Equal(t, int32(1024), opts.ShadowResolution)
	assert.Equal(t, float32(25), opts.Frustum.HalfExtent)
	assert.Equal(t, math.Vec3{X: 0.1, Y: 0.2, Z: 0.3}, opts.ClearColor)
	assert.Equal(t, float32(0.4), opts.Light.Ambient)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, opts.Light.Color)

	// Unset values keep the pipeline defaults.
	opts = rendererOptions(config.GraphicsConfig{})
	assert.Equal(t, int32(2048), opts.ShadowResolution)
	assert.Equal(t, float32(40), opts.Frustum.HalfExtent)
}

func TestNewCameraFromConfig(t *testing.T) {
	c := config.Default().Camera
	cam := newCamera(c)

	def := camera.NewFlyCamera()
	assert.Equal(t, def.Position, cam.Position)
	assert.True(t, cam.Front.ApproxEqual(def.Front, 1e-6), "front %v", cam.Front)

	c.Position = [3]float32{4, 1.8, -3}
	c.Yaw = 0
	c.Pitch = 200
	c.FOV = 60
	cam = newCamera(c)
	assert.Equal(t, float32(1.8), cam.EyeHeight)
	assert.Equal(t, float32(camera.MaxPitch), cam.Pitch)
	assert.Equal(t, float32(60), cam.FOV)
	assert.InDelta(t, 1, cam.Front.Length(), 1e-5)
}

func TestApplyReload(t *testing.T) {
	state := sim.NewSimulationState(sim.DefaultParams())
	state.StepHour(3)
	state.SelectPanel(160)
	hour := state.Hour

	cfg := config.Default()
	cfg.Simulation.LoadKW = 5
	cfg.Simulation.Tilt = 35
	cfg.Simulation.CapacityKWh = 2
	cfg.Simulation.Hour = 0
	cfg.Simulation.Panel = 610

	applyReload(state, cfg)

	assert.Equal(t, float32(5), state.LoadKW)
	assert.Equal(t, float32(35), state.TiltDeg)
	assert.Equal(t, float32(2), state.Battery.CapacityKWh)
	assert.LessOrEqual(t, state.Battery.CurrentKWh, state.Battery.CapacityKWh)
	// Interactive settings are untouched.
	assert.Equal(t, hour, state.Hour)
	assert.Equal(t, 160, state.Wattage)
}

func TestNewTelemetryDisabled(t *testing.T) {
	rec, metrics, err := newTelemetry(context.Background(), config.TelemetryConfig{})
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Nil(t, metrics)
}

func TestNewTelemetryExportsWithoutStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.json")
	rec, metrics, err := newTelemetry(context.Background(), config.TelemetryConfig{
		Enabled:     true,
		Driver:      "mysql",
		Interval:    time.Hour,
		MetricsFile: path,
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, metrics)

	state := sim.NewSimulationState(sim.DefaultParams())
	state.Step(1)
	rec.Observe(state)

	require.NoError(t, metrics.Shutdown(context.Background()))
	require.NoError(t, rec.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "farm.power.generated")
	assert.Contains(t, string(data), "farm.battery.percent")
}

func TestNewTelemetryWithoutOutputs(t *testing.T) {
	rec, metrics, err := newTelemetry(context.Background(), config.TelemetryConfig{
		Enabled:  true,
		Driver:   "mysql",
		Interval: time.Second,
	})
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Nil(t, metrics)
}

func TestNewTelemetrySQLite(t *testing.T) {
	rec, metrics, err := newTelemetry(context.Background(), config.TelemetryConfig{
		Enabled:  true,
		Driver:   config.DriverSQLite,
		DSN:      "",
		Interval: time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, metrics)
	rec.Observe(sim.NewSimulationState(sim.DefaultParams()))
	assert.NoError(t, rec.Close())
}

func TestSaveSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solarfarm.yaml")
	cfg := config.Default()
	cfg.Simulation.SaveOnExit = true

	state := sim.NewSimulationState(cfg.Simulation.Params())
	state.StepHour(2)
	state.SelectPanel(610)
	state.Layout.AddCols(-1)
	state.RotateAzimuth(sim.AzimuthStep)

	require.NoError(t, saveSession(cfg, state, path))

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, state.Hour, loaded.Simulation.Hour)
	assert.Equal(t, 610, loaded.Simulation.Panel)
	assert.Equal(t, state.Layout.Cols, loaded.Simulation.Cols)
	assert.Equal(t, state.AzimuthDeg, loaded.Simulation.Azimuth)
	assert.True(t, loaded.Simulation.SaveOnExit)
	// Settings outside keyboard control are written unchanged.
	assert.Equal(t, cfg.Simulation.LoadKW, loaded.Simulation.LoadKW)
}
