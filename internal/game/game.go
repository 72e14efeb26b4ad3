// Package game wires the window, renderer and simulation into the frame loop.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/assets"
	"github.com/Faultbox/solarfarm/internal/config"
	"github.com/Faultbox/solarfarm/internal/engine/camera"
	"github.com/Faultbox/solarfarm/internal/engine/debug"
	"github.com/Faultbox/solarfarm/internal/engine/input"
	"github.com/Faultbox/solarfarm/internal/engine/renderer"
	"github.com/Faultbox/solarfarm/internal/engine/texture"
	"github.com/Faultbox/solarfarm/internal/engine/ui2d"
	"github.com/Faultbox/solarfarm/internal/engine/window"
	"github.com/Faultbox/solarfarm/internal/farm"
	"github.com/Faultbox/solarfarm/internal/logger"
	"github.com/Faultbox/solarfarm/internal/sim"
	"github.com/Faultbox/solarfarm/internal/telemetry"
)

// Game owns every resource of a running session. It must be created, run
// and closed on the main thread.
type Game struct {
	cfg        *config.Config
	configPath string

	window   *window.Window
	scene    *renderer.ShadowRenderer
	hud      *ui2d.Renderer
	assets   *assets.Manager
	textures *texture.Registry

	cam     *camera.FlyCamera
	state   *sim.SimulationState
	input   *input.Input
	limiter *input.Limiter

	screenshots *debug.ScreenshotCapture
	recorder    *telemetry.Recorder
	metrics     *telemetry.Metrics
	watcher     *config.Watcher

	title string
}

// New opens the window and loads everything the first frame needs.
// configPath may be empty, in which case no reload watcher is started.
func New(ctx context.Context, cfg *config.Config, configPath string) (*Game, error) {
	logger.Info("initializing farm",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{cfg: cfg, configPath: configPath}

	var err error
	g.window, err = window.New(window.Config{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		CaptureMouse: cfg.Window.CaptureMouse,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Everything below needs the GL context the window just created.
	width, height := g.window.DrawableSize()
	if _, err := renderer.Init(renderer.Config{Width: width, Height: height, VSync: cfg.Window.VSync}); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to init renderer: %w", err)
	}

	g.assets = assets.NewManager()
	for _, dir := range cfg.Assets.Dirs {
		if err := g.assets.AddDir(dir); err != nil {
			g.Close()
			return nil, fmt.Errorf("failed to add asset dir: %w", err)
		}
	}

	g.textures, err = texture.LoadRegistry(g.assets, textureFiles(cfg.Assets.Textures))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to load textures: %w", err)
	}

	g.scene, err = renderer.NewShadowRenderer(rendererOptions(cfg.Graphics))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create scene renderer: %w", err)
	}

	g.hud, err = ui2d.New(width, height, ui2d.DefaultFace(ui2d.DefaultFontSize))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create HUD: %w", err)
	}

	g.cam = newCamera(cfg.Camera)
	g.state = sim.NewSimulationState(cfg.Simulation.Params())
	g.input = input.New()
	g.limiter = input.NewLimiter(cfg.Graphics.FPSLimit)
	g.screenshots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "farm")

	g.recorder, g.metrics, err = newTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to start telemetry: %w", err)
	}

	if configPath != "" {
		g.watcher, err = config.Watch(ctx, configPath)
		if err != nil {
			// Hot reload is a convenience; the farm runs fine without it.
			logger.Warn("config reload disabled", zap.Error(err))
		}
	}

	// The sign needs its first texture before the first frame samples it.
	if err := g.textures.Sign.SetPower(g.state.PowerKW); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to draw sign: %w", err)
	}

	logger.Info("farm initialized",
		zap.Int("panels", g.state.Layout.Count()),
		zap.Int("wattage", g.state.Wattage),
		zap.Float32("hour", g.state.Hour),
	)
	return g, nil
}

// Run drives the frame loop until the window closes, Escape is pressed or
// ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for {
		select {
		case <-ctx.Done():
			logger.Info("frame loop cancelled")
			return nil
		default:
		}

		dt := g.limiter.Tick()

		// 1. Input
		g.input.Update()
		events := g.input.Events()
		act := farm.HandleEvents(events, g.state, g.cam)
		if act.Quit {
			return nil
		}
		farm.Walk(g.input.IsKeyDown, g.cam, dt)
		for _, e := range events {
			if e.Type == input.EventWindowResize {
				// Events carry screen coordinates; the viewport wants pixels.
				g.resize(g.window.DrawableSize())
			}
		}
		g.pollReload()

		// 2. Simulation
		if err := farm.Advance(g.state, dt, g.textures.Sign); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		g.render()
		if title := farm.Title(g.state); title != g.title {
			g.window.SetTitle(title)
			g.title = title
		}
		if act.Screenshot {
			g.screenshot()
		}

		// 4. Present
		g.window.SwapBuffers()
		if g.recorder != nil {
			g.recorder.Observe(g.state)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000),
				zap.Float32("power_kw", g.state.PowerKW),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (g *Game) render() {
	width, height := g.hud.ScreenSize()
	aspect := float32(width) / float32(max(height, 1))

	g.scene.Render(renderer.Frame{
		Width:      int32(width),
		Height:     int32(height),
		View:       g.cam.ViewMatrix(),
		Projection: g.cam.Projection(aspect),
		CameraPos:  g.cam.Position,
		SunPos:     g.state.Sun.Position,
	}, farm.Compose(g.state, g.state.Panel(), g.materials()))

	g.hud.Begin()
	farm.DrawHUD(g.hud, farm.HUDLines(g.state))
	g.hud.End()
}

func (g *Game) materials() farm.Materials {
	t := g.textures
	return farm.Materials{
		Grass: t.Grass.ID,
		Panel: t.Panel.ID,
		Metal: t.Metal.ID,
		Red:   t.Red.ID,
		Green: t.Green.ID,
		Sign:  t.Sign.ID(),
	}
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	renderer.Resize(width, height)
	g.hud.Resize(width, height)
}

func (g *Game) screenshot() {
	width, height := g.hud.ScreenSize()
	path, err := g.screenshots.Capture(width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg := <-g.watcher.Changes():
		applyReload(g.state, cfg)
	default:
	}
}

// Close releases resources in reverse order of creation. It is safe to call
// on a partially initialized Game.
func (g *Game) Close() {
	logger.Info("closing farm")

	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.state != nil && g.cfg.Simulation.SaveOnExit {
		if err := saveSession(g.cfg, g.state, g.configPath); err != nil {
			logger.Warn("failed to save session", zap.Error(err))
		} else {
			logger.Info("session saved", zap.Float32("hour", g.state.Hour), zap.Int("panel", g.state.Wattage))
		}
	}
	// The provider goes first so its last export still sees the gauges.
	if g.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := g.metrics.Shutdown(ctx); err != nil {
			logger.Warn("metrics shutdown failed", zap.Error(err))
		}
		cancel()
	}
	if g.recorder != nil {
		if err := g.recorder.Close(); err != nil {
			logger.Warn("telemetry close failed", zap.Error(err))
		}
	}
	if g.hud != nil {
		g.hud.Close()
	}
	if g.scene != nil {
		g.scene.Close()
	}
	if g.textures != nil {
		g.textures.Delete()
	}
	if g.assets != nil {
		hits, misses := g.assets.Stats()
		logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		g.assets.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
