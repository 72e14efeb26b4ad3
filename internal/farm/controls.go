package farm

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/engine/camera"
	"github.com/Faultbox/solarfarm/internal/engine/input"
	"github.com/Faultbox/solarfarm/internal/logger"
	"github.com/Faultbox/solarfarm/internal/sim"
)

// Actions are requests the controls cannot satisfy by themselves.
type Actions struct {
	Quit       bool
	Screenshot bool
}

// KeyState reports whether a key is held.
type KeyState func(sdl.Scancode) bool

var panelKeys = map[sdl.Scancode]int{
	sdl.SCANCODE_1: 160,
	sdl.SCANCODE_2: 330,
	sdl.SCANCODE_3: 610,
}

var moveKeys = []struct {
	key sdl.Scancode
	dir camera.Direction
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
}

// HandleEvents applies one frame of discrete input: key presses change the
// simulation, the summed mouse motion turns the camera. Motion is inverted so
// moving the mouse right looks right.
func HandleEvents(events []input.Event, state *sim.SimulationState, cam *camera.FlyCamera) Actions {
	var act Actions
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			act.Quit = true
		case input.EventKeyDown:
			handleKey(e.Key, state, &act)
		}
	}
	if dx, dy := input.MouseDelta(events); dx != 0 || dy != 0 {
		cam.UpdateOrientation(-float32(dx), -float32(dy))
	}
	return act
}

func handleKey(key sdl.Scancode, state *sim.SimulationState, act *Actions) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		act.Quit = true
	case sdl.SCANCODE_F12:
		act.Screenshot = true
	case sdl.SCANCODE_UP:
		state.StepHour(sim.HourStep)
		logger.Debug("hour changed", zap.Float32("hour", state.Hour))
	case sdl.SCANCODE_DOWN:
		state.StepHour(-sim.HourStep)
		logger.Debug("hour changed", zap.Float32("hour", state.Hour))
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		if state.Layout.AddCols(1) {
			logger.Debug("columns changed", zap.Int("cols", state.Layout.Cols))
		}
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		if state.Layout.AddCols(-1) {
			logger.Debug("columns changed", zap.Int("cols", state.Layout.Cols))
		}
	case sdl.SCANCODE_Q:
		state.RotateAzimuth(-sim.AzimuthStep)
		logger.Debug("azimuth changed", zap.Float32("azimuth", state.AzimuthDeg))
	case sdl.SCANCODE_E:
		state.RotateAzimuth(sim.AzimuthStep)
		logger.Debug("azimuth changed", zap.Float32("azimuth", state.AzimuthDeg))
	default:
		if w, ok := panelKeys[key]; ok && state.SelectPanel(w) {
			logger.Debug("panel selected", zap.Int("wattage", w))
		}
	}
}

// Walk moves the camera for every held movement key.
func Walk(held KeyState, cam *camera.FlyCamera, dt float32) {
	for _, m := range moveKeys {
		if held(m.key) {
			cam.Move(m.dir, dt)
		}
	}
}
