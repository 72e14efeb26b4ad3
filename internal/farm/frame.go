package farm

import "github.com/Faultbox/solarfarm/internal/sim"

// SignUpdater receives the generation shown on the signboard.
type SignUpdater interface {
	SetPower(kw float32) error
}

// Advance steps the simulation by dt seconds and pushes the new
// generation to the sign.
func Advance(state *sim.SimulationState, dt float32, sign SignUpdater) error {
	state.Step(dt)
	return sign.SetPower(state.PowerKW)
}
