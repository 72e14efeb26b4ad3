// Package farm turns the simulation state into what the player sees and
// maps keys onto simulation and camera changes.
package farm

import (
	"github.com/Faultbox/solarfarm/internal/engine/renderer"
	"github.com/Faultbox/solarfarm/internal/sim"
	"github.com/Faultbox/solarfarm/pkg/math"
)

// Materials are the texture names each object is drawn with.
type Materials struct {
	Grass uint32
	Panel uint32
	Metal uint32
	Red   uint32
	Green uint32
	Sign  uint32
}

// Scene layout constants.
const (
	PostHeight   = 2.0
	postRadius   = 0.15
	BarMaxHeight = 1.8
	barWidth     = 0.4
	barDepth     = 0.1
)

var (
	BatteryPosition = math.Vec3{X: 2.5, Y: 1, Z: 1}
	batterySize     = math.Vec3{X: 1.5, Y: 2, Z: 1}
	barOffset       = math.Vec3{X: 0, Y: 0, Z: 0.51}

	SignPosition  = math.Vec3{X: 0, Y: 0, Z: 2}
	signPostY     = float32(1.25)
	signPostSize  = math.Vec3{X: 0.2, Y: 2.5, Z: 0.2}
	signBoardY    = float32(3.2)
	signBoardSize = math.Vec3{X: 3, Y: 1.5, Z: 0.2}
)

// Compose lists every object of the farm in draw order: ground, a post and
// a panel per layout slot, the battery with its charge bars, then the sign.
// The same list feeds the depth pass and the lit pass.
func Compose(state *sim.SimulationState, spec sim.PanelSpec, m Materials) []renderer.DrawCommand {
	draws := make([]renderer.DrawCommand, 0, 1+2*state.Layout.Count()+5)

	draws = append(draws, renderer.DrawCommand{Mesh: renderer.MeshPlane, Model: math.Identity(), Texture: m.Grass})

	for _, pos := range state.Layout.Positions {
		draws = append(draws,
			renderer.DrawCommand{Mesh: renderer.MeshCylinder, Model: PostModel(pos), Texture: m.Metal},
			renderer.DrawCommand{Mesh: renderer.MeshCube, Model: PanelModel(pos, spec.Size, state.TiltDeg, state.AzimuthDeg), Texture: m.Panel},
		)
	}

	draws = append(draws,
		renderer.DrawCommand{Mesh: renderer.MeshCube, Model: boxModel(BatteryPosition, batterySize), Texture: m.Metal},
		renderer.DrawCommand{Mesh: renderer.MeshCube, Model: boxModel(BatteryPosition.Add(barOffset), math.Vec3{X: barWidth, Y: BarMaxHeight, Z: barDepth}), Texture: m.Red},
	)
	if green, ok := ChargeBarModel(state.Battery.Percentage()); ok {
		draws = append(draws, renderer.DrawCommand{Mesh: renderer.MeshCube, Model: green, Texture: m.Green})
	}

	signPost := SignPosition
	signPost.Y = signPostY
	board := SignPosition
	board.Y = signBoardY
	draws = append(draws,
		renderer.DrawCommand{Mesh: renderer.MeshCube, Model: boxModel(signPost, signPostSize), Texture: m.Metal},
		renderer.DrawCommand{Mesh: renderer.MeshCube, Model: boxModel(board, signBoardSize), Texture: m.Sign},
	)

	return draws
}

// PostModel stands a unit cylinder on the ground under a panel slot.
func PostModel(pos math.Vec3) math.Mat4 {
	return math.Compose(
		math.TranslateVec(pos),
		math.Translate(0, PostHeight/2, 0),
		math.Scale(postRadius, PostHeight, postRadius),
	)
}

// PanelModel places a panel of the given size on top of its post, turned
// by azimuth about Y and tilted about its local X. The rotated +Y axis is
// sim.PanelNormal(tilt, azimuth), so the drawn panel faces where the
// simulation says it does.
func PanelModel(pos, size math.Vec3, tiltDeg, azimuthDeg float32) math.Mat4 {
	return math.Compose(
		math.TranslateVec(pos),
		math.Translate(0, PostHeight, 0),
		math.RotateY(math.Radians(azimuthDeg)),
		math.RotateX(math.Radians(tiltDeg)),
		math.ScaleVec(size),
	)
}

// ChargeBarModel returns the green bar for a charge percentage. The bar
// grows from the bottom of the red backing and sits just in front of it.
// There is no bar at 0%.
func ChargeBarModel(percent float32) (math.Mat4, bool) {
	if percent <= 0 {
		return math.Mat4{}, false
	}
	h := BarMaxHeight * percent / 100
	pos := BatteryPosition.Add(barOffset).Add(math.Vec3{X: 0, Y: (h - BarMaxHeight) / 2, Z: 0.01})
	return boxModel(pos, math.Vec3{X: barWidth, Y: h, Z: barDepth}), true
}

func boxModel(pos, size math.Vec3) math.Mat4 {
	return math.Compose(math.TranslateVec(pos), math.ScaleVec(size))
}
