package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/solarfarm/internal/engine/renderer"
	"github.com/Faultbox/solarfarm/internal/sim"
	"github.com/Faultbox/solarfarm/pkg/math"
)

var testMaterials = Materials{Grass: 1, Panel: 2, Metal: 3, Red: 4, Green: 5, Sign: 6}

func TestComposeDrawOrder(t *testing.T) {
	state := sim.NewSimulationState(sim.DefaultParams())
	draws := Compose(state, state.Panel(), testMaterials)

	// ground + 6 x (post, panel) + battery + red + green + sign post + board
	require.Len(t, draws, 1+12+3+2)

	assert.Equal(t, renderer.MeshPlane, draws[0].Mesh)
	assert.Equal(t, math.Identity(), draws[0].Model)
	assert.Equal(t, testMaterials.Grass, draws[0].Texture)

	for i := 0; i < 6; i++ {
		post, panel := draws[1+2*i], draws[2+2*i]
		assert.Equal(t, renderer.MeshCylinder, post.Mesh)
		assert.Equal(t, testMaterials.Metal, post.Texture)
		assert.Equal(t, renderer.MeshCube, panel.Mesh)
		assert.Equal(t, testMaterials.Panel, panel.Texture)
	}

	textures := make([]uint32, 0, 5)
	for _, d := range draws[13:] {
		assert.Equal(t, renderer.MeshCube, d.Mesh)
		textures = append(textures, d.Texture)
	}
	assert.Equal(t, []uint32{3, 4, 5, 3, 6}, textures)
}

func TestComposeEmptyBatteryHasNoGreenBar(t *testing.T) {
	p := sim.DefaultParams()
	p.InitialKWh = 0
	state := sim.NewSimulationState(p)

	draws := Compose(state, state.Panel(), testMaterials)
	require.Len(t, draws, 1+12+2+2)
	for _, d := range draws {
		assert.NotEqual(t, testMaterials.Green, d.Texture)
	}
}

func TestComposeFollowsLayout(t *testing.T) {
	state := sim.NewSimulationState(sim.DefaultParams())
	state.Layout.SetCols(10)

	draws := Compose(state, state.Panel(), testMaterials)
	assert.Len(t, draws, 1+2*20+5)
}

func TestPostStandsOnGround(t *testing.T) {
	pos := math.Vec3{X: -4, Y: 0, Z: -12.5}
	m := PostModel(pos)

	// unit cylinder spans y in [-0.5, 0.5]
	assert.True(t, m.TransformPoint(math.Vec3{Y: -0.5}).ApproxEqual(pos, 1e-5))
	assert.True(t, m.TransformPoint(math.Vec3{Y: 0.5}).ApproxEqual(pos.Add(math.Vec3{Y: PostHeight}), 1e-5))
	assert.True(t, m.TransformPoint(math.Vec3{X: 0.5}).ApproxEqual(math.Vec3{X: -4 + 0.075, Y: 1, Z: -12.5}, 1e-5))
}

func TestPanelFacesSimulatedNormal(t *testing.T) {
	pos := math.Vec3{X: 4, Y: 0, Z: -7.5}
	size := math.Vec3{X: 2.4, Y: 0.05, Z: 1.3}

	for _, tilt := range []float32{0, 20, 45, 90} {
		for _, az := range []float32{0, 90, 135, 270} {
			m := PanelModel(pos, size, tilt, az)

			center := m.TransformPoint(math.Origin)
			assert.True(t, center.ApproxEqual(math.Vec3{X: 4, Y: PostHeight, Z: -7.5}, 1e-5))

			up := m.TransformDirection(math.UnitY).Normalize()
			want := sim.PanelNormal(tilt, az)
			assert.True(t, up.ApproxEqual(want, 1e-5), "tilt %v az %v: got %v want %v", tilt, az, up, want)
		}
	}
}

func TestChargeBarGrowsFromBottom(t *testing.T) {
	bottom := BatteryPosition.Y - BarMaxHeight/2

	for _, pct := range []float32{1, 25, 50, 80, 100} {
		m, ok := ChargeBarModel(pct)
		require.True(t, ok)

		low := m.TransformPoint(math.Vec3{Y: -0.5})
		high := m.TransformPoint(math.Vec3{Y: 0.5})
		assert.InDelta(t, bottom, low.Y, 1e-5, "pct %v", pct)
		assert.InDelta(t, BarMaxHeight*pct/100, high.Y-low.Y, 1e-5, "pct %v", pct)
		// drawn in front of the red backing
		assert.InDelta(t, BatteryPosition.Z+0.52, low.Z, 1e-5)
	}

	_, ok := ChargeBarModel(0)
	assert.False(t, ok)
}
