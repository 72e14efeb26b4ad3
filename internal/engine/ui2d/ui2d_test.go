package ui2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/Faultbox/solarfarm/pkg/math"
)

func TestBuildAtlasBitmapFont(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, HUDRunes)

	assert.Equal(t, 13, a.LineHeight)
	require.Contains(t, a.Glyphs, 'A')

	for r, g := range a.Glyphs {
		assert.Equal(t, float32(7), g.Advance, "rune %q", r)
		assert.True(t, g.U0 >= 0 && g.U1 <= 1 && g.U0 < g.U1, "rune %q u", r)
		assert.True(t, g.V0 >= 0 && g.V1 <= 1 && g.V0 < g.V1, "rune %q v", r)
	}

	// 'A' leaves some ink in its cell; ' ' none
	ink := func(r rune) int {
		g := a.Glyphs[r]
		b := a.Image.Bounds()
		x0, x1 := int(g.U0*float32(b.Dx())), int(g.U1*float32(b.Dx()))
		y0, y1 := int(g.V0*float32(b.Dy())), int(g.V1*float32(b.Dy()))
		n := 0
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if a.Image.AlphaAt(x, y).A > 0 {
					n++
				}
			}
		}
		return n
	}
	assert.Positive(t, ink('A'))
	assert.Zero(t, ink(' '))
}

func TestAtlasFallbackGlyph(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, []rune("?AB"))

	g, ok := a.Glyph('Z')
	require.True(t, ok)
	assert.Equal(t, a.Glyphs['?'], g)
}

func TestMeasureText(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, HUDRunes)

	w, h := a.MeasureText("Status", 1)
	assert.Equal(t, float32(6*7), w)
	assert.Equal(t, float32(13), h)

	w, h = a.MeasureText("ab\nlonger", 2)
	assert.Equal(t, float32(6*7*2), w)
	assert.Equal(t, float32(2*13*2), h)
}

func TestAppendText(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, HUDRunes)

	verts := appendText(nil, a, 10, 20, "a b", 1, ColorWhite)
	// two glyphs, the space only advances
	require.Len(t, verts, 2*6*textStride)

	// second glyph starts two advances right of the first
	secondX := verts[6*textStride]
	assert.Equal(t, float32(10+2*7), secondX)

	verts = appendText(nil, a, 10, 20, "a\nb", 1, ColorWhite)
	require.Len(t, verts, 2*6*textStride)
	assert.Equal(t, float32(10), verts[6*textStride])
	assert.Equal(t, float32(20+13), verts[6*textStride+1])
}

func TestAppendQuad(t *testing.T) {
	c := RGB(255, 0, 0)
	verts := appendQuad(nil, 1, 2, 3, 4, c)
	require.Len(t, verts, 6*solidStride)
	assert.Equal(t, []float32{1, 2, 0, 1, 0, 0, 1}, verts[:solidStride])
	assert.Equal(t, []float32{4, 6, 0, 1, 0, 0, 1}, verts[2*solidStride:3*solidStride])
}

func TestScreenProjection(t *testing.T) {
	p := ScreenProjection(1280, 720)

	assert.True(t, p.TransformPoint(math.Vec3{}).ApproxEqual(math.Vec3{X: -1, Y: 1}, 1e-6))
	assert.True(t, p.TransformPoint(math.Vec3{X: 1280, Y: 720}).ApproxEqual(math.Vec3{X: 1, Y: -1}, 1e-6))
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, Color{1, 0, 0, 1}, RGB(255, 0, 0))
	assert.Equal(t, Color{0, 0, 1, 0}, RGBA(0, 0, 255, 0))
	assert.Equal(t, float32(0.5), ColorWhite.WithAlpha(0.5).A)
	assert.Equal(t, Color{0, 0, 0, 0.6}, ColorTextShadow)
	assert.InDelta(t, 0.6, ColorPanelBorder.A, 1e-6)
}
