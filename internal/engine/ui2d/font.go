package ui2d

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-fonts/latin-modern/lmsans10regular"
	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the HUD text size in pixels.
const DefaultFontSize = 20

const atlasColumns = 16

// HUDRunes is the character set baked into the HUD atlas: printable ASCII
// plus the accented letters used by Portuguese labels.
var HUDRunes = append(asciiRunes(), []rune("áàâãçéêíóôõúÁÀÂÃÇÉÊÍÓÔÕÚ°")...)

func asciiRunes() []rune {
	rs := make([]rune, 0, 95)
	for r := rune(32); r < 127; r++ {
		rs = append(rs, r)
	}
	return rs
}

// Glyph locates one rune in the atlas. Sizes are in pixels at scale 1.
type Glyph struct {
	U0, V0, U1, V1 float32
	Width          float32
	Advance        float32
}

// Atlas is a grid of pre-rendered glyph cells. Pixel alpha is coverage.
type Atlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	LineHeight int
}

// BuildAtlas rasterizes runes from face into a single alpha image.
func BuildAtlas(face font.Face, runes []rune) *Atlas {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := ascent + m.Descent.Ceil()

	cellW := 1
	for _, r := range runes {
		if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() > cellW {
			cellW = adv.Ceil()
		}
	}

	rows := (len(runes) + atlasColumns - 1) / atlasColumns
	w, h := atlasColumns*cellW, rows*lineHeight
	img := image.NewAlpha(image.Rect(0, 0, w, h))

	a := &Atlas{Image: img, Glyphs: make(map[rune]Glyph, len(runes)), LineHeight: lineHeight}
	d := &font.Drawer{Dst: img, Src: image.Opaque, Face: face}

	for i, r := range runes {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		x := (i % atlasColumns) * cellW
		y := (i / atlasColumns) * lineHeight

		// clip each glyph to its cell so neighbours never bleed
		d.Dst = img.SubImage(image.Rect(x, y, x+cellW, y+lineHeight)).(*image.Alpha)
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(string(r))

		gw := adv.Ceil()
		a.Glyphs[r] = Glyph{
			U0:      float32(x) / float32(w),
			V0:      float32(y) / float32(h),
			U1:      float32(x+gw) / float32(w),
			V1:      float32(y+lineHeight) / float32(h),
			Width:   float32(gw),
			Advance: float32(adv) / 64,
		}
	}
	return a
}

// Glyph returns the glyph for r, or '?' when r is not in the atlas.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	if g, ok := a.Glyphs[r]; ok {
		return g, true
	}
	g, ok := a.Glyphs['?']
	return g, ok
}

// MeasureText returns the width and height of rendered text.
func (a *Atlas) MeasureText(text string, scale float32) (float32, float32) {
	var maxW, lineW float32
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
			lineW = 0
			continue
		}
		if g, ok := a.Glyph(r); ok {
			lineW += g.Advance * scale
		}
		if lineW > maxW {
			maxW = lineW
		}
	}
	return maxW, float32(lines*a.LineHeight) * scale
}

// DefaultFace returns the HUD face, falling back to the built-in bitmap font.
func DefaultFace(size float64) font.Face {
	f, err := opentype.Parse(lmsans10regular.TTF)
	if err == nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// Font is an Atlas uploaded as a texture.
type Font struct {
	*Atlas
	texture uint32
}

// NewFont builds the atlas for face and uploads it. Glyph coverage goes into
// the alpha channel over white.
func NewFont(face font.Face) (*Font, error) {
	atlas := BuildAtlas(face, HUDRunes)
	if len(atlas.Glyphs) == 0 {
		return nil, fmt.Errorf("font has none of the HUD glyphs")
	}

	b := atlas.Image.Bounds()
	rgba := image.NewRGBA(b)
	draw.DrawMask(rgba, b, image.White, image.Point{}, atlas.Image, image.Point{}, draw.Src)

	f := &Font{Atlas: atlas}
	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return f, nil
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// Close releases the atlas texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
