package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/solarfarm/internal/logger"
)

// Sign raster geometry.
const (
	SignWidth  = 256
	SignHeight = 128

	signTitle     = "GERACAO"
	signTitleSize = 34
	signTitleTop  = 22
	signValueSize = 42
	signValueTop  = 60

	ledPitch  = 2
	ledRadius = 1
)

// Sign colours.
var (
	SignBackground = color.RGBA{R: 5, G: 5, B: 15, A: 255}
	SignLED        = color.RGBA{R: 150, G: 240, B: 255, A: 255}
)

// FormatPower is the text shown on the sign for a generation value.
func FormatPower(kw float32) string {
	return fmt.Sprintf("%.2f kW", kw)
}

// SignRaster draws the LED signboard bitmap.
type SignRaster struct {
	title font.Face
	value font.Face
}

// NewSignRaster loads the signboard faces.
func NewSignRaster() (*SignRaster, error) {
	f, err := opentype.Parse(lmsans10bold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing sign font: %w", err)
	}
	title, err := opentype.NewFace(f, &opentype.FaceOptions{Size: signTitleSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("sign title face: %w", err)
	}
	value, err := opentype.NewFace(f, &opentype.FaceOptions{Size: signValueSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("sign value face: %w", err)
	}
	return &SignRaster{title: title, value: value}, nil
}

// Render returns the sign for a generation value, top row first.
func (r *SignRaster) Render(kw float32) *image.RGBA {
	return r.RenderText(signTitle, FormatPower(kw))
}

// RenderText draws title and value as plain text, then resamples the text
// onto an LED grid: every ledPitch-th pixel that carries any ink lights a
// round LED of ledRadius.
func (r *SignRaster) RenderText(title, value string) *image.RGBA {
	bounds := image.Rect(0, 0, SignWidth, SignHeight)

	text := image.NewRGBA(bounds)
	draw.Draw(text, bounds, image.NewUniform(SignBackground), image.Point{}, draw.Src)
	drawCentered(text, r.title, title, signTitleTop)
	drawCentered(text, r.value, value, signValueTop)

	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(SignBackground), image.Point{}, draw.Src)
	for y := 0; y < SignHeight; y += ledPitch {
		for x := 0; x < SignWidth; x += ledPitch {
			if text.RGBAAt(x, y) != SignBackground {
				led(out, x, y)
			}
		}
	}
	return out
}

// drawCentered draws s centered horizontally with the top of its ink at top.
func drawCentered(dst *image.RGBA, face font.Face, s string, top int) {
	b, _ := font.BoundString(face, s)
	width := (b.Max.X - b.Min.X).Ceil()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(SignLED),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I((SignWidth-width)/2) - b.Min.X,
			Y: fixed.I(top) - b.Min.Y,
		},
	}
	d.DrawString(s)
}

func led(dst *image.RGBA, cx, cy int) {
	for dy := -ledRadius; dy <= ledRadius; dy++ {
		for dx := -ledRadius; dx <= ledRadius; dx++ {
			if dx*dx+dy*dy > ledRadius*ledRadius {
				continue
			}
			p := image.Pt(cx+dx, cy+dy)
			if p.In(dst.Rect) {
				dst.SetRGBA(p.X, p.Y, SignLED)
			}
		}
	}
}

// Sign is the signboard texture. It is re-rasterized only when the displayed
// text changes.
type Sign struct {
	tex    *Texture
	raster *SignRaster
	shown  string
}

// NewSign allocates the sign texture.
func NewSign(raster *SignRaster) *Sign {
	s := &Sign{
		tex:    Allocate(SignWidth, SignHeight, Pixelated()),
		raster: raster,
	}
	logger.Debug("sign texture allocated", zap.Uint32("id", s.tex.ID))
	return s
}

// ID returns the GL texture name.
func (s *Sign) ID() uint32 {
	return s.tex.ID
}

// SetPower shows kw on the sign.
func (s *Sign) SetPower(kw float32) error {
	text := FormatPower(kw)
	if text == s.shown {
		return nil
	}
	// GL expects the bottom row first
	img := transform.FlipV(s.raster.Render(kw))
	if err := s.tex.Update(img); err != nil {
		return fmt.Errorf("updating sign: %w", err)
	}
	s.shown = text
	return nil
}

// Delete releases the texture.
func (s *Sign) Delete() {
	s.tex.Delete()
}
