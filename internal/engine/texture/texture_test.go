package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x2, 24 bpp, BGR, bottom row first
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(1, 1))
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, 32 bpp, top-down: one run of 2 then one raw pixel
	data := tgaHeader(TGATypeRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 10, 20, 30, 40,
		0x00, 1, 2, 3, 4,
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{30, 20, 10, 40}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{30, 20, 10, 40}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{3, 2, 1, 4}, img.RGBAAt(2, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bpp", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated raw", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 4, 1, 24, 0), 0x83, 1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeFormats(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var pngBuf, bmpBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	require.NoError(t, bmp.Encode(&bmpBuf, src))

	for name, data := range map[string][]byte{"a.png": pngBuf.Bytes(), "b.BMP": bmpBuf.Bytes()} {
		img, err := Decode(name, data)
		require.NoError(t, err, name)
		assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds(), name)
		assert.Equal(t, color.RGBA{10, 20, 30, 255}, img.RGBAAt(2, 1), name)
		assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 0), name)
	}

	_, err := Decode("junk.png", []byte("not an image"))
	assert.Error(t, err)
}

func TestFormatPower(t *testing.T) {
	assert.Equal(t, "0.00 kW", FormatPower(0))
	assert.Equal(t, "3.24 kW", FormatPower(3.2412))
	assert.Equal(t, "12.50 kW", FormatPower(12.499999))
}

func TestSignRaster(t *testing.T) {
	r, err := NewSignRaster()
	require.NoError(t, err)

	img := r.Render(3.24)
	require.Equal(t, image.Rect(0, 0, SignWidth, SignHeight), img.Bounds())

	var lit, titleBand, valueBand int
	for y := 0; y < SignHeight; y++ {
		for x := 0; x < SignWidth; x++ {
			c := img.RGBAAt(x, y)
			if c == SignBackground {
				continue
			}
			// only two colours on an LED board
			require.Equal(t, SignLED, c, "pixel (%d,%d)", x, y)
			// LEDs sit on even coordinates and never reach a pixel odd on both axes
			require.False(t, x%2 == 1 && y%2 == 1, "pixel (%d,%d)", x, y)
			lit++
			switch {
			case y >= signTitleTop-1 && y < signValueTop-1:
				titleBand++
			case y >= signValueTop-1:
				valueBand++
			}
		}
	}
	assert.Positive(t, titleBand)
	assert.Positive(t, valueBand)
	assert.Equal(t, lit, titleBand+valueBand, "nothing lit above the title")

	// the board is roughly centered
	var left, right int
	for y := 0; y < SignHeight; y++ {
		for x := 0; x < SignWidth; x++ {
			if img.RGBAAt(x, y) == SignLED {
				if x < SignWidth/2 {
					left++
				} else {
					right++
				}
			}
		}
	}
	assert.InDelta(t, 1, float64(left)/float64(right), 0.5)
}

func TestSignRasterDependsOnValue(t *testing.T) {
	r, err := NewSignRaster()
	require.NoError(t, err)

	a := r.Render(0)
	b := r.Render(0)
	c := r.Render(8.88)
	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestFilesWithDefaults(t *testing.T) {
	files := Files{Panel: "textures/custom_cell.png"}.withDefaults()

	want := DefaultFiles()
	want.Panel = "textures/custom_cell.png"
	assert.Equal(t, want, files)
	assert.Equal(t, DefaultFiles(), Files{}.withDefaults())
}
