// Package texture decodes image assets, uploads them as OpenGL textures and
// rasterizes the farm's LED signboard.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path"
	"strings"
	"unsafe"

	"github.com/anthonynsimon/bild/clone"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/Faultbox/solarfarm/internal/logger"
)

// Texture is an uploaded 2D texture.
type Texture struct {
	ID     uint32
	Width  int32
	Height int32
}

// Params selects sampling state for Upload.
type Params struct {
	Wrap      int32
	MinFilter int32
	MagFilter int32
	Mipmaps   bool
}

// Repeating is the sampling used for tiled scene materials.
func Repeating() Params {
	return Params{
		Wrap:      gl.REPEAT,
		MinFilter: gl.LINEAR_MIPMAP_LINEAR,
		MagFilter: gl.LINEAR,
		Mipmaps:   true,
	}
}

// Pixelated is the sampling used for the LED sign: no smoothing between
// texels so each LED stays crisp.
func Pixelated() Params {
	return Params{
		Wrap:      gl.CLAMP_TO_EDGE,
		MinFilter: gl.NEAREST,
		MagFilter: gl.NEAREST,
	}
}

// Decode decodes an image by file name. TGA is handled here; PNG, JPEG and
// BMP go through the registered image decoders. The result is always RGBA.
func Decode(name string, data []byte) (*image.RGBA, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	logger.Debug("image decoded",
		zap.String("name", name),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return clone.AsRGBA(img), nil
}

// Upload creates a texture from img. Rows are uploaded in image order, so
// texture coordinate v=0 samples the first row.
func Upload(img *image.RGBA, p Params) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	if img.Stride != b.Dx()*4 {
		img = clone.AsRGBA(img)
	}

	t := &Texture{Width: int32(b.Dx()), Height: int32(b.Dy())}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, p.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, p.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, p.MinFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, p.MagFilter)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, t.Width, t.Height, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	if p.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t, nil
}

// Allocate creates an uninitialized RGBA texture of the given size, to be
// filled later with Update.
func Allocate(width, height int32, p Params) *Texture {
	t := &Texture{Width: width, Height: height}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, p.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, p.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, p.MinFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, p.MagFilter)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Update replaces the whole texture contents. img must match the texture size.
func (t *Texture) Update(img *image.RGBA) error {
	b := img.Bounds()
	if int32(b.Dx()) != t.Width || int32(b.Dy()) != t.Height {
		return fmt.Errorf("texture update size %dx%d, want %dx%d", b.Dx(), b.Dy(), t.Width, t.Height)
	}
	if img.Stride != b.Dx()*4 {
		img = clone.AsRGBA(img)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, t.Width, t.Height,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Delete releases the texture.
func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
