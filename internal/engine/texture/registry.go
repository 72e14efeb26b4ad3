package texture

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/logger"
)

// Loader provides raw asset bytes by name.
type Loader interface {
	Load(name string) ([]byte, error)
}

// Files names the image asset for each scene material.
type Files struct {
	Grass string
	Panel string
	Metal string
	Red   string
	Green string
}

// DefaultFiles returns the textures shipped with the binary.
func DefaultFiles() Files {
	return Files{
		Grass: "textures/grass.png",
		Panel: "textures/solar_cell.png",
		Metal: "textures/metal_frame.png",
		Red:   "textures/red.png",
		Green: "textures/green.png",
	}
}

// withDefaults fills every empty entry from DefaultFiles.
func (f Files) withDefaults() Files {
	def := DefaultFiles()
	slots := []struct {
		dst *string
		def string
	}{
		{&f.Grass, def.Grass},
		{&f.Panel, def.Panel},
		{&f.Metal, def.Metal},
		{&f.Red, def.Red},
		{&f.Green, def.Green},
	}
	for _, s := range slots {
		if *s.dst == "" {
			*s.dst = s.def
		}
	}
	return f
}

// Registry holds every texture the scene samples.
type Registry struct {
	Grass *Texture
	Panel *Texture
	Metal *Texture
	Red   *Texture
	Green *Texture
	Sign  *Sign
}

// LoadRegistry decodes and uploads every material and allocates the sign.
// Empty names fall back to the embedded textures. Any failure is returned;
// the scene cannot be drawn without its textures.
func LoadRegistry(l Loader, files Files) (*Registry, error) {
	files = files.withDefaults()
	r := &Registry{}
	slots := []struct {
		name string
		dst  **Texture
	}{
		{files.Grass, &r.Grass},
		{files.Panel, &r.Panel},
		{files.Metal, &r.Metal},
		{files.Red, &r.Red},
		{files.Green, &r.Green},
	}

	for _, s := range slots {
		t, err := load(l, s.name)
		if err != nil {
			r.Delete()
			return nil, err
		}
		*s.dst = t
	}

	raster, err := NewSignRaster()
	if err != nil {
		r.Delete()
		return nil, err
	}
	r.Sign = NewSign(raster)

	return r, nil
}

func load(l Loader, name string) (*Texture, error) {
	data, err := l.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading texture: %w", err)
	}
	img, err := Decode(name, data)
	if err != nil {
		return nil, err
	}
	t, err := Upload(img, Repeating())
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", name, err)
	}
	logger.Info("texture loaded",
		zap.String("name", name),
		zap.Int32("width", t.Width),
		zap.Int32("height", t.Height),
		zap.Uint32("id", t.ID),
	)
	return t, nil
}

// Delete releases every texture loaded so far.
func (r *Registry) Delete() {
	for _, t := range []*Texture{r.Grass, r.Panel, r.Metal, r.Red, r.Green} {
		if t != nil {
			t.Delete()
		}
	}
	if r.Sign != nil {
		r.Sign.Delete()
	}
}
