// Package renderer uploads procedural meshes to the GPU and draws the farm
// with a two-pass directional shadow pipeline.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Info describes the active GL implementation.
type Info struct {
	Version  string
	Renderer string
	GLSL     string
}

// Init loads the GL function pointers and sets the default pipeline state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func Init(cfg Config) (Info, error) {
	if err := gl.Init(); err != nil {
		return Info{}, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	info := Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("glsl", info.GLSL),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return info, nil
}

// Resize updates the default framebuffer viewport.
func Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}
