package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/engine/lighting"
	"github.com/Faultbox/solarfarm/internal/engine/shader"
	"github.com/Faultbox/solarfarm/internal/engine/shaders"
	"github.com/Faultbox/solarfarm/internal/engine/shadow"
	"github.com/Faultbox/solarfarm/internal/logger"
	"github.com/Faultbox/solarfarm/pkg/math"
)

// Texture units used by the lit program.
const (
	DiffuseUnit = 0
	ShadowUnit  = 1
)

// DrawCommand is one object of the scene. The same list feeds the depth
// pass and the lit pass.
type DrawCommand struct {
	Mesh    MeshID
	Model   math.Mat4
	Texture uint32
}

// Frame carries the per-frame camera and light inputs.
type Frame struct {
	Width, Height int32
	View          math.Mat4
	Projection    math.Mat4
	CameraPos     math.Vec3
	SunPos        math.Vec3
}

// Options configures the shadow pipeline.
type Options struct {
	ShadowResolution int32
	Frustum          shadow.Frustum
	ClearColor       math.Vec3
	SunColor         math.Vec3
	SunScale         float32
	Light            lighting.Params
}

// DefaultOptions returns the farm's pipeline settings.
func DefaultOptions() Options {
	return Options{
		ShadowResolution: shadow.DefaultResolution,
		Frustum:          shadow.DefaultFrustum(),
		ClearColor:       math.Vec3{X: 0.5, Y: 0.8, Z: 1.0},
		SunColor:         math.Vec3{X: 1.0, Y: 1.0, Z: 0.8},
		SunScale:         2,
		Light:            lighting.Default(),
	}
}

// ShadowRenderer draws a scene in two passes: depth from the sun into the
// shadow map, then the lit scene sampling it. The sun marker is drawn last.
type ShadowRenderer struct {
	opts Options

	depth *shader.Program
	lit   *shader.Program
	sun   *shader.Program

	shadowMap *shadow.Map
	meshes    [meshCount]*GPUMesh
}

// NewShadowRenderer compiles the programs, creates the shadow map and uploads
// the primitive meshes. Any failure is fatal to the caller.
func NewShadowRenderer(opts Options) (*ShadowRenderer, error) {
	r := &ShadowRenderer{opts: opts}

	var err error
	if r.depth, err = shader.New("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		return nil, err
	}
	if r.lit, err = shader.New("lit", shaders.LitVertexShader, shaders.LitFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.sun, err = shader.New("sun", shaders.SunVertexShader, shaders.SunFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	if r.shadowMap, err = shadow.NewMap(opts.ShadowResolution); err != nil {
		r.Close()
		return nil, fmt.Errorf("create shadow map: %w", err)
	}

	if r.meshes, err = uploadPrimitives(); err != nil {
		r.Close()
		return nil, err
	}

	r.lit.Use()
	r.lit.SetInt("diffuseTexture", DiffuseUnit)
	r.lit.SetInt("shadowMap", ShadowUnit)
	gl.UseProgram(0)

	logger.Info("shadow renderer created",
		zap.Uint32("depthProgram", r.depth.ID),
		zap.Uint32("litProgram", r.lit.ID),
		zap.Uint32("sunProgram", r.sun.ID),
		zap.Int32("shadowResolution", r.shadowMap.Resolution),
	)
	return r, nil
}

// LightSpaceMatrix returns the matrix the depth pass renders with for a sun
// at sunPos.
func (r *ShadowRenderer) LightSpaceMatrix(sunPos math.Vec3) math.Mat4 {
	return shadow.LightSpaceMatrix(sunPos, r.opts.Frustum)
}

// Render draws one frame into the default framebuffer.
func (r *ShadowRenderer) Render(f Frame, draws []DrawCommand) {
	lightSpace := r.LightSpaceMatrix(f.SunPos)

	// Pass A: depth from the sun
	r.shadowMap.Bind()
	r.depth.Use()
	r.depth.SetMat4("lightSpaceMatrix", lightSpace)
	for _, d := range draws {
		r.depth.SetMat4("model", d.Model)
		r.meshes[d.Mesh].Draw()
	}
	r.shadowMap.Unbind()

	// Pass B: lit scene
	gl.Viewport(0, 0, f.Width, f.Height)
	c := r.opts.ClearColor
	gl.ClearColor(c.X, c.Y, c.Z, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.lit.Use()
	r.lit.SetMat4("projection", f.Projection)
	r.lit.SetMat4("view", f.View)
	r.lit.SetVec3("viewPos", f.CameraPos)
	r.lit.SetVec3("lightPos", f.SunPos)
	r.lit.SetFloat("ambient", r.opts.Light.Ambient)
	r.lit.SetVec3("lightColor", r.opts.Light.Color)
	r.lit.SetMat4("lightSpaceMatrix", lightSpace)
	r.shadowMap.BindTexture(gl.TEXTURE0 + ShadowUnit)

	for _, d := range draws {
		gl.ActiveTexture(gl.TEXTURE0 + DiffuseUnit)
		gl.BindTexture(gl.TEXTURE_2D, d.Texture)
		r.lit.SetMat4("model", d.Model)
		r.meshes[d.Mesh].Draw()
	}

	r.drawSun(f)

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// SunModel places the marker sphere at the sun.
func SunModel(sunPos math.Vec3, scale float32) math.Mat4 {
	return math.Compose(math.TranslateVec(sunPos), math.Scale(scale, scale, scale))
}

func (r *ShadowRenderer) drawSun(f Frame) {
	gl.DepthMask(false)
	r.sun.Use()
	r.sun.SetMat4("projection", f.Projection)
	r.sun.SetMat4("view", f.View)
	r.sun.SetMat4("model", SunModel(f.SunPos, r.opts.SunScale))
	r.sun.SetVec3("sunColor", r.opts.SunColor)
	r.meshes[MeshSphere].Draw()
	gl.DepthMask(true)
}

// Close releases every GPU resource the renderer owns.
func (r *ShadowRenderer) Close() {
	logger.Info("closing shadow renderer")
	for _, m := range r.meshes {
		if m != nil {
			m.Delete()
		}
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	for _, p := range []*shader.Program{r.depth, r.lit, r.sun} {
		if p != nil {
			p.Delete()
		}
	}
}
