package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/solarfarm/pkg/math"
)

// Frustum is the orthographic box rendered into the shadow map.
type Frustum struct {
	HalfExtent float32
	Near       float32
	Far        float32
}

// DefaultFrustum covers the whole farm from a sun up to ~80 units away.
func DefaultFrustum() Frustum {
	return Frustum{HalfExtent: 40, Near: 1, Far: 80}
}

// Projection returns the light's orthographic projection.
func (f Frustum) Projection() math.Mat4 {
	return math.Ortho(-f.HalfExtent, f.HalfExtent, -f.HalfExtent, f.HalfExtent, f.Near, f.Far)
}

// LightView looks from the light position at target. When the light sits
// straight above or below the target the world up is swapped for +Z so the
// basis stays defined.
func LightView(lightPos, target math.Vec3) math.Mat4 {
	up := math.UnitY
	dir := lightPos.Sub(target).Normalize()
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}
	return math.LookAt(lightPos, target, up)
}

// LightSpaceMatrix maps world positions into the light's clip space:
// projection * view, looking from lightPos at the world origin.
func LightSpaceMatrix(lightPos math.Vec3, f Frustum) math.Mat4 {
	return f.Projection().Mul(LightView(lightPos, math.Origin))
}

// ProjectToMap returns the shadow map coordinates of a world position: xy is
// the texel coordinate in [0,1] and z the depth as stored by the depth pass.
func ProjectToMap(lightSpace math.Mat4, world math.Vec3) math.Vec3 {
	clip := lightSpace.MulVec4(math.Vec4{world.X, world.Y, world.Z, 1})
	ndc := math.Vec3{X: clip[0] / clip[3], Y: clip[1] / clip[3], Z: clip[2] / clip[3]}
	return math.Vec3{X: ndc.X*0.5 + 0.5, Y: ndc.Y*0.5 + 0.5, Z: ndc.Z*0.5 + 0.5}
}

// Bias is the slope-scaled depth bias for a surface with the given
// dot(N, L).
func Bias(nDotL float32) float32 {
	return math32.Max(0.05*(1-nDotL), 0.005)
}

// Occluded is the CPU form of the lit shader's shadow test. Fragments past
// the far plane (depth > 1) are never shadowed.
func Occluded(current, closest, nDotL float32) bool {
	if current > 1 {
		return false
	}
	return current-Bias(nDotL) > closest
}
