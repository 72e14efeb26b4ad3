// Package lighting holds the light terms of the lit pass and a CPU form of
// its shading equation.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/solarfarm/pkg/math"
)

// Params are the lit pass uniforms that do not change per draw.
type Params struct {
	// Ambient scales the albedo into the ambient term, which is modulated by
	// the albedo again, so a fully shadowed fragment keeps Ambient*albedo².
	Ambient float32
	// Color tints the direct sunlight.
	Color math.Vec3
}

// Default returns plain white sunlight over a 25% ambient floor.
func Default() Params {
	return Params{Ambient: 0.25, Color: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// SunDirection returns the unit vector from a surface point towards the sun.
func SunDirection(sunPos, fragPos math.Vec3) math.Vec3 {
	return sunPos.Sub(fragPos).Normalize()
}

// Diffuse is the Lambert term for a unit normal and light direction.
func Diffuse(normal, lightDir math.Vec3) float32 {
	return math32.Max(normal.Dot(lightDir), 0)
}

// Shade mirrors the lit fragment shader: (ambient*albedo + (1-shadow) *
// diffuse * light) * albedo. shadow is 0 for lit fragments and 1 for occluded
// ones.
func (p Params) Shade(albedo, normal, lightDir math.Vec3, shadow float32) math.Vec3 {
	diff := Diffuse(normal, lightDir) * (1 - shadow)
	return math.Vec3{
		X: (p.Ambient*albedo.X + diff*p.Color.X) * albedo.X,
		Y: (p.Ambient*albedo.Y + diff*p.Color.Y) * albedo.Y,
		Z: (p.Ambient*albedo.Z + diff*p.Color.Z) * albedo.Z,
	}
}
