// Package sim holds the per-frame solar farm model: sun position, panel
// output and the battery bank fed by it.
package sim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/solarfarm/pkg/math"
)

// Sun arc parameters.
const (
	SunArcRadius = 25.0
	SunMaxHeight = 30.0
	// SunArcX is the constant x offset of the arc.
	SunArcX = 10.0
)

// PanelReferencePoint is where sun direction is measured from when computing
// panel efficiency.
var PanelReferencePoint = math.Vec3{X: 0, Y: 2, Z: 0}

// SunState is the sun for the current frame.
type SunState struct {
	Position   math.Vec3
	Irradiance float32
}

// SunPosition maps an hour in [0,24) onto an arc that rises at 06:00, peaks
// at 12:00 and sets at 18:00. Outside that window the sun is parked below
// the ground at (0, -SunMaxHeight, 0).
func SunPosition(hour float32) math.Vec3 {
	theta := (hour - 6) / 12 * math32.Pi
	if theta < 0 || theta > math32.Pi {
		return math.Vec3{X: 0, Y: -SunMaxHeight, Z: 0}
	}
	s, c := math32.Sincos(theta)
	return math.Vec3{X: SunArcX, Y: SunMaxHeight * s, Z: SunArcRadius * c}
}

// Irradiance is the sun elevation relative to its peak, clamped at zero.
func Irradiance(sun math.Vec3) float32 {
	return math32.Max(0, sun.Y/SunMaxHeight)
}

// NewSunState derives the sun for hour.
func NewSunState(hour float32) SunState {
	pos := SunPosition(hour)
	return SunState{Position: pos, Irradiance: Irradiance(pos)}
}

// PanelNormal returns the surface normal of a panel tilted by tiltDeg about
// X and turned by azimuthDeg about the vertical axis.
func PanelNormal(tiltDeg, azimuthDeg float32) math.Vec3 {
	st, ct := math32.Sincos(math.Radians(tiltDeg))
	sa, ca := math32.Sincos(math.Radians(azimuthDeg))
	// base normal (0, ct, st) rotated about Y
	return math.Vec3{X: sa * st, Y: ct, Z: ca * st}
}

// Efficiency is the cosine loss between the panel normal and the direction
// towards the sun, clamped to [0,1] so back-lit panels contribute nothing.
func Efficiency(normal, sun math.Vec3) float32 {
	toSun := sun.Sub(PanelReferencePoint).Normalize()
	return math.Clamp(normal.Dot(toSun), 0, 1)
}

// GeneratedPowerKW is the field output in kilowatts.
func GeneratedPowerKW(panels, wattage int, efficiency, irradiance float32) float32 {
	return float32(panels) * float32(wattage) * efficiency * irradiance / 1000
}
