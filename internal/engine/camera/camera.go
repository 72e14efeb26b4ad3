// Package camera provides the free-fly camera used to walk around the farm.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/solarfarm/pkg/math"
)

// Direction is a movement request from the keyboard.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// MaxPitch is the pitch limit in degrees; keeps the view from flipping over
// the vertical.
const MaxPitch = 89.0

// FlyCamera is a first-person camera pinned to a fixed eye height.
// Angles are in degrees.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	// Basis, recomputed on every orientation change.
	Front   math.Vec3
	Right   math.Vec3
	Up      math.Vec3
	WorldUp math.Vec3

	Speed       float32 // units per second
	Sensitivity float32 // degrees per mouse unit
	EyeHeight   float32

	// Projection
	FOV  float32 // degrees
	Near float32
	Far  float32
}

// NewFlyCamera creates a camera standing behind the battery, looking down -Z.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		Position:    math.Vec3{X: 0, Y: 2.5, Z: 8},
		Yaw:         -90,
		Pitch:       0,
		WorldUp:     math.UnitY,
		Speed:       5,
		Sensitivity: 0.1,
		EyeHeight:   2.5,
		FOV:         45,
		Near:        0.1,
		Far:         100,
	}
	c.Position.Y = c.EyeHeight
	c.updateVectors()
	return c
}

// UpdateOrientation applies a mouse delta. Pitch is clamped to ±MaxPitch.
func (c *FlyCamera) UpdateOrientation(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = math.Clamp(c.Pitch+dy*c.Sensitivity, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// Move walks the camera for dt seconds. Forward and backward follow the
// heading flattened onto the ground so looking up or down does not change
// speed; the eye height is restored afterwards.
func (c *FlyCamera) Move(dir Direction, dt float32) {
	velocity := c.Speed * dt
	flat := c.Front.Flatten().Normalize()

	switch dir {
	case Forward:
		c.Position = c.Position.Add(flat.Scale(velocity))
	case Backward:
		c.Position = c.Position.Sub(flat.Scale(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Scale(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Scale(velocity))
	}
	c.Position.Y = c.EyeHeight
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective matrix for a viewport of aspect w/h.
func (c *FlyCamera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

func (c *FlyCamera) updateVectors() {
	sy, cy := math32.Sincos(math.Radians(c.Yaw))
	sp, cp := math32.Sincos(math.Radians(c.Pitch))

	c.Front = math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
