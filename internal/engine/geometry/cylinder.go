package geometry

import "github.com/chewxy/math32"

// Cylinder is a capped cylinder centered on the origin, axis along Y.
type Cylinder struct {
	Radius float32
	Height float32
	Sides  int
}

// DefaultCylinder is the unit post used under every panel.
func DefaultCylinder() Cylinder {
	return Cylinder{Radius: 0.5, Height: 1, Sides: 16}
}

func (c Cylinder) build() Mesh {
	sides := c.Sides
	if sides < 3 {
		sides = 3
	}
	r, height := c.Radius, c.Height
	if r <= 0 {
		r = 0.5
	}
	if height <= 0 {
		height = 1
	}
	half := height / 2
	n := float32(sides)

	ring := make([][2]float32, sides+1)
	for i := 0; i <= sides; i++ {
		s, co := math32.Sincos(float32(i) / n * 2 * math32.Pi)
		ring[i] = [2]float32{r * co, r * s}
	}

	verts := make([]Vertex, 0, sides*12)

	// body: two triangles per segment, normals point straight out
	for i := 0; i < sides; i++ {
		xi, zi := ring[i][0], ring[i][1]
		xj, zj := ring[i+1][0], ring[i+1][1]
		ui, uj := float32(i)/n, float32(i+1)/n

		verts = append(verts,
			vertex(xi, half, zi, xi, 0, zi, ui, 1),
			vertex(xi, -half, zi, xi, 0, zi, ui, 0),
			vertex(xj, half, zj, xj, 0, zj, uj, 1),

			vertex(xj, half, zj, xj, 0, zj, uj, 1),
			vertex(xi, -half, zi, xi, 0, zi, ui, 0),
			vertex(xj, -half, zj, xj, 0, zj, uj, 0),
		)
	}

	// caps: fans around the axis, cap UVs centered on (0.5, 0.5)
	for i := 0; i < sides; i++ {
		xi, zi := ring[i][0], ring[i][1]
		xj, zj := ring[i+1][0], ring[i+1][1]

		verts = append(verts,
			vertex(0, half, 0, 0, 1, 0, 0.5, 0.5),
			vertex(xi, half, zi, 0, 1, 0, xi+0.5, zi+0.5),
			vertex(xj, half, zj, 0, 1, 0, xj+0.5, zj+0.5),

			vertex(0, -half, 0, 0, -1, 0, 0.5, 0.5),
			vertex(xj, -half, zj, 0, -1, 0, xj+0.5, zj+0.5),
			vertex(xi, -half, zi, 0, -1, 0, xi+0.5, zi+0.5),
		)
	}

	return Mesh{Name: "cylinder", Vertices: verts}
}
