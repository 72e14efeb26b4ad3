package geometry

// Plane is a square ground quad on y=0 facing +Y.
type Plane struct {
	HalfSize float32
	// UVRepeat is how many times the texture tiles across the plane.
	UVRepeat float32
}

// DefaultPlane is the 100x100 ground with one texture tile per unit.
func DefaultPlane() Plane {
	return Plane{HalfSize: 50, UVRepeat: 50}
}

func (p Plane) build() Mesh {
	h, r := p.HalfSize, p.UVRepeat
	if h <= 0 {
		h = 1
	}
	return Mesh{Name: "plane", Vertices: []Vertex{
		vertex(h, 0, h, 0, 1, 0, r, r),
		vertex(-h, 0, h, 0, 1, 0, 0, r),
		vertex(-h, 0, -h, 0, 1, 0, 0, 0),
		vertex(h, 0, h, 0, 1, 0, r, r),
		vertex(-h, 0, -h, 0, 1, 0, 0, 0),
		vertex(h, 0, -h, 0, 1, 0, r, 0),
	}}
}
