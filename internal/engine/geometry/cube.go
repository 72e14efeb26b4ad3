package geometry

// Cube is the unit cube centered on the origin, one texture per face.
type Cube struct{}

var cubeVertices = [...]float32{
	// back (-Z)
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	-0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	// front (+Z)
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	// left (-X)
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, -1, 0, 0, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	// right (+X)
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	// bottom (-Y)
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 0,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	// top (+Y)
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
}

func (Cube) build() Mesh {
	return fromFloats("cube", cubeVertices[:])
}

func fromFloats(name string, data []float32) Mesh {
	verts := make([]Vertex, 0, len(data)/FloatsPerVertex)
	for i := 0; i+FloatsPerVertex <= len(data); i += FloatsPerVertex {
		d := data[i : i+FloatsPerVertex]
		verts = append(verts, vertex(d[0], d[1], d[2], d[3], d[4], d[5], d[6], d[7]))
	}
	return Mesh{Name: name, Vertices: verts}
}
