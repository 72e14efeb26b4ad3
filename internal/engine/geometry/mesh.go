// Package geometry generates the procedural primitives drawn by the farm
// scene. Every builder is pure: the same parameters always produce the same
// vertex sequence.
package geometry

// FloatsPerVertex is the interleaved layout: position(3) normal(3) uv(2).
const FloatsPerVertex = 8

// Vertex is one interleaved mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Mesh is a non-indexed triangle list ready for GPU upload.
type Mesh struct {
	Name     string
	Vertices []Vertex
}

// Count returns the number of vertices to draw.
func (m Mesh) Count() int32 {
	return int32(len(m.Vertices))
}

// Floats flattens the mesh into the interleaved upload layout.
func (m Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return out
}

// Shape selects a primitive and carries its parameters.
type Shape interface {
	build() Mesh
}

// Build generates the mesh for shape.
func Build(shape Shape) Mesh {
	return shape.build()
}

func vertex(px, py, pz, nx, ny, nz, u, v float32) Vertex {
	return Vertex{
		Position: [3]float32{px, py, pz},
		Normal:   [3]float32{nx, ny, nz},
		UV:       [2]float32{u, v},
	}
}
