package geometry

import "github.com/chewxy/math32"

// Sphere is a UV sphere built from stacks (latitude) and sectors (longitude).
type Sphere struct {
	Radius  float32
	Sectors int
	Stacks  int
}

// DefaultSphere is the sun marker mesh.
func DefaultSphere() Sphere {
	return Sphere{Radius: 1, Sectors: 36, Stacks: 18}
}

func (s Sphere) build() Mesh {
	sectors, stacks := s.Sectors, s.Stacks
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}
	r := s.Radius
	if r <= 0 {
		r = 1
	}

	// shared grid, stacks run from the north pole down
	grid := make([]Vertex, 0, (stacks+1)*(sectors+1))
	for i := 0; i <= stacks; i++ {
		sinStack, cosStack := math32.Sincos(math32.Pi/2 - float32(i)*math32.Pi/float32(stacks))
		xy, y := r*cosStack, r*sinStack
		for j := 0; j <= sectors; j++ {
			sinSector, cosSector := math32.Sincos(float32(j) * 2 * math32.Pi / float32(sectors))
			x, z := xy*cosSector, xy*sinSector
			grid = append(grid, vertex(x, y, z, x/r, y/r, z/r,
				float32(j)/float32(sectors), float32(i)/float32(stacks)))
		}
	}

	// the first and last stacks collapse into the poles and only need one
	// triangle per sector
	indices := make([]int, 0, sectors*(stacks-1)*6)
	for i := 0; i < stacks; i++ {
		k1 := i * (sectors + 1)
		k2 := k1 + sectors + 1
		for j := 0; j < sectors; j++ {
			if i != 0 {
				indices = append(indices, k1+j, k2+j, k1+j+1)
			}
			if i != stacks-1 {
				indices = append(indices, k1+j+1, k2+j, k2+j+1)
			}
		}
	}

	verts := make([]Vertex, len(indices))
	for n, idx := range indices {
		verts[n] = grid[idx]
	}
	return Mesh{Name: "sphere", Vertices: verts}
}
