package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/solarfarm/internal/engine/geometry"
	"github.com/Faultbox/solarfarm/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// MeshID names one of the shared primitive meshes.
type MeshID int

const (
	MeshCube MeshID = iota
	MeshPlane
	MeshCylinder
	MeshSphere

	meshCount
)

func (id MeshID) String() string {
	switch id {
	case MeshCube:
		return "cube"
	case MeshPlane:
		return "plane"
	case MeshCylinder:
		return "cylinder"
	case MeshSphere:
		return "sphere"
	}
	return fmt.Sprintf("MeshID(%d)", int(id))
}

// Shape returns the geometry the mesh is built from.
func (id MeshID) Shape() geometry.Shape {
	switch id {
	case MeshPlane:
		return geometry.DefaultPlane()
	case MeshCylinder:
		return geometry.DefaultCylinder()
	case MeshSphere:
		return geometry.DefaultSphere()
	}
	return geometry.Cube{}
}

// ErrEmptyMesh is returned when uploading a mesh without vertices.
var ErrEmptyMesh = errors.New("mesh has no vertices")

// GPUMesh is a mesh uploaded to a VAO/VBO pair.
type GPUMesh struct {
	VAO   uint32
	VBO   uint32
	Count int32
}

// UploadMesh copies the interleaved vertices to the GPU and describes the
// layout: location 0 position, 1 normal, 2 uv.
func UploadMesh(m geometry.Mesh) (*GPUMesh, error) {
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("%s: %w", m.Name, ErrEmptyMesh)
	}
	floats := m.Floats()
	g := &GPUMesh{Count: m.Count()}

	gl.GenVertexArrays(1, &g.VAO)
	gl.BindVertexArray(g.VAO)

	gl.GenBuffers(1, &g.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(floats)*4, unsafe.Pointer(&floats[0]), gl.STATIC_DRAW)

	stride := int32(geometry.FloatsPerVertex * 4)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.String("name", m.Name),
		zap.Int32("vertices", g.Count),
		zap.Uint32("vao", g.VAO),
	)
	return g, nil
}

// Draw issues the draw call for the whole mesh.
func (g *GPUMesh) Draw() {
	gl.BindVertexArray(g.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, g.Count)
}

// Delete releases the GPU buffers.
func (g *GPUMesh) Delete() {
	if g.VAO != 0 {
		gl.DeleteVertexArrays(1, &g.VAO)
		g.VAO = 0
	}
	if g.VBO != 0 {
		gl.DeleteBuffers(1, &g.VBO)
		g.VBO = 0
	}
}

// uploadPrimitives uploads every MeshID once.
func uploadPrimitives() ([meshCount]*GPUMesh, error) {
	var meshes [meshCount]*GPUMesh
	for id := MeshID(0); id < meshCount; id++ {
		g, err := UploadMesh(geometry.Build(id.Shape()))
		if err != nil {
			for _, m := range meshes[:id] {
				m.Delete()
			}
			return meshes, fmt.Errorf("upload %s: %w", id, err)
		}
		meshes[id] = g
	}
	return meshes, nil
}
