package scene

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Vertex is the per-vertex input of the forward shaders (locations 0 and 1). Size: 24 bytes.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

type mesh struct {
	id       uuid.UUID
	name     string
	vertices []Vertex
	indices  []uint32
	bounds   common.BoundingSphere
}

// Mesh is immutable indexed triangle geometry in object space.
type Mesh interface {
	// ID returns the mesh's unique identifier.
	ID() uuid.UUID

	// Name returns the mesh's display name.
	Name() string

	// Vertices returns the vertex data. Callers must not modify it.
	Vertices() []Vertex

	// Indices returns the triangle list indices. Callers must not modify it.
	Indices() []uint32

	// VertexCount returns len(Vertices()).
	VertexCount() int

	// Bounds returns the object-space bounding sphere.
	Bounds() common.BoundingSphere
}

var _ Mesh = &mesh{}

// NewMesh creates a mesh from vertex and index data. The bounding sphere is centered on the
// vertex AABB center.
//
// Parameters:
//   - name: the mesh name
//   - vertices: the vertex data
//   - indices: triangle list indices into vertices
//
// Returns:
//   - Mesh: the mesh
func NewMesh(name string, vertices []Vertex, indices []uint32) Mesh {
	return &mesh{
		id:       uuid.New(),
		name:     name,
		vertices: vertices,
		indices:  indices,
		bounds:   boundsOf(vertices),
	}
}

func boundsOf(vertices []Vertex) common.BoundingSphere {
	if len(vertices) == 0 {
		return common.BoundingSphere{}
	}
	lo, hi := vertices[0].Position, vertices[0].Position
	for _, v := range vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	var radius float32
	for _, v := range vertices {
		radius = max(radius, v.Position.Sub(center).Len())
	}
	return common.BoundingSphere{Center: center, Radius: radius}
}

func (m *mesh) ID() uuid.UUID {
	return m.id
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []Vertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) VertexCount() int {
	return len(m.vertices)
}

func (m *mesh) Bounds() common.BoundingSphere {
	return m.bounds
}

// NewCubeMesh creates an axis-aligned cube centered on the origin with per-face normals
// (24 vertices, 36 indices).
//
// Parameters:
//   - size: the edge length
//
// Returns:
//   - Mesh: the cube
func NewCubeMesh(size float32) Mesh {
	h := size / 2
	faces := []struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		c := f.normal.Mul(h)
		u, v := f.u.Mul(h), f.v.Mul(h)
		vertices = append(vertices,
			Vertex{Position: c.Sub(u).Sub(v), Normal: f.normal},
			Vertex{Position: c.Add(u).Sub(v), Normal: f.normal},
			Vertex{Position: c.Add(u).Add(v), Normal: f.normal},
			Vertex{Position: c.Sub(u).Add(v), Normal: f.normal},
		)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh("Cube", vertices, indices)
}

// NewQuadMesh creates a square in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - size: the edge length
//
// Returns:
//   - Mesh: the quad
func NewQuadMesh(size float32) Mesh {
	h := size / 2
	n := mgl32.Vec3{0, 0, 1}
	vertices := []Vertex{
		{Position: mgl32.Vec3{-h, -h, 0}, Normal: n},
		{Position: mgl32.Vec3{h, -h, 0}, Normal: n},
		{Position: mgl32.Vec3{h, h, 0}, Normal: n},
		{Position: mgl32.Vec3{-h, h, 0}, Normal: n},
	}
	return NewMesh("Quad", vertices, []uint32{0, 1, 2, 0, 2, 3})
}

// combineMeshes bakes meshes into one world-space mesh. Normals are transformed by the inverse
// transpose of each model matrix.
func combineMeshes(meshes []Mesh, models []mgl32.Mat4) Mesh {
	total, totalIdx := 0, 0
	for _, m := range meshes {
		total += m.VertexCount()
		totalIdx += len(m.Indices())
	}

	vertices := make([]Vertex, 0, total)
	indices := make([]uint32, 0, totalIdx)
	for i, m := range meshes {
		model := models[i]
		normalMat := model.Mat3().Inv().Transpose()
		base := uint32(len(vertices))
		for _, v := range m.Vertices() {
			vertices = append(vertices, Vertex{
				Position: model.Mul4x1(v.Position.Vec4(1)).Vec3(),
				Normal:   normalMat.Mul3x1(v.Normal).Normalize(),
			})
		}
		for _, idx := range m.Indices() {
			indices = append(indices, base+idx)
		}
	}
	return NewMesh("Combined Mesh", vertices, indices)
}
