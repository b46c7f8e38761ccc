package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeMesh(t *testing.T) {
	cube := NewCubeMesh(2)

	require.Equal(t, 24, cube.VertexCount())
	require.Len(t, cube.Indices(), 36)
	assert.Equal(t, mgl32.Vec3{}, cube.Bounds().Center)
	assert.InDelta(t, math.Sqrt(3), cube.Bounds().Radius, 1e-5)

	for i := 0; i < len(cube.Indices()); i += 3 {
		a := cube.Vertices()[cube.Indices()[i]]
		b := cube.Vertices()[cube.Indices()[i+1]]
		c := cube.Vertices()[cube.Indices()[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize()
		assert.InDelta(t, 1, n.Dot(a.Normal), 1e-5, "triangle %d must wind counter-clockwise", i/3)
	}
}

func TestQuadMesh(t *testing.T) {
	quad := NewQuadMesh(1)
	assert.Equal(t, 4, quad.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, quad.Indices())
	assert.InDelta(t, math.Sqrt(0.5), quad.Bounds().Radius, 1e-5)
}

func TestEmptyMeshBounds(t *testing.T) {
	m := NewMesh("empty", nil, nil)
	assert.Equal(t, common.BoundingSphere{}, m.Bounds())
	assert.NotEqual(t, m.ID(), NewMesh("empty", nil, nil).ID())
}

func TestMeshRendererWorldBounds(t *testing.T) {
	r := NewMeshRenderer(NewCubeMesh(2), unlitMaterial(t),
		WithPosition(5, 0, 0),
		WithScale(1, 3, 1),
	)

	b := r.WorldBounds()
	assert.InDelta(t, 5, b.Center.X(), 1e-5)
	assert.InDelta(t, 3*math.Sqrt(3), b.Radius, 1e-4)

	r.SetLayer(40)
	assert.Equal(t, uint8(31), r.Layer())
}

func TestNewMeshRendererPanics(t *testing.T) {
	assert.Panics(t, func() { NewMeshRenderer(nil, unlitMaterial(t)) })
	assert.Panics(t, func() { NewMeshRenderer(NewQuadMesh(1), nil) })
}
