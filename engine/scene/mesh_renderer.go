package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type meshRenderer struct {
	mu           *sync.RWMutex
	id           uuid.UUID
	name         string
	mesh         Mesh
	material     material.Material
	position     mgl32.Vec3
	rotation     mgl32.Quat
	scale        mgl32.Vec3
	layer        uint8
	sortingOrder int
	enabled      bool
	block        *material.PropertyBlock
}

// MeshRenderer draws a mesh with a material at a transform. Thread-safe for concurrent access.
type MeshRenderer interface {
	// ID returns the renderer's unique identifier.
	ID() uuid.UUID

	// Name returns the renderer's display name.
	Name() string

	// Mesh returns the drawn mesh.
	Mesh() Mesh

	// Material returns the material the renderer is drawn with.
	Material() material.Material

	// SetMaterial replaces the material.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m material.Material)

	// Position returns the world position.
	Position() mgl32.Vec3

	// SetPosition sets the world position.
	//
	// Parameters:
	//   - x, y, z: the world position
	SetPosition(x, y, z float32)

	// Rotation returns the world rotation.
	Rotation() mgl32.Quat

	// SetRotation sets the world rotation.
	//
	// Parameters:
	//   - q: the rotation
	SetRotation(q mgl32.Quat)

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - x, y, z: the scale factors
	SetScale(x, y, z float32)

	// LocalToWorld returns the model matrix (translation * rotation * scale).
	LocalToWorld() mgl32.Mat4

	// WorldBounds returns the mesh bounds transformed to world space.
	WorldBounds() common.BoundingSphere

	// Layer returns the culling layer in [0, 31].
	Layer() uint8

	// SetLayer sets the culling layer. Values above 31 are clamped.
	//
	// Parameters:
	//   - layer: the layer index
	SetLayer(layer uint8)

	// SortingOrder returns the sorting layer order, lower draws first.
	SortingOrder() int

	// SetSortingOrder sets the sorting layer order.
	//
	// Parameters:
	//   - order: the order
	SetSortingOrder(order int)

	// Enabled reports whether the renderer takes part in culling.
	Enabled() bool

	// SetEnabled enables or disables the renderer.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// PropertyBlock returns the per-renderer overrides, nil when none are set.
	PropertyBlock() *material.PropertyBlock

	// SetPropertyBlock replaces the per-renderer overrides. A nil block clears them.
	//
	// Parameters:
	//   - b: the property block
	SetPropertyBlock(b *material.PropertyBlock)
}

var _ MeshRenderer = &meshRenderer{}

// NewMeshRenderer creates a renderer on layer 0 at the origin. Mesh and material are required and
// NewMeshRenderer panics if either is nil.
//
// Parameters:
//   - m: the mesh to draw
//   - mat: the material to draw with
//   - options: functional options to configure the renderer
//
// Returns:
//   - MeshRenderer: the renderer
func NewMeshRenderer(m Mesh, mat material.Material, options ...MeshRendererBuilderOption) MeshRenderer {
	if m == nil {
		panic("scene: NewMeshRenderer requires a non-nil Mesh")
	}
	if mat == nil {
		panic("scene: NewMeshRenderer requires a non-nil Material")
	}

	r := &meshRenderer{
		mu:       &sync.RWMutex{},
		id:       uuid.New(),
		name:     m.Name(),
		mesh:     m,
		material: mat,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
		enabled:  true,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *meshRenderer) ID() uuid.UUID {
	return r.id
}

func (r *meshRenderer) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.name
}

func (r *meshRenderer) Mesh() Mesh {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mesh
}

func (r *meshRenderer) Material() material.Material {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.material
}

func (r *meshRenderer) SetMaterial(m material.Material) {
	if m == nil {
		return
	}
	r.mu.Lock()
	r.material = m
	r.mu.Unlock()
}

func (r *meshRenderer) Position() mgl32.Vec3 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.position
}

func (r *meshRenderer) SetPosition(x, y, z float32) {
	r.mu.Lock()
	r.position = mgl32.Vec3{x, y, z}
	r.mu.Unlock()
}

func (r *meshRenderer) Rotation() mgl32.Quat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rotation
}

func (r *meshRenderer) SetRotation(q mgl32.Quat) {
	r.mu.Lock()
	r.rotation = q.Normalize()
	r.mu.Unlock()
}

func (r *meshRenderer) Scale() mgl32.Vec3 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scale
}

func (r *meshRenderer) SetScale(x, y, z float32) {
	r.mu.Lock()
	r.scale = mgl32.Vec3{x, y, z}
	r.mu.Unlock()
}

func (r *meshRenderer) LocalToWorld() mgl32.Mat4 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.localToWorldLocked()
}

func (r *meshRenderer) localToWorldLocked() mgl32.Mat4 {
	t := mgl32.Translate3D(r.position.X(), r.position.Y(), r.position.Z())
	s := mgl32.Scale3D(r.scale.X(), r.scale.Y(), r.scale.Z())
	return t.Mul4(r.rotation.Mat4()).Mul4(s)
}

func (r *meshRenderer) WorldBounds() common.BoundingSphere {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mesh.Bounds().Transform(r.localToWorldLocked())
}

func (r *meshRenderer) Layer() uint8 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.layer
}

func (r *meshRenderer) SetLayer(layer uint8) {
	r.mu.Lock()
	r.layer = min(layer, 31)
	r.mu.Unlock()
}

func (r *meshRenderer) SortingOrder() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortingOrder
}

func (r *meshRenderer) SetSortingOrder(order int) {
	r.mu.Lock()
	r.sortingOrder = order
	r.mu.Unlock()
}

func (r *meshRenderer) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

func (r *meshRenderer) SetEnabled(enabled bool) {
	r.mu.Lock()
	r.enabled = enabled
	r.mu.Unlock()
}

func (r *meshRenderer) PropertyBlock() *material.PropertyBlock {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.block
}

func (r *meshRenderer) SetPropertyBlock(b *material.PropertyBlock) {
	r.mu.Lock()
	r.block = b
	r.mu.Unlock()
}

// snapshot captures the state culling and drawing read, under one lock.
func (r *meshRenderer) snapshot() rendererState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	model := r.localToWorldLocked()
	return rendererState{
		renderer:     r,
		mesh:         r.mesh,
		material:     r.material,
		model:        model,
		bounds:       r.mesh.Bounds().Transform(model),
		layer:        r.layer,
		sortingOrder: r.sortingOrder,
		enabled:      r.enabled,
		color:        material.ResolveColor(r.material, r.block),
		hasBlock:     !r.block.IsEmpty(),
	}
}

// rendererState is a per-cull copy of a renderer so drawing does not observe later mutation.
type rendererState struct {
	renderer     MeshRenderer
	mesh         Mesh
	material     material.Material
	model        mgl32.Mat4
	bounds       common.BoundingSphere
	layer        uint8
	sortingOrder int
	enabled      bool
	color        common.Color
	hasBlock     bool
	distance     float32
}

// stateOf snapshots any MeshRenderer, using the single-lock path for the built-in implementation.
func stateOf(r MeshRenderer) rendererState {
	if impl, ok := r.(*meshRenderer); ok {
		return impl.snapshot()
	}
	mat := r.Material()
	block := r.PropertyBlock()
	return rendererState{
		renderer:     r,
		mesh:         r.Mesh(),
		material:     mat,
		model:        r.LocalToWorld(),
		bounds:       r.WorldBounds(),
		layer:        r.Layer(),
		sortingOrder: r.SortingOrder(),
		enabled:      r.Enabled(),
		color:        material.ResolveColor(mat, block),
		hasBlock:     !block.IsEmpty(),
	}
}
