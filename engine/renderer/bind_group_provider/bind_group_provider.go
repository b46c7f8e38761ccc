package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources populated by the renderer backend.

	// bindGroup is the GPU bind group, or nil if the provider only holds geometry.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the layout bindGroup was created from. Pipelines drawing with this
	// provider are created against the same layout.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds uniform and per-instance buffers keyed by binding or vertex slot.
	buffers map[int]*wgpu.Buffer

	// vertexBuffer is the mesh vertex buffer, or nil for non-geometry providers.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the mesh index buffer, or nil for non-geometry providers.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices DrawIndexed issues for this provider.
	indexCount int
}

// BindGroupProvider owns the GPU resources a draw binds: either a uniform bind group with its
// buffers, or the vertex and index buffers of one mesh.
//
// Usage pattern:
//  1. The renderer creates a provider per mesh and one for the per-camera uniforms
//  2. The backend creates the GPU resources and stores them on the provider
//  3. Uniform data is written through BufferWrite entries each frame
//  4. Draw calls read the bind group and buffers back off the provider
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group, or nil if not initialized
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created from.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout, or nil if not initialized
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer stored under a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if none exists
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the mesh vertex buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if not initialized
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the mesh index buffer.
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if not initialized
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup stores the created bind group.
	//
	// Parameters:
	//   - bg: the bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout used for the bind group.
	//
	// Parameters:
	//   - bgl: the layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a buffer under a binding index, releasing any buffer it replaces.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer stores the mesh vertex buffer.
	//
	// Parameters:
	//   - buf: the buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the mesh index buffer.
	//
	// Parameters:
	//   - buf: the buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount stores the number of indices to draw.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label, used as the prefix of every GPU object label
//   - options: functional options to configure the provider
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
