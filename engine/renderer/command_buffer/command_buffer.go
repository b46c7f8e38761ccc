// Package command_buffer records the rendering commands a camera pass issues between host submissions.
package command_buffer

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CommandType identifies a recorded command.
type CommandType int

const (
	// CommandClearRenderTarget clears depth and/or color of the active target.
	CommandClearRenderTarget CommandType = iota
	// CommandBeginSample opens a named profiler scope.
	CommandBeginSample
	// CommandEndSample closes the innermost profiler scope with the same name.
	CommandEndSample
	// CommandSetGlobalVectorArray uploads a vector array to a global shader property.
	CommandSetGlobalVectorArray
)

// String returns the name of the command type.
func (t CommandType) String() string {
	switch t {
	case CommandClearRenderTarget:
		return "ClearRenderTarget"
	case CommandBeginSample:
		return "BeginSample"
	case CommandEndSample:
		return "EndSample"
	case CommandSetGlobalVectorArray:
		return "SetGlobalVectorArray"
	default:
		return "Unknown"
	}
}

// Command is one recorded entry. Only the fields relevant to Type are set.
type Command struct {
	Type CommandType

	// ClearRenderTarget
	ClearDepth bool
	ClearColor bool
	Background common.Color

	// BeginSample, EndSample, SetGlobalVectorArray
	Name string

	// SetGlobalVectorArray
	Vectors []mgl32.Vec4
}

type commandBufferImpl struct {
	name     string
	commands []Command
}

// CommandBuffer is an ordered list of rendering commands submitted to the host as a unit.
// The pipeline owns one buffer for its lifetime and clears it after every execution.
type CommandBuffer interface {
	// Name returns the buffer name.
	//
	// Returns:
	//   - string: the name given at construction
	Name() string

	// ClearRenderTarget records a clear of the active render target.
	//
	// Parameters:
	//   - clearDepth: whether depth is cleared
	//   - clearColor: whether color is cleared
	//   - background: the color written when clearColor is set
	ClearRenderTarget(clearDepth, clearColor bool, background common.Color)

	// BeginSample records the start of a named profiler scope.
	//
	// Parameters:
	//   - name: the scope name
	BeginSample(name string)

	// EndSample records the end of a named profiler scope.
	//
	// Parameters:
	//   - name: the scope name
	EndSample(name string)

	// SetGlobalVectorArray records an upload of a vector array to a global shader property.
	// The values are copied so the caller may reuse its backing storage.
	//
	// Parameters:
	//   - name: the global property name
	//   - values: the vectors to upload
	SetGlobalVectorArray(name string, values []mgl32.Vec4)

	// Commands returns the recorded commands in order. The slice is only valid until the next Clear.
	//
	// Returns:
	//   - []Command: the recorded commands
	Commands() []Command

	// Len returns the number of recorded commands.
	Len() int

	// Clear drops every recorded command while keeping the allocated capacity.
	Clear()
}

var _ CommandBuffer = &commandBufferImpl{}

// NewCommandBuffer creates an empty CommandBuffer.
//
// Parameters:
//   - name: the buffer name, shown in host-side debugging
//
// Returns:
//   - CommandBuffer: the new buffer
func NewCommandBuffer(name string) CommandBuffer {
	return &commandBufferImpl{
		name:     name,
		commands: make([]Command, 0, 16),
	}
}

func (cb *commandBufferImpl) Name() string {
	return cb.name
}

func (cb *commandBufferImpl) ClearRenderTarget(clearDepth, clearColor bool, background common.Color) {
	cb.commands = append(cb.commands, Command{
		Type:       CommandClearRenderTarget,
		ClearDepth: clearDepth,
		ClearColor: clearColor,
		Background: background,
	})
}

func (cb *commandBufferImpl) BeginSample(name string) {
	cb.commands = append(cb.commands, Command{Type: CommandBeginSample, Name: name})
}

func (cb *commandBufferImpl) EndSample(name string) {
	cb.commands = append(cb.commands, Command{Type: CommandEndSample, Name: name})
}

func (cb *commandBufferImpl) SetGlobalVectorArray(name string, values []mgl32.Vec4) {
	cp := make([]mgl32.Vec4, len(values))
	copy(cp, values)
	cb.commands = append(cb.commands, Command{Type: CommandSetGlobalVectorArray, Name: name, Vectors: cp})
}

func (cb *commandBufferImpl) Commands() []Command {
	return cb.commands
}

func (cb *commandBufferImpl) Len() int {
	return len(cb.commands)
}

func (cb *commandBufferImpl) Clear() {
	clear(cb.commands)
	cb.commands = cb.commands[:0]
}
