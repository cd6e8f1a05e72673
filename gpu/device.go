// Package gpu describes the graphics device as an ordered command sink and
// builds shader-program reflection on top of it.
package gpu

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("program link failed")
)

type (
	ShaderID  uint32
	ProgramID uint32
	BufferID  uint32
	TextureID uint32
)

// Stage selects the pipeline stage a shader source is compiled for.
type Stage uint8

const (
	VertexStage Stage = iota
	FragmentStage
)

func (stage Stage) String() string {
	switch stage {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// BufferTarget is the binding point a buffer is bound to.
type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Variable is an active attribute or uniform reported by a linked program.
type Variable struct {
	Name string
	Size int32
	Type DataType
}

// Device is the capability the renderer issues commands to. Commands are
// executed in order and binding state persists between calls: a buffer bound
// with BindBuffer is the one BufferFloats and VertexAttribPointer act on.
//
// All methods must be called from the thread owning the graphics context.
type Device interface {
	CompileShader(stage Stage, source string) (ShaderID, error)
	DeleteShader(shader ShaderID)
	LinkProgram(shaders ...ShaderID) (ProgramID, error)
	UseProgram(program ProgramID)

	ActiveAttributes(program ProgramID) []Variable
	ActiveUniforms(program ProgramID) []Variable
	AttributeLocation(program ProgramID, name string) int32
	UniformLocation(program ProgramID, name string) int32

	GenBuffer() BufferID
	BindBuffer(target BufferTarget, buffer BufferID)
	BufferFloats(target BufferTarget, data []float32)
	BufferIndices(target BufferTarget, data []uint32)
	VertexAttribPointer(slot int32, components int32)
	EnableVertexAttribArray(slot int32)
	DisableVertexAttribArray(slot int32)

	UniformMatrix4(slot int32, m mgl32.Mat4)
	Uniform1f(slot int32, v float32)
	Uniform1i(slot int32, v int32)

	CreateTexture(width, height int, pix []byte) TextureID
	BindTexture(texture TextureID)

	// DrawIndexedTriangles draws count indices from the bound element
	// buffer starting at index first.
	DrawIndexedTriangles(count, first int)
	Viewport(width, height int)
	ClearColor(color mgl32.Vec4)
	Clear()
	Flush()
}
