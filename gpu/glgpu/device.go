// Package glgpu implements gpu.Device on OpenGL 4.1 core.
package glgpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/adinfit/sierpinski/gpu"
)

var _ gpu.Device = (*Device)(nil)

// Device issues commands to the OpenGL context current on the calling thread.
type Device struct {
	VAO uint32
}

// New initializes the GL bindings for the current context and sets up the
// global state the renderer relies on. The context must already be current.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize gl: %w", err)
	}

	device := &Device{}

	// core profile requires a bound vertex array for attribute state
	gl.GenVertexArrays(1, &device.VAO)
	gl.BindVertexArray(device.VAO)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	return device, nil
}

// Version returns the GL version string of the context.
func (device *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (device *Device) CompileShader(stage gpu.Stage, source string) (gpu.ShaderID, error) {
	var shaderType uint32
	switch stage {
	case gpu.VertexStage:
		shaderType = gl.VERTEX_SHADER
	case gpu.FragmentStage:
		shaderType = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("%w: unknown stage %v", gpu.ErrCompile, stage)
	}

	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: %v: %v", gpu.ErrCompile, stage, strings.TrimRight(log, "\x00"))
	}

	return gpu.ShaderID(shader), nil
}

func (device *Device) DeleteShader(shader gpu.ShaderID) {
	gl.DeleteShader(uint32(shader))
}

func (device *Device) LinkProgram(shaders ...gpu.ShaderID) (gpu.ProgramID, error) {
	program := gl.CreateProgram()
	for _, shader := range shaders {
		gl.AttachShader(program, uint32(shader))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("%w: %v", gpu.ErrLink, strings.TrimRight(log, "\x00"))
	}

	return gpu.ProgramID(program), nil
}

func (device *Device) UseProgram(program gpu.ProgramID) {
	gl.UseProgram(uint32(program))
}

func (device *Device) ActiveAttributes(program gpu.ProgramID) []gpu.Variable {
	return activeVariables(uint32(program), gl.ACTIVE_ATTRIBUTES, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, gl.GetActiveAttrib)
}

func (device *Device) ActiveUniforms(program gpu.ProgramID) []gpu.Variable {
	return activeVariables(uint32(program), gl.ACTIVE_UNIFORMS, gl.ACTIVE_UNIFORM_MAX_LENGTH, gl.GetActiveUniform)
}

type activeQuery func(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *uint8)

func activeVariables(program uint32, countParam, lengthParam uint32, query activeQuery) []gpu.Variable {
	var count, maxLength int32
	gl.GetProgramiv(program, countParam, &count)
	gl.GetProgramiv(program, lengthParam, &maxLength)

	vars := make([]gpu.Variable, 0, count)
	name := make([]uint8, maxLength+1)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		query(program, uint32(i), int32(len(name)), &length, &size, &xtype, &name[0])

		vars = append(vars, gpu.Variable{
			Name: string(name[:length]),
			Size: size,
			Type: gpu.DataType(xtype),
		})
	}
	return vars
}

func (device *Device) AttributeLocation(program gpu.ProgramID, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (device *Device) UniformLocation(program gpu.ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (device *Device) GenBuffer() gpu.BufferID {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return gpu.BufferID(buffer)
}

func target(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (device *Device) BindBuffer(t gpu.BufferTarget, buffer gpu.BufferID) {
	gl.BindBuffer(target(t), uint32(buffer))
}

func (device *Device) BufferFloats(t gpu.BufferTarget, data []float32) {
	if len(data) == 0 {
		gl.BufferData(target(t), 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(target(t), len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

func (device *Device) BufferIndices(t gpu.BufferTarget, data []uint32) {
	if len(data) == 0 {
		gl.BufferData(target(t), 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(target(t), len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
}

func (device *Device) VertexAttribPointer(slot int32, components int32) {
	gl.VertexAttribPointer(uint32(slot), components, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (device *Device) EnableVertexAttribArray(slot int32) {
	gl.EnableVertexAttribArray(uint32(slot))
}

func (device *Device) DisableVertexAttribArray(slot int32) {
	gl.DisableVertexAttribArray(uint32(slot))
}

func (device *Device) UniformMatrix4(slot int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(slot, 1, false, &m[0])
}

func (device *Device) Uniform1f(slot int32, v float32) { gl.Uniform1f(slot, v) }
func (device *Device) Uniform1i(slot int32, v int32)   { gl.Uniform1i(slot, v) }

func (device *Device) CreateTexture(width, height int, pix []byte) gpu.TextureID {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(width),
		int32(height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pix))
	return gpu.TextureID(texture)
}

func (device *Device) BindTexture(texture gpu.TextureID) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(texture))
}

func (device *Device) DrawIndexedTriangles(count, first int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(first*4))
}

func (device *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (device *Device) ClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (device *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (device *Device) Flush() { gl.Flush() }
