// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/adinfit/sierpinski/gpu"
)

var _ gpu.Device = (*Device)(nil)

// Draw is one recorded DrawIndexedTriangles call with the state it saw.
type Draw struct {
	Count, First int
	Texture      gpu.TextureID
	Program      gpu.ProgramID
}

// Device records commands instead of executing them.
//
// Attributes and Uniforms are what ActiveAttributes and ActiveUniforms
// report for every linked program; slots are assigned in declaration order.
// Setting CompileLog or LinkLog makes the corresponding step fail.
type Device struct {
	Attributes []gpu.Variable
	Uniforms   []gpu.Variable
	CompileLog string
	LinkLog    string

	Calls []string

	Program    gpu.ProgramID
	Bound      map[gpu.BufferTarget]gpu.BufferID
	Floats     map[gpu.BufferID][]float32
	Indices    map[gpu.BufferID][]uint32
	Pointers   map[int32]gpu.BufferID
	Enabled    map[int32]bool
	Matrices   map[int32]mgl32.Mat4
	Scalars    map[int32]float32
	Ints       map[int32]int32
	Textures   map[gpu.TextureID][2]int
	Texture    gpu.TextureID
	Draws      []Draw
	Background mgl32.Vec4
	Size       [2]int
	Flushes    int
	Lookups    int
	nextID     uint32
	deleted    []gpu.ShaderID
}

// New returns a device that reports the given active variables.
func New(attributes, uniforms []gpu.Variable) *Device {
	return &Device{
		Attributes: attributes,
		Uniforms:   uniforms,
		Bound:      map[gpu.BufferTarget]gpu.BufferID{},
		Floats:     map[gpu.BufferID][]float32{},
		Indices:    map[gpu.BufferID][]uint32{},
		Pointers:   map[int32]gpu.BufferID{},
		Enabled:    map[int32]bool{},
		Matrices:   map[int32]mgl32.Mat4{},
		Scalars:    map[int32]float32{},
		Ints:       map[int32]int32{},
		Textures:   map[gpu.TextureID][2]int{},
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.ShaderID, error) {
	d.record("CompileShader %v", stage)
	if d.CompileLog != "" {
		return 0, fmt.Errorf("%w: %v: %s", gpu.ErrCompile, stage, d.CompileLog)
	}
	return gpu.ShaderID(d.id()), nil
}

func (d *Device) DeleteShader(shader gpu.ShaderID) {
	d.record("DeleteShader %d", shader)
	d.deleted = append(d.deleted, shader)
}

// Deleted returns the shaders released so far.
func (d *Device) Deleted() []gpu.ShaderID { return d.deleted }

func (d *Device) LinkProgram(shaders ...gpu.ShaderID) (gpu.ProgramID, error) {
	d.record("LinkProgram %v", shaders)
	if d.LinkLog != "" {
		return 0, fmt.Errorf("%w: %s", gpu.ErrLink, d.LinkLog)
	}
	return gpu.ProgramID(d.id()), nil
}

func (d *Device) UseProgram(program gpu.ProgramID) {
	d.record("UseProgram %d", program)
	d.Program = program
}

func (d *Device) ActiveAttributes(program gpu.ProgramID) []gpu.Variable {
	return append([]gpu.Variable(nil), d.Attributes...)
}

func (d *Device) ActiveUniforms(program gpu.ProgramID) []gpu.Variable {
	return append([]gpu.Variable(nil), d.Uniforms...)
}

func (d *Device) AttributeLocation(program gpu.ProgramID, name string) int32 {
	d.Lookups++
	return location(d.Attributes, name)
}

func (d *Device) UniformLocation(program gpu.ProgramID, name string) int32 {
	d.Lookups++
	return location(d.Uniforms, name)
}

func location(vars []gpu.Variable, name string) int32 {
	for i, v := range vars {
		if v.Name == name {
			return int32(i)
		}
	}
	return gpu.NotFound
}

func (d *Device) GenBuffer() gpu.BufferID {
	return gpu.BufferID(d.id())
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buffer gpu.BufferID) {
	d.record("BindBuffer %d %d", target, buffer)
	d.Bound[target] = buffer
}

func (d *Device) BufferFloats(target gpu.BufferTarget, data []float32) {
	d.record("BufferFloats %d %d", target, len(data))
	d.Floats[d.Bound[target]] = append([]float32(nil), data...)
}

func (d *Device) BufferIndices(target gpu.BufferTarget, data []uint32) {
	d.record("BufferIndices %d %d", target, len(data))
	d.Indices[d.Bound[target]] = append([]uint32(nil), data...)
}

func (d *Device) VertexAttribPointer(slot int32, components int32) {
	d.record("VertexAttribPointer %d %d", slot, components)
	d.Pointers[slot] = d.Bound[gpu.ArrayBuffer]
}

func (d *Device) EnableVertexAttribArray(slot int32) {
	d.record("EnableVertexAttribArray %d", slot)
	d.Enabled[slot] = true
}

func (d *Device) DisableVertexAttribArray(slot int32) {
	d.record("DisableVertexAttribArray %d", slot)
	d.Enabled[slot] = false
}

func (d *Device) UniformMatrix4(slot int32, m mgl32.Mat4) {
	d.record("UniformMatrix4 %d", slot)
	d.Matrices[slot] = m
}

func (d *Device) Uniform1f(slot int32, v float32) {
	d.record("Uniform1f %d %v", slot, v)
	d.Scalars[slot] = v
}

func (d *Device) Uniform1i(slot int32, v int32) {
	d.record("Uniform1i %d %v", slot, v)
	d.Ints[slot] = v
}

func (d *Device) CreateTexture(width, height int, pix []byte) gpu.TextureID {
	id := gpu.TextureID(d.id())
	d.record("CreateTexture %dx%d", width, height)
	d.Textures[id] = [2]int{width, height}
	return id
}

func (d *Device) BindTexture(texture gpu.TextureID) {
	d.Texture = texture
}

func (d *Device) DrawIndexedTriangles(count, first int) {
	d.record("DrawIndexedTriangles %d %d", count, first)
	d.Draws = append(d.Draws, Draw{
		Count:   count,
		First:   first,
		Texture: d.Texture,
		Program: d.Program,
	})
}

func (d *Device) Viewport(width, height int) {
	d.record("Viewport %d %d", width, height)
	d.Size = [2]int{width, height}
}

func (d *Device) ClearColor(color mgl32.Vec4) { d.Background = color }

func (d *Device) Clear() { d.record("Clear") }

func (d *Device) Flush() { d.Flushes++ }
