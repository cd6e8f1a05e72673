package gpu

import (
	"fmt"
	"os"
	"sort"
)

// NotFound is the slot returned for names the program does not declare.
const NotFound int32 = -1

// Binding is what the program knows about one active attribute or uniform.
type Binding struct {
	Slot   int32
	Size   int32
	Type   DataType
	Buffer BufferID
}

// Program is a linked shader program together with the attributes and
// uniforms discovered on it. Every discovered name owns one buffer.
//
// A Program whose sources failed to compile or link is still usable: it
// has no bindings and every lookup returns NotFound.
type Program struct {
	ID   ProgramID
	Name string

	device     Device
	attributes map[string]Binding
	uniforms   map[string]Binding
	enabled    []int32
}

// LoadProgram reads vertex and fragment sources from disk and calls NewProgram.
func LoadProgram(device Device, name, vertexPath, fragmentPath string) (*Program, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return emptyProgram(device, name), fmt.Errorf("program %q: %w", name, err)
	}
	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return emptyProgram(device, name), fmt.Errorf("program %q: %w", name, err)
	}
	return NewProgram(device, name, string(vertexSource), string(fragmentSource))
}

// NewProgram compiles and links the sources and reflects the result.
// The returned program is never nil; on failure the error carries the
// device diagnostic and the program has no bindings.
func NewProgram(device Device, name, vertexSource, fragmentSource string) (*Program, error) {
	program := emptyProgram(device, name)

	vertexShader, err := device.CompileShader(VertexStage, vertexSource)
	if err != nil {
		return program, fmt.Errorf("program %q: %w", name, err)
	}
	defer device.DeleteShader(vertexShader)

	fragmentShader, err := device.CompileShader(FragmentStage, fragmentSource)
	if err != nil {
		return program, fmt.Errorf("program %q: %w", name, err)
	}
	defer device.DeleteShader(fragmentShader)

	id, err := device.LinkProgram(vertexShader, fragmentShader)
	if err != nil {
		return program, fmt.Errorf("program %q: %w", name, err)
	}
	program.ID = id
	program.reflect()

	return program, nil
}

func emptyProgram(device Device, name string) *Program {
	return &Program{
		Name:       name,
		device:     device,
		attributes: map[string]Binding{},
		uniforms:   map[string]Binding{},
	}
}

func (program *Program) reflect() {
	for _, v := range program.device.ActiveAttributes(program.ID) {
		program.attributes[v.Name] = Binding{
			Slot:   program.device.AttributeLocation(program.ID, v.Name),
			Size:   v.Size,
			Type:   v.Type,
			Buffer: program.device.GenBuffer(),
		}
	}
	for _, v := range program.device.ActiveUniforms(program.ID) {
		program.uniforms[v.Name] = Binding{
			Slot:   program.device.UniformLocation(program.ID, v.Name),
			Size:   v.Size,
			Type:   v.Type,
			Buffer: program.device.GenBuffer(),
		}
	}

	program.enabled = program.enabled[:0]
	for _, name := range program.Attributes() {
		if slot := program.attributes[name].Slot; slot != NotFound {
			program.enabled = append(program.enabled, slot)
		}
	}
}

// Valid reports whether the program linked.
func (program *Program) Valid() bool { return program.ID != 0 }

// AttributeSlot returns the device slot of the named attribute or NotFound.
func (program *Program) AttributeSlot(name string) int32 {
	if b, ok := program.attributes[name]; ok {
		return b.Slot
	}
	return NotFound
}

// UniformSlot returns the device slot of the named uniform or NotFound.
func (program *Program) UniformSlot(name string) int32 {
	if b, ok := program.uniforms[name]; ok {
		return b.Slot
	}
	return NotFound
}

func (program *Program) Attribute(name string) (Binding, bool) {
	b, ok := program.attributes[name]
	return b, ok
}

func (program *Program) Uniform(name string) (Binding, bool) {
	b, ok := program.uniforms[name]
	return b, ok
}

// Buffer returns the buffer allocated for an attribute or uniform name.
func (program *Program) Buffer(name string) (BufferID, bool) {
	if b, ok := program.attributes[name]; ok {
		return b.Buffer, true
	}
	if b, ok := program.uniforms[name]; ok {
		return b.Buffer, true
	}
	return 0, false
}

// Attributes returns the discovered attribute names in sorted order.
func (program *Program) Attributes() []string { return sortedNames(program.attributes) }

// Uniforms returns the discovered uniform names in sorted order.
func (program *Program) Uniforms() []string { return sortedNames(program.uniforms) }

func sortedNames(m map[string]Binding) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (program *Program) Use() {
	if program.Valid() {
		program.device.UseProgram(program.ID)
	}
}

// EnableVertexAttributes turns on the attribute arrays of every discovered
// attribute. Array state is shared by all programs on the context, so each
// call must be paired with DisableVertexAttributes once drawing is done.
func (program *Program) EnableVertexAttributes() {
	for _, slot := range program.enabled {
		program.device.EnableVertexAttribArray(slot)
	}
}

func (program *Program) DisableVertexAttributes() {
	for _, slot := range program.enabled {
		program.device.DisableVertexAttribArray(slot)
	}
}

// Upload replaces the contents of the named attribute's buffer and points
// the attribute at it. It reports false without touching the device when
// the program has no slot for name.
func (program *Program) Upload(name string, data []float32) bool {
	b, ok := program.attributes[name]
	if !ok || b.Slot == NotFound {
		return false
	}

	components := b.Type.Components()
	if components == 0 {
		return false
	}

	program.device.BindBuffer(ArrayBuffer, b.Buffer)
	program.device.BufferFloats(ArrayBuffer, data)
	program.device.VertexAttribPointer(b.Slot, components)
	return true
}
