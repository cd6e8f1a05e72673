package gpu

import "fmt"

// DataType tags the declared type of an attribute or uniform. The values
// match the OpenGL enums so a GL device can convert them directly.
type DataType uint32

const (
	Int       DataType = 0x1404
	Float     DataType = 0x1406
	FloatVec2 DataType = 0x8B50
	FloatVec3 DataType = 0x8B51
	FloatVec4 DataType = 0x8B52
	FloatMat3 DataType = 0x8B5B
	FloatMat4 DataType = 0x8B5C
	Sampler2D DataType = 0x8B5E
)

// Components returns the number of scalars one element of the type holds.
func (t DataType) Components() int32 {
	switch t {
	case Int, Float, Sampler2D:
		return 1
	case FloatVec2:
		return 2
	case FloatVec3:
		return 3
	case FloatVec4:
		return 4
	case FloatMat3:
		return 9
	case FloatMat4:
		return 16
	}
	return 0
}

func (t DataType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case FloatVec2:
		return "vec2"
	case FloatVec3:
		return "vec3"
	case FloatVec4:
		return "vec4"
	case FloatMat3:
		return "mat3"
	case FloatMat4:
		return "mat4"
	case Sampler2D:
		return "sampler2D"
	}
	return fmt.Sprintf("type(%#x)", uint32(t))
}
