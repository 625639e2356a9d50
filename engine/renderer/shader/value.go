package shader

import (
	"github.com/r3c/arcadejs-sub001/common"
)

// UniformKind classifies the value a uniform binding writes. The kind fixes
// the byte layout, which is checked against the WGSL declaration when the
// binding is registered.
type UniformKind int

const (
	UniformScalar UniformKind = iota
	UniformVector2
	UniformVector3
	UniformVector4
	UniformMatrix3
	UniformMatrix4
)

// byteSize returns the uniform byte size of the kind, following WGSL
// uniform layout rules. Matrices count their column padding.
func (k UniformKind) byteSize() uint64 {
	switch k {
	case UniformScalar:
		return 4
	case UniformVector2:
		return 8
	case UniformVector3:
		return 12
	case UniformVector4:
		return 16
	case UniformMatrix3:
		return 48
	case UniformMatrix4:
		return 64
	default:
		return 0
	}
}

// Value is the tagged union produced by uniform binding extractors.
type Value struct {
	kind UniformKind
	data [16]float32
}

func ScalarValue(v float32) Value {
	return Value{kind: UniformScalar, data: [16]float32{v}}
}

func Vector2Value(v common.Vector2) Value {
	return Value{kind: UniformVector2, data: [16]float32{v[0], v[1]}}
}

func Vector3Value(v common.Vector3) Value {
	return Value{kind: UniformVector3, data: [16]float32{v[0], v[1], v[2]}}
}

func Vector4Value(v common.Vector4) Value {
	return Value{kind: UniformVector4, data: [16]float32{v[0], v[1], v[2], v[3]}}
}

func Matrix3Value(m common.Matrix3) Value {
	v := Value{kind: UniformMatrix3}
	copy(v.data[:9], m[:])

	return v
}

func Matrix4Value(m common.Matrix4) Value {
	v := Value{kind: UniformMatrix4}
	copy(v.data[:], m[:])

	return v
}

// Kind returns the value's uniform kind.
func (v Value) Kind() UniformKind {
	return v.kind
}

// bytes encodes the value for a buffer write. mat3x3 columns are padded to
// 16 bytes as the uniform address space requires.
func (v Value) bytes() []byte {
	switch v.kind {
	case UniformScalar:
		return common.SliceToBytes(v.data[:1])
	case UniformVector2:
		return common.SliceToBytes(v.data[:2])
	case UniformVector3:
		return common.SliceToBytes(v.data[:3])
	case UniformVector4:
		return common.SliceToBytes(v.data[:4])
	case UniformMatrix3:
		padded := [12]float32{
			v.data[0], v.data[1], v.data[2], 0,
			v.data[3], v.data[4], v.data[5], 0,
			v.data[6], v.data[7], v.data[8], 0,
		}

		return common.SliceToBytes(padded[:])
	case UniformMatrix4:
		return common.SliceToBytes(v.data[:])
	default:
		panic("shader: value has no kind")
	}
}
