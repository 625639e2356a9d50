package common

import (
	"github.com/chewxy/math32"
)

// Matrix4 is a 4x4 matrix stored in column-major order (WebGPU/OpenGL convention).
// Matrices are value types: every operation returns a fresh matrix so that
// recursive transform accumulation never aliases shared storage.
type Matrix4 [16]float32

// Matrix3 is a 3x3 matrix stored in column-major order.
type Matrix3 [9]float32

// Vector2 is a 2-component float vector.
type Vector2 [2]float32

// Vector3 is a 3-component float vector.
type Vector3 [3]float32

// Vector4 is a 4-component float vector.
type Vector4 [4]float32

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(degrees float32) float32 {
	return degrees * (math32.Pi / 180)
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mul4 multiplies two 4x4 matrices: result = a * b.
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Matrix4: the product a * b
func Mul4(a, b Matrix4) Matrix4 {
	var out Matrix4
	for i := 0; i < 4; i++ { // column of b
		for j := 0; j < 4; j++ { // row of a
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// MulVec4 transforms a 4-component vector by a 4x4 matrix.
func MulVec4(m Matrix4, v Vector4) Vector4 {
	var out Vector4
	for j := 0; j < 4; j++ {
		out[j] = m[0*4+j]*v[0] + m[1*4+j]*v[1] + m[2*4+j]*v[2] + m[3*4+j]*v[3]
	}
	return out
}

// Invert4 computes the inverse of a 4x4 matrix using the adjugate method.
//
// Parameters:
//   - m: the matrix to invert
//
// Returns:
//   - Matrix4: the inverse, or the identity matrix when m is singular
//   - bool: false when m is singular
func Invert4(m Matrix4) (Matrix4, bool) {
	var inv Matrix4

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 {
		return Identity4(), false
	}

	rcp := 1 / det
	for i := range inv {
		inv[i] *= rcp
	}
	return inv, true
}

// Upper3 extracts the upper-left 3x3 block of a 4x4 matrix.
func Upper3(m Matrix4) Matrix3 {
	return Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Transpose3 transposes a 3x3 matrix.
func Transpose3(m Matrix3) Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Invert3 computes the inverse of a 3x3 matrix.
//
// Returns:
//   - Matrix3: the inverse, or the identity matrix when m is singular
//   - bool: false when m is singular
func Invert3(m Matrix3) (Matrix3, bool) {
	// cofactors of the transpose, column-major layout
	c00 := m[4]*m[8] - m[7]*m[5]
	c01 := m[7]*m[2] - m[1]*m[8]
	c02 := m[1]*m[5] - m[4]*m[2]
	c10 := m[6]*m[5] - m[3]*m[8]
	c11 := m[0]*m[8] - m[6]*m[2]
	c12 := m[3]*m[2] - m[0]*m[5]
	c20 := m[3]*m[7] - m[6]*m[4]
	c21 := m[6]*m[1] - m[0]*m[7]
	c22 := m[0]*m[4] - m[3]*m[1]

	det := m[0]*c00 + m[3]*c01 + m[6]*c02
	if det == 0 {
		return Identity3(), false
	}

	rcp := 1 / det
	return Matrix3{
		c00 * rcp, c01 * rcp, c02 * rcp,
		c10 * rcp, c11 * rcp, c12 * rcp,
		c20 * rcp, c21 * rcp, c22 * rcp,
	}, true
}

// NormalMatrix computes the matrix used to transform surface normals into
// camera space: the inverse-transpose of the upper-left 3x3 block of
// view * model. Non-uniform scale in either input is handled correctly.
//
// Parameters:
//   - view: the camera view matrix
//   - model: the accumulated model matrix
//
// Returns:
//   - Matrix3: inverse-transpose of upper3x3(view * model)
func NormalMatrix(view, model Matrix4) Matrix3 {
	inv, ok := Invert3(Upper3(Mul4(view, model)))
	if !ok {
		return Identity3()
	}
	return Transpose3(inv)
}

// Perspective creates a perspective projection matrix mapping to the
// WebGPU clip space depth range [0, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width / height)
//   - near: near clip plane distance
//   - far: far clip plane distance
func Perspective(fovY, aspect, near, far float32) Matrix4 {
	f := 1 / math32.Tan(fovY/2)
	rangeRcp := 1 / (near - far)

	var out Matrix4
	out[0] = f / aspect
	out[5] = f
	out[10] = far * rangeRcp
	out[11] = -1
	out[14] = near * far * rangeRcp
	return out
}

// Orthographic creates an orthographic projection matrix mapping the given
// box to WebGPU clip space with depth range [0, 1]. Used for directional
// shadow map rendering.
func Orthographic(left, right, bottom, top, near, far float32) Matrix4 {
	var out Matrix4
	out[0] = 2 / (right - left)
	out[5] = 2 / (top - bottom)
	out[10] = 1 / (near - far)
	out[12] = (left + right) / (left - right)
	out[13] = (bottom + top) / (bottom - top)
	out[14] = near / (near - far)
	out[15] = 1
	return out
}

// LookAt creates a view matrix for a camera at eye looking toward center
// with the given up vector.
func LookAt(eye, center, up Vector3) Matrix4 {
	f := Normalize3(Sub3(center, eye))
	s := Normalize3(Cross3(f, up))
	u := Cross3(s, f)

	return Matrix4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		-Dot3(s, eye), -Dot3(u, eye), Dot3(f, eye), 1,
	}
}

// Translation returns a translation matrix.
func Translation(v Vector3) Matrix4 {
	out := Identity4()
	out[12], out[13], out[14] = v[0], v[1], v[2]
	return out
}

// Scaling returns a non-uniform scaling matrix.
func Scaling(v Vector3) Matrix4 {
	out := Identity4()
	out[0], out[5], out[10] = v[0], v[1], v[2]
	return out
}

// RotationX returns a rotation matrix of angle radians around the X axis.
func RotationX(angle float32) Matrix4 {
	s, c := math32.Sincos(angle)
	out := Identity4()
	out[5], out[6] = c, s
	out[9], out[10] = -s, c
	return out
}

// RotationY returns a rotation matrix of angle radians around the Y axis.
func RotationY(angle float32) Matrix4 {
	s, c := math32.Sincos(angle)
	out := Identity4()
	out[0], out[2] = c, -s
	out[8], out[10] = s, c
	return out
}

// RotationZ returns a rotation matrix of angle radians around the Z axis.
func RotationZ(angle float32) Matrix4 {
	s, c := math32.Sincos(angle)
	out := Identity4()
	out[0], out[1] = c, s
	out[4], out[5] = -s, c
	return out
}

// Add3 returns a + b.
func Add3(a, b Vector3) Vector3 {
	return Vector3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b.
func Sub3(a, b Vector3) Vector3 {
	return Vector3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v scaled by s.
func Scale3(v Vector3, s float32) Vector3 {
	return Vector3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot3 returns the dot product of a and b.
func Dot3(a, b Vector3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b Vector3) Vector3 {
	return Vector3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length3 returns the euclidean length of v.
func Length3(v Vector3) float32 {
	return math32.Sqrt(Dot3(v, v))
}

// Normalize3 returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize3(v Vector3) Vector3 {
	l := Length3(v)
	if l == 0 {
		return v
	}
	return Scale3(v, 1/l)
}
