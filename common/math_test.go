package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMatrix4InDelta(t *testing.T, want, got Matrix4, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}

func TestMul4Identity(t *testing.T) {
	m := Mul4(RotationY(0.7), Translation(Vector3{1, 2, 3}))

	assertMatrix4InDelta(t, m, Mul4(Identity4(), m), 1e-6)
	assertMatrix4InDelta(t, m, Mul4(m, Identity4()), 1e-6)
}

func TestMul4Associativity(t *testing.T) {
	a := RotationX(0.3)
	b := Scaling(Vector3{2, 0.5, 1})
	c := Translation(Vector3{-1, 4, 2})

	assertMatrix4InDelta(t, Mul4(Mul4(a, b), c), Mul4(a, Mul4(b, c)), 1e-5)
}

func TestInvert4RoundTrip(t *testing.T) {
	m := Mul4(Translation(Vector3{3, -2, 5}), Mul4(RotationZ(1.1), Scaling(Vector3{2, 2, 0.25})))

	inv, ok := Invert4(m)
	require.True(t, ok)
	assertMatrix4InDelta(t, Identity4(), Mul4(m, inv), 1e-5)
}

func TestInvert4Singular(t *testing.T) {
	_, ok := Invert4(Scaling(Vector3{1, 1, 0}))
	assert.False(t, ok)
}

func TestNormalMatrixIdentity(t *testing.T) {
	nm := NormalMatrix(Identity4(), Identity4())
	assert.Equal(t, Identity3(), nm)
}

func TestNormalMatrixRotationScale(t *testing.T) {
	// model = Rz(90 deg) * scale(2, 1, 1); view = identity.
	// Inverse-transpose hand-computed: columns (0, 0.5, 0), (-1, 0, 0), (0, 0, 1).
	model := Mul4(RotationZ(math32.Pi/2), Scaling(Vector3{2, 1, 1}))
	want := Matrix3{
		0, 0.5, 0,
		-1, 0, 0,
		0, 0, 1,
	}

	got := NormalMatrix(Identity4(), model)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "element %d", i)
	}
}

func TestNormalMatrixMatchesInverseTranspose(t *testing.T) {
	view := LookAt(Vector3{4, 3, 8}, Vector3{0, 0, 0}, Vector3{0, 1, 0})
	model := Mul4(RotationY(0.6), Scaling(Vector3{1, 3, 1}))

	inv, ok := Invert3(Upper3(Mul4(view, model)))
	require.True(t, ok)
	want := Transpose3(inv)

	got := NormalMatrix(view, model)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

func TestLookAtEyeMapsToOrigin(t *testing.T) {
	eye := Vector3{5, 2, -3}
	view := LookAt(eye, Vector3{0, 0, 0}, Vector3{0, 1, 0})

	p := MulVec4(view, Vector4{eye[0], eye[1], eye[2], 1})
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(math32.Pi/3, 16.0/9.0, 1, 100)

	near := MulVec4(proj, Vector4{0, 0, -1, 1})
	far := MulVec4(proj, Vector4{0, 0, -100, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5, "near plane should map to depth 0")
	assert.InDelta(t, 1, far[2]/far[3], 1e-5, "far plane should map to depth 1")
}

func TestOrthographicBox(t *testing.T) {
	proj := Orthographic(-10, 10, -10, 10, 1, 50)

	near := MulVec4(proj, Vector4{-10, -10, -1, 1})
	far := MulVec4(proj, Vector4{10, 10, -50, 1})
	assert.InDelta(t, -1, near[0], 1e-5)
	assert.InDelta(t, -1, near[1], 1e-5)
	assert.InDelta(t, 0, near[2], 1e-5)
	assert.InDelta(t, 1, far[0], 1e-5)
	assert.InDelta(t, 1, far[1], 1e-5)
	assert.InDelta(t, 1, far[2], 1e-5)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, Vector3{0, 0, 1}, Cross3(Vector3{1, 0, 0}, Vector3{0, 1, 0}))
	assert.InDelta(t, 1, Length3(Normalize3(Vector3{3, -4, 12})), 1e-6)
	assert.Equal(t, Vector3{0, 0, 0}, Normalize3(Vector3{0, 0, 0}))
	assert.InDelta(t, 32, Dot3(Vector3{1, 2, 3}, Vector3{4, 5, 6}), 1e-6)
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(0), AlignUp(0, 256))
	assert.Equal(t, uint64(256), AlignUp(1, 256))
	assert.Equal(t, uint64(256), AlignUp(256, 256))
	assert.Equal(t, uint64(512), AlignUp(257, 256))
}

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(256))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(48))
}
