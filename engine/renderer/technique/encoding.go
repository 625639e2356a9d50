package technique

import (
	"github.com/chewxy/math32"
	"github.com/r3c/arcadejs-sub001/common"
)

// The geometry buffer stores normals, shininess exponents and accumulated
// light values in 8-bit render targets. The functions below are the CPU-side
// mirrors of the WGSL packing snippets, used by tests and by callers that
// need to pre-encode material constants.

// EncodeNormal packs a unit view-space normal into two components using
// spheremap projection. The packed form survives 8-bit quantization better
// than storing xy directly because the projection spreads precision evenly
// over the hemisphere.
func EncodeNormal(normal common.Vector3) common.Vector2 {
	d := math32.Sqrt(normal[2]*8 + 8)

	return common.Vector2{normal[0]/d + 0.5, normal[1]/d + 0.5}
}

// DecodeNormal reverses EncodeNormal.
func DecodeNormal(encoded common.Vector2) common.Vector3 {
	fx := encoded[0]*4 - 2
	fy := encoded[1]*4 - 2
	f := fx*fx + fy*fy
	g := math32.Sqrt(1 - f/4)

	return common.Vector3{fx * g, fy * g, 1 - f/2}
}

// EncodeShininess maps a Phong exponent in [1, +inf) to (0, 1] so it fits an
// 8-bit channel. Low exponents get most of the range since they are the
// visually sensitive ones.
func EncodeShininess(shininess float32) float32 {
	return 1 / (1 + shininess)
}

// DecodeShininess reverses EncodeShininess.
func DecodeShininess(encoded float32) float32 {
	return (1 - encoded) / encoded
}

// EncodeLightValue maps an unbounded light intensity to (0, 1] so that
// additive accumulation can run in a normalized render target with a
// multiplicative blend: exp2(-a) * exp2(-b) = exp2(-(a + b)).
func EncodeLightValue(value float32) float32 {
	return math32.Exp2(-value)
}

// DecodeLightValue reverses EncodeLightValue.
func DecodeLightValue(encoded float32) float32 {
	return -math32.Log2(encoded)
}
