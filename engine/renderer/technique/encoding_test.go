package technique

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/r3c/arcadejs-sub001/common"
)

func TestNormalEncodingRoundTrip(t *testing.T) {
	normals := []common.Vector3{
		{0, 0, 1},
		{1, 0, 0},
		{0, 1, 0},
		{-1, 0, 0},
		{0.577, 0.577, 0.577},
		{-0.267, 0.535, 0.802},
	}

	for _, normal := range normals {
		normal = common.Normalize3(normal)
		decoded := DecodeNormal(EncodeNormal(normal))

		assert.InDelta(t, normal[0], decoded[0], 1e-3)
		assert.InDelta(t, normal[1], decoded[1], 1e-3)
		assert.InDelta(t, normal[2], decoded[2], 1e-3)
	}
}

func TestNormalEncodingStaysInUnitRange(t *testing.T) {
	for _, normal := range []common.Vector3{{0, 0, 1}, {1, 0, 0}, {0, -1, 0}} {
		encoded := EncodeNormal(normal)

		assert.GreaterOrEqual(t, encoded[0], float32(0))
		assert.LessOrEqual(t, encoded[0], float32(1))
		assert.GreaterOrEqual(t, encoded[1], float32(0))
		assert.LessOrEqual(t, encoded[1], float32(1))
	}
}

func TestShininessEncodingRoundTrip(t *testing.T) {
	for _, shininess := range []float32{1, 30, 128} {
		encoded := EncodeShininess(shininess)

		assert.Greater(t, encoded, float32(0))
		assert.LessOrEqual(t, encoded, float32(0.5))
		assert.InDelta(t, shininess, DecodeShininess(encoded), float64(shininess)*1e-5)
	}
}

func TestLightValueEncodingRoundTrip(t *testing.T) {
	for _, value := range []float32{0, 0.25, 1, 3} {
		decoded := DecodeLightValue(EncodeLightValue(value))

		assert.InDelta(t, value, decoded, 1e-5)
	}
}

func TestLightValueEncodingIsMultiplicative(t *testing.T) {
	// Accumulating two lights by multiplying their encodings must decode
	// to the sum of their intensities.
	a, b := float32(0.75), float32(1.5)
	accumulated := EncodeLightValue(a) * EncodeLightValue(b)

	assert.InDelta(t, a+b, DecodeLightValue(accumulated), 1e-5)
	assert.Equal(t, float32(1), EncodeLightValue(0))
	assert.True(t, math32.Abs(DecodeLightValue(1)) < 1e-6)
}
