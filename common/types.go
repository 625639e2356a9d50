package common

// TextureKind distinguishes flat and cube map textures.
type TextureKind int

const (
	// TextureKindQuad is a standard 2D texture.
	TextureKindQuad TextureKind = iota

	// TextureKindCube is a cube map with exactly six equally sized faces.
	TextureKindCube
)

// TextureFormat is the small set of pixel formats the engine accepts.
type TextureFormat int

const (
	// FormatRGBA8 is 8 bits per channel RGBA color.
	FormatRGBA8 TextureFormat = iota

	// FormatDepth16 is 16-bit normalized depth.
	FormatDepth16
)

// FilterMode selects a texel filter for magnification or minification.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// WrapMode selects how texture coordinates outside [0, 1] are resolved.
type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapRepeat
	WrapMirror
)

// Sampler describes how a texture is sampled. The zero value is a
// nearest-filtered, clamped, non-mipmapped sampler.
type Sampler struct {
	// Magnify is the filter used when a texel covers more than one pixel.
	Magnify FilterMode

	// Minify is the filter used when several texels fall within one pixel.
	Minify FilterMode

	// Mipmap requests mip chain generation at upload. The chain is only
	// generated when both texture dimensions are powers of two.
	Mipmap bool

	// Wrap applies to every texture coordinate axis.
	Wrap WrapMode
}

// Image is CPU-side pixel data staged for upload. Pixels are tightly packed
// rows of the texture format's texel size (4 bytes for FormatRGBA8).
type Image struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// Color is an RGBA color with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Vec4 converts the color to a Vector4.
func (c Color) Vec4() Vector4 {
	return Vector4{c.R, c.G, c.B, c.A}
}

// Vec3 converts the color to a Vector3, dropping alpha.
func (c Color) Vec3() Vector3 {
	return Vector3{c.R, c.G, c.B}
}
