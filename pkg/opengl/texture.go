package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/texkit/texkit/pkg/common"
	"github.com/texkit/texkit/pkg/logger"
)

// Texture is a single 2D texture living in gpu memory.
//
// The size the caller asked for and the size actually allocated can differ,
// the storage is padded up to powers of two when the hardware (or a mipmap
// build) demands it. TransformMatrix maps logical pixel coordinates into
// normalized sampling coordinates and already accounts for the padding, so
// sampling never reads into the padded area.
//
// A texture whose allocation failed keeps a zero id and stays blank, every
// operation on it silently skips the hardware calls.
type Texture struct {
	context    *Context
	id         uint32
	size       common.Vector2[int] // size requested by the caller
	glSize     common.Vector2[int] // size actually allocated in gpu memory
	transform  Matrix3
	smooth     bool
	repeat     bool
	upsideDown bool
	hasMipmaps bool
}

func (texture *Texture) String() string {
	return fmt.Sprintf("Texture(ID: %d, Size: %dx%d, GL Size: %dx%d)",
		texture.id,
		texture.size.X, texture.size.Y,
		texture.glSize.X, texture.glSize.Y,
	)
}

// CreateTexture allocates a blank texture with undefined pixel content.
func (context *Context) CreateTexture(size common.Vector2[int]) *Texture {
	texture := &Texture{context: context}
	if !texture.setupSize(size, false) {
		return texture
	}
	texture.id = context.gl.GenTexture()
	texture.Bind()
	context.gl.TexImage2D(0, texture.glSize.X, texture.glSize.Y, gl.RGBA, nil)
	texture.setupWrap()
	texture.setupFilters()
	logger.Log(logger.DEBUG, "Texture created:", texture)
	return texture
}

// CreateTextureFromPixels allocates a texture and uploads the source pixels.
// When buildMipmaps is set the storage is forced to power of two sizes and
// the whole mipmap pyramid of the source is uploaded level by level. The
// source is consumed, its mipmap sequence is not rewound.
func (context *Context) CreateTextureFromPixels(source PixelSource, buildMipmaps bool) *Texture {
	texture := &Texture{context: context}
	if !texture.setupSize(source.Size(), buildMipmaps) {
		return texture
	}
	texture.id = context.gl.GenTexture()

	pixels := source
	if !texture.size.Equals(texture.glSize) {
		// Pad the source into a bigger zero filled image, pasted at the
		// origin. The transform maps only the logical region so the padding
		// is never sampled.
		padded := NewImage(texture.glSize, source.Depth())
		padded.Paste(source)
		pixels = padded
	}

	texture.Bind()
	if buildMipmaps {
		level := 0
		for {
			texture.setupPixels(level, pixels.Size(), pixels.Pixels(), pixels.Depth())
			if !pixels.NextMipmap() {
				break
			}
			level++
		}
		texture.hasMipmaps = true
	} else {
		texture.setupPixels(0, pixels.Size(), pixels.Pixels(), pixels.Depth())
	}
	texture.setupWrap()
	texture.setupFilters()
	logger.Log(logger.DEBUG, "Texture created:", texture)
	return texture
}

// Size returns the size requested by the caller.
func (texture *Texture) Size() common.Vector2[int] {
	return texture.size
}

// GLSize returns the size allocated in gpu memory, padded sizes are never
// smaller than Size.
func (texture *Texture) GLSize() common.Vector2[int] {
	return texture.glSize
}

// TransformMatrix maps logical pixel coordinates into normalized sampling
// coordinates.
func (texture *Texture) TransformMatrix() Matrix3 {
	return texture.transform
}

func (texture *Texture) HasMipmaps() bool {
	return texture.hasMipmaps
}

// Bind makes this texture the active sampling source of the context. Every
// operation that reads or writes texture memory works on the last bound
// texture, they all bind first. Rebinding the already bound texture is
// skipped.
func (texture *Texture) Bind() {
	if texture.context.boundTexture == texture.id {
		return
	}
	texture.context.gl.BindTexture(texture.id)
	texture.context.boundTexture = texture.id
}

// CopyFromScreen captures a region of the current render target into the
// first level of this texture.
func (texture *Texture) CopyFromScreen(rect common.Rectangle[int]) {
	if texture.id == 0 {
		return
	}
	texture.Bind()
	texture.context.gl.CopyTexSubImage2D(0, rect.X, rect.Y, rect.W, rect.H)
}

// BuildHardwareMipmaps asks the driver to generate the mipmap pyramid from
// the first level. Returns false when the hardware can not do it. Safe to
// call repeatedly, the filters are only touched when mipmaps turn on.
func (texture *Texture) BuildHardwareMipmaps() bool {
	if texture.id == 0 || !texture.context.caps.HardwareMipmaps {
		return false
	}
	texture.Bind()
	if !texture.hasMipmaps {
		texture.hasMipmaps = true
		texture.setupFilters()
	}
	texture.context.gl.GenerateMipmap()
	return true
}

// SetSmooth switches between linear and nearest filtering. Enabling has no
// effect when the graphics card does not support bilinear filtering.
func (texture *Texture) SetSmooth(smooth bool) {
	if smooth && !texture.context.caps.BilinearFiltering {
		return
	}
	if smooth == texture.smooth {
		return
	}
	texture.smooth = smooth
	if texture.id == 0 {
		return
	}
	texture.Bind()
	texture.setupFilters()
}

// SetRepeat switches between wrapping and clamping of out-of-range sampling
// coordinates.
func (texture *Texture) SetRepeat(repeat bool) {
	if repeat == texture.repeat {
		return
	}
	texture.repeat = repeat
	if texture.id == 0 {
		return
	}
	texture.Bind()
	texture.setupWrap()
}

// SetUpsideDown flips the vertical direction of the sampling transform for
// sources with inverted row order. Only the transform changes, the pixel
// data stays as uploaded.
func (texture *Texture) SetUpsideDown(upsideDown bool) {
	if upsideDown == texture.upsideDown {
		return
	}
	texture.upsideDown = upsideDown
	texture.setupTransform()
}

// Clear fills the texture with transparent black.
func (texture *Texture) Clear() {
	if texture.id == 0 {
		return
	}
	texture.context.gl.ClearTexture(texture.context.framebuffer, texture.id)
}

// Delete frees the texture from gpu memory. Deleting an already deleted or
// blank texture does nothing.
func (texture *Texture) Delete() {
	if texture.id == 0 {
		return
	}
	texture.context.gl.DeleteTexture(texture.id)
	if texture.context.boundTexture == texture.id {
		texture.context.boundTexture = 0
	}
	logger.Log(logger.DEBUG, "Texture deleted:", texture)
	texture.id = 0
	texture.size = common.ZeroVector2INT
	texture.glSize = common.ZeroVector2INT
	texture.hasMipmaps = false
}

// setupSize decides the allocated size from the requested one. Sizes pad up
// to the next power of two when the hardware only supports those or when the
// caller forces it. Fails when the padded size exceeds the hardware maximum,
// the texture then stays blank.
func (texture *Texture) setupSize(size common.Vector2[int], forcePowerOfTwo bool) bool {
	caps := texture.context.caps
	glSize := size
	if !caps.NonPowerOfTwo || forcePowerOfTwo {
		glSize = common.Vec2(common.NextPowerOfTwo(size.X), common.NextPowerOfTwo(size.Y))
	}
	if common.Max(glSize.X, glSize.Y) > caps.MaxTextureSize {
		logger.LogF(logger.ERROR,
			"Failed to create texture with size %dx%d, the maximum size allowed by the graphics card is %dx%d, it will be displayed as a blank texture",
			size.X, size.Y, caps.MaxTextureSize, caps.MaxTextureSize)
		return false
	}
	texture.size = size
	texture.glSize = glSize
	texture.setupTransform()
	return true
}

func (texture *Texture) setupTransform() {
	glWidth := float32(texture.glSize.X)
	glHeight := float32(texture.glSize.Y)
	if texture.upsideDown {
		// The padding sits after the logical rows, the offset in the third
		// row maps row zero onto the last logical row instead of the padded
		// area.
		texture.transform = Matrix3{
			1 / glWidth, 0, 0,
			0, -1 / glHeight, 0,
			0, float32(texture.size.Y) / glHeight, 1,
		}
	} else {
		texture.transform = Matrix3{
			1 / glWidth, 0, 0,
			0, 1 / glHeight, 0,
			0, 0, 1,
		}
	}
}

func (texture *Texture) setupWrap() {
	param := int32(gl.REPEAT)
	if !texture.repeat && texture.context.caps.ClampToEdge {
		param = gl.CLAMP_TO_EDGE
	}
	texture.context.gl.TexParameteri(gl.TEXTURE_WRAP_S, param)
	texture.context.gl.TexParameteri(gl.TEXTURE_WRAP_T, param)
}

func (texture *Texture) setupFilters() {
	var minFilter, magFilter int32
	if texture.smooth {
		if texture.hasMipmaps {
			minFilter = gl.LINEAR_MIPMAP_LINEAR
		} else {
			minFilter = gl.LINEAR
		}
		magFilter = gl.LINEAR
	} else {
		if texture.hasMipmaps {
			minFilter = gl.NEAREST_MIPMAP_NEAREST
		} else {
			minFilter = gl.NEAREST
		}
		magFilter = gl.NEAREST
	}
	texture.context.gl.TexParameteri(gl.TEXTURE_MIN_FILTER, minFilter)
	texture.context.gl.TexParameteri(gl.TEXTURE_MAG_FILTER, magFilter)
}

func (texture *Texture) setupPixels(level int, size common.Vector2[int], pixels []byte, depth int) {
	texture.context.gl.TexImage2D(level, size.X, size.Y, pixelFormat(depth), pixels)
}

func pixelFormat(depth int) uint32 {
	switch depth {
	case 1:
		return gl.RED
	case 2:
		return gl.RG
	case 3:
		return gl.RGB
	case 4:
		return gl.RGBA
	}
	panic(fmt.Errorf("invalid pixel depth: %d", depth))
}
