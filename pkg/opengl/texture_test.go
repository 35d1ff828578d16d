package opengl

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texkit/texkit/pkg/common"
)

type texImageCall struct {
	level  int
	width  int
	height int
	format uint32
	pixels []byte
}

type texParamCall struct {
	name  uint32
	param int32
}

// fakeGL records every call so tests can check what reached the hardware.
type fakeGL struct {
	nextID  uint32
	gens    int
	binds   []uint32
	images  []texImageCall
	params  []texParamCall
	copies  []common.Rectangle[int]
	mipmaps int
	deleted []uint32
	clears  int
}

func (f *fakeGL) GenTexture() uint32 {
	f.gens++
	f.nextID++
	return f.nextID
}

func (f *fakeGL) BindTexture(id uint32) {
	f.binds = append(f.binds, id)
}

func (f *fakeGL) DeleteTexture(id uint32) {
	f.deleted = append(f.deleted, id)
}

func (f *fakeGL) TexImage2D(level, width, height int, format uint32, pixels []byte) {
	f.images = append(f.images, texImageCall{level, width, height, format, pixels})
}

func (f *fakeGL) CopyTexSubImage2D(level, x, y, width, height int) {
	f.copies = append(f.copies, common.Rect(x, y, width, height))
}

func (f *fakeGL) TexParameteri(name uint32, param int32) {
	f.params = append(f.params, texParamCall{name, param})
}

func (f *fakeGL) GenerateMipmap() {
	f.mipmaps++
}

func (f *fakeGL) ClearTexture(framebuffer, id uint32) {
	f.clears++
}

func (f *fakeGL) callCount() int {
	return f.gens + len(f.binds) + len(f.images) + len(f.params) +
		len(f.copies) + f.mipmaps + len(f.deleted) + f.clears
}

func (f *fakeGL) reset() {
	f.binds = nil
	f.images = nil
	f.params = nil
	f.copies = nil
	f.deleted = nil
	f.gens = 0
	f.mipmaps = 0
	f.clears = 0
}

func (f *fakeGL) lastParam(name uint32) (int32, bool) {
	for i := len(f.params) - 1; i >= 0; i-- {
		if f.params[i].name == name {
			return f.params[i].param, true
		}
	}
	return 0, false
}

// defaultCaps mimics an old graphics card without non power of two support.
func defaultCaps() Capabilities {
	return Capabilities{
		MaxTextureSize:    2048,
		NonPowerOfTwo:     false,
		BilinearFiltering: true,
		ClampToEdge:       true,
		HardwareMipmaps:   true,
	}
}

func newTestContext(caps Capabilities) (*Context, *fakeGL) {
	fake := new(fakeGL)
	return &Context{gl: fake, caps: caps}, fake
}

func Test_setupSize(t *testing.T) {
	tests := []struct {
		name          string
		caps          Capabilities
		requested     common.Vector2[int]
		buildMipmaps  bool
		wantAllocated common.Vector2[int]
	}{
		{
			name:          "Pad to next power of two",
			caps:          defaultCaps(),
			requested:     common.Vec2(100, 70),
			wantAllocated: common.Vec2(128, 128),
		},
		{
			name: "Keep arbitrary size when supported",
			caps: func() Capabilities {
				caps := defaultCaps()
				caps.NonPowerOfTwo = true
				return caps
			}(),
			requested:     common.Vec2(100, 70),
			wantAllocated: common.Vec2(100, 70),
		},
		{
			name:          "Padding is a no-op for power of two sizes",
			caps:          defaultCaps(),
			requested:     common.Vec2(128, 64),
			wantAllocated: common.Vec2(128, 64),
		},
		{
			name: "Mipmap build forces power of two",
			caps: func() Capabilities {
				caps := defaultCaps()
				caps.NonPowerOfTwo = true
				return caps
			}(),
			requested:     common.Vec2(100, 70),
			buildMipmaps:  true,
			wantAllocated: common.Vec2(128, 128),
		},
		{
			name:          "Padded size may reach the maximum",
			caps:          defaultCaps(),
			requested:     common.Vec2(1025, 10),
			wantAllocated: common.Vec2(2048, 16),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			context, fake := newTestContext(tt.caps)
			var texture *Texture
			if tt.buildMipmaps {
				img := NewImage(tt.requested, 4)
				texture = context.CreateTextureFromPixels(img, true)
			} else {
				texture = context.CreateTexture(tt.requested)
			}
			require.Equal(t, 1, fake.gens)
			assert.Equal(t, tt.requested, texture.Size())
			assert.Equal(t, tt.wantAllocated, texture.GLSize())
		})
	}
}

func Test_sizeExceedsMaximum(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	// 3000 exceeds 2048 even before padding
	texture := context.CreateTexture(common.Vec2(3000, 10))
	assert.Equal(t, 0, fake.callCount(), "no hardware call for an oversized texture")
	assert.Equal(t, common.ZeroVector2INT, texture.GLSize())

	// Every operation on the blank texture must stay away from the hardware
	texture.Bind()
	texture.CopyFromScreen(common.Rect(0, 0, 10, 10))
	assert.False(t, texture.BuildHardwareMipmaps())
	texture.SetSmooth(true)
	texture.SetRepeat(true)
	texture.Clear()
	texture.Delete()
	assert.Equal(t, 0, fake.callCount())

	// The upload path fails the same way, nothing of the source reaches
	// the hardware
	fake.reset()
	img := NewImage(common.Vec2(3000, 10), 4)
	fromPixels := context.CreateTextureFromPixels(img, false)
	assert.Equal(t, 0, fake.callCount())
	assert.Equal(t, common.ZeroVector2INT, fromPixels.GLSize())
}

func Test_paddingExceedsMaximum(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	// 2049 pads to 4096 which is above the maximum
	texture := context.CreateTexture(common.Vec2(2049, 10))
	assert.Equal(t, 0, fake.gens)
	assert.Equal(t, common.ZeroVector2INT, texture.GLSize())
}

func Test_transformMatrix(t *testing.T) {
	context, _ := newTestContext(defaultCaps())
	texture := context.CreateTexture(common.Vec2(100, 70))
	require.Equal(t, common.Vec2(128, 128), texture.GLSize())

	transform := texture.TransformMatrix()
	origin := transform.TransformPoint(common.Vec2[float32](0, 0))
	assert.Equal(t, common.ZeroVector2F32, origin)

	corner := transform.TransformPoint(common.Vec2[float32](100, 70))
	assert.InDelta(t, 100.0/128.0, corner.X, 1e-6)
	assert.InDelta(t, 70.0/128.0, corner.Y, 1e-6)
}

func Test_transformMatrixUpsideDown(t *testing.T) {
	context, _ := newTestContext(defaultCaps())
	texture := context.CreateTexture(common.Vec2(100, 70))
	texture.SetUpsideDown(true)

	transform := texture.TransformMatrix()
	// Row zero samples the last logical row, not the padded area
	origin := transform.TransformPoint(common.Vec2[float32](0, 0))
	assert.InDelta(t, 0, origin.X, 1e-6)
	assert.InDelta(t, 70.0/128.0, origin.Y, 1e-6)

	corner := transform.TransformPoint(common.Vec2[float32](100, 70))
	assert.InDelta(t, 100.0/128.0, corner.X, 1e-6)
	assert.InDelta(t, 0, corner.Y, 1e-6)

	// Setting the same value again must not touch the transform
	before := texture.TransformMatrix()
	texture.SetUpsideDown(true)
	assert.Equal(t, before, texture.TransformMatrix())
}

func Test_setSmoothRequiresBilinearFiltering(t *testing.T) {
	caps := defaultCaps()
	caps.BilinearFiltering = false
	context, fake := newTestContext(caps)
	texture := context.CreateTexture(common.Vec2(64, 64))
	fake.reset()

	texture.SetSmooth(true)
	assert.Equal(t, 0, fake.callCount(), "rejected smooth must not touch the hardware")

	// A later capability honored call reapplies only its own policy
	texture.SetRepeat(true)
	_, ok := fake.lastParam(gl.TEXTURE_MIN_FILTER)
	assert.False(t, ok)
	wrap, ok := fake.lastParam(gl.TEXTURE_WRAP_S)
	require.True(t, ok)
	assert.Equal(t, int32(gl.REPEAT), wrap)
}

func Test_setSmoothAppliesFilters(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	texture := context.CreateTexture(common.Vec2(64, 64))
	fake.reset()

	texture.SetSmooth(true)
	minFilter, ok := fake.lastParam(gl.TEXTURE_MIN_FILTER)
	require.True(t, ok)
	assert.Equal(t, int32(gl.LINEAR), minFilter)
	magFilter, ok := fake.lastParam(gl.TEXTURE_MAG_FILTER)
	require.True(t, ok)
	assert.Equal(t, int32(gl.LINEAR), magFilter)

	// Same value again is a no-op
	fake.reset()
	texture.SetSmooth(true)
	assert.Equal(t, 0, fake.callCount())
}

func Test_setRepeatRedundantValue(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	texture := context.CreateTexture(common.Vec2(64, 64))
	fake.reset()

	// Current value, nothing should happen
	texture.SetRepeat(false)
	assert.Equal(t, 0, fake.callCount())

	texture.SetRepeat(true)
	wrap, ok := fake.lastParam(gl.TEXTURE_WRAP_S)
	require.True(t, ok)
	assert.Equal(t, int32(gl.REPEAT), wrap)
}

func Test_wrapFallsBackToRepeat(t *testing.T) {
	caps := defaultCaps()
	caps.ClampToEdge = false
	context, fake := newTestContext(caps)
	context.CreateTexture(common.Vec2(64, 64))

	// Clamping was preferred but is not available
	wrap, ok := fake.lastParam(gl.TEXTURE_WRAP_S)
	require.True(t, ok)
	assert.Equal(t, int32(gl.REPEAT), wrap)
}

func Test_wrapPrefersClampToEdge(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	context.CreateTexture(common.Vec2(64, 64))
	for _, name := range []uint32{gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T} {
		wrap, ok := fake.lastParam(name)
		require.True(t, ok)
		assert.Equal(t, int32(gl.CLAMP_TO_EDGE), wrap)
	}
}

func Test_softwareMipmapPyramid(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	img := NewImage(common.Vec2(64, 64), 4)
	texture := context.CreateTextureFromPixels(img, true)

	require.True(t, texture.HasMipmaps())
	require.Len(t, fake.images, 7)
	size := 64
	for i, call := range fake.images {
		assert.Equal(t, i, call.level)
		assert.Equal(t, size, call.width)
		assert.Equal(t, size, call.height)
		assert.Equal(t, uint32(gl.RGBA), call.format)
		assert.Len(t, call.pixels, size*size*4)
		size /= 2
	}

	// Mipmapped nearest filtering selected
	minFilter, ok := fake.lastParam(gl.TEXTURE_MIN_FILTER)
	require.True(t, ok)
	assert.Equal(t, int32(gl.NEAREST_MIPMAP_NEAREST), minFilter)
}

func Test_singleLevelUpload(t *testing.T) {
	caps := defaultCaps()
	caps.NonPowerOfTwo = true
	context, fake := newTestContext(caps)
	img := NewImage(common.Vec2(40, 30), 3)
	texture := context.CreateTextureFromPixels(img, false)

	assert.False(t, texture.HasMipmaps())
	require.Len(t, fake.images, 1)
	assert.Equal(t, 0, fake.images[0].level)
	assert.Equal(t, uint32(gl.RGB), fake.images[0].format)
}

func Test_paddedUpload(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	img := NewImage(common.Vec2(100, 70), 4)
	copy(img.PixelAt(0, 0), []byte{0xaa, 0xbb, 0xcc, 0xdd})

	texture := context.CreateTextureFromPixels(img, false)
	require.Equal(t, common.Vec2(128, 128), texture.GLSize())

	require.Len(t, fake.images, 1)
	call := fake.images[0]
	assert.Equal(t, 128, call.width)
	assert.Equal(t, 128, call.height)
	require.Len(t, call.pixels, 128*128*4)
	// Source pixel pasted at the origin
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc, 0xdd}, call.pixels[:4])
	// Padding stays zero
	padOffset := 100 * 4
	assert.Equal(t, []byte{0, 0, 0, 0}, call.pixels[padOffset:padOffset+4])
}

func Test_blankTextureReservesStorage(t *testing.T) {
	caps := defaultCaps()
	caps.NonPowerOfTwo = true
	context, fake := newTestContext(caps)
	context.CreateTexture(common.Vec2(300, 200))

	require.Len(t, fake.images, 1)
	call := fake.images[0]
	assert.Equal(t, 300, call.width)
	assert.Equal(t, 200, call.height)
	assert.Nil(t, call.pixels)
}

func Test_buildHardwareMipmaps(t *testing.T) {
	t.Run("Unsupported", func(t *testing.T) {
		caps := defaultCaps()
		caps.HardwareMipmaps = false
		context, fake := newTestContext(caps)
		texture := context.CreateTexture(common.Vec2(64, 64))
		fake.reset()

		assert.False(t, texture.BuildHardwareMipmaps())
		assert.Equal(t, 0, fake.mipmaps)
		assert.False(t, texture.HasMipmaps())
	})

	t.Run("Generates and reapplies filters once", func(t *testing.T) {
		context, fake := newTestContext(defaultCaps())
		texture := context.CreateTexture(common.Vec2(64, 64))
		fake.reset()

		require.True(t, texture.BuildHardwareMipmaps())
		assert.Equal(t, 1, fake.mipmaps)
		assert.True(t, texture.HasMipmaps())
		minFilter, ok := fake.lastParam(gl.TEXTURE_MIN_FILTER)
		require.True(t, ok)
		assert.Equal(t, int32(gl.NEAREST_MIPMAP_NEAREST), minFilter)

		// Second build regenerates but leaves the filters alone
		fake.reset()
		require.True(t, texture.BuildHardwareMipmaps())
		assert.Equal(t, 1, fake.mipmaps)
		assert.Empty(t, fake.params)
	})
}

func Test_copyFromScreen(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	texture := context.CreateTexture(common.Vec2(128, 128))
	fake.reset()

	rect := common.Rect(5, 6, 50, 40)
	texture.CopyFromScreen(rect)
	require.Len(t, fake.copies, 1)
	assert.Equal(t, rect, fake.copies[0])
}

func Test_screenCaptureStaysFlipped(t *testing.T) {
	context, _ := newTestContext(defaultCaps())
	capture := context.CreateTexture(common.Vec2(100, 70))
	capture.CopyFromScreen(common.Rect(0, 0, 100, 70))

	// A viewer applies its filtering and wrap policies to every texture it
	// shows and flips a screen capture last, the flip has to survive
	capture.SetSmooth(true)
	capture.SetRepeat(false)
	capture.SetUpsideDown(false)
	capture.SetUpsideDown(true)

	transform := capture.TransformMatrix()
	origin := transform.TransformPoint(common.Vec2[float32](0, 0))
	assert.InDelta(t, 70.0/128.0, origin.Y, 1e-6)
	corner := transform.TransformPoint(common.Vec2[float32](0, 70))
	assert.InDelta(t, 0, corner.Y, 1e-6)
}

func Test_bindTracking(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	first := context.CreateTexture(common.Vec2(64, 64))
	second := context.CreateTexture(common.Vec2(64, 64))
	fake.reset()

	// second is the last bound texture, binding it again is skipped
	second.Bind()
	assert.Empty(t, fake.binds)

	// mutating the other one rebinds it first
	first.SetRepeat(true)
	require.NotEmpty(t, fake.binds)
	assert.Equal(t, first.id, fake.binds[0])
}

func Test_deleteTexture(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	texture := context.CreateTexture(common.Vec2(64, 64))
	id := texture.id
	fake.reset()

	texture.Delete()
	assert.Equal(t, []uint32{id}, fake.deleted)
	assert.Equal(t, common.ZeroVector2INT, texture.Size())

	// Double delete is a no-op
	texture.Delete()
	assert.Equal(t, []uint32{id}, fake.deleted)
}

func Test_clearTexture(t *testing.T) {
	context, fake := newTestContext(defaultCaps())
	texture := context.CreateTexture(common.Vec2(64, 64))
	fake.reset()

	texture.Clear()
	assert.Equal(t, 1, fake.clears)
}
