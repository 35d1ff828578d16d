package opengl

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/texkit/texkit/pkg/common"
)

func Test_mipmapSequence(t *testing.T) {
	tests := []struct {
		name  string
		size  common.Vector2[int]
		wants []common.Vector2[int]
	}{
		{
			name: "Square",
			size: common.Vec2(64, 64),
			wants: []common.Vector2[int]{
				common.Vec2(32, 32), common.Vec2(16, 16), common.Vec2(8, 8),
				common.Vec2(4, 4), common.Vec2(2, 2), common.Vec2(1, 1),
			},
		},
		{
			name: "Wide",
			size: common.Vec2(8, 2),
			wants: []common.Vector2[int]{
				common.Vec2(4, 1), common.Vec2(2, 1), common.Vec2(1, 1),
			},
		},
		{
			name:  "Single pixel",
			size:  common.Vec2(1, 1),
			wants: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewImage(tt.size, 4)
			for _, want := range tt.wants {
				require.True(t, img.NextMipmap())
				assert.Equal(t, want, img.Size())
				assert.Len(t, img.Pixels(), want.X*want.Y*4)
			}
			// The sequence is finite
			assert.False(t, img.NextMipmap())
			assert.Equal(t, common.Vec2(1, 1), img.Size())
		})
	}
}

func Test_mipmapBoxFilter(t *testing.T) {
	img := NewImage(common.Vec2(2, 2), 1)
	img.PixelAt(0, 0)[0] = 10
	img.PixelAt(1, 0)[0] = 20
	img.PixelAt(0, 1)[0] = 30
	img.PixelAt(1, 1)[0] = 40

	require.True(t, img.NextMipmap())
	assert.Equal(t, byte(25), img.PixelAt(0, 0)[0])
}

func Test_paste(t *testing.T) {
	src := NewImage(common.Vec2(2, 2), 2)
	copy(src.PixelAt(0, 0), []byte{1, 2})
	copy(src.PixelAt(1, 1), []byte{3, 4})

	dst := NewImage(common.Vec2(4, 4), 2)
	dst.Paste(src)

	assert.Equal(t, []byte{1, 2}, dst.PixelAt(0, 0))
	assert.Equal(t, []byte{3, 4}, dst.PixelAt(1, 1))
	// Outside the pasted region stays zero
	assert.Equal(t, []byte{0, 0}, dst.PixelAt(2, 0))
	assert.Equal(t, []byte{0, 0}, dst.PixelAt(0, 2))
}

func Test_pasteMismatchedDepth(t *testing.T) {
	src := NewImage(common.Vec2(2, 2), 3)
	dst := NewImage(common.Vec2(4, 4), 4)
	assert.Panics(t, func() {
		dst.Paste(src)
	})
}

func Test_newImageFromRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Pix[0], rgba.Pix[1], rgba.Pix[2], rgba.Pix[3] = 10, 20, 30, 255

	img := NewImageFromRGBA(rgba)
	assert.Equal(t, common.Vec2(2, 2), img.Size())
	assert.Equal(t, 4, img.Depth())
	assert.Equal(t, []byte{10, 20, 30, 255}, img.PixelAt(0, 0))
}

func Test_newImageValidation(t *testing.T) {
	assert.Panics(t, func() {
		NewImage(common.Vec2(0, 10), 4)
	})
	assert.Panics(t, func() {
		NewImage(common.Vec2(10, 10), 5)
	})
}
