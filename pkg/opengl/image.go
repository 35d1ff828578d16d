package opengl

import (
	"fmt"
	"image"

	"github.com/texkit/texkit/pkg/common"
)

// PixelSource supplies raw pixel data for texture uploads. Depth is the
// number of byte channels per pixel, from 1 up to 4. NextMipmap replaces the
// current pixel data with the next half resolution level and reports whether
// one was produced, it returns false once the data is a single pixel. The
// sequence only moves forward, start from a fresh source to upload again.
type PixelSource interface {
	Size() common.Vector2[int]
	Depth() int
	Pixels() []byte
	NextMipmap() bool
}

// Image is an in-memory pixel buffer implementing PixelSource.
type Image struct {
	size  common.Vector2[int]
	depth int
	pix   []byte
}

func (img *Image) String() string {
	return fmt.Sprintf("Image(Width: %d, Height: %d, Depth: %d)", img.size.X, img.size.Y, img.depth)
}

// NewImage creates a zero filled image.
func NewImage(size common.Vector2[int], depth int) *Image {
	if size.X <= 0 || size.Y <= 0 {
		panic("image dimensions must bigger than zero")
	}
	if depth < 1 || depth > 4 {
		panic(fmt.Errorf("invalid image depth: %d", depth))
	}
	return &Image{
		size:  size,
		depth: depth,
		pix:   make([]byte, size.X*size.Y*depth),
	}
}

// NewImageFromRGBA copies a standard library RGBA image.
func NewImageFromRGBA(src *image.RGBA) *Image {
	bounds := src.Bounds()
	img := NewImage(common.Vec2(bounds.Dx(), bounds.Dy()), 4)
	rowLen := bounds.Dx() * 4
	for y := 0; y < bounds.Dy(); y++ {
		begin := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(img.pix[y*rowLen:], src.Pix[begin:begin+rowLen])
	}
	return img
}

func (img *Image) Size() common.Vector2[int] {
	return img.size
}

func (img *Image) Depth() int {
	return img.depth
}

func (img *Image) Pixels() []byte {
	return img.pix
}

// PixelAt returns the channel bytes of one pixel, backed by the image.
func (img *Image) PixelAt(x, y int) []byte {
	begin := (y*img.size.X + x) * img.depth
	return img.pix[begin : begin+img.depth]
}

// Paste copies src into the top left corner. The pixel depths must match and
// src must fit.
func (img *Image) Paste(src PixelSource) {
	if src.Depth() != img.depth {
		panic("pasted image depth does not match")
	}
	srcSize := src.Size()
	if srcSize.X > img.size.X || srcSize.Y > img.size.Y {
		panic("pasted image does not fit")
	}
	srcPix := src.Pixels()
	srcRowLen := srcSize.X * img.depth
	dstRowLen := img.size.X * img.depth
	for y := 0; y < srcSize.Y; y++ {
		copy(img.pix[y*dstRowLen:], srcPix[y*srcRowLen:y*srcRowLen+srcRowLen])
	}
}

func (img *Image) at(x, y, channel int) byte {
	return img.pix[(y*img.size.X+x)*img.depth+channel]
}

// NextMipmap halves the image in place with a box filter. Odd dimensions
// clamp the sample window at the edge.
func (img *Image) NextMipmap() bool {
	w, h := img.size.X, img.size.Y
	if w == 1 && h == 1 {
		return false
	}
	dw := common.Max(1, w/2)
	dh := common.Max(1, h/2)
	dst := make([]byte, dw*dh*img.depth)
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			x0, y0 := 2*x, 2*y
			x1 := common.Min(x0+1, w-1)
			y1 := common.Min(y0+1, h-1)
			for c := 0; c < img.depth; c++ {
				sum := int(img.at(x0, y0, c)) + int(img.at(x1, y0, c)) +
					int(img.at(x0, y1, c)) + int(img.at(x1, y1, c))
				dst[(y*dw+x)*img.depth+c] = byte(sum / 4)
			}
		}
	}
	img.size = common.Vec2(dw, dh)
	img.pix = dst
	return true
}
