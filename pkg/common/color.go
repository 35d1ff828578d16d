package common

import "fmt"

// Color is a normalized rgba color, every channel in [0, 1].
type Color struct {
	R, G, B, A float32
}

func (c Color) String() string {
	return fmt.Sprintf("Color(R: %v, G: %v, B: %v, A: %v)", c.R, c.G, c.B, c.A)
}

// ColorFromUint unpacks a 0xAARRGGBB value. A zero alpha byte is treated as
// fully opaque so plain 0xRRGGBB literals work as expected.
func ColorFromUint(color uint32) Color {
	a := (color >> 24) & 0xff
	if a == 0 {
		a = 0xff
	}
	return Color{
		R: float32((color>>16)&0xff) / 255,
		G: float32((color>>8)&0xff) / 255,
		B: float32(color&0xff) / 255,
		A: float32(a) / 255,
	}
}
