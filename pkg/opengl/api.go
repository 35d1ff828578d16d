package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// glAPI is the slice of opengl the texture code goes through. The live
// implementation issues real gl calls, tests swap in a recording fake with
// fabricated capabilities.
type glAPI interface {
	GenTexture() uint32
	BindTexture(id uint32)
	DeleteTexture(id uint32)
	// TexImage2D uploads one mipmap level. A nil pixels slice only reserves
	// the storage.
	TexImage2D(level, width, height int, format uint32, pixels []byte)
	CopyTexSubImage2D(level, x, y, width, height int)
	TexParameteri(name uint32, param int32)
	GenerateMipmap()
	// ClearTexture fills the texture with transparent black by attaching it
	// to the given framebuffer and clearing.
	ClearTexture(framebuffer, id uint32)
}

// stdGL issues calls on the rendering context current to this thread.
type stdGL struct{}

func (stdGL) GenTexture() uint32 {
	var id uint32
	CheckGLError(func() {
		gl.GenTextures(1, &id)
	})
	return id
}

func (stdGL) BindTexture(id uint32) {
	CheckGLError(func() {
		gl.BindTexture(gl.TEXTURE_2D, id)
	})
}

func (stdGL) DeleteTexture(id uint32) {
	CheckGLError(func() {
		gl.DeleteTextures(1, &id)
	})
}

func (stdGL) TexImage2D(level, width, height int, format uint32, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	CheckGLError(func() {
		gl.TexImage2D(gl.TEXTURE_2D, int32(level), gl.RGBA8, int32(width), int32(height), 0, format, gl.UNSIGNED_BYTE, ptr)
	})
}

func (stdGL) CopyTexSubImage2D(level, x, y, width, height int) {
	CheckGLError(func() {
		gl.CopyTexSubImage2D(gl.TEXTURE_2D, int32(level), 0, 0, int32(x), int32(y), int32(width), int32(height))
	})
}

func (stdGL) TexParameteri(name uint32, param int32) {
	CheckGLError(func() {
		gl.TexParameteri(gl.TEXTURE_2D, name, param)
	})
}

func (stdGL) GenerateMipmap() {
	CheckGLError(func() {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	})
}

func (stdGL) ClearTexture(framebuffer, id uint32) {
	// Bind framebuffer
	CheckGLError(func() {
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, framebuffer)
	})
	// Init framebuffer with texture
	CheckGLError(func() {
		gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, id, 0)
	})
	// Check if the framebuffer is complete and ready for draw
	fbo_status := gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER)
	if fbo_status == gl.FRAMEBUFFER_COMPLETE {
		// Clear the texture
		CheckGLError(func() {
			gl.ClearColor(0, 0, 0, 0)
			gl.Clear(gl.COLOR_BUFFER_BIT)
		})
	} else {
		panic(fmt.Errorf("Framebuffer is not complete: %d", fbo_status))
	}
	// Unbind framebuffer
	CheckGLError(func() {
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	})
}

// CheckGLError calls glFunc and panics if it generated an opengl error
func CheckGLError(glFunc func()) {
	glFunc()
	error_code := gl.GetError()
	if error_code == gl.NO_ERROR {
		return
	}
	var errorName string
	switch error_code {
	case gl.INVALID_ENUM:
		errorName = "INVALID_ENUM"
	case gl.INVALID_VALUE:
		errorName = "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		errorName = "INVALID_OPERATION"
	case gl.STACK_OVERFLOW:
		errorName = "STACK_OVERFLOW"
	case gl.STACK_UNDERFLOW:
		errorName = "STACK_UNDERFLOW"
	case gl.OUT_OF_MEMORY:
		errorName = "OUT_OF_MEMORY"
	case gl.CONTEXT_LOST:
		errorName = "CONTEXT_LOST"
	default:
		errorName = fmt.Sprintf("#%.4x", error_code)
	}
	panic(fmt.Errorf("Opengl Error: %s", errorName))
}
