package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/texkit/texkit/pkg/common"
	"github.com/texkit/texkit/pkg/logger"
)

type ContextInfo struct {
	Version                string
	Vendor                 string
	Renderer               string
	ShadingLanguageVersion string
}

// Capabilities is an immutable snapshot of the hardware limits the texture
// code cares about. It is captured once at context creation. The size
// negotiation and the filtering policy only ever look at this snapshot, so
// other backends (and tests) can run the same code with a fabricated set.
type Capabilities struct {
	MaxTextureSize    int  // Biggest width or height a texture can have
	NonPowerOfTwo     bool // Textures can have arbitrary dimensions
	BilinearFiltering bool // Linear min/mag filters are available
	ClampToEdge       bool // CLAMP_TO_EDGE wrap mode is available
	HardwareMipmaps   bool // The driver can generate mipmaps itself
}

type Context struct {
	gl           glAPI
	caps         Capabilities
	shader       ShaderProgram // default shader for textured quad rendering
	framebuffer  uint32        // only for clearing textures
	boundTexture uint32        // id of the last bound texture, zero means none
}

// Call per window, the opengl context of the window must be current
func New() (*Context, error) {
	// Initialize opengl
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("Failed to initialize opengl: %s", err)
	}

	context := new(Context)
	context.gl = stdGL{}

	// Init shaders
	context.shader = DefaultProgram()
	context.shader.Use()

	// Create framebuffer object
	// We dont need to bind framebuffer because we need it only when clearing texture
	CheckGLError(func() {
		gl.GenFramebuffers(1, &context.framebuffer)
	})

	context.caps = queryCapabilities()
	logger.Log(logger.DEBUG, "Opengl context created:", context.caps)

	return context, nil
}

// A 3.3 core context guarantees everything except the maximum size, but the
// snapshot keeps the decisions data driven.
func queryCapabilities() Capabilities {
	var maxTextureSize int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTextureSize)
	return Capabilities{
		MaxTextureSize:    int(maxTextureSize),
		NonPowerOfTwo:     true,
		BilinearFiltering: true,
		ClampToEdge:       true,
		HardwareMipmaps:   true,
	}
}

func (context *Context) Info() ContextInfo {
	return ContextInfo{
		Version:                gl.GoStr(gl.GetString(gl.VERSION)),
		Vendor:                 gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:               gl.GoStr(gl.GetString(gl.RENDERER)),
		ShadingLanguageVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

func (context *Context) Capabilities() Capabilities {
	return context.caps
}

func (context *Context) SetViewport(rect common.Rectangle[int]) {
	CheckGLError(func() {
		gl.Viewport(int32(rect.X), int32(rect.Y), int32(rect.W), int32(rect.H))
	})
}

func (context *Context) ClearScreen(c common.Color) {
	CheckGLError(func() {
		gl.ClearColor(c.R, c.G, c.B, c.A)
		gl.Clear(gl.COLOR_BUFFER_BIT)
	})
}

func (context *Context) Flush() {
	// Since we are not using doublebuffering, we don't need to swap buffers, but we need to flush.
	CheckGLError(func() {
		gl.Flush()
	})
}

func (context *Context) Destroy() {
	// Delete framebuffer
	gl.DeleteFramebuffers(1, &context.framebuffer)
	// Delete shaders
	context.shader.Destroy()
}
