package opengl

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/texkit/texkit/pkg/bench"
	"github.com/texkit/texkit/pkg/common"
)

type Vertex struct {
	// position of this vertex in window pixels
	pos common.Vector2[float32] // layout 0
	// texture position in logical texture pixels, the texture transform
	// uniform normalizes it
	tex common.Vector2[float32] // layout 1
}

func (vertex Vertex) String() string {
	return fmt.Sprintf("Vertex(pos: %v, tex: %v)", vertex.pos, vertex.tex)
}

const sizeof_Vertex = int32(unsafe.Sizeof(Vertex{})) // 16 bytes

// VertexBuffer holds triangle vertices for textured quad rendering.
type VertexBuffer struct {
	shader      *ShaderProgram
	vaoid       uint32
	vboid       uint32
	updatedSize int      // Last buffer size updated to GPU
	data        []Vertex // Current buffer in memory (len(data) gives capacity)
}

func (buffer *VertexBuffer) String() string {
	return fmt.Sprintf("VertexBuffer(VAO: %d, VBO: %d, Size: %d, Updated Size: %d)",
		buffer.vaoid,
		buffer.vboid,
		len(buffer.data),
		buffer.updatedSize,
	)
}

// VerticesPerQuad is the vertex count of one quad, two triangles.
const VerticesPerQuad = 6

func (context *Context) CreateVertexBuffer(size int) *VertexBuffer {
	if size <= 0 {
		panic("vertex buffer size must bigger then zero")
	}
	buffer := new(VertexBuffer)
	buffer.shader = &context.shader
	// Initialize vao
	CheckGLError(func() {
		gl.GenVertexArrays(1, &buffer.vaoid)
		gl.BindVertexArray(buffer.vaoid)
	})
	// Initialize vbo
	CheckGLError(func() {
		gl.GenBuffers(1, &buffer.vboid)
		gl.BindBuffer(gl.ARRAY_BUFFER, buffer.vboid)
	})
	// Enable attributes
	valueof_Vertex := reflect.ValueOf(Vertex{})
	offset := uintptr(0)
	for i := 0; i < valueof_Vertex.NumField(); i++ {
		attr_size := valueof_Vertex.Field(i).Type().Size()
		CheckGLError(func() {
			gl.EnableVertexAttribArray(uint32(i))
			gl.VertexAttribPointerWithOffset(uint32(i), int32(attr_size)/4, gl.FLOAT, false, sizeof_Vertex, offset)
		})
		offset += attr_size
	}
	// Create buffer in memory
	buffer.data = make([]Vertex, size)
	return buffer
}

// Resize should clear the buffer
func (buffer *VertexBuffer) Resize(size int) {
	if size <= 0 {
		panic("vertex buffer size must bigger then zero")
	}
	if size == len(buffer.data) {
		return
	}

	EndBenchmark := bench.BeginBenchmark()
	defer EndBenchmark("VertexBuffer.Resize")
	// Clear current buffer
	zVertex := Vertex{}
	for i := range buffer.data {
		buffer.data[i] = zVertex
	}
	// Resize
	if cap(buffer.data) > size {
		buffer.data = buffer.data[:size]
	} else {
		remaining := size - len(buffer.data)
		buffer.data = append(buffer.data, make([]Vertex, remaining)...)
	}
}

// SetQuad writes the two triangles of a quad starting at index. The
// destination is in window pixels and the source in logical texture pixels.
func (buffer *VertexBuffer) SetQuad(index int, dest, src common.Rectangle[float32]) {
	positions := [VerticesPerQuad]common.Vector2[float32]{
		{X: dest.X, Y: dest.Y},
		{X: dest.X, Y: dest.Y + dest.H},
		{X: dest.X + dest.W, Y: dest.Y},
		{X: dest.X + dest.W, Y: dest.Y},
		{X: dest.X, Y: dest.Y + dest.H},
		{X: dest.X + dest.W, Y: dest.Y + dest.H},
	}
	texcoords := [VerticesPerQuad]common.Vector2[float32]{
		{X: src.X, Y: src.Y},
		{X: src.X, Y: src.Y + src.H},
		{X: src.X + src.W, Y: src.Y},
		{X: src.X + src.W, Y: src.Y},
		{X: src.X, Y: src.Y + src.H},
		{X: src.X + src.W, Y: src.Y + src.H},
	}
	for i := 0; i < VerticesPerQuad; i++ {
		buffer.data[index+i] = Vertex{pos: positions[i], tex: texcoords[i]}
	}
}

// OpenGL Specific functions

func (buffer *VertexBuffer) Bind() {
	CheckGLError(func() {
		gl.BindVertexArray(buffer.vaoid)
		gl.BindBuffer(gl.ARRAY_BUFFER, buffer.vboid)
	})
}

// Updates current buffer to GPU
// Caller responsible to bind buffer
func (buffer *VertexBuffer) Update() {
	if len(buffer.data) <= 0 {
		panic("empty vertex buffer")
	}
	if buffer.updatedSize != len(buffer.data) {
		CheckGLError(func() {
			gl.BufferData(gl.ARRAY_BUFFER, len(buffer.data)*int(sizeof_Vertex), unsafe.Pointer(&buffer.data[0]), gl.DYNAMIC_DRAW)
		})
		buffer.updatedSize = len(buffer.data)
	} else {
		CheckGLError(func() {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(buffer.data)*int(sizeof_Vertex), unsafe.Pointer(&buffer.data[0]))
		})
	}
}

// Caller responsible to Bind
// Caller responsible to Flush
func (buffer *VertexBuffer) Render() {
	if buffer.updatedSize <= 0 {
		panic("buffer size is zero")
	}
	CheckGLError(func() {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(buffer.updatedSize))
	})
}

func orthoProjection(top, left, right, bottom, near, far float32) [16]float32 {
	rml, tmb, fmn := (right - left), (top - bottom), (far - near)
	matrix := [16]float32{}
	matrix[0] = 2 / rml
	matrix[5] = 2 / tmb
	matrix[10] = -2 / fmn
	matrix[12] = -(right + left) / rml
	matrix[13] = -(top + bottom) / tmb
	matrix[14] = -(far + near) / fmn
	matrix[15] = 1
	return matrix
}

func (buffer *VertexBuffer) SetProjection(rect common.Rectangle[int]) {
	projection := orthoProjection(0, 0, float32(rect.W), float32(rect.H), -1, 1)
	loc := buffer.shader.UniformLocation("projection")
	gl.UniformMatrix4fv(loc, 1, true, &projection[0])
}

// SetTextureTransform updates the sampling transform uniform, pass the
// matrix of the texture about to render.
func (buffer *VertexBuffer) SetTextureTransform(transform Matrix3) {
	loc := buffer.shader.UniformLocation("textureTransform")
	gl.UniformMatrix3fv(loc, 1, false, &transform[0])
}

func (buffer *VertexBuffer) Destroy() {
	buffer.shader = nil
	gl.DeleteVertexArrays(1, &buffer.vaoid)
	gl.DeleteBuffers(1, &buffer.vboid)
	buffer.updatedSize = 0
	buffer.data = nil
}
