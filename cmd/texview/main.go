package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/texkit/texkit/pkg/bench"
	"github.com/texkit/texkit/pkg/common"
	"github.com/texkit/texkit/pkg/logger"
	"github.com/texkit/texkit/pkg/opengl"
	"github.com/texkit/texkit/pkg/window"
)

var version = logger.Version{Major: 0, Minor: 2, Patch: 0}

func init() {
	// Opengl and glfw calls must stay on the main thread
	runtime.LockOSThread()
}

var (
	flagLogFile = flag.String("logfile", "", "write logs to this file")
	flagMipmaps = flag.Bool("mipmaps", true, "upload the software mipmap pyramid of loaded images")
	flagSmooth  = flag.Bool("smooth", true, "start with linear filtering")
)

func main() {
	flag.Parse()

	logger.Init("texview", version, bench.BUILD_TYPE, true)
	defer logger.Shutdown()
	if *flagLogFile != "" {
		logger.InitFile(*flagLogFile)
	}

	if err := glfw.Init(); err != nil {
		logger.Log(logger.FATAL, "Failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	win, err := window.New("texview", 800, 600)
	if err != nil {
		logger.Log(logger.FATAL, err)
	}
	defer win.Destroy()
	win.SetMinSize(common.Vec2(200, 150))

	context := win.GL()
	logContextInfo(context)

	view := &viewer{
		window:  win,
		context: context,
		buffer:  context.CreateVertexBuffer(opengl.VerticesPerQuad),
		smooth:  *flagSmooth,
	}
	defer view.buffer.Destroy()

	if flag.NArg() > 0 {
		view.loadFile(flag.Arg(0))
	}
	if view.texture == nil {
		view.showTexture(checkerboard(context), "checkerboard", view.upsideDown)
	}

	win.SetEventHandler(view.handleEvent)
	win.Show()
	view.resize(win.Viewport())

	view.running = true
	for view.running {
		win.PollEvents()
		view.render()
	}

	view.texture.Delete()
	bench.PrintResults(os.Stdout)
}

type viewer struct {
	window     *window.Window
	context    *opengl.Context
	buffer     *opengl.VertexBuffer
	texture    *opengl.Texture
	name       string
	running    bool
	smooth     bool
	repeat     bool
	upsideDown bool
}

func (view *viewer) handleEvent(event window.WindowEvent) {
	switch event.Type {
	case window.WindowEventClose:
		view.running = false
	case window.WindowEventResize:
		width := event.Params[0].(int)
		height := event.Params[1].(int)
		view.resize(common.Rect(0, 0, width, height))
	case window.WindowEventKeyInput:
		key := event.Params[0].(glfw.Key)
		action := event.Params[2].(glfw.Action)
		if action == glfw.Press {
			view.handleKey(key)
		}
	case window.WindowEventDrop:
		names := event.Params[0].([]string)
		if len(names) > 0 {
			view.loadFile(names[0])
			view.updateQuad()
		}
	}
}

func (view *viewer) handleKey(key glfw.Key) {
	if key == glfw.KeyEscape {
		view.running = false
		return
	}
	if view.texture == nil {
		return
	}
	switch key {
	case glfw.KeyS:
		view.smooth = !view.smooth
		view.texture.SetSmooth(view.smooth)
		logger.Log(logger.TRACE, "Smooth filtering:", view.smooth)
	case glfw.KeyR:
		view.repeat = !view.repeat
		view.texture.SetRepeat(view.repeat)
		logger.Log(logger.TRACE, "Repeating:", view.repeat)
	case glfw.KeyU:
		view.upsideDown = !view.upsideDown
		view.texture.SetUpsideDown(view.upsideDown)
		logger.Log(logger.TRACE, "Upside down:", view.upsideDown)
	case glfw.KeyM:
		if view.texture.BuildHardwareMipmaps() {
			logger.Log(logger.TRACE, "Hardware mipmaps generated")
		} else {
			logger.Log(logger.WARN, "Hardware mipmap generation is not available")
		}
	case glfw.KeyC:
		view.captureScreen()
	}
}

func (view *viewer) resize(viewport common.Rectangle[int]) {
	if viewport.W <= 0 || viewport.H <= 0 {
		return
	}
	view.context.SetViewport(viewport)
	view.buffer.Bind()
	view.buffer.SetProjection(viewport)
	view.updateQuad()
}

// updateQuad fits the texture into the window preserving its aspect ratio.
// The quad source is in logical pixels, the sampling transform of the
// texture normalizes it at draw time.
func (view *viewer) updateQuad() {
	if view.texture == nil {
		return
	}
	size := view.texture.Size().ToF32()
	if size.X <= 0 || size.Y <= 0 {
		// Blank texture, nothing to show
		return
	}
	viewport := view.window.Viewport().ToF32()
	scale := common.Min(viewport.W/size.X, viewport.H/size.Y)
	dest := common.Rect(
		(viewport.W-size.X*scale)/2,
		(viewport.H-size.Y*scale)/2,
		size.X*scale,
		size.Y*scale,
	)
	src := common.Rect(0, 0, size.X, size.Y)
	view.buffer.SetQuad(0, dest, src)
}

func (view *viewer) render() {
	EndBenchmark := bench.BeginBenchmark()
	defer EndBenchmark("viewer.render")

	view.context.ClearScreen(common.ColorFromUint(0x1e1e2e))
	if view.texture != nil {
		view.texture.Bind()
		view.buffer.SetTextureTransform(view.texture.TransformMatrix())
	}
	view.buffer.Bind()
	view.buffer.Update()
	view.buffer.Render()
	view.context.Flush()
}

func (view *viewer) loadFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		logger.Log(logger.ERROR, "Failed to open image:", err)
		return
	}
	defer file.Close()
	decoded, format, err := image.Decode(file)
	if err != nil {
		logger.Log(logger.ERROR, "Failed to decode image:", err)
		return
	}
	logger.LogF(logger.TRACE, "Loaded %s image %s", format, path)

	rgba := image.NewRGBA(decoded.Bounds())
	draw.Draw(rgba, rgba.Bounds(), decoded, decoded.Bounds().Min, draw.Src)

	texture := view.context.CreateTextureFromPixels(opengl.NewImageFromRGBA(rgba), *flagMipmaps)
	view.showTexture(texture, filepath.Base(path), view.upsideDown)
}

// showTexture replaces the displayed texture and applies the viewer policies
// to it. Orientation is explicit because a screen capture shows flipped.
func (view *viewer) showTexture(texture *opengl.Texture, name string, upsideDown bool) {
	if view.texture != nil {
		view.texture.Delete()
	}
	view.texture = texture
	view.name = name
	texture.SetSmooth(view.smooth)
	texture.SetRepeat(view.repeat)
	texture.SetUpsideDown(upsideDown)
	size := texture.Size()
	view.window.SetTitle(fmt.Sprintf("texview - %s (%dx%d)", name, size.X, size.Y))
}

// captureScreen copies the current viewport into a fresh texture and shows
// it, mostly a sanity check for CopyFromScreen.
func (view *viewer) captureScreen() {
	viewport := view.window.Viewport()
	capture := view.context.CreateTexture(viewport.Size())
	capture.CopyFromScreen(viewport)
	// The framebuffer origin is the bottom left corner
	view.showTexture(capture, "screen capture", !view.upsideDown)
	view.updateQuad()
}

func checkerboard(context *opengl.Context) *opengl.Texture {
	const size = 256
	const cell = 32
	img := opengl.NewImage(common.Vec2(size, size), 4)
	light := []byte{0xcd, 0xd6, 0xf4, 0xff}
	dark := []byte{0x58, 0x5b, 0x70, 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				copy(img.PixelAt(x, y), light)
			} else {
				copy(img.PixelAt(x, y), dark)
			}
		}
	}
	return context.CreateTextureFromPixels(img, *flagMipmaps)
}

func logContextInfo(context *opengl.Context) {
	info := context.Info()
	caps := context.Capabilities()
	table := logger.NewTable([]string{"NAME", "VALUE"})
	table.AddRow([]string{"Version", info.Version})
	table.AddRow([]string{"Vendor", info.Vendor})
	table.AddRow([]string{"Renderer", info.Renderer})
	table.AddRow([]string{"GLSL Version", info.ShadingLanguageVersion})
	table.AddRow([]string{"Max Texture Size", fmt.Sprintf("%d", caps.MaxTextureSize)})
	table.AddRow([]string{"Non Power Of Two", fmt.Sprintf("%t", caps.NonPowerOfTwo)})
	table.AddRow([]string{"Bilinear Filtering", fmt.Sprintf("%t", caps.BilinearFiltering)})
	table.AddRow([]string{"Clamp To Edge", fmt.Sprintf("%t", caps.ClampToEdge)})
	table.AddRow([]string{"Hardware Mipmaps", fmt.Sprintf("%t", caps.HardwareMipmaps)})
	builder := strings.Builder{}
	builder.WriteRune('\n')
	table.Render(&builder)
	logger.Log(logger.TRACE, "Opengl context information:", builder.String())
}
