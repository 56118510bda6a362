package volview

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	// glfw
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	// vertical scroll offsets recorded by the GLFW callback between frames,
	// one entry per wheel event, consumed once per frame by the input system
	pendingScroll []float64
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	s := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		s.pendingScroll = append(s.pendingScroll, yoff)
	})
	return s, nil
}

// takeScroll returns and clears the wheel events recorded since the previous
// call. Events stay separate so consumers that clamp can clamp per event.
func (s *WindowState) takeScroll() []float64 {
	events := s.pendingScroll
	s.pendingScroll = nil
	return events
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw.ShouldClose()
}

func (s *WindowState) SwapBuffers() {
	s.windowGlfw.SwapBuffers()
}

func (s *WindowState) Aspect() float32 {
	return float32(s.WindowWidth) / float32(s.WindowHeight)
}

func (s *WindowState) destroy() {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}

// compileShader compiles a single shader stage. A compile failure is logged
// with the driver's info log and the (unusable) handle is still returned;
// the subsequent program link reports the final failure.
func compileShader(shaderType uint32, source string, logger Logger) uint32 {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		logger.Errorf("shader compilation failed:\n%s", strings.TrimRight(infoLog, "\x00"))
	}
	return shader
}

// linkProgram builds the shader program. A link failure is logged and zero is
// returned; rendering then proceeds with a blank output rather than aborting.
func linkProgram(vertexSource, fragmentSource string, logger Logger) uint32 {
	vertexShader := compileShader(gl.VERTEX_SHADER, vertexSource, logger)
	fragmentShader := compileShader(gl.FRAGMENT_SHADER, fragmentSource, logger)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		logger.Errorf("shader program linking failed:\n%s", strings.TrimRight(infoLog, "\x00"))
		gl.DeleteProgram(program)
		program = 0
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program
}

// createQuadMesh uploads the shared slice quad: a 4-vertex triangle strip
// with interleaved position (location 0) and texture coordinate (location 1).
// The per-slice depth is a uniform, not part of the geometry.
func createQuadMesh() (vao, vbo uint32) {
	vertices := []float32{
		1.0, 1.0, 0.0, 1.0, 1.0,
		1.0, -1.0, 0.0, 1.0, 0.0,
		-1.0, 1.0, 0.0, 0.0, 1.0,
		-1.0, -1.0, 0.0, 0.0, 0.0,
	}

	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// createVolumeTexture uploads the dataset as an immutable 3D texture with
// hardware trilinear filtering and clamp-to-edge on all three axes.
func createVolumeTexture(v *VolumeAsset) uint32 {
	var internalFormat int32
	var pixelType uint32
	switch v.Format {
	case VolumeFloat32:
		internalFormat = gl.R32F
		pixelType = gl.FLOAT
	default:
		internalFormat = gl.R8
		pixelType = gl.UNSIGNED_BYTE
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_3D, texture)
	gl.TexImage3D(gl.TEXTURE_3D, 0, internalFormat,
		int32(v.Dims.Width), int32(v.Dims.Height), int32(v.Dims.Depth),
		0, gl.RED, pixelType, gl.Ptr(v.Data))
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_3D, 0)
	return texture
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
