package volview

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// VolumeRendererModule renders the dataset as SliceCount textured quads swept
// through the 3D texture, composited back to front with alpha blending. At
// least 2 slices are required: the per-slice depth is index/(count-1).
type VolumeRendererModule struct {
	SliceCount       int
	AlphaScale       float32
	DiscardThreshold float32
}

type rendererState struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	sliceCount int

	modelLoc int32
	viewLoc  int32
	projLoc  int32
	sliceLoc int32
}

func (m VolumeRendererModule) Install(app *App, cmd *Commands) {
	if m.SliceCount < 2 {
		panic("volume renderer needs at least 2 slices")
	}
	ws := resourceOf[WindowState](app)
	server := resourceOf[AssetServer](app)
	volume := resourceOf[VolumeAsset](app)
	if ws == nil || server == nil || volume == nil {
		panic("VolumeRendererModule requires WindowState, AssetServer and VolumeAsset resources")
	}
	logger := app.Logger()

	vertexSource, ok := server.ShaderSource(VolumeVertexShaderName)
	if !ok {
		vertexSource = defaultVolumeVertexShader
	}
	fragmentSource, ok := server.ShaderSource(VolumeFragmentShaderName)
	if !ok {
		fragmentSource = defaultVolumeFragmentShader
	}

	r := &rendererState{
		program:    linkProgram(vertexSource, fragmentSource, logger),
		sliceCount: m.SliceCount,
	}
	r.vao, r.vbo = createQuadMesh()
	r.texture = createVolumeTexture(volume)

	r.modelLoc = uniformLocation(r.program, "model")
	r.viewLoc = uniformLocation(r.program, "view")
	r.projLoc = uniformLocation(r.program, "projection")
	r.sliceLoc = uniformLocation(r.program, "slice")

	alphaScale := m.AlphaScale
	if alphaScale == 0 {
		alphaScale = 0.4
	}
	discard := m.DiscardThreshold
	if discard == 0 {
		discard = 0.01
	}
	gl.UseProgram(r.program)
	gl.Uniform1f(uniformLocation(r.program, "alphaScale"), alphaScale)
	gl.Uniform1f(uniformLocation(r.program, "discardThreshold"), discard)
	gl.Uniform1i(uniformLocation(r.program, "volumeTex"), 0)
	gl.UseProgram(0)

	cmd.AddResources(r)
	app.UseSystem(
		System(volumeRenderSystem).InStage(Render),
	)
	app.OnShutdown(r.destroy)
}

func volumeRenderSystem(s *WindowState, r *rendererState, cam *OrbitCamera) {
	gl.ClearColor(1.0, 1.0, 1.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	model := cam.ModelMatrix()
	view := cam.ViewMatrix()
	projection := cam.ProjectionMatrix(s.Aspect())
	r.renderSlices(model, view, projection)

	s.SwapBuffers()
}

// renderSlices issues one draw call per slice, farthest depth first, so the
// painter's algorithm composites correctly under src-alpha blending. Depth
// writes are off for the duration (slices must not occlude each other) while
// depth testing stays on; blend and depth state are restored afterwards.
func (r *rendererState) renderSlices(model, view, projection mgl32.Mat4) {
	gl.UseProgram(r.program)

	gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0])
	gl.UniformMatrix4fv(r.viewLoc, 1, false, &view[0])
	gl.UniformMatrix4fv(r.projLoc, 1, false, &projection[0])

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_3D, r.texture)
	gl.BindVertexArray(r.vao)

	forEachSliceBackToFront(r.sliceCount, func(i int, depth float32) {
		gl.Uniform1f(r.sliceLoc, depth)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	})

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// forEachSliceBackToFront walks slice indices n-1 down to 0, handing each
// visitor its index and its depth i/(n-1). The strictly decreasing order is
// load-bearing: reversing it breaks the blend compositing.
func forEachSliceBackToFront(n int, fn func(index int, depth float32)) {
	for i := n - 1; i >= 0; i-- {
		fn(i, float32(i)/float32(n-1))
	}
}

func (r *rendererState) destroy() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	gl.DeleteTextures(1, &r.texture)
}
