package volview

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCameraModule owns the orbit/zoom view state: an accumulated
// orientation quaternion driven by left-button drags and a clamped camera
// distance driven by the scroll wheel. The camera always looks at the origin.
type OrbitCameraModule struct {
	RotateSensitivity float32
	ZoomSensitivity   float32
	ZoomMin           float32
	ZoomMax           float32
	InitialZoom       float32
}

type OrbitCamera struct {
	Rotation mgl32.Quat
	Zoom     float32

	RotateSensitivity float32
	ZoomSensitivity   float32
	ZoomMin           float32
	ZoomMax           float32
}

// DragState tracks the in-progress left-button drag. FreshReference marks
// that the next cursor sample only seeds LastX/LastY: the jump between the
// stale position and the first position after a press must not rotate.
type DragState struct {
	Dragging       bool
	FreshReference bool
	LastX, LastY   float64
}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	cam := &OrbitCamera{
		Rotation:          mgl32.QuatIdent(),
		Zoom:              m.InitialZoom,
		RotateSensitivity: m.RotateSensitivity,
		ZoomSensitivity:   m.ZoomSensitivity,
		ZoomMin:           m.ZoomMin,
		ZoomMax:           m.ZoomMax,
	}
	if cam.RotateSensitivity == 0 {
		cam.RotateSensitivity = 0.005
	}
	if cam.ZoomSensitivity == 0 {
		cam.ZoomSensitivity = 0.1
	}
	if cam.ZoomMax == 0 {
		cam.ZoomMin = 0.5
		cam.ZoomMax = 5.0
	}
	if cam.Zoom == 0 {
		cam.Zoom = 3.75
	}
	cmd.AddResources(cam, &DragState{FreshReference: true})

	app.UseSystem(
		System(orbitCameraSystem).InStage(Update),
	)
}

// ApplyDrag composes a yaw about +Y from the horizontal delta and a pitch
// about +X from the vertical delta onto the accumulated orientation, then
// re-normalizes to keep drift out of the quaternion.
func (c *OrbitCamera) ApplyDrag(dx, dy float32) {
	yaw := mgl32.QuatRotate(dx*c.RotateSensitivity, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(dy*c.RotateSensitivity, mgl32.Vec3{1, 0, 0})

	c.Rotation = yaw.Mul(pitch).Mul(c.Rotation).Normalize()
}

// ApplyScroll moves the camera along its offset axis, clamped to the
// configured range. Scrolling up (positive yoffset) zooms in.
func (c *OrbitCamera) ApplyScroll(yoffset float32) {
	c.Zoom -= yoffset * c.ZoomSensitivity
	c.Zoom = mgl32.Clamp(c.Zoom, c.ZoomMin, c.ZoomMax)
}

// Reset restores the identity orientation; zoom is left alone.
func (c *OrbitCamera) Reset() {
	c.Rotation = mgl32.QuatIdent()
}

func (c *OrbitCamera) ModelMatrix() mgl32.Mat4 {
	return c.Rotation.Mat4()
}

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(
		mgl32.Vec3{0, 0, c.Zoom},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
}

func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(45.0), aspect, 0.1, 100.0)
}

func orbitCameraSystem(input *Input, cam *OrbitCamera, drag *DragState) {
	if input.JustPressed[MouseButtonLeft] {
		drag.Dragging = true
		drag.FreshReference = true
	}
	if input.JustReleased[MouseButtonLeft] {
		drag.Dragging = false
		drag.FreshReference = true
	}

	if drag.Dragging {
		if drag.FreshReference {
			drag.LastX, drag.LastY = input.MouseX, input.MouseY
			drag.FreshReference = false
		} else if input.MouseX != drag.LastX || input.MouseY != drag.LastY {
			dx := input.MouseX - drag.LastX
			dy := input.MouseY - drag.LastY
			drag.LastX, drag.LastY = input.MouseX, input.MouseY
			cam.ApplyDrag(float32(dx), float32(dy))
		}
	}

	// clamp applies per wheel event, so a frame mixing both scroll
	// directions resolves the same as if each event had its own frame
	for _, yoffset := range input.Scroll {
		cam.ApplyScroll(float32(yoffset))
	}
}
