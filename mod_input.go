package volview

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyE int = iota
	KeyR
	KeySpace
	KeyEscape
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
	inputCodeCount
)

type InputModule struct{}

// Input is a per-frame snapshot of the devices the viewer binds. Pressed is
// level state; JustPressed/JustReleased are edges relative to the previous
// frame. Scroll holds one vertical offset per wheel event since the last
// frame, in arrival order.
type Input struct {
	Pressed [inputCodeCount]bool

	JustPressed  [inputCodeCount]bool
	JustReleased [inputCodeCount]bool

	MouseX, MouseY float64
	Scroll         []float64
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		updateInputCode(input, key, s.windowGlfw.GetKey(glfwKey))
	}

	for btn, glfwBtn := range buttonToGlfw {
		updateInputCode(input, btn, s.windowGlfw.GetMouseButton(glfwBtn))
	}

	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()
	input.Scroll = s.takeScroll()
}

func updateInputCode(input *Input, code int, action glfw.Action) {
	input.JustPressed[code] = false
	input.JustReleased[code] = false

	if glfw.Press == action {
		if !input.Pressed[code] {
			input.JustPressed[code] = true
		}
		input.Pressed[code] = true
	} else if glfw.Release == action {
		if input.Pressed[code] {
			input.JustReleased[code] = true
		}
		input.Pressed[code] = false
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyE:      glfw.KeyE,
	KeyR:      glfw.KeyR,
	KeySpace:  glfw.KeySpace,
	KeyEscape: glfw.KeyEscape,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
