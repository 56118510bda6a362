package volview

import (
	"reflect"
	"time"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

// Module wires resources and systems into the app. Install order follows
// UseModule order, so modules that create resources (window, assets) come
// before modules that consume them (renderer).
type Module interface {
	Install(app *App, cmd *Commands)
}

func NewAppBuilder() *AppBuilder {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.systems[stage.Name] = nil
	}
	app.stages = defaultStages

	return &AppBuilder{app: app}
}

// WithTargetFPS sets the frame pacing. Zero disables pacing entirely, which
// is only useful in tests.
func (b *AppBuilder) WithTargetFPS(fps int) *AppBuilder {
	if fps > 0 {
		b.app.frameInterval = time.Second / time.Duration(fps)
	} else {
		b.app.frameInterval = 0
	}
	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

func (b *AppBuilder) Build() *App {
	app := b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		module.Install(app, commands)
	}

	return app
}
