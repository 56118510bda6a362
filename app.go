// Package volview renders a raw volumetric dataset as a stack of
// alpha-blended textured quads sampled from a 3D texture, with mouse orbit
// and scroll zoom. The runtime is a small module/resource/system framework:
// modules install singleton resources and schedule systems, and the frame
// loop runs the staged systems at a fixed target rate.
package volview

import (
	"fmt"
	"reflect"
	"runtime"
	"time"
)

type systemFn any

// App is the viewer runtime: a set of singleton resources shared by systems,
// and a staged schedule executed once per rendered frame. Systems are plain
// functions; their pointer parameters are resolved from the resource map.
type App struct {
	stages        []Stage
	systems       map[string][]systemFn
	resources     map[reflect.Type]any
	frameInterval time.Duration
	quit          bool
	shutdown      []func()
}

// OnShutdown registers a cleanup to run when the frame loop exits. Cleanups
// run in reverse registration order, so resources created later (GL objects)
// are released before the ones they depend on (the window's context).
func (app *App) OnShutdown(fn func()) {
	app.shutdown = append(app.shutdown, fn)
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Run drives the frame loop until a system requests quit. Frames are paced
// against frameInterval; when the interval has not yet elapsed the loop
// yields briefly instead of rendering.
func (app *App) Run() {
	last := time.Now()

	for !app.quit {
		now := time.Now()
		if app.frameInterval > 0 && now.Sub(last) < app.frameInterval {
			time.Sleep(time.Millisecond)
			continue
		}
		last = now
		app.runFrame()
	}

	for i := len(app.shutdown) - 1; i >= 0; i-- {
		app.shutdown[i]()
	}
}

func (app *App) runFrame() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		if app.quit {
			return
		}
	}
}

func (app *App) requestQuit() {
	app.quit = true
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve system dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

// resourceOf returns the resource of type T, or nil if none was registered.
func resourceOf[T any](app *App) *T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if r, ok := app.resources[t]; ok {
		return r.(*T)
	}
	return nil
}
