package lightrig

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

// App owns the scene graph, its resources and the systems that operate on
// it. It is driven one step at a time by Update; nothing runs in the
// background.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	ecs       *Ecs
	onRemove  []func(EntityId)

	// Command Buffering
	pendingAdditions []pendingAdd
	pendingRemovals  []EntityId
	pendingCompOps   []pendingCompOp
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompOp struct {
	eid        EntityId
	components []any
	remove     bool
}

// NewApp returns an app with the default stages and no modules.
func NewApp() *App {
	ecs := MakeEcs()
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		ecs:       &ecs,
	}
	for _, s := range defaultStages {
		app.stages = append(app.stages, s)
		app.systems[s.Name] = nil
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, m := range modules {
		m.Install(app, cmd)
	}
	return app
}

// Update runs every stage once, flushing buffered commands after each stage.
func (app *App) Update() {
	app.FlushCommands()
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}
}

// OnEntityRemoved registers fn to run for every entity removed by a flush.
func (app *App) OnEntityRemoved(fn func(EntityId)) {
	app.onRemove = append(app.onRemove, fn)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
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

// callSystem resolves each pointer argument to *Commands or to a resource of
// the pointed-to type and calls the system.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(app.unresolved(systemValue, argType))
		}
		underlying := argType.Elem()

		if underlying == typeOfCommands {
			args[i] = reflect.ValueOf(app.Commands())
		} else if resource, ok := app.resources[underlying]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			panic(app.unresolved(systemValue, argType))
		}
	}
	systemValue.Call(args)
}

func (app *App) unresolved(system reflect.Value, dep reflect.Type) string {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nDependency: %s",
		runtime.FuncForPC(system.Pointer()).Name(), dep)
	app.Logger().Errorf("%s", msg)
	return msg
}

// FlushCommands applies buffered changes: removals, then additions, then
// component changes in the order they were issued.
func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 && len(app.pendingCompOps) == 0 {
		return
	}

	removals := app.pendingRemovals
	app.pendingRemovals = nil
	for _, eid := range removals {
		if !app.ecs.hasEntity(eid) {
			continue
		}
		app.ecs.removeEntity(eid)
		for _, fn := range app.onRemove {
			fn(eid)
		}
	}

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, op := range app.pendingCompOps {
		if op.remove {
			app.ecs.removeComponents(op.eid, op.components...)
		} else {
			app.ecs.addComponents(op.eid, op.components...)
		}
	}
	app.pendingCompOps = app.pendingCompOps[:0]
}
