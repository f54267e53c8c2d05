package lightrig

import (
	"reflect"
)

// Commands is the handle systems use to read and mutate the scene. Structural
// changes are buffered until the app flushes them.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) AddEntity(components ...any) EntityId {
	eid := cmd.app.ecs.nextEntityId()
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, pendingAdd{
		eid:        eid,
		components: components,
	})
	return eid
}

func (cmd *Commands) AddComponents(eid EntityId, components ...any) {
	cmd.app.pendingCompOps = append(cmd.app.pendingCompOps, pendingCompOp{
		eid:        eid,
		components: components,
	})
}

func (cmd *Commands) RemoveComponents(eid EntityId, components ...any) {
	cmd.app.pendingCompOps = append(cmd.app.pendingCompOps, pendingCompOp{
		eid:        eid,
		components: components,
		remove:     true,
	})
}

func (cmd *Commands) RemoveEntity(eid EntityId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, eid)
}

// Exists reports whether eid is live. Entities added in the current batch do
// not exist until the next flush.
func (cmd *Commands) Exists(eid EntityId) bool {
	return cmd.app.ecs.hasEntity(eid)
}

// Flush applies buffered structural changes immediately.
func (cmd *Commands) Flush() {
	cmd.app.FlushCommands()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}

// GetAllComponents returns copies of every component of eid.
func (cmd *Commands) GetAllComponents(eid EntityId) []any {
	ecs := cmd.app.ecs
	archId, ok := ecs.entityIndex[eid]
	if !ok {
		return nil
	}
	arch := ecs.archetypes[archId]
	r := arch.entities[eid]

	res := make([]any, 0, len(arch.key))
	for _, cid := range arch.key {
		res = append(res, arch.columns[cid].Index(int(r)).Interface())
	}
	return res
}

// GetComponent returns a pointer to eid's T, or nil. The pointer is valid
// until the next flush.
func GetComponent[T any](cmd *Commands, eid EntityId) *T {
	v, ok := cmd.app.ecs.component(eid, reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	return v.Interface().(*T)
}

// HasComponent reports whether eid carries a T.
func HasComponent[T any](cmd *Commands, eid EntityId) bool {
	return GetComponent[T](cmd, eid) != nil
}

// Resource returns the installed resource of type T, or nil.
func Resource[T any](cmd *Commands) *T {
	r, ok := cmd.app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return r.(*T)
}
