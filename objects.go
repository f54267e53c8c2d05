package lightrig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownObject = errors.New("unknown object")

type NameComponent struct {
	Name string
}

type VisibilityComponent struct {
	HideViewport bool
	HideRender   bool
	Wire         bool
}

// SelectedComponent tags objects the next operator acts on.
type SelectedComponent struct{}

// RigMemberComponent marks an object created for a light rig.
type RigMemberComponent struct {
	RigID  string
	Role   Role // empty for the rig camera
	Target string
}

// ObjectName returns eid's name, or "" if it has none.
func ObjectName(cmd *Commands, eid EntityId) string {
	if n := GetComponent[NameComponent](cmd, eid); n != nil {
		return n.Name
	}
	return ""
}

// FindObject looks up a live object by name.
func FindObject(cmd *Commands, name string) (EntityId, bool) {
	var found EntityId
	ok := false
	MakeQuery1[NameComponent](cmd).Map(func(eid EntityId, n *NameComponent) bool {
		if n.Name == name {
			found, ok = eid, true
			return false
		}
		return true
	})
	return found, ok
}

// UniqueName returns base, or base with the first free ".NNN" suffix.
func UniqueName(cmd *Commands, base string) string {
	taken := make(set[string])
	MakeQuery1[NameComponent](cmd).Map(func(_ EntityId, n *NameComponent) bool {
		if strings.HasPrefix(n.Name, base) {
			taken[n.Name] = struct{}{}
		}
		return true
	})
	if _, ok := taken[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if _, ok := taken[name]; !ok {
			return name
		}
	}
}

// SelectedObjects returns the selected objects in creation order.
func SelectedObjects(cmd *Commands) []EntityId {
	var out []EntityId
	MakeQuery1[SelectedComponent](cmd).Map(func(eid EntityId, _ *SelectedComponent) bool {
		out = append(out, eid)
		return true
	})
	return out
}

// SelectByName replaces the selection with the named objects.
func SelectByName(cmd *Commands, names ...string) error {
	ids := make([]EntityId, 0, len(names))
	for _, name := range names {
		eid, ok := FindObject(cmd, name)
		if !ok {
			return fmt.Errorf("select %q: %w", name, ErrUnknownObject)
		}
		ids = append(ids, eid)
	}
	DeselectAll(cmd)
	for _, eid := range ids {
		cmd.AddComponents(eid, SelectedComponent{})
	}
	cmd.Flush()
	return nil
}

func DeselectAll(cmd *Commands) {
	for _, eid := range SelectedObjects(cmd) {
		cmd.RemoveComponents(eid, SelectedComponent{})
	}
}

// ObjectBoundsOf returns eid's transform and local box. Objects without a
// BoundsComponent are treated as points at their origin.
func ObjectBoundsOf(cmd *Commands, eid EntityId) (ObjectBounds, bool) {
	tr := GetComponent[TransformComponent](cmd, eid)
	if tr == nil {
		return ObjectBounds{}, false
	}
	ob := ObjectBounds{Transform: *tr}
	if b := GetComponent[BoundsComponent](cmd, eid); b != nil {
		ob.Local = b.Local
	}
	return ob, true
}

// SpawnObject queues a named object and links it into the root collection.
// The name is made unique against live objects.
func SpawnObject(cmd *Commands, name string, components ...any) EntityId {
	comps := append([]any{&NameComponent{Name: UniqueName(cmd, name)}}, components...)
	eid := cmd.AddEntity(comps...)
	if cols := Resource[Collections](cmd); cols != nil {
		cols.Link(SceneCollectionName, eid)
	}
	return eid
}

// ObjectKind names the object's type for listings and scene files.
func ObjectKind(cmd *Commands, eid EntityId) string {
	switch {
	case HasComponent[LightComponent](cmd, eid):
		return "light"
	case HasComponent[CameraComponent](cmd, eid):
		return "camera"
	case HasComponent[BoundsComponent](cmd, eid):
		return "mesh"
	}
	return "empty"
}

// ObjectNames lists every live object name, sorted.
func ObjectNames(cmd *Commands) []string {
	var out []string
	MakeQuery1[NameComponent](cmd).Map(func(_ EntityId, n *NameComponent) bool {
		out = append(out, n.Name)
		return true
	})
	slices.Sort(out)
	return out
}
