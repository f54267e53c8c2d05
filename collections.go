package lightrig

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrCollectionExists  = errors.New("collection already exists")
)

// SceneCollectionName is the root every other collection hangs from.
const SceneCollectionName = "Scene Collection"

type Collection struct {
	ID       uuid.UUID
	Name     string
	Objects  []EntityId
	Children []string
}

func (c *Collection) Has(eid EntityId) bool {
	return slices.Contains(c.Objects, eid)
}

// Collections is the resource grouping scene objects. An object may be linked
// into several collections; the number of links is its users count.
type Collections struct {
	byName map[string]*Collection
	order  []string
}

func NewCollections() *Collections {
	cols := &Collections{byName: make(map[string]*Collection)}
	cols.add(SceneCollectionName, uuid.New())
	return cols
}

func (cols *Collections) add(name string, id uuid.UUID) *Collection {
	c := &Collection{ID: id, Name: name}
	cols.byName[name] = c
	cols.order = append(cols.order, name)
	return c
}

func (cols *Collections) Root() *Collection {
	return cols.byName[SceneCollectionName]
}

func (cols *Collections) Get(name string) (*Collection, bool) {
	c, ok := cols.byName[name]
	return c, ok
}

// Names lists collections in creation order, root first.
func (cols *Collections) Names() []string {
	return slices.Clone(cols.order)
}

// New creates an empty collection under parent.
func (cols *Collections) New(name, parent string) (*Collection, error) {
	return cols.NewWithID(name, parent, uuid.New())
}

func (cols *Collections) NewWithID(name, parent string, id uuid.UUID) (*Collection, error) {
	if _, ok := cols.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrCollectionExists, name)
	}
	p, ok := cols.byName[parent]
	if !ok {
		return nil, fmt.Errorf("parent %q: %w", parent, ErrUnknownCollection)
	}
	c := cols.add(name, id)
	p.Children = append(p.Children, name)
	return c, nil
}

// Link adds eid to the named collection. Linking twice is a no-op.
func (cols *Collections) Link(name string, eid EntityId) error {
	c, ok := cols.byName[name]
	if !ok {
		return fmt.Errorf("link into %q: %w", name, ErrUnknownCollection)
	}
	if !c.Has(eid) {
		c.Objects = append(c.Objects, eid)
	}
	return nil
}

func (cols *Collections) Unlink(name string, eid EntityId) {
	if c, ok := cols.byName[name]; ok {
		c.Objects = slices.DeleteFunc(c.Objects, func(o EntityId) bool { return o == eid })
	}
}

// Move unlinks eid from every collection and links it into name.
func (cols *Collections) Move(eid EntityId, name string) error {
	if _, ok := cols.byName[name]; !ok {
		return fmt.Errorf("move into %q: %w", name, ErrUnknownCollection)
	}
	cols.forget(eid)
	return cols.Link(name, eid)
}

// Users counts the collections linking eid.
func (cols *Collections) Users(eid EntityId) int {
	n := 0
	for _, c := range cols.byName {
		if c.Has(eid) {
			n++
		}
	}
	return n
}

// Of lists the collections linking eid, in creation order.
func (cols *Collections) Of(eid EntityId) []string {
	var out []string
	for _, name := range cols.order {
		if cols.byName[name].Has(eid) {
			out = append(out, name)
		}
	}
	return out
}

// Remove deletes the collection and unlinks it from its parents. Its objects
// stay alive; children are re-parented to the root.
func (cols *Collections) Remove(name string) error {
	if name == SceneCollectionName {
		return fmt.Errorf("the root collection cannot be removed")
	}
	c, ok := cols.byName[name]
	if !ok {
		return fmt.Errorf("remove %q: %w", name, ErrUnknownCollection)
	}
	for _, other := range cols.byName {
		other.Children = slices.DeleteFunc(other.Children, func(n string) bool { return n == name })
	}
	root := cols.Root()
	root.Children = append(root.Children, c.Children...)

	delete(cols.byName, name)
	cols.order = slices.DeleteFunc(cols.order, func(n string) bool { return n == name })
	return nil
}

func (cols *Collections) forget(eid EntityId) {
	for _, c := range cols.byName {
		c.Objects = slices.DeleteFunc(c.Objects, func(o EntityId) bool { return o == eid })
	}
}

// SceneModule installs the collection registry and active camera, and keeps
// collections free of removed entities.
type SceneModule struct{}

func (SceneModule) Install(app *App, cmd *Commands) {
	cols := NewCollections()
	cmd.AddResources(cols, &SceneCamera{})
	app.OnEntityRemoved(cols.forget)
	app.OnEntityRemoved(func(eid EntityId) {
		if cam := Resource[SceneCamera](cmd); cam != nil && cam.Set && cam.Entity == eid {
			*cam = SceneCamera{}
		}
	})
}
