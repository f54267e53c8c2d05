package lightrig

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

// EntityId identifies one scene object.
type EntityId uint64

type archetypeId uint64
type archetypeKey []componentId
type componentId uint32
type row int
type set[T comparable] = map[T]struct{}

// Ecs is an archetype store: entities sharing the same component set live in
// the same archetype, one typed slice per component.
type Ecs struct {
	archetypes  map[archetypeId]*archetype
	entityIndex map[EntityId]archetypeId

	idLock   sync.Mutex
	nextId   EntityId
	typeLock sync.Mutex
	nextComp componentId
	typeToId map[reflect.Type]componentId
	idToType map[componentId]reflect.Type
}

func MakeEcs() Ecs {
	return Ecs{
		archetypes:  make(map[archetypeId]*archetype),
		entityIndex: make(map[EntityId]archetypeId),
		typeToId:    make(map[reflect.Type]componentId),
		idToType:    make(map[componentId]reflect.Type),
	}
}

type archetype struct {
	key      archetypeKey
	entities map[EntityId]row
	columns  map[componentId]reflect.Value // addressable slices
	free     []row
}

func (ecs *Ecs) hasEntity(eid EntityId) bool {
	_, ok := ecs.entityIndex[eid]
	return ok
}

func (ecs *Ecs) insertEntity(eid EntityId, components ...any) EntityId {
	arch := ecs.archetypeFor(ecs.keyOf(components...))
	r := ecs.reserveRow(arch)
	arch.entities[eid] = r
	for _, c := range components {
		ecs.write(arch, r, c)
	}
	ecs.entityIndex[eid] = getArchetypeId(arch.key)
	return eid
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

func (ecs *Ecs) removeEntity(eid EntityId) {
	if !ecs.hasEntity(eid) {
		return
	}
	ecs.release(eid)
}

// addComponents moves eid into the archetype extended by components,
// overwriting values it already had.
func (ecs *Ecs) addComponents(eid EntityId, components ...any) {
	if !ecs.hasEntity(eid) {
		return
	}
	src := ecs.archetypes[ecs.entityIndex[eid]]
	srcRow := src.entities[eid]

	dst := ecs.archetypeFor(dedupAndSortArchetypeKey(append(slices.Clone(src.key), ecs.keyOf(components...)...)))
	ecs.relocate(eid, src, srcRow, dst)
	for _, c := range components {
		ecs.write(dst, dst.entities[eid], c)
	}
}

func (ecs *Ecs) removeComponents(eid EntityId, components ...any) {
	if !ecs.hasEntity(eid) {
		return
	}
	src := ecs.archetypes[ecs.entityIndex[eid]]
	srcRow := src.entities[eid]

	drop := make(set[componentId])
	for _, c := range components {
		drop[ecs.getComponentId(structType(c))] = struct{}{}
	}
	var key archetypeKey
	for _, id := range src.key {
		if _, ok := drop[id]; !ok {
			key = append(key, id)
		}
	}
	ecs.relocate(eid, src, srcRow, ecs.archetypeFor(key))
}

// relocate copies the components both archetypes share, then frees the old row.
func (ecs *Ecs) relocate(eid EntityId, src *archetype, srcRow row, dst *archetype) {
	if src == dst {
		return
	}
	dstRow := ecs.reserveRow(dst)
	for _, id := range src.key {
		dstCol, ok := dst.columns[id]
		if !ok {
			continue
		}
		dstCol.Index(int(dstRow)).Set(src.columns[id].Index(int(srcRow)))
	}
	ecs.release(eid)
	dst.entities[eid] = dstRow
	ecs.entityIndex[eid] = getArchetypeId(dst.key)
}

func (ecs *Ecs) release(eid EntityId) {
	arch := ecs.archetypes[ecs.entityIndex[eid]]
	r := arch.entities[eid]
	for id, col := range arch.columns {
		col.Index(int(r)).Set(reflect.Zero(ecs.idToType[id]))
	}
	arch.free = append(arch.free, r)
	delete(arch.entities, eid)
	delete(ecs.entityIndex, eid)
}

func (ecs *Ecs) write(arch *archetype, r row, component any) {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	id := ecs.getComponentId(v.Type())
	arch.columns[id].Index(int(r)).Set(v)
}

// component returns a pointer into eid's storage for the component type t.
func (ecs *Ecs) component(eid EntityId, t reflect.Type) (reflect.Value, bool) {
	archId, ok := ecs.entityIndex[eid]
	if !ok {
		return reflect.Value{}, false
	}
	arch := ecs.archetypes[archId]
	col, ok := arch.columns[ecs.getComponentId(t)]
	if !ok {
		return reflect.Value{}, false
	}
	return col.Index(int(arch.entities[eid])).Addr(), true
}

func (ecs *Ecs) archetypeFor(key archetypeKey) *archetype {
	id := getArchetypeId(key)
	if arch, ok := ecs.archetypes[id]; ok {
		return arch
	}
	arch := &archetype{
		key:      key,
		entities: make(map[EntityId]row),
		columns:  make(map[componentId]reflect.Value),
	}
	for _, cid := range key {
		col := reflect.New(reflect.SliceOf(ecs.idToType[cid])).Elem()
		arch.columns[cid] = col
	}
	ecs.archetypes[id] = arch
	return arch
}

func (ecs *Ecs) reserveRow(arch *archetype) row {
	if n := len(arch.free); n > 0 {
		r := arch.free[n-1]
		arch.free = arch.free[:n-1]
		return r
	}
	r := row(len(arch.entities))
	for cid, col := range arch.columns {
		col.Set(reflect.Append(col, reflect.Zero(ecs.idToType[cid])))
	}
	return r
}

func (ecs *Ecs) keyOf(components ...any) archetypeKey {
	var key archetypeKey
	for _, c := range components {
		key = append(key, ecs.getComponentId(structType(c)))
	}
	return dedupAndSortArchetypeKey(key)
}

func structType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Errorf("component should be a struct or a pointer to a struct, got %v", reflect.TypeOf(component)))
	}
	return t
}

func dedupAndSortArchetypeKey(key archetypeKey) archetypeKey {
	out := slices.Clone(key)
	slices.Sort(out)
	return slices.Compact(out)
}

// The archetype id is an fnv hash of the sorted key.
func getArchetypeId(key archetypeKey) archetypeId {
	hash := fnv.New64a()
	b := make([]byte, 4)
	for _, cid := range key {
		binary.LittleEndian.PutUint32(b, uint32(cid))
		hash.Write(b)
	}
	return archetypeId(hash.Sum64())
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idLock.Lock()
	defer ecs.idLock.Unlock()
	id := ecs.nextId
	ecs.nextId++
	return id
}

func (ecs *Ecs) getComponentId(t reflect.Type) componentId {
	ecs.typeLock.Lock()
	defer ecs.typeLock.Unlock()
	if id, ok := ecs.typeToId[t]; ok {
		return id
	}
	id := ecs.nextComp
	ecs.nextComp++
	ecs.typeToId[t] = id
	ecs.idToType[id] = t
	return id
}
