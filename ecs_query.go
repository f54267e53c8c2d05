package lightrig

import (
	"reflect"
	"slices"
)

// Queries visit entities in ascending EntityId order so scene operations are
// reproducible. To add a wider query, copy Query3 and extend match/visit.
type Query1[A any] struct {
	ecs     *Ecs
	without []reflect.Type
}
type Query2[A, B any] struct {
	ecs     *Ecs
	without []reflect.Type
}
type Query3[A, B, C any] struct {
	ecs     *Ecs
	without []reflect.Type
}

func MakeQuery1[A any](cmd *Commands) Query1[A]       { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{ecs: cmd.app.ecs}
}

// Without excludes entities carrying any of the given component types.
func (q Query1[A]) Without(components ...any) Query1[A] {
	q.without = append(slices.Clone(q.without), typesOf(components)...)
	return q
}

func (q Query2[A, B]) Without(components ...any) Query2[A, B] {
	q.without = append(slices.Clone(q.without), typesOf(components)...)
	return q
}

func (q Query3[A, B, C]) Without(components ...any) Query3[A, B, C] {
	q.without = append(slices.Clone(q.without), typesOf(components)...)
	return q
}

func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	ids := []componentId{componentIdOf[A](q.ecs)}
	visit(q.ecs, ids, q.without, func(eid EntityId, cols []reflect.Value, r row) bool {
		return m(eid, cell[A](cols[0], r))
	})
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	ids := []componentId{componentIdOf[A](q.ecs), componentIdOf[B](q.ecs)}
	visit(q.ecs, ids, q.without, func(eid EntityId, cols []reflect.Value, r row) bool {
		return m(eid, cell[A](cols[0], r), cell[B](cols[1], r))
	})
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	ids := []componentId{componentIdOf[A](q.ecs), componentIdOf[B](q.ecs), componentIdOf[C](q.ecs)}
	visit(q.ecs, ids, q.without, func(eid EntityId, cols []reflect.Value, r row) bool {
		return m(eid, cell[A](cols[0], r), cell[B](cols[1], r), cell[C](cols[2], r))
	})
}

// Count returns how many entities match.
func (q Query1[A]) Count() int {
	n := 0
	q.Map(func(EntityId, *A) bool { n++; return true })
	return n
}

type match struct {
	eid  EntityId
	arch *archetype
	row  row
}

func visit(ecs *Ecs, ids []componentId, without []reflect.Type, m func(EntityId, []reflect.Value, row) bool) {
	excluded := make(set[componentId], len(without))
	for _, t := range without {
		excluded[ecs.getComponentId(t)] = struct{}{}
	}

	var matches []match
	for _, arch := range ecs.archetypes {
		if !archetypeMatches(arch, ids, excluded) {
			continue
		}
		for eid, r := range arch.entities {
			matches = append(matches, match{eid: eid, arch: arch, row: r})
		}
	}
	slices.SortFunc(matches, func(a, b match) int {
		switch {
		case a.eid < b.eid:
			return -1
		case a.eid > b.eid:
			return 1
		}
		return 0
	})

	cols := make([]reflect.Value, len(ids))
	for _, mt := range matches {
		for i, id := range ids {
			cols[i] = mt.arch.columns[id]
		}
		if !m(mt.eid, cols, mt.row) {
			return
		}
	}
}

func archetypeMatches(arch *archetype, ids []componentId, excluded set[componentId]) bool {
	for _, id := range ids {
		if _, ok := arch.columns[id]; !ok {
			return false
		}
	}
	for _, id := range arch.key {
		if _, ok := excluded[id]; ok {
			return false
		}
	}
	return true
}

func cell[T any](col reflect.Value, r row) *T {
	return col.Index(int(r)).Addr().Interface().(*T)
}

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[T]())
}

func typesOf(components []any) []reflect.Type {
	out := make([]reflect.Type, 0, len(components))
	for _, c := range components {
		out = append(out, structType(c))
	}
	return out
}
