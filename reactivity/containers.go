package reactivity

import (
	"slices"
	"sort"
)

// Container is a raw state container. Only the types of this package
// implement it; wrap one with Reactive to observe it.
type Container interface {
	Kind() Kind
	ID() uint64

	describe() (kind string, id uint64)
}

// Record is a string-keyed container that remembers insertion order. A
// record may delegate missing keys to a prototype record.
type Record struct {
	id     uint64
	order  []string
	values map[string]any
	proto  *Record
}

// NewRecord copies fields into a new record, inserting keys in sorted order.
func NewRecord(fields map[string]any) *Record {
	r := &Record{id: nextID(), values: make(map[string]any, len(fields))}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.Put(name, fields[name])
	}
	return r
}

func (r *Record) Kind() Kind { return KindRecord }
func (r *Record) ID() uint64 { return r.id }
func (r *Record) Len() int { return len(r.order) }
func (r *Record) Proto() *Record { return r.proto }

// SetProto makes missing keys fall through to proto.
func (r *Record) SetProto(proto *Record) *Record {
	r.proto = proto
	return r
}

func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Put writes without tracking or triggering.
func (r *Record) Put(key string, value any) *Record {
	if _, ok := r.values[key]; !ok {
		r.order = append(r.order, key)
	}
	r.values[key] = toRaw(value)
	return r
}

func (r *Record) Delete(key string) bool {
	if _, ok := r.values[key]; !ok {
		return false
	}
	delete(r.values, key)
	r.order = slices.DeleteFunc(r.order, func(k string) bool { return k == key })
	return true
}

func (r *Record) Keys() []string {
	return slices.Clone(r.order)
}

// List is an ordered, index-addressed container.
type List struct {
	id    uint64
	items []any
}

func NewList(items ...any) *List {
	l := &List{id: nextID(), items: make([]any, 0, len(items))}
	l.Append(items...)
	return l
}

func (l *List) Kind() Kind { return KindList }
func (l *List) ID() uint64 { return l.id }
func (l *List) Len() int { return len(l.items) }

func (l *List) At(i int) any {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

func (l *List) Append(items ...any) *List {
	for _, v := range items {
		l.items = append(l.items, toRaw(v))
	}
	return l
}

func (l *List) Slice() []any {
	return slices.Clone(l.items)
}

func (l *List) setLen(n int) {
	if n <= len(l.items) {
		clear(l.items[n:])
		l.items = l.items[:n]
		return
	}
	l.items = append(l.items, make([]any, n-len(l.items))...)
}

func (l *List) read(key any) (any, bool) {
	i, ok := key.(int)
	if !ok || i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

// write grows the list with nil holes when i is past the end.
func (l *List) write(key, value any) {
	i := key.(int)
	if i >= len(l.items) {
		l.setLen(i + 1)
	}
	l.items[i] = toRaw(value)
}

// Set is a container of unique comparable members in insertion order.
type Set struct {
	id      uint64
	order   []any
	members map[any]struct{}
}

func NewSet(members ...any) *Set {
	s := &Set{id: nextID(), members: map[any]struct{}{}}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

func (s *Set) Kind() Kind { return KindSet }
func (s *Set) ID() uint64 { return s.id }
func (s *Set) Len() int { return len(s.order) }

func (s *Set) Has(v any) bool {
	_, ok := s.members[toRaw(v)]
	return ok
}

func (s *Set) Add(v any) *Set {
	v = toRaw(v)
	if _, ok := s.members[v]; !ok {
		s.members[v] = struct{}{}
		s.order = append(s.order, v)
	}
	return s
}

func (s *Set) Delete(v any) bool {
	v = toRaw(v)
	if _, ok := s.members[v]; !ok {
		return false
	}
	delete(s.members, v)
	s.order = slices.DeleteFunc(s.order, func(m any) bool { return m == v })
	return true
}

func (s *Set) Values() []any {
	return slices.Clone(s.order)
}

// Map is a container of comparable keys in insertion order.
type Map struct {
	id     uint64
	order  []any
	values map[any]any
}

func NewMap() *Map {
	return &Map{id: nextID(), values: map[any]any{}}
}

func (m *Map) Kind() Kind { return KindMap }
func (m *Map) ID() uint64 { return m.id }
func (m *Map) Len() int { return len(m.order) }

func (m *Map) Get(k any) (any, bool) {
	v, ok := m.values[toRaw(k)]
	return v, ok
}

func (m *Map) Has(k any) bool {
	_, ok := m.values[toRaw(k)]
	return ok
}

// Put writes without tracking or triggering.
func (m *Map) Put(k, v any) *Map {
	k = toRaw(k)
	if _, ok := m.values[k]; !ok {
		m.order = append(m.order, k)
	}
	m.values[k] = toRaw(v)
	return m
}

func (m *Map) Delete(k any) bool {
	k = toRaw(k)
	if _, ok := m.values[k]; !ok {
		return false
	}
	delete(m.values, k)
	m.order = slices.DeleteFunc(m.order, func(o any) bool { return o == k })
	return true
}

func (m *Map) Keys() []any {
	return slices.Clone(m.order)
}
