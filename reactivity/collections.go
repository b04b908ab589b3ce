package reactivity

// Entry is one key/value pair of a map.
type Entry struct {
	Key   any
	Value any
}

// Iterator walks a snapshot taken when it was created.
type Iterator struct {
	items []any
	pos   int
}

func (it *Iterator) Next() (any, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	v := it.items[it.pos]
	it.pos++
	return v, true
}

// SetProxy observes a *Set.
type SetProxy struct {
	proxyBase
	raw *Set
}

func (p *SetProxy) Raw() Container { return p.raw }

func (p *SetProxy) Set() *Set { return p.raw }

func (p *SetProxy) Size() int {
	p.track(p.raw, iterateKey)
	return p.raw.Len()
}

func (p *SetProxy) Has(v any) bool {
	v = toRaw(v)
	p.track(p.raw, v)
	return p.raw.Has(v)
}

// Add triggers only when v was not already a member.
func (p *SetProxy) Add(v any) *SetProxy {
	if p.rejectWrite("add", v) {
		return p
	}
	v = toRaw(v)
	if p.raw.Has(v) {
		return p
	}
	p.raw.Add(v)
	if p.rs.isCanonical(p) {
		p.rs.trigger(p.raw, v, TriggerAdd, v)
	}
	return p
}

func (p *SetProxy) Delete(v any) bool {
	if p.rejectWrite("delete", v) {
		return false
	}
	v = toRaw(v)
	if !p.raw.Delete(v) {
		return false
	}
	if p.rs.isCanonical(p) {
		p.rs.trigger(p.raw, v, TriggerDelete, nil)
	}
	return true
}

// Clear removes every member and re-runs each affected effect once.
func (p *SetProxy) Clear() {
	if p.rejectWrite("clear", nil) {
		return
	}
	members := p.raw.Values()
	if len(members) == 0 {
		return
	}
	for _, m := range members {
		p.raw.Delete(m)
	}
	if p.rs.isCanonical(p) {
		p.rs.triggerKeys(p.raw, members, TriggerDelete, nil)
	}
}

func (p *SetProxy) Values() []any {
	p.track(p.raw, iterateKey)
	out := p.raw.Values()
	for i, v := range out {
		out[i] = p.wrap(v)
	}
	return out
}

func (p *SetProxy) ForEach(cb func(value any)) {
	for _, v := range p.Values() {
		cb(v)
	}
}

func (p *SetProxy) Iterator() *Iterator {
	return &Iterator{items: p.Values()}
}

// MapProxy observes a *Map. Key enumeration is tracked apart from value
// enumeration, so overwriting a value never re-runs Keys readers.
type MapProxy struct {
	proxyBase
	raw *Map
}

func (p *MapProxy) Raw() Container { return p.raw }

func (p *MapProxy) Map() *Map { return p.raw }

func (p *MapProxy) Size() int {
	p.track(p.raw, iterateKey)
	return p.raw.Len()
}

func (p *MapProxy) Get(k any) any {
	k = toRaw(k)
	p.track(p.raw, k)
	v, _ := p.raw.Get(k)
	return p.wrap(v)
}

func (p *MapProxy) Has(k any) bool {
	k = toRaw(k)
	p.track(p.raw, k)
	return p.raw.Has(k)
}

func (p *MapProxy) Set(k, v any) *MapProxy {
	if p.rejectWrite("set", k) {
		return p
	}
	k, v = toRaw(k), toRaw(v)
	old, existed := p.raw.Get(k)
	p.raw.Put(k, v)

	if !p.rs.isCanonical(p) {
		return p
	}
	if !existed {
		p.rs.trigger(p.raw, k, TriggerAdd, v)
	} else if hasChanged(old, v) {
		p.rs.trigger(p.raw, k, TriggerSet, v)
	}
	return p
}

func (p *MapProxy) Delete(k any) bool {
	if p.rejectWrite("delete", k) {
		return false
	}
	k = toRaw(k)
	if !p.raw.Delete(k) {
		return false
	}
	if p.rs.isCanonical(p) {
		p.rs.trigger(p.raw, k, TriggerDelete, nil)
	}
	return true
}

func (p *MapProxy) Clear() {
	if p.rejectWrite("clear", nil) {
		return
	}
	keys := p.raw.Keys()
	if len(keys) == 0 {
		return
	}
	for _, k := range keys {
		p.raw.Delete(k)
	}
	if p.rs.isCanonical(p) {
		p.rs.triggerKeys(p.raw, keys, TriggerDelete, nil)
	}
}

func (p *MapProxy) Keys() []any {
	p.track(p.raw, mapKeyIterateKey)
	out := p.raw.Keys()
	for i, k := range out {
		out[i] = p.wrap(k)
	}
	return out
}

func (p *MapProxy) Values() []any {
	p.track(p.raw, iterateKey)
	keys := p.raw.Keys()
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = p.wrap(p.raw.values[k])
	}
	return out
}

func (p *MapProxy) Entries() []Entry {
	p.track(p.raw, iterateKey)
	keys := p.raw.Keys()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Key: p.wrap(k), Value: p.wrap(p.raw.values[k])}
	}
	return out
}

func (p *MapProxy) ForEach(cb func(value, key any)) {
	for _, e := range p.Entries() {
		cb(e.Value, e.Key)
	}
}

// Iterator yields Entry values.
func (p *MapProxy) Iterator() *Iterator {
	entries := p.Entries()
	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	return &Iterator{items: items}
}
