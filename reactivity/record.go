package reactivity

// RecordProxy observes a *Record.
type RecordProxy struct {
	proxyBase
	raw *Record
}

func (p *RecordProxy) Raw() Container { return p.raw }

// Record returns the raw record without tracking.
func (p *RecordProxy) Record() *Record { return p.raw }

func (p *RecordProxy) proto() *RecordProxy {
	if p.raw.proto == nil {
		return nil
	}
	return p.rs.createReactive(p.raw.proto, p.flags).(*RecordProxy)
}

// Get reads key, falling through to the prototype chain when the record
// has no own key of that name.
func (p *RecordProxy) Get(key string) any {
	p.track(p.raw, key)
	v, ok := p.raw.values[key]
	if !ok {
		if proto := p.proto(); proto != nil {
			return proto.Get(key)
		}
		return nil
	}
	return p.wrap(v)
}

// Lookup is Get with an existence flag.
func (p *RecordProxy) Lookup(key string) (any, bool) {
	if !p.Has(key) {
		return nil, false
	}
	return p.Get(key), true
}

func (p *RecordProxy) Has(key string) bool {
	p.track(p.raw, key)
	if _, ok := p.raw.values[key]; ok {
		return true
	}
	if proto := p.proto(); proto != nil {
		return proto.Has(key)
	}
	return false
}

// Set writes an own key. Adding a key always triggers; overwriting triggers
// only when the value changed.
func (p *RecordProxy) Set(key string, value any) {
	if p.rejectWrite("set", key) {
		return
	}
	target := p.raw
	old, existed := target.values[key]
	value = toRaw(value)
	target.Put(key, value)

	if !p.rs.isCanonical(p) {
		return
	}
	if !existed {
		p.rs.trigger(target, key, TriggerAdd, value)
	} else if hasChanged(old, value) {
		p.rs.trigger(target, key, TriggerSet, value)
	}
}

// Delete removes an own key, re-running readers of that key and every
// enumeration of the record.
func (p *RecordProxy) Delete(key string) bool {
	if p.rejectWrite("delete", key) {
		return false
	}
	if !p.raw.Delete(key) {
		return false
	}
	if p.rs.isCanonical(p) {
		p.rs.trigger(p.raw, key, TriggerDelete, nil)
	}
	return true
}

// Keys enumerates own keys in insertion order.
func (p *RecordProxy) Keys() []string {
	p.track(p.raw, iterateKey)
	return p.raw.Keys()
}

func (p *RecordProxy) Len() int {
	p.track(p.raw, iterateKey)
	return p.raw.Len()
}
