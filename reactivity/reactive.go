package reactivity

// Proxy is an observed view over a raw container.
type Proxy interface {
	Raw() Container
	Flags() Flags
	System() *System
}

// Reactive returns the deep, writable proxy for c. Passing a proxy wraps its
// raw container. Non-containers produce an ErrNotContainer diagnostic and nil.
func Reactive(rs *System, c any) Proxy {
	return rs.createReactive(c, 0)
}

// ShallowReactive tracks and triggers on the top level only; nested
// containers are returned raw.
func ShallowReactive(rs *System, c any) Proxy {
	return rs.createReactive(c, FlagShallow)
}

// Readonly rejects writes and wraps nested containers as readonly too.
func Readonly(rs *System, c any) Proxy {
	return rs.createReactive(c, FlagReadonly)
}

func ShallowReadonly(rs *System, c any) Proxy {
	return rs.createReactive(c, FlagShallow|FlagReadonly)
}

func (rs *System) createReactive(v any, flags Flags) Proxy {
	c, ok := toRaw(v).(Container)
	if !ok {
		rs.report("reactive", nil, ErrNotContainer)
		return nil
	}
	cache := rs.proxies[flags]
	if p, ok := cache[c]; ok {
		return p
	}

	base := proxyBase{rs: rs, flags: flags}
	var p Proxy
	switch raw := c.(type) {
	case *Record:
		p = &RecordProxy{proxyBase: base, raw: raw}
	case *List:
		p = &ListProxy{proxyBase: base, raw: raw}
	case *Set:
		p = &SetProxy{proxyBase: base, raw: raw}
	case *Map:
		p = &MapProxy{proxyBase: base, raw: raw}
	}
	cache[c] = p
	return p
}

// isCanonical reports whether p is the cached proxy for its raw container.
// Only canonical proxies trigger.
func (rs *System) isCanonical(p Proxy) bool {
	cached, ok := rs.proxies[p.Flags()][p.Raw()]
	return ok && cached == p
}

type proxyBase struct {
	rs    *System
	flags Flags
}

func (p *proxyBase) System() *System { return p.rs }
func (p *proxyBase) Flags() Flags { return p.flags }

func (p *proxyBase) track(target, key any) {
	if p.flags.Readonly() {
		return
	}
	p.rs.track(target, key)
}

func (p *proxyBase) wrap(v any) any {
	if p.flags.Shallow() {
		return v
	}
	if c, ok := v.(Container); ok {
		return p.rs.createReactive(c, p.flags&FlagReadonly)
	}
	return v
}

func (p *proxyBase) rejectWrite(op string, key any) bool {
	if p.flags.Readonly() {
		p.rs.report(op, key, ErrReadonly)
		return true
	}
	return false
}

// ToRaw returns the raw container behind a proxy, or v unchanged.
func ToRaw(v any) any {
	return toRaw(v)
}

func toRaw(v any) any {
	if p, ok := v.(Proxy); ok && p != nil {
		return p.Raw()
	}
	return v
}

func IsReactive(v any) bool {
	p, ok := v.(Proxy)
	return ok && p != nil && !p.Flags().Readonly()
}

func IsReadonly(v any) bool {
	p, ok := v.(Proxy)
	return ok && p != nil && p.Flags().Readonly()
}

func IsProxy(v any) bool {
	p, ok := v.(Proxy)
	return ok && p != nil
}
