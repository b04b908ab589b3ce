package reactivity

// ListProxy observes a *List. Indices and the length are tracked
// separately, so a write to index 3 does not re-run readers of index 0.
type ListProxy struct {
	proxyBase
	raw *List
}

func (p *ListProxy) Raw() Container { return p.raw }

func (p *ListProxy) List() *List { return p.raw }

func (p *ListProxy) At(i int) any {
	p.track(p.raw, i)
	v, _ := p.raw.read(i)
	return p.wrap(v)
}

func (p *ListProxy) Len() int {
	p.track(p.raw, lengthKey)
	return len(p.raw.items)
}

// Set writes index i. Writing past the end grows the list, filling any gap
// with nil, and counts as an add.
func (p *ListProxy) Set(i int, value any) {
	if p.rejectWrite("set", i) {
		return
	}
	if i < 0 {
		p.rs.report("set", i, ErrInvalidIndex)
		return
	}
	target := p.raw
	old, existed := target.read(i)
	value = toRaw(value)
	target.write(i, value)

	if !p.rs.isCanonical(p) {
		return
	}
	if !existed {
		p.rs.trigger(target, i, TriggerAdd, value)
	} else if hasChanged(old, value) {
		p.rs.trigger(target, i, TriggerSet, value)
	}
}

// SetLen truncates or grows the list. Readers of the length and of every
// index at or past n re-run.
func (p *ListProxy) SetLen(n int) {
	if p.rejectWrite("setLen", n) {
		return
	}
	if n < 0 {
		p.rs.report("setLen", n, ErrInvalidIndex)
		return
	}
	if n == len(p.raw.items) {
		return
	}
	p.raw.setLen(n)
	if p.rs.isCanonical(p) {
		p.rs.trigger(p.raw, lengthKey, TriggerSet, n)
	}
}

func (p *ListProxy) Keys() []int {
	n := p.Len()
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (p *ListProxy) Values() []any {
	n := p.Len()
	out := make([]any, n)
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

func (p *ListProxy) ForEach(cb func(i int, value any)) {
	for i, v := range p.Values() {
		cb(i, v)
	}
}

// IndexOf searches the observed list first, then the raw list with v
// unwrapped, so both proxies and raw containers are found.
func (p *ListProxy) IndexOf(v any) int {
	n := p.Len()
	for i := 0; i < n; i++ {
		if sameValue(p.At(i), v) {
			return i
		}
	}
	raw := toRaw(v)
	for i, item := range p.raw.items {
		if sameValue(item, raw) {
			return i
		}
	}
	return -1
}

func (p *ListProxy) LastIndexOf(v any) int {
	n := p.Len()
	for i := n - 1; i >= 0; i-- {
		if sameValue(p.At(i), v) {
			return i
		}
	}
	raw := toRaw(v)
	for i := len(p.raw.items) - 1; i >= 0; i-- {
		if sameValue(p.raw.items[i], raw) {
			return i
		}
	}
	return -1
}

func (p *ListProxy) Includes(v any) bool {
	return p.IndexOf(v) >= 0
}

// The mutators below read the length implicitly. They pause tracking so an
// effect that pushes onto a list it also observes cannot re-trigger itself.

func (p *ListProxy) Push(values ...any) int {
	if p.rejectWrite("push", nil) {
		return len(p.raw.items)
	}
	p.rs.PauseTracking()
	defer p.rs.ResumeTracking()

	n := len(p.raw.items)
	for i, v := range values {
		p.Set(n+i, v)
	}
	return len(p.raw.items)
}

func (p *ListProxy) Pop() any {
	if p.rejectWrite("pop", nil) {
		return nil
	}
	p.rs.PauseTracking()
	defer p.rs.ResumeTracking()

	n := len(p.raw.items)
	if n == 0 {
		return nil
	}
	last := p.raw.items[n-1]
	p.SetLen(n - 1)
	return p.wrap(last)
}

func (p *ListProxy) Shift() any {
	if p.rejectWrite("shift", nil) {
		return nil
	}
	p.rs.PauseTracking()
	defer p.rs.ResumeTracking()

	n := len(p.raw.items)
	if n == 0 {
		return nil
	}
	first := p.raw.items[0]
	for i := 1; i < n; i++ {
		p.Set(i-1, p.raw.items[i])
	}
	p.SetLen(n - 1)
	return p.wrap(first)
}

func (p *ListProxy) Unshift(values ...any) int {
	if p.rejectWrite("unshift", nil) {
		return len(p.raw.items)
	}
	p.rs.PauseTracking()
	defer p.rs.ResumeTracking()

	n, m := len(p.raw.items), len(values)
	for i := n - 1; i >= 0; i-- {
		p.Set(i+m, p.raw.items[i])
	}
	for i, v := range values {
		p.Set(i, v)
	}
	return len(p.raw.items)
}

// Splice removes deleteCount items at start, inserts items in their place
// and returns the removed items. A negative start counts from the end.
func (p *ListProxy) Splice(start, deleteCount int, items ...any) []any {
	if p.rejectWrite("splice", nil) {
		return nil
	}
	p.rs.PauseTracking()
	defer p.rs.ResumeTracking()

	n := len(p.raw.items)
	if start < 0 {
		start = max(n+start, 0)
	}
	start = min(start, n)
	deleteCount = min(max(deleteCount, 0), n-start)

	removed := make([]any, deleteCount)
	for i := range removed {
		removed[i] = p.wrap(p.raw.items[start+i])
	}
	tail := append([]any(nil), p.raw.items[start+deleteCount:]...)

	i := start
	for _, v := range items {
		p.Set(i, v)
		i++
	}
	for _, v := range tail {
		p.Set(i, v)
		i++
	}
	if i < n {
		p.SetLen(i)
	}
	return removed
}
