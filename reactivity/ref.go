package reactivity

const refValueKey = "value"

// Ref is a reactive box around a single value, stored under the "value"
// key of a record. Container values come back wrapped, so use Ref[any] or
// Ref[Proxy] to hold them.
type Ref[T any] struct {
	proxy *RecordProxy
}

func NewRef[T any](rs *System, value T) *Ref[T] {
	raw := NewRecord(nil).Put(refValueKey, value)
	return &Ref[T]{proxy: Reactive(rs, raw).(*RecordProxy)}
}

func (r *Ref[T]) Value() T {
	v, _ := r.proxy.Get(refValueKey).(T)
	return v
}

func (r *Ref[T]) SetValue(value T) {
	r.proxy.Set(refValueKey, value)
}

// Proxy returns the record proxy backing the ref.
func (r *Ref[T]) Proxy() *RecordProxy {
	return r.proxy
}

func (r *Ref[T]) isRef() {}

func IsRef(v any) bool {
	_, ok := v.(interface{ isRef() })
	return ok
}
