package reactivity

// Snapshot copies v into plain Go values without tracking: records become
// map[string]any, lists and sets []any, maps []Entry. Cycles are cut with
// nil.
func Snapshot(v any) any {
	return snapshot(toRaw(v), map[Container]bool{})
}

func snapshot(v any, visiting map[Container]bool) any {
	c, ok := v.(Container)
	if !ok {
		return v
	}
	if visiting[c] {
		return nil
	}
	visiting[c] = true
	defer delete(visiting, c)

	switch raw := c.(type) {
	case *Record:
		out := make(map[string]any, raw.Len())
		for _, k := range raw.order {
			out[k] = snapshot(raw.values[k], visiting)
		}
		return out
	case *List:
		out := make([]any, len(raw.items))
		for i, item := range raw.items {
			out[i] = snapshot(item, visiting)
		}
		return out
	case *Set:
		out := make([]any, len(raw.order))
		for i, m := range raw.order {
			out[i] = snapshot(m, visiting)
		}
		return out
	case *Map:
		out := make([]Entry, len(raw.order))
		for i, k := range raw.order {
			out[i] = Entry{Key: snapshot(k, visiting), Value: snapshot(raw.values[k], visiting)}
		}
		return out
	}
	return v
}
