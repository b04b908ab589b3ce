package reactivity

import (
	"math"
	"reflect"
)

// hasChanged reports whether a write from old to new is observable. Two NaNs
// are the same value. Values whose dynamic type cannot be compared always
// count as changed, including structs and arrays whose interface fields hold
// uncomparable values.
func hasChanged(oldValue, newValue any) bool {
	if isNaN(oldValue) && isNaN(newValue) {
		return false
	}
	ot, nt := reflect.TypeOf(oldValue), reflect.TypeOf(newValue)
	if ot != nt {
		return true
	}
	if ot == nil {
		return false
	}
	if !ot.Comparable() {
		return true
	}
	return !equalValues(oldValue, newValue)
}

func equalValues(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func isNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return f != f
	}
	return false
}

func sameValue(a, b any) bool {
	return !hasChanged(a, b)
}
