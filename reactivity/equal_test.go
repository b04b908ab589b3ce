package reactivity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasChanged(t *testing.T) {
	cases := []struct {
		name     string
		old, new any
		want     bool
	}{
		{"equal ints", 1, 1, false},
		{"different ints", 1, 2, true},
		{"int and float", 1, 1.0, true},
		{"both nil", nil, nil, false},
		{"nil and value", nil, 0, true},
		{"nan", math.NaN(), math.NaN(), false},
		{"float32 nan", float32(math.NaN()), float32(math.NaN()), false},
		{"slices", []int{1}, []int{1}, true},
		{"same symbol", lengthKey, lengthKey, false},
		{"struct holding slice", struct{ X any }{[]int{1}}, struct{ X any }{[]int{1}}, true},
		{"struct holding int", struct{ X any }{1}, struct{ X any }{1}, false},
		{"array holding map", [1]any{map[string]int{}}, [1]any{map[string]int{}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hasChanged(tc.old, tc.new))
		})
	}
}
