package reactivity

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/valyala/quicktemplate"
)

type describer interface {
	describe() (kind string, id uint64)
}

func (r *Record) describe() (string, uint64) { return KindRecord.String(), r.id }
func (l *List) describe() (string, uint64) { return KindList.String(), l.id }
func (s *Set) describe() (string, uint64) { return KindSet.String(), s.id }
func (m *Map) describe() (string, uint64) { return KindMap.String(), m.id }

func describe(target any) string {
	if d, ok := target.(describer); ok {
		kind, id := d.describe()
		return fmt.Sprintf("%s#%d", kind, id)
	}
	return fmt.Sprintf("%T", target)
}

func targetID(target any) uint64 {
	if d, ok := target.(describer); ok {
		_, id := d.describe()
		return id
	}
	return 0
}

type graphKey struct {
	name    string
	effects []uint64
}

type graphTarget struct {
	id   uint64
	name string
	keys []graphKey
}

// snapshotGraph lists every live subscription, ordered by target id and
// key name.
func (rs *System) snapshotGraph() []graphTarget {
	targets := make([]graphTarget, 0, len(rs.bucket))
	for target, keys := range rs.bucket {
		gt := graphTarget{id: targetID(target), name: describe(target)}
		for key, d := range keys {
			if len(d.subs) == 0 {
				continue
			}
			gk := graphKey{name: fmt.Sprint(key), effects: make([]uint64, len(d.subs))}
			for i, e := range d.subs {
				gk.effects[i] = e.id
			}
			gt.keys = append(gt.keys, gk)
		}
		if len(gt.keys) == 0 {
			continue
		}
		slices.SortFunc(gt.keys, func(a, b graphKey) int { return cmp.Compare(a.name, b.name) })
		targets = append(targets, gt)
	}
	slices.SortFunc(targets, func(a, b graphTarget) int { return cmp.Compare(a.id, b.id) })
	return targets
}

// WriteGraph writes the subscription graph as JSON:
//
//	{"targets":[{"target":"record#3","keys":[{"key":"a","effects":[7]}]}]}
func (rs *System) WriteGraph(w io.Writer) {
	qw := quicktemplate.AcquireWriter(w)
	defer quicktemplate.ReleaseWriter(qw)
	q := qw.N()

	q.S(`{"targets":[`)
	for i, t := range rs.snapshotGraph() {
		if i > 0 {
			q.S(`,`)
		}
		q.S(`{"target":`)
		q.Q(t.name)
		q.S(`,"keys":[`)
		for j, k := range t.keys {
			if j > 0 {
				q.S(`,`)
			}
			q.S(`{"key":`)
			q.Q(k.name)
			q.S(`,"effects":[`)
			for n, id := range k.effects {
				if n > 0 {
					q.S(`,`)
				}
				q.D(int(id))
			}
			q.S(`]}`)
		}
		q.S(`]}`)
	}
	q.S(`]}`)
}
