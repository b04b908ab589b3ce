package reactivity

import (
	"cmp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// dep is the insertion-ordered set of effects subscribed to one key.
type dep struct {
	subs []*EffectRunner
}

func (d *dep) add(e *EffectRunner) {
	if slices.Contains(d.subs, e) {
		return
	}
	d.subs = append(d.subs, e)
}

func (d *dep) remove(e *EffectRunner) {
	if i := slices.Index(d.subs, e); i >= 0 {
		d.subs = slices.Delete(d.subs, i, i+1)
	}
}

func (rs *System) track(target, key any) {
	e := rs.activeEffect
	if e == nil || !rs.shouldTrack {
		return
	}
	rs.checkOwner("track")

	keys, ok := rs.bucket[target]
	if !ok {
		keys = map[any]*dep{}
		rs.bucket[target] = keys
	}
	d, ok := keys[key]
	if !ok {
		d = &dep{}
		keys[key] = d
	}
	d.add(e)
	e.deps.Add(d)
}

// runList is the ordered, deduplicated set of effects a trigger will run.
type runList struct {
	effects []*EffectRunner
	seen    mapset.Set[*EffectRunner]
}

func newRunList() *runList {
	return &runList{seen: mapset.NewThreadUnsafeSet[*EffectRunner]()}
}

func (rs *System) collect(l *runList, d *dep) {
	if d == nil {
		return
	}
	for _, e := range d.subs {
		if e == rs.activeEffect || !l.seen.Add(e) {
			continue
		}
		l.effects = append(l.effects, e)
	}
}

func (rs *System) collectKey(l *runList, target, key any, kind TriggerKind, newValue any) {
	keys := rs.bucket[target]
	if keys == nil {
		return
	}
	var targetKind Kind
	if c, ok := target.(Container); ok {
		targetKind = c.Kind()
	}

	rs.collect(l, keys[key])
	if kind == TriggerAdd || kind == TriggerDelete || (kind == TriggerSet && targetKind == KindMap) {
		rs.collect(l, keys[iterateKey])
	}
	if (kind == TriggerAdd || kind == TriggerDelete) && targetKind == KindMap {
		rs.collect(l, keys[mapKeyIterateKey])
	}
	if targetKind == KindList {
		if kind == TriggerAdd {
			rs.collect(l, keys[lengthKey])
		}
		if key == lengthKey {
			newLen, _ := newValue.(int)
			var indices []int
			for k := range keys {
				if i, ok := k.(int); ok && i >= newLen {
					indices = append(indices, i)
				}
			}
			slices.SortFunc(indices, cmp.Compare[int])
			for _, i := range indices {
				rs.collect(l, keys[i])
			}
		}
	}
}

func (rs *System) trigger(target, key any, kind TriggerKind, newValue any) {
	rs.triggerKeys(target, []any{key}, kind, newValue)
}

// triggerKeys runs the union of the subscribers of several keys once.
func (rs *System) triggerKeys(target any, keys []any, kind TriggerKind, newValue any) {
	rs.checkOwner("trigger")
	l := newRunList()
	for _, key := range keys {
		rs.metrics.trigger(kind)
		rs.emitTrigger(target, key, kind)
		rs.collectKey(l, target, key, kind, newValue)
	}
	for _, e := range l.effects {
		if e.stopped {
			continue
		}
		if e.scheduler != nil {
			e.scheduler(e)
		} else {
			e.Run()
		}
	}
}
