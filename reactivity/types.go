package reactivity

import (
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Kind tags the shape of a raw container.
type Kind uint8

const (
	KindRecord Kind = iota + 1
	KindList
	KindSet
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// TriggerKind classifies a mutation.
type TriggerKind uint8

const (
	TriggerSet TriggerKind = iota
	TriggerAdd
	TriggerDelete
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerSet:
		return "set"
	case TriggerAdd:
		return "add"
	case TriggerDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Flags selects a proxy variant.
type Flags uint8

const (
	FlagShallow Flags = 1 << iota
	FlagReadonly
)

func (f Flags) Shallow() bool  { return f&FlagShallow != 0 }
func (f Flags) Readonly() bool { return f&FlagReadonly != 0 }

// symbol is a reserved bucket key. The type is private so no user key can
// ever compare equal to one.
type symbol int64

var symbolNames = map[symbol]string{}

func newSymbol(name string) symbol {
	s := symbol(xxhash.Sum64String(name) & 0x7fffffffffffffff)
	symbolNames[s] = name
	return s
}

func (s symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}
	return "symbol(" + strconv.FormatInt(int64(s), 10) + ")"
}

var (
	iterateKey       = newSymbol("ITERATE_KEY")
	mapKeyIterateKey = newSymbol("MAP_KEY_ITERATE_KEY")
	lengthKey        = newSymbol("LENGTH_KEY")
	valueKey         = newSymbol("VALUE_KEY")
)

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}
