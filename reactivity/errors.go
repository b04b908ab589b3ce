package reactivity

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrReadonly         = errors.New("target is readonly")
	ErrComputedReadonly = errors.New("computed value is readonly")
	ErrMissingKey       = errors.New("key does not exist")
	ErrNotContainer     = errors.New("value is not a reactive container")
	ErrInvalidIndex     = errors.New("list index out of range")
	ErrForeignGoroutine = errors.New("system used from a foreign goroutine")
	ErrUnbalancedBatch  = errors.New("EndBatch without StartBatch")
)

// Diagnostic is a non-fatal problem detected by the engine. The operation
// that produced it has already been turned into a no-op.
type Diagnostic struct {
	Op  string
	Key any
	Err error
}

func (d *Diagnostic) Error() string {
	if d.Key != nil {
		return fmt.Sprintf("%s %v: %v", d.Op, d.Key, d.Err)
	}
	return fmt.Sprintf("%s: %v", d.Op, d.Err)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

type OnErrorFunc func(d *Diagnostic)

func logDiagnostic(d *Diagnostic) {
	log.Printf("reactivity: %v", d)
}

func diagnosticCode(err error) string {
	switch {
	case errors.Is(err, ErrReadonly):
		return "readonly"
	case errors.Is(err, ErrComputedReadonly):
		return "computed_readonly"
	case errors.Is(err, ErrMissingKey):
		return "missing_key"
	case errors.Is(err, ErrNotContainer):
		return "not_container"
	case errors.Is(err, ErrInvalidIndex):
		return "invalid_index"
	case errors.Is(err, ErrForeignGoroutine):
		return "foreign_goroutine"
	case errors.Is(err, ErrUnbalancedBatch):
		return "unbalanced_batch"
	default:
		return "effect"
	}
}

func (rs *System) report(op string, key any, err error) {
	d := &Diagnostic{Op: op, Key: key, Err: err}
	rs.metrics.diagnostic(diagnosticCode(err))
	if rs.observer != nil {
		ev := Event{Type: EventDiagnostic, Error: d.Error()}
		if key != nil {
			ev.Key = fmt.Sprint(key)
		}
		rs.observer(ev)
	}
	if rs.onError != nil {
		rs.onError(d)
	}
}
