// Package interrupt provides the cooperative cancellation signal polled by
// the justification engine.
package interrupt

import "time"

// Monitor is a poll-only cancellation signal. The engine checks it at the
// top of each processing step and exits promptly when it reports true,
// leaving its state consistent.
type Monitor interface {
	IsInterrupted() bool
}

// Func adapts a function to the Monitor interface.
type Func func() bool

func (f Func) IsInterrupted() bool { return f() }

// Never is a monitor that never interrupts.
var Never Monitor = Func(func() bool { return false })

// Deadline returns a monitor that interrupts once t has passed. Timeouts
// are encoded by the caller this way; the engines have no timer of their
// own.
func Deadline(t time.Time) Monitor {
	return Func(func() bool { return !time.Now().Before(t) })
}

// After returns a monitor that interrupts once d has elapsed from now.
func After(d time.Duration) Monitor {
	return Deadline(time.Now().Add(d))
}
