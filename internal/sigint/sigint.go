// Package sigint owns the process-wide cooperative interrupt flag. The OS
// signal handler only ever sets the flag; the CG/TCG engines poll it at
// iteration boundaries and decide what "interrupted" means for their phase
// (first SIGINT tightens the relaxation, second one stops the loop).
package sigint

import (
	"os"
	"os/signal"
	"sync/atomic"
)

// Flag is a set/clear boolean safe to write from a signal-handling
// goroutine and read from the solver loop.
type Flag struct {
	v atomic.Bool
}

// Interrupted reports whether a SIGINT arrived since the last Clear.
func (f *Flag) Interrupted() bool { return f.v.Load() }

// Set raises the flag. Exported for tests; production code lets the
// signal handler installed by Watch do it.
func (f *Flag) Set() { f.v.Store(true) }

// Clear lowers the flag, re-arming the next SIGINT.
func (f *Flag) Clear() { f.v.Store(false) }

// Watch installs a SIGINT handler that raises the returned flag on every
// delivery. The handler stays installed for the life of the process: the
// finalization phase deliberately ignores further interrupts, so there is
// nothing to unregister.
func Watch() *Flag {
	f := &Flag{}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		for range ch {
			f.Set()
		}
	}()
	return f
}
