package console

import (
	"errors"
	"runtime"

	"github.com/philipp01105/nconsole/core"
)

// outcome is the running result of one dispatch pass. A zero outcome is the
// "no console visited yet" sentinel.
type outcome struct {
	val int
	err error
	set bool
}

// result returns the aggregate, or ErrNoValidConsole when no console was visited.
func (o outcome) result() (int, error) {
	if !o.set {
		return int(core.CodeNoValidConsole), core.ErrNoValidConsole
	}
	return o.val, o.err
}

// broadcast folds one console's output result into the aggregate. The first
// result is adopted as is; after that only errors replace it, the most
// recent error winning.
func (o outcome) broadcast(val int, err error) outcome {
	if !o.set || err != nil {
		return outcome{val: val, err: err, set: true}
	}
	return o
}

// poll folds one console's failed input attempt into the aggregate. Once
// ErrNoPendingChar is recorded it sticks for the rest of the pass; any other
// error replaces whatever came before.
func (o outcome) poll(val int, err error) outcome {
	if o.set && errors.Is(o.err, core.ErrNoPendingChar) {
		return o
	}
	return outcome{val: val, err: err, set: true}
}

// PutChar sends ch to every console that is active in the current phase and
// can write. It returns the first console's result unless a later console
// reports an error, in which case the last error seen is returned. With no
// eligible console it returns core.ErrNoValidConsole.
func (r *Registry) PutChar(ch byte) (int, error) {
	var agg outcome
	for c := r.head; c != nil; c = c.next {
		if !c.flags.ActiveIn(r.state) || c.writer == nil {
			continue
		}
		agg = agg.broadcast(c.putChar(ch))
	}
	return agg.result()
}

// Flush asks every active console that buffers output to drain it. Results
// are combined the same way as for PutChar.
func (r *Registry) Flush() error {
	var agg outcome
	for c := r.head; c != nil; c = c.next {
		if !c.flags.ActiveIn(r.state) || c.flusher == nil {
			continue
		}
		err := c.flush()
		agg = agg.broadcast(int(core.CodeOf(err)), err)
	}
	_, err := agg.result()
	return err
}

// GetChar polls the active consoles that can read until one of them yields a
// character, which is returned immediately. A pass in which some console
// reported core.ErrNoPendingChar is repeated; otherwise the pass's error is
// returned. GetChar busy-waits and has no timeout: if every console keeps
// reporting nothing pending it never returns.
func (r *Registry) GetChar() (int, error) {
	for {
		if r.head == nil {
			return int(core.CodeNoValidConsole), core.ErrNoValidConsole
		}

		var agg outcome
		for c := r.head; c != nil; c = c.next {
			if !c.flags.ActiveIn(r.state) || c.reader == nil {
				continue
			}
			n, err := c.getChar()
			if err == nil {
				return n, nil
			}
			agg = agg.poll(n, err)
		}

		if agg.set && errors.Is(agg.err, core.ErrNoPendingChar) {
			// let goroutine-fed backends make progress before the next pass
			runtime.Gosched()
			continue
		}
		return agg.result()
	}
}
