// Package console multiplexes character I/O over any number of registered
// console backends.
//
// A backend is wrapped in a Console record with New. The backend may
// implement any subset of Writer, Reader and Flusher; missing capabilities
// are simply skipped by the dispatchers. Records are linked into a Registry
// without copying, newest first, and must stay alive while registered.
//
// Every record carries a scope: the set of phases (boot, runtime, crash) in
// which it is eligible. The registry holds the current phase, changed with
// SwitchState, and a dispatcher only visits records whose scope intersects
// it.
//
// Three dispatchers exist:
//
//   - PutChar broadcasts one character to every active writer. The first
//     result is kept unless a later console fails, so a single broken
//     backend is always visible to the caller.
//   - Flush does the same with each active flusher.
//   - GetChar polls active readers and returns the first character found.
//     While any reader reports core.ErrNoPendingChar the pass is repeated,
//     so GetChar blocks until input arrives or every reader fails for good.
//
// When no eligible console exists the dispatchers return
// core.ErrNoValidConsole rather than a silent success.
//
// The package keeps a process-wide registry, returned by Default, and mirrors
// its methods as package-level functions:
//
//	uart := console.New("uart0", myUART, core.ScopeOf(core.PhaseAll)|core.FlagTranslateCRLF)
//	console.Register(uart)
//	console.SwitchState(core.PhaseRuntime)
//	console.PutChar('x')
//
// Nothing in this package takes locks. Registration and dispatch must be
// serialised by the caller.
package console
