// Package core defines the shared types used across nconsole.
//
// It provides the Phase type naming the execution phases a firmware image
// passes through (boot, runtime, crash), the Flags word carried by every
// console with its scope field in the low byte, and the Code/Error pair
// backends use to report failures.
//
// A console takes part in a dispatch when its scope field intersects the
// current phase:
//
//	flags.ActiveIn(core.PhaseRuntime)
//
// Scope updates only ever touch the low byte, so option bits such as
// FlagTranslateCRLF and FlagEarly survive any number of scope changes.
//
// Backend results are signed: a non-negative value is a success (usually the
// echoed or received character), a negative value is a Code. Go backends
// return an error instead; Result folds both conventions into one, and
// errors.Is matches *Error values by code so that callers can test for
// ErrNoPendingChar regardless of which backend produced it.
package core
