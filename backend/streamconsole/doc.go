// Package streamconsole provides consoles backed by an io.Writer and,
// optionally, an io.Reader, in the way a UART or semihosting channel is
// driven.
//
// Output comes in two variants:
//
//   - SyncConsole writes each character to the writer before PutChar
//     returns.
//   - AsyncConsole queues characters and writes them from a dedicated
//     goroutine, applying a backend.OverflowPolicy when the queue is full.
//     Flush waits until the queue is drained.
//
// NewOutput chooses the variant from Config.Async. Input reads ahead into a
// bounded channel so that GetChar can report core.ErrNoPendingChar instead of
// blocking. Duplex combines both halves into a single backend.
package streamconsole
