// Package backend holds the plumbing shared by the built-in console
// backends.
//
// A console backend is any value implementing one or more of the
// console.Writer, console.Reader and console.Flusher capabilities. The
// subpackages provide ready-made ones:
//
//   - streamconsole drives an io.Writer / io.Reader pair like a UART, either
//     synchronously or through a bounded queue drained by a goroutine.
//   - ringconsole keeps the most recent output in a fixed-size memory log.
//   - fileconsole appends output to a file with size-based rotation.
//   - zapconsole turns each output line into a structured zap entry.
//
// Queued backends apply an OverflowPolicy when their queue is full:
// DropNewest (default), DropOldest, or Block with a timeout after which the
// character is written synchronously. All backends count processed, dropped,
// blocked and failed characters in a Stats value.
package backend
