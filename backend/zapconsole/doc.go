// Package zapconsole provides a write-only console that forwards output to
// a zap logger, one entry per line. It lets crash or boot messages printed
// through the console layer land in the same structured log stream as the
// rest of the process.
package zapconsole
