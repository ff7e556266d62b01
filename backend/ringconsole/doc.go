// Package ringconsole provides a write-only memory log console. It keeps
// the most recent output in a ring buffer so that early boot or crash
// messages can be retrieved later with Read or String.
package ringconsole
