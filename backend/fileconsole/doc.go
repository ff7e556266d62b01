// Package fileconsole provides a write-only console that appends output to
// a file, with rotation by size or interval and pruning of old backups.
package fileconsole
