package console

import (
	"github.com/philipp01105/nconsole/core"
)

// defaultRegistry starts empty in the boot phase and lives for the whole
// process.
var defaultRegistry = NewRegistry(Config{})

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. It is meant to be called once
// during start-up, before any dispatch.
func SetDefault(r *Registry) {
	defaultRegistry = r
}

// Package-level convenience functions using the default registry

// Register adds c to the default registry
func Register(c *Console) error {
	return Default().Register(c)
}

// Unregister removes c from the default registry
func Unregister(c *Console) (*Console, bool) {
	return Default().Unregister(c)
}

// IsRegistered reports whether c is in the default registry
func IsRegistered(c *Console) bool {
	return Default().IsRegistered(c)
}

// SwitchState sets the phase of the default registry
func SwitchState(p core.Phase) {
	Default().SwitchState(p)
}

// SetScope replaces the scope bits of c's flags
func SetScope(c *Console, mask core.Flags) error {
	return Default().SetScope(c, mask)
}

// PutChar broadcasts ch through the default registry
func PutChar(ch byte) (int, error) {
	return Default().PutChar(ch)
}

// GetChar reads one character through the default registry
func GetChar() (int, error) {
	return Default().GetChar()
}

// Flush flushes the consoles of the default registry
func Flush() error {
	return Default().Flush()
}
