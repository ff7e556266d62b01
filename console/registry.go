package console

import (
	"errors"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/nconsole/core"
)

// Precondition violations. With Config.Debug set they panic instead of being
// returned.
var (
	// ErrNilConsole is returned when a nil record is passed in.
	ErrNilConsole = errors.New("nil console")

	// ErrAlreadyRegistered is returned when registering a record that is
	// already linked into this or another registry.
	ErrAlreadyRegistered = errors.New("console already registered")

	// ErrRelocated is returned for a record that was copied by value after New.
	ErrRelocated = errors.New("console record was copied after creation")

	// ErrInvalidScope is returned for a scope mask with bits outside the scope field.
	ErrInvalidScope = errors.New("scope mask has bits outside the scope field")
)

// Config holds configuration for a registry
type Config struct {
	// Logger receives debug output about registrations and phase changes
	// (default: zap.NewNop())
	Logger *zap.Logger
	// Debug turns precondition violations into panics
	Debug bool
	// Phase is the initial activation state (default: core.PhaseBoot)
	Phase core.Phase
}

// Registry is the list of registered consoles together with the current
// activation state. Records are linked intrusively and newest first; the
// registry never copies or allocates them.
//
// A Registry is not safe for concurrent use. Callers must serialise
// registration and dispatch themselves.
type Registry struct {
	head  *Console
	state core.Phase
	log   *zap.Logger
	debug bool
}

// NewRegistry creates an empty registry
func NewRegistry(cfg Config) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Phase == 0 {
		cfg.Phase = core.PhaseBoot
	}
	return &Registry{
		state: cfg.Phase,
		log:   cfg.Logger,
		debug: cfg.Debug,
	}
}

// fail reports a precondition violation.
func (r *Registry) fail(err error) error {
	if r.debug {
		panic(err)
	}
	return err
}

// Register prepends c to the registry. It fails if c is nil, registered in
// any registry, or a by-value copy of a record created with New.
func (r *Registry) Register(c *Console) error {
	if c == nil {
		return r.fail(ErrNilConsole)
	}
	if c.relocated() {
		return r.fail(ErrRelocated)
	}
	if c.owner != nil || r.IsRegistered(c) {
		return r.fail(ErrAlreadyRegistered)
	}

	c.next = r.head
	c.owner = r
	r.head = c

	r.log.Debug("console registered",
		zap.String("console", c.Name),
		zap.Stringer("flags", c.flags),
		zap.Bool("write", c.CanWrite()),
		zap.Bool("read", c.CanRead()),
		zap.Bool("flush", c.CanFlush()),
	)
	return nil
}

// Unregister removes c from the registry. It returns the removed record and
// true, or nil and false when c was not registered. Records are matched by
// identity, not by content.
func (r *Registry) Unregister(c *Console) (*Console, bool) {
	if c == nil {
		_ = r.fail(ErrNilConsole)
		return nil, false
	}

	for link := &r.head; *link != nil; link = &(*link).next {
		if *link == c {
			*link = c.next
			c.next = nil
			c.owner = nil
			r.log.Debug("console unregistered", zap.String("console", c.Name))
			return c, true
		}
	}
	return nil, false
}

// IsRegistered reports whether c is in the registry
func (r *Registry) IsRegistered(c *Console) bool {
	if c == nil {
		_ = r.fail(ErrNilConsole)
		return false
	}
	for it := r.head; it != nil; it = it.next {
		if it == c {
			return true
		}
	}
	return false
}

// SwitchState sets the current phase. The previous value is discarded and the
// bit pattern is not validated.
func (r *Registry) SwitchState(p core.Phase) {
	r.log.Debug("console state switched",
		zap.Stringer("from", r.state),
		zap.Stringer("to", p),
	)
	r.state = p
}

// State returns the current phase
func (r *Registry) State() core.Phase {
	return r.state
}

// SetScope replaces the scope field of c's flags with mask. Other flag bits
// are left untouched. c does not need to be registered.
func (r *Registry) SetScope(c *Console, mask core.Flags) error {
	if c == nil {
		return r.fail(ErrNilConsole)
	}
	if mask&^core.ScopeMask != 0 {
		return r.fail(ErrInvalidScope)
	}
	c.flags = c.flags.WithScope(mask)
	r.log.Debug("console scope set",
		zap.String("console", c.Name),
		zap.Stringer("flags", c.flags),
	)
	return nil
}

// Each calls fn for every registered console in dispatch order until fn
// returns false
func (r *Registry) Each(fn func(*Console) bool) {
	for it := r.head; it != nil; it = it.next {
		if !fn(it) {
			return
		}
	}
}

// Len returns the number of registered consoles
func (r *Registry) Len() int {
	n := 0
	for it := r.head; it != nil; it = it.next {
		n++
	}
	return n
}

// Close closes every registered backend that implements io.Closer. All
// backends are visited; their errors are combined. Records stay registered.
func (r *Registry) Close() error {
	var err error
	for it := r.head; it != nil; it = it.next {
		if cl, ok := it.backend.(io.Closer); ok {
			err = multierr.Append(err, cl.Close())
		}
	}
	return err
}
