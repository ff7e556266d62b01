package console

import (
	"github.com/philipp01105/nconsole/core"
)

// Writer is implemented by backends that can emit a character. The returned
// value is handed back to the caller of PutChar on success, usually the
// character itself.
type Writer interface {
	PutChar(ch byte) (int, error)
}

// Reader is implemented by backends that can receive a character. GetChar
// must not block; a backend with nothing ready returns core.ErrNoPendingChar.
type Reader interface {
	GetChar() (int, error)
}

// Flusher is implemented by backends that buffer output. Flush blocks until
// pending output has been drained.
type Flusher interface {
	Flush() error
}

// Console is the descriptor for one backend. The backend owns the Console and
// must keep it alive, at the same address, for as long as it is registered.
type Console struct {
	// Name identifies the console in logs and listings.
	Name string

	backend any
	writer  Writer  // nil when backend has no output capability
	reader  Reader  // nil when backend has no input capability
	flusher Flusher // nil when backend has nothing to flush
	flags   core.Flags

	next  *Console
	self  *Console
	owner *Registry // registry c is linked into, nil when unregistered
}

// New creates a console record for backend. The capabilities are detected
// once here; a backend may implement any subset of Writer, Reader and
// Flusher. scope selects the phases the console takes part in; option bits
// (e.g. core.FlagTranslateCRLF) may be passed alongside.
func New(name string, backend any, flags core.Flags) *Console {
	c := &Console{
		Name:    name,
		backend: backend,
		flags:   flags,
	}
	c.writer, _ = backend.(Writer)
	c.reader, _ = backend.(Reader)
	c.flusher, _ = backend.(Flusher)
	c.self = c
	return c
}

// Backend returns the backend the console was created for
func (c *Console) Backend() any {
	return c.backend
}

// Flags returns the console's flag word
func (c *Console) Flags() core.Flags {
	return c.flags
}

// Scope returns the phases the console is eligible in
func (c *Console) Scope() core.Phase {
	return c.flags.Scope()
}

// CanWrite reports whether the backend has an output capability
func (c *Console) CanWrite() bool { return c.writer != nil }

// CanRead reports whether the backend has an input capability
func (c *Console) CanRead() bool { return c.reader != nil }

// CanFlush reports whether the backend has a flush capability
func (c *Console) CanFlush() bool { return c.flusher != nil }

// relocated reports whether c is a by-value copy of a record built by New.
func (c *Console) relocated() bool {
	return c.self != c
}

// putChar sends ch to the backend, honouring CRLF translation.
func (c *Console) putChar(ch byte) (int, error) {
	if ch == '\n' && c.flags&core.FlagTranslateCRLF != 0 {
		if n, err := core.Result(c.writer.PutChar('\r')); err != nil {
			return n, err
		}
	}
	return core.Result(c.writer.PutChar(ch))
}

func (c *Console) getChar() (int, error) {
	return core.Result(c.reader.GetChar())
}

func (c *Console) flush() error {
	return c.flusher.Flush()
}
