package ringconsole

import (
	"io"
	"sync"

	"github.com/philipp01105/nconsole/backend"
)

// DefaultSize can hold the contents of a standard 80x25 text-mode screen.
const DefaultSize = 2048

// Config holds configuration for a memory log console
type Config struct {
	// Size of the ring buffer; rounded up to a power of 2 (default: DefaultSize)
	Size int
}

// RingConsole keeps the most recent output in a fixed-size ring buffer.
// Once full, each new character overwrites the oldest one. It only has an
// output capability.
type RingConsole struct {
	mu             sync.Mutex
	buffer         []byte
	mask           int
	rIndex, wIndex int
	stats          *backend.Stats
}

// New creates a memory log console
func New(cfg Config) *RingConsole {
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	// round up to a power of 2; one slot stays empty to tell full from empty
	n := 1
	for n < size+1 {
		n <<= 1
	}
	return &RingConsole{
		buffer: make([]byte, n),
		mask:   n - 1,
		stats:  backend.NewStats(),
	}
}

// PutChar stores ch and always succeeds.
func (rb *RingConsole) PutChar(ch byte) (int, error) {
	rb.mu.Lock()
	rb.buffer[rb.wIndex] = ch
	rb.wIndex = (rb.wIndex + 1) & rb.mask
	if rb.rIndex == rb.wIndex {
		rb.rIndex = (rb.rIndex + 1) & rb.mask
		rb.stats.IncrementDropped()
	}
	rb.mu.Unlock()

	rb.stats.IncrementProcessed()
	return int(ch), nil
}

// Len returns the number of buffered bytes
func (rb *RingConsole) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return (rb.wIndex - rb.rIndex) & rb.mask
}

// Cap returns the maximum number of bytes the log retains
func (rb *RingConsole) Cap() int {
	return len(rb.buffer) - 1
}

// Read drains up to len(p) bytes into p. It returns io.EOF when the log is
// empty.
func (rb *RingConsole) Read(p []byte) (n int, err error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	switch {
	case rb.rIndex < rb.wIndex:
		// read up to min(wIndex - rIndex, len(p)) bytes
		n = copy(p, rb.buffer[rb.rIndex:rb.wIndex])
		rb.rIndex += n
		return n, nil
	case rb.rIndex > rb.wIndex:
		// read up to the end of the buffer, then wrap
		n = copy(p, rb.buffer[rb.rIndex:])
		rb.rIndex = (rb.rIndex + n) & rb.mask
		return n, nil
	default: // rIndex == wIndex
		return 0, io.EOF
	}
}

// String returns the buffered bytes without draining them
func (rb *RingConsole) String() string {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.rIndex <= rb.wIndex {
		return string(rb.buffer[rb.rIndex:rb.wIndex])
	}
	out := make([]byte, 0, len(rb.buffer))
	out = append(out, rb.buffer[rb.rIndex:]...)
	out = append(out, rb.buffer[:rb.wIndex]...)
	return string(out)
}

// Reset discards the buffered bytes
func (rb *RingConsole) Reset() {
	rb.mu.Lock()
	rb.rIndex, rb.wIndex = 0, 0
	rb.mu.Unlock()
}

// Stats returns a snapshot of the current statistics
func (rb *RingConsole) Stats() backend.Snapshot {
	return rb.stats.GetSnapshot()
}
