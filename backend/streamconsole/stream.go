package streamconsole

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/philipp01105/nconsole/backend"
)

// ErrClosed is returned by PutChar after Close.
var ErrClosed = errors.New("stream console closed")

// Output is the output half of a stream console. Both variants implement
// console.Writer and console.Flusher.
type Output interface {
	PutChar(ch byte) (int, error)
	Flush() error
	Close() error
	Stats() backend.Snapshot
}

// Config holds configuration for a stream console
type Config struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Async queues characters and writes them from a goroutine (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1024)
	BufferSize int
	// OverflowPolicy defines what happens when the async queue is full (default: DropNewest)
	OverflowPolicy backend.OverflowPolicy
	// BlockTimeout is the timeout for the Block overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
}

// NewOutput creates the output half of a stream console.
// Returns a SyncConsole when Async is false, or an AsyncConsole when Async is
// true.
func NewOutput(cfg Config) Output {
	applyDefaults(&cfg)
	if cfg.Async {
		return newAsyncConsole(cfg)
	}
	return newSyncConsole(cfg)
}

// flushWriter is implemented by buffered writers such as *bufio.Writer.
type flushWriter interface {
	Flush() error
}

// streamBase contains shared fields and methods for stream consoles.
type streamBase struct {
	writer io.Writer
	bw     io.ByteWriter // non-nil when writer has a WriteByte method
	stats  *backend.Stats
	mu     sync.Mutex // serialises access to writer
	buf    [1]byte
	closed chan struct{}
}

func (b *streamBase) init(w io.Writer) {
	b.writer = w
	b.bw, _ = w.(io.ByteWriter)
	b.stats = backend.NewStats()
	b.closed = make(chan struct{})
}

// write sends one character to the writer.
func (b *streamBase) write(ch byte) error {
	b.mu.Lock()
	var err error
	if b.bw != nil {
		err = b.bw.WriteByte(ch)
	} else {
		b.buf[0] = ch
		_, err = b.writer.Write(b.buf[:])
	}
	b.mu.Unlock()

	if err != nil {
		b.stats.IncrementFailed()
		return err
	}
	b.stats.IncrementProcessed()
	return nil
}

// flushWriter flushes the writer if it buffers.
func (b *streamBase) flushWriter() error {
	fw, ok := b.writer.(flushWriter)
	if !ok {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return fw.Flush()
}

func (b *streamBase) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}

// Stats returns a snapshot of the current statistics
func (b *streamBase) Stats() backend.Snapshot {
	return b.stats.GetSnapshot()
}
