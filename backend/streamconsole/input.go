package streamconsole

import (
	"bufio"
	"io"
	"sync"

	"github.com/philipp01105/nconsole/core"
)

// Input is the input half of a stream console. A goroutine reads the
// underlying reader into a bounded channel so that GetChar never blocks.
type Input struct {
	ch     chan byte
	err    error // set before ch is closed
	closed chan struct{}
	once   sync.Once
}

// NewInput starts reading r. bufferSize bounds how many characters may be
// read ahead (default: 256).
func NewInput(r io.Reader, bufferSize int) *Input {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	in := &Input{
		ch:     make(chan byte, bufferSize),
		closed: make(chan struct{}),
	}
	go in.pump(bufio.NewReader(r))
	return in
}

func (in *Input) pump(r *bufio.Reader) {
	defer close(in.ch)
	for {
		b, err := r.ReadByte()
		if err != nil {
			in.err = err
			return
		}
		select {
		case in.ch <- b:
		case <-in.closed:
			in.err = ErrClosed
			return
		}
	}
}

// GetChar returns the next character read ahead, core.ErrNoPendingChar when
// none is ready, or the reader's terminal error (e.g. io.EOF) once the input
// is exhausted.
func (in *Input) GetChar() (int, error) {
	select {
	case b, ok := <-in.ch:
		if !ok {
			return int(core.CodeIO), in.err
		}
		return int(b), nil
	default:
		return int(core.CodeNoPendingChar), core.ErrNoPendingChar
	}
}

// Close stops the read-ahead goroutine after its current read returns. The
// underlying reader is not closed.
func (in *Input) Close() error {
	in.once.Do(func() { close(in.closed) })
	return nil
}
