package streamconsole

import (
	"sync"
	"time"

	"github.com/philipp01105/nconsole/backend"
)

// request is one queue element: a character, or a flush barrier when done
// is non-nil.
type request struct {
	ch   byte
	done chan error
}

// AsyncConsole queues characters and writes them from a background
// goroutine. PutChar never waits for the device unless the Block overflow
// policy applies.
type AsyncConsole struct {
	streamBase
	queue          chan request
	wg             sync.WaitGroup
	overflowPolicy backend.OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	blockTimer     *time.Timer
	timerMu        sync.Mutex
	stopped        chan struct{} // closed when process returns

	errMu    sync.Mutex
	firstErr error // first write error since the last Flush
}

// newAsyncConsole creates a new asynchronous stream console.
func newAsyncConsole(cfg Config) *AsyncConsole {
	h := &AsyncConsole{
		queue:          make(chan request, cfg.BufferSize),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		blockTimer:     backend.NewStoppedTimer(),
		stopped:        make(chan struct{}),
	}
	h.init(cfg.Writer)

	h.wg.Add(1)
	go h.process()

	return h
}

// PutChar queues ch, applying the overflow policy when the queue is full.
// Device errors surface on the next Flush.
func (h *AsyncConsole) PutChar(ch byte) (int, error) {
	if h.isClosed() {
		return 0, ErrClosed
	}
	req := request{ch: ch}

	switch h.overflowPolicy {
	case backend.Block:
		select {
		case h.queue <- req:
			return int(ch), nil
		default:
		}

		// Queue full, wait with timeout using the reusable timer
		h.timerMu.Lock()
		defer h.timerMu.Unlock()
		backend.StopTimer(h.blockTimer)
		h.blockTimer.Reset(h.blockTimeout)
		select {
		case h.queue <- req:
			backend.StopTimer(h.blockTimer)
			return int(ch), nil
		case <-h.blockTimer.C:
			// Timeout - fall back to synchronous write
			h.stats.IncrementBlocked()
		case <-h.closed:
			backend.StopTimer(h.blockTimer)
			return 0, ErrClosed
		}
		if err := h.write(ch); err != nil {
			return 0, err
		}
		return int(ch), nil

	case backend.DropOldest:
		select {
		case h.queue <- req:
			return int(ch), nil
		default:
		}
		// Queue full - try to drop oldest
		select {
		case old := <-h.queue:
			if old.done != nil {
				// never drop a flush barrier
				h.complete(old)
			} else {
				h.stats.IncrementDropped()
			}
		default:
		}
		select {
		case h.queue <- req:
		default:
			h.stats.IncrementDropped()
		}
		return int(ch), nil

	default:
		select {
		case h.queue <- req:
		default:
			// Queue full - drop this character
			h.stats.IncrementDropped()
		}
		return int(ch), nil
	}
}

// Flush blocks until every character queued before the call has been
// written and the writer flushed. It returns the first write error seen
// since the previous Flush.
func (h *AsyncConsole) Flush() error {
	if h.isClosed() {
		return h.takeErr(h.flushWriter())
	}

	done := make(chan error, 1)
	select {
	case h.queue <- request{done: done}:
	case <-h.closed:
		return h.takeErr(h.flushWriter())
	}

	select {
	case err := <-done:
		return err
	case <-h.stopped:
		// barrier may have been left behind by a timed-out drain
		return h.takeErr(h.flushWriter())
	}
}

// complete executes a flush barrier.
func (h *AsyncConsole) complete(req request) {
	req.done <- h.takeErr(h.flushWriter())
}

// takeErr returns and clears the stored write error, preferring it over err.
func (h *AsyncConsole) takeErr(err error) error {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	if h.firstErr != nil {
		err, h.firstErr = h.firstErr, nil
	}
	return err
}

func (h *AsyncConsole) handle(req request) {
	if req.done != nil {
		h.complete(req)
		return
	}
	if err := h.write(req.ch); err != nil {
		h.errMu.Lock()
		if h.firstErr == nil {
			h.firstErr = err
		}
		h.errMu.Unlock()
	}
}

// process handles queued characters until Close
func (h *AsyncConsole) process() {
	defer h.wg.Done()
	defer close(h.stopped)

	for {
		select {
		case req := <-h.queue:
			h.handle(req)
		case <-h.closed:
			h.drain()
			return
		}
	}
}

// drain handles what is left in the queue until it is empty or
// DrainTimeout has passed. The deadline is checked before every request.
func (h *AsyncConsole) drain() {
	deadline := time.NewTimer(h.drainTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-deadline.C:
			return
		default:
		}
		select {
		case req := <-h.queue:
			h.handle(req)
		default:
			return
		}
	}
}

// Close drains the queue (bounded by DrainTimeout), flushes the writer and
// rejects further output.
func (h *AsyncConsole) Close() error {
	if h.isClosed() {
		return nil
	}

	close(h.closed)
	h.wg.Wait()

	return h.takeErr(h.flushWriter())
}
