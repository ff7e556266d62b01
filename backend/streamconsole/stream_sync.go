package streamconsole

// SyncConsole writes every character straight to the underlying writer.
type SyncConsole struct {
	streamBase
}

func newSyncConsole(cfg Config) *SyncConsole {
	h := &SyncConsole{}
	h.init(cfg.Writer)
	return h
}

// PutChar writes ch and returns it.
func (h *SyncConsole) PutChar(ch byte) (int, error) {
	if h.isClosed() {
		return 0, ErrClosed
	}
	if err := h.write(ch); err != nil {
		return 0, err
	}
	return int(ch), nil
}

// Flush flushes the writer if it is buffered.
func (h *SyncConsole) Flush() error {
	return h.flushWriter()
}

// Close flushes the writer and rejects further output.
func (h *SyncConsole) Close() error {
	if h.isClosed() {
		return nil
	}
	close(h.closed)
	return h.flushWriter()
}
