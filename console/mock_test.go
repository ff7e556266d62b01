package console

import (
	"github.com/philipp01105/nconsole/core"
)

// mockConsole is an instrumented backend. Each capability is driven by an
// optional function; counters record how often it was invoked.
type mockConsole struct {
	put   func(ch byte) (int, error)
	get   func() (int, error)
	flush func() error

	written []byte
	puts    int
	gets    int
	flushes int
	closed  int
	closeFn func() error
}

// Wrappers expose a single capability of a mockConsole.
type mockWriter struct{ m *mockConsole }
type mockReader struct{ m *mockConsole }
type mockFlusher struct{ m *mockConsole }

func (m *mockConsole) PutChar(ch byte) (int, error) {
	m.puts++
	m.written = append(m.written, ch)
	if m.put == nil {
		return int(ch), nil
	}
	return m.put(ch)
}

func (m *mockConsole) GetChar() (int, error) {
	m.gets++
	if m.get == nil {
		return 0, core.ErrNoPendingChar
	}
	return m.get()
}

func (m *mockConsole) Flush() error {
	m.flushes++
	if m.flush == nil {
		return nil
	}
	return m.flush()
}

func (m *mockConsole) Close() error {
	m.closed++
	if m.closeFn == nil {
		return nil
	}
	return m.closeFn()
}

func (w mockWriter) PutChar(ch byte) (int, error) { return w.m.PutChar(ch) }
func (r mockReader) GetChar() (int, error)        { return r.m.GetChar() }
func (f mockFlusher) Flush() error                 { return f.m.Flush() }

// writeOnly returns a backend exposing only the output capability of m.
func writeOnly(m *mockConsole) any { return mockWriter{m} }

// readOnly returns a backend exposing only the input capability of m.
func readOnly(m *mockConsole) any { return mockReader{m} }

// flushOnly returns a backend exposing only the flush capability of m.
func flushOnly(m *mockConsole) any { return mockFlusher{m} }

// failWith returns a PutChar implementation that always fails with code.
func failWith(name string, code core.Code) func(byte) (int, error) {
	return func(byte) (int, error) {
		return int(code), &core.Error{Console: name, Code: code}
	}
}

// readSequence returns a GetChar implementation replaying results in order
// and repeating the last one once exhausted.
func readSequence(results ...func() (int, error)) func() (int, error) {
	i := 0
	return func() (int, error) {
		r := results[i]
		if i < len(results)-1 {
			i++
		}
		return r()
	}
}

func pending() (int, error) { return int(core.CodeNoPendingChar), core.ErrNoPendingChar }

func char(ch byte) func() (int, error) {
	return func() (int, error) { return int(ch), nil }
}

func fail(name string, code core.Code) func() (int, error) {
	return func() (int, error) { return int(code), &core.Error{Console: name, Code: code} }
}

var allPhases = core.ScopeOf(core.PhaseAll)
