package benchmark

import (
	"github.com/philipp01105/nconsole/core"
)

// noopConsole accepts every character and never has input ready.
type noopConsole struct{}

func (noopConsole) PutChar(ch byte) (int, error) {
	return int(ch), nil
}

func (noopConsole) GetChar() (int, error) {
	return int(core.CodeNoPendingChar), core.ErrNoPendingChar
}

func (noopConsole) Flush() error {
	return nil
}

// readyConsole always has the same character ready.
type readyConsole struct {
	ch byte
}

func (r readyConsole) GetChar() (int, error) {
	return int(r.ch), nil
}

// lineConsole buffers output into lines and hands each one to emit.
type lineConsole struct {
	line []byte
	emit func(string)
}

func newLineConsole(emit func(string)) *lineConsole {
	return &lineConsole{line: make([]byte, 0, 256), emit: emit}
}

func (l *lineConsole) PutChar(ch byte) (int, error) {
	if ch != '\n' {
		l.line = append(l.line, ch)
		return int(ch), nil
	}
	l.emit(string(l.line))
	l.line = l.line[:0]
	return int(ch), nil
}
