package console

import (
	"io"
)

// Printer adapts a registry to io.Writer. Each byte is sent with PutChar;
// nothing is buffered.
type Printer struct {
	reg *Registry
}

// NewPrinter returns a Printer writing through reg
func NewPrinter(reg *Registry) *Printer {
	return &Printer{reg: reg}
}

// Write sends p one byte at a time and stops at the first error.
func (p *Printer) Write(b []byte) (int, error) {
	for i, ch := range b {
		if _, err := p.reg.PutChar(ch); err != nil {
			return i, err
		}
	}
	return len(b), nil
}

// WriteString is like Write but takes a string.
func (p *Printer) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if _, err := p.reg.PutChar(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

var _ io.StringWriter = (*Printer)(nil)
