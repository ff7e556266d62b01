package streamconsole

import (
	"io"

	"go.uber.org/multierr"
)

// Duplex combines an Output and an Input into one backend offering write,
// read and flush capabilities.
type Duplex struct {
	Output
	*Input
}

// NewDuplex creates an output from cfg and an input reading r.
func NewDuplex(cfg Config, r io.Reader) *Duplex {
	applyDefaults(&cfg)
	return &Duplex{
		Output: NewOutput(cfg),
		Input:  NewInput(r, cfg.BufferSize),
	}
}

// Close closes both halves.
func (d *Duplex) Close() error {
	return multierr.Combine(d.Output.Close(), d.Input.Close())
}
