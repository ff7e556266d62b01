package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/philipp01105/nconsole/backend"
	"github.com/philipp01105/nconsole/console"
	"github.com/philipp01105/nconsole/core"
)

// EchoCmd echoes characters read through GetChar back through PutChar.
type EchoCmd struct {
	Quit string `default:"q" help:"Character that ends the session."`
}

func (cmd *EchoCmd) Run(a *app) error {
	a.reg.SwitchState(core.PhaseRuntime)

	for {
		ch, err := a.reg.GetChar()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return errors.Wrap(err, "getc")
		}
		if cmd.Quit != "" && byte(ch) == cmd.Quit[0] {
			break
		}
		if _, err := a.reg.PutChar(byte(ch)); err != nil {
			a.log.Warn("putc failed", zap.Error(err), zap.Int("code", int(core.CodeOf(err))))
		}
	}

	if err := a.reg.Flush(); err != nil && !errors.Is(err, core.ErrNoValidConsole) {
		a.log.Warn("flush failed", zap.Error(err))
	}
	return nil
}

// ListCmd prints the registered consoles in dispatch order.
type ListCmd struct{}

func (cmd *ListCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "state: %s\n", a.reg.State())
	a.reg.Each(func(c *console.Console) bool {
		caps := lo.Filter([]string{
			lo.Ternary(c.CanWrite(), "write", ""),
			lo.Ternary(c.CanRead(), "read", ""),
			lo.Ternary(c.CanFlush(), "flush", ""),
		}, func(s string, _ int) bool { return s != "" })
		active := lo.Ternary(c.Flags().ActiveIn(a.reg.State()), "active", "inactive")
		fmt.Fprintf(a.out, "%-8s %-8s %-32s %s", c.Name, active, c.Flags(), strings.Join(caps, ","))
		if sp, ok := c.Backend().(backend.StatsProvider); ok {
			s := sp.Stats()
			fmt.Fprintf(a.out, " processed=%d dropped=%d", s.Processed, s.Dropped)
		}
		fmt.Fprintln(a.out)
		return true
	})
	return nil
}

// BannerCmd prints a message through the consoles active in one phase.
type BannerCmd struct {
	Phase   string `default:"boot" help:"Phase to switch to before printing (boot, runtime, crash)."`
	Message string `arg:"" optional:"" default:"nconsole ready" help:"Text to print."`
	Dump    bool   `help:"Dump the memory log afterwards."`
}

func (cmd *BannerCmd) Run(a *app) error {
	p, ok := core.ParsePhase(cmd.Phase)
	if !ok {
		return errors.Errorf("unknown phase %q", cmd.Phase)
	}
	a.reg.SwitchState(p)

	if _, err := fmt.Fprintln(console.NewPrinter(a.reg), cmd.Message); err != nil {
		return errors.Wrap(err, "print banner")
	}
	if err := a.reg.Flush(); err != nil && !errors.Is(err, core.ErrNoValidConsole) {
		return errors.Wrap(err, "flush")
	}

	if cmd.Dump && a.mem != nil {
		fmt.Fprintf(a.out, "--- memlog (%d bytes) ---\n%s", a.mem.Len(), a.mem.String())
	}
	return nil
}
