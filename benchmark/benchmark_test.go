package benchmark

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/philipp01105/nconsole/backend"
	"github.com/philipp01105/nconsole/backend/fileconsole"
	"github.com/philipp01105/nconsole/backend/ringconsole"
	"github.com/philipp01105/nconsole/backend/streamconsole"
	"github.com/philipp01105/nconsole/console"
	"github.com/philipp01105/nconsole/core"
)

var (
	sinkInt int
	sinkErr error
)

const line = "the quick brown fox jumps over the lazy dog\n"

func newRegistry(b *testing.B, phase core.Phase) *console.Registry {
	b.Helper()
	return console.NewRegistry(console.Config{Phase: phase})
}

func register(b *testing.B, reg *console.Registry, name string, be any, flags core.Flags) {
	b.Helper()
	if err := reg.Register(console.New(name, be, flags)); err != nil {
		b.Fatal(err)
	}
}

// Benchmark PutChar fan-out over a growing number of active consoles
func BenchmarkPutCharFanOut(b *testing.B) {
	for _, n := range []int{1, 4, 16, 64} {
		b.Run(fmt.Sprintf("consoles=%d", n), func(b *testing.B) {
			reg := newRegistry(b, core.PhaseRuntime)
			for i := 0; i < n; i++ {
				register(b, reg, fmt.Sprintf("noop%d", i), noopConsole{}, core.ScopeOf(core.PhaseAll))
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				sinkInt, sinkErr = reg.PutChar('x')
			}
		})
	}
}

// Benchmark the cost of skipping consoles that are out of scope
func BenchmarkPutCharInactive(b *testing.B) {
	reg := newRegistry(b, core.PhaseRuntime)
	for i := 0; i < 15; i++ {
		register(b, reg, fmt.Sprintf("boot%d", i), noopConsole{}, core.ScopeOf(core.PhaseBoot))
	}
	register(b, reg, "runtime", noopConsole{}, core.ScopeOf(core.PhaseRuntime))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		sinkInt, sinkErr = reg.PutChar('x')
	}
}

// Benchmark newline translation
func BenchmarkPutCharCRLF(b *testing.B) {
	reg := newRegistry(b, core.PhaseRuntime)
	register(b, reg, "noop", noopConsole{}, core.ScopeOf(core.PhaseAll)|core.FlagTranslateCRLF)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		sinkInt, sinkErr = reg.PutChar('\n')
	}
}

// Benchmark GetChar when the first reader has a character ready
func BenchmarkGetCharReady(b *testing.B) {
	reg := newRegistry(b, core.PhaseRuntime)
	register(b, reg, "idle", noopConsole{}, core.ScopeOf(core.PhaseAll))
	register(b, reg, "ready", readyConsole{ch: 'k'}, core.ScopeOf(core.PhaseAll))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		sinkInt, sinkErr = reg.GetChar()
	}
}

// Benchmark Printer throughput for one line
func BenchmarkPrinterLine(b *testing.B) {
	reg := newRegistry(b, core.PhaseRuntime)
	register(b, reg, "noop", noopConsole{}, core.ScopeOf(core.PhaseAll))
	p := console.NewPrinter(reg)

	b.SetBytes(int64(len(line)))
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		sinkInt, sinkErr = p.WriteString(line)
	}
}

// Benchmark the bundled backends behind a single registry
func BenchmarkBackends(b *testing.B) {
	b.Run("stream-sync", func(b *testing.B) {
		out := streamconsole.NewOutput(streamconsole.Config{Writer: io.Discard})
		defer out.Close()
		benchmarkBackend(b, out)
	})

	b.Run("stream-async", func(b *testing.B) {
		out := streamconsole.NewOutput(streamconsole.Config{
			Writer:         io.Discard,
			Async:          true,
			BufferSize:     4096,
			OverflowPolicy: backend.Block,
		})
		defer out.Close()
		benchmarkBackend(b, out)
	})

	b.Run("ring", func(b *testing.B) {
		benchmarkBackend(b, ringconsole.New(ringconsole.Config{Size: 4096}))
	})

	b.Run("file", func(b *testing.B) {
		f, err := fileconsole.New(fileconsole.Config{
			Filename: filepath.Join(b.TempDir(), "bench.log"),
		})
		if err != nil {
			b.Fatal(err)
		}
		defer f.Close()
		benchmarkBackend(b, f)
	})
}

func benchmarkBackend(b *testing.B, be any) {
	reg := newRegistry(b, core.PhaseRuntime)
	register(b, reg, "bench", be, core.ScopeOf(core.PhaseAll))
	p := console.NewPrinter(reg)

	b.SetBytes(int64(len(line)))
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		sinkInt, sinkErr = p.WriteString(line)
	}
	b.StopTimer()

	if err := reg.Flush(); err != nil && !errors.Is(err, core.ErrNoValidConsole) {
		b.Fatal(err)
	}
}
