package zapconsole

import (
	"errors"
	"sync"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nconsole/backend"
)

// Config holds configuration for a zap console
type Config struct {
	// Logger receives one entry per output line (required)
	Logger *zap.Logger
	// Name is attached to every entry as the "console" field
	Name string
	// Level of the emitted entries (default: InfoLevel)
	Level zapcore.Level
	// MaxLineLength forces a line out once it grows this long (default: 256)
	MaxLineLength int
}

// ZapConsole collects output characters into lines and logs each completed
// line as a structured entry. Carriage returns are dropped.
type ZapConsole struct {
	mu      sync.Mutex
	log     *zap.Logger
	level   zapcore.Level
	line    []byte
	maxLine int
	stats   *backend.Stats
}

// New creates a zap console
func New(cfg Config) *ZapConsole {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = 256
	}
	log := cfg.Logger
	if cfg.Name != "" {
		log = log.With(zap.String("console", cfg.Name))
	}
	return &ZapConsole{
		log:     log,
		level:   cfg.Level,
		line:    make([]byte, 0, cfg.MaxLineLength),
		maxLine: cfg.MaxLineLength,
		stats:   backend.NewStats(),
	}
}

// PutChar appends ch to the current line, emitting it on '\n'.
func (z *ZapConsole) PutChar(ch byte) (int, error) {
	z.mu.Lock()
	switch ch {
	case '\r':
	case '\n':
		z.emit()
	default:
		z.line = append(z.line, ch)
		if len(z.line) >= z.maxLine {
			z.emit()
		}
	}
	z.mu.Unlock()

	z.stats.IncrementProcessed()
	return int(ch), nil
}

// emit logs and clears the current line. Caller holds mu.
func (z *ZapConsole) emit() {
	if ce := z.log.Check(z.level, string(z.line)); ce != nil {
		ce.Write()
	}
	z.line = z.line[:0]
}

// Flush emits a partial line, if any, and syncs the logger. Sync failures
// from outputs that cannot be synced (terminals, pipes) are ignored.
func (z *ZapConsole) Flush() error {
	z.mu.Lock()
	if len(z.line) > 0 {
		z.emit()
	}
	z.mu.Unlock()
	return syncError(z.log.Sync())
}

// syncError drops EINVAL and ENOTTY from a logger Sync result.
func syncError(err error) error {
	var out error
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, syscall.EINVAL) || errors.Is(e, syscall.ENOTTY) {
			continue
		}
		out = multierr.Append(out, e)
	}
	return out
}

// Stats returns a snapshot of the current statistics
func (z *ZapConsole) Stats() backend.Snapshot {
	return z.stats.GetSnapshot()
}
