package fileconsole

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/philipp01105/nconsole/backend"
)

// backupTimeFormat sorts lexically in creation order.
const backupTimeFormat = "2006-01-02T15-04-05.000000000"

// Config holds configuration for a file console
type Config struct {
	// Filename is the path to the log file
	Filename string
	// BufferSize is the size of the write buffer in bytes (default: 4096)
	BufferSize int
	// MaxSize is the size in bytes at which the file is rotated (0 = no size rotation)
	MaxSize int64
	// RotateInterval is the interval for time-based rotation (0 = no interval rotation)
	RotateInterval time.Duration
	// MaxBackups is the maximum number of rotated files to retain (0 = keep all)
	MaxBackups int
}

// FileConsole appends console output to a file. Output is buffered until
// Flush, Close or rotation. Rotation only happens at line boundaries so a
// line is never split across files.
type FileConsole struct {
	mu             sync.Mutex
	filename       string
	file           *os.File
	bufWriter      *bufio.Writer
	maxSize        int64
	maxBackups     int
	rotateInterval time.Duration
	currentSize    int64
	lastRotateTime time.Time
	atLineStart    bool
	stats          *backend.Stats
	closed         bool
}

// New opens (or creates) cfg.Filename for appending.
func New(cfg Config) (*FileConsole, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 4096
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	file, err := openFile(cfg.Filename)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		return nil, multierr.Append(errors.Wrapf(err, "stat %s", cfg.Filename), file.Close())
	}

	return &FileConsole{
		filename:       cfg.Filename,
		file:           file,
		bufWriter:      bufio.NewWriterSize(file, cfg.BufferSize),
		maxSize:        cfg.MaxSize,
		maxBackups:     cfg.MaxBackups,
		rotateInterval: cfg.RotateInterval,
		currentSize:    info.Size(),
		lastRotateTime: time.Now(),
		atLineStart:    true,
		stats:          backend.NewStats(),
	}, nil
}

func openFile(name string) (*os.File, error) {
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	return file, nil
}

// PutChar appends ch to the file buffer.
func (f *FileConsole) PutChar(ch byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, os.ErrClosed
	}
	if f.atLineStart {
		if err := f.rotateIfNeeded(); err != nil {
			f.stats.IncrementFailed()
			return 0, err
		}
	}
	if err := f.bufWriter.WriteByte(ch); err != nil {
		f.stats.IncrementFailed()
		return 0, err
	}
	f.currentSize++
	f.atLineStart = ch == '\n'
	f.stats.IncrementProcessed()
	return int(ch), nil
}

// Flush writes buffered output to the file and syncs it to disk.
func (f *FileConsole) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	if err := f.bufWriter.Flush(); err != nil {
		return errors.Wrap(err, "flush")
	}
	return errors.Wrap(f.file.Sync(), "sync")
}

// rotateIfNeeded checks and performs rotation if needed
func (f *FileConsole) rotateIfNeeded() error {
	needRotate := f.maxSize > 0 && f.currentSize >= f.maxSize
	if f.rotateInterval > 0 && time.Since(f.lastRotateTime) >= f.rotateInterval {
		needRotate = true
	}
	if !needRotate {
		return nil
	}
	return f.rotate()
}

// rotate performs the actual file rotation
func (f *FileConsole) rotate() error {
	if err := f.bufWriter.Flush(); err != nil {
		return errors.Wrap(err, "flush before rotation")
	}
	if err := f.file.Close(); err != nil {
		return f.reopen(errors.Wrap(err, "close before rotation"))
	}

	rotatedName := f.filename + "." + time.Now().Format(backupTimeFormat)
	if err := os.Rename(f.filename, rotatedName); err != nil {
		// keep writing to the original file
		return f.reopen(errors.Wrap(err, "rotate"))
	}

	if f.maxBackups > 0 {
		f.cleanupOldBackups()
	}

	file, err := openFile(f.filename)
	if err != nil {
		return err
	}
	f.file = file
	f.bufWriter.Reset(file)
	f.currentSize = 0
	f.lastRotateTime = time.Now()
	return nil
}

// reopen replaces the current handle with a fresh one on the unrotated file
// after a failed rotation and returns cause. When opening fails too, the
// next rotation attempt retries.
func (f *FileConsole) reopen(cause error) error {
	file, err := openFile(f.filename)
	if err != nil {
		return multierr.Append(cause, err)
	}
	f.file = file
	f.bufWriter.Reset(file)
	return cause
}

// Backups returns the rotated files, oldest first
func (f *FileConsole) Backups() []string {
	matches, err := filepath.Glob(f.filename + ".*")
	if err != nil {
		return nil
	}
	prefix := filepath.Base(f.filename) + "."
	backups := matches[:0]
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), prefix) {
			backups = append(backups, m)
		}
	}
	sort.Strings(backups)
	return backups
}

// cleanupOldBackups removes the oldest rotated files beyond maxBackups
func (f *FileConsole) cleanupOldBackups() {
	backups := f.Backups()
	if len(backups) <= f.maxBackups {
		return
	}
	for _, name := range backups[:len(backups)-f.maxBackups] {
		if err := os.Remove(name); err != nil {
			return
		}
	}
}

// Stats returns a snapshot of the current statistics
func (f *FileConsole) Stats() backend.Snapshot {
	return f.stats.GetSnapshot()
}

// Close flushes, syncs and closes the file.
func (f *FileConsole) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	err := errors.Wrap(f.bufWriter.Flush(), "flush")
	if err == nil {
		err = errors.Wrap(f.file.Sync(), "sync")
	}
	return multierr.Append(err, f.file.Close())
}
