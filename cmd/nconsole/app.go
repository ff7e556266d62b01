package main

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nconsole/backend"
	"github.com/philipp01105/nconsole/backend/fileconsole"
	"github.com/philipp01105/nconsole/backend/ringconsole"
	"github.com/philipp01105/nconsole/backend/streamconsole"
	"github.com/philipp01105/nconsole/backend/zapconsole"
	"github.com/philipp01105/nconsole/config"
	"github.com/philipp01105/nconsole/console"
	"github.com/philipp01105/nconsole/core"
)

// app is the assembled console set shared by all commands.
type app struct {
	reg *console.Registry
	log *zap.Logger
	mem *ringconsole.RingConsole // nil when the memory log is disabled
	out io.Writer
}

func newApp(cfgPath string, debug bool, in io.Reader, out io.Writer) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return assemble(cfg, in, out)
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// assemble builds the registry described by cfg. Consoles are registered in
// a fixed order: stream first, then memory log, file and zap, so dispatch
// visits them in reverse.
func assemble(cfg config.Config, in io.Reader, out io.Writer) (*app, error) {
	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	phase, err := cfg.InitialPhase()
	if err != nil {
		return nil, err
	}

	a := &app{
		reg: console.NewRegistry(console.Config{Logger: log, Debug: cfg.Debug, Phase: phase}),
		log: log,
		out: out,
	}

	if cfg.Stream.Enabled {
		flags, err := config.Scope(cfg.Stream.Scope)
		if err != nil {
			return nil, errors.Wrap(err, "stream")
		}
		if cfg.Stream.CRLF {
			flags |= core.FlagTranslateCRLF
		}
		if cfg.Stream.Early {
			flags |= core.FlagEarly
		}
		d := streamconsole.NewDuplex(streamconsole.Config{
			Writer:         out,
			Async:          cfg.Stream.Async,
			BufferSize:     cfg.Stream.BufferSize,
			OverflowPolicy: backend.ParseOverflowPolicy(cfg.Stream.Overflow),
		}, in)
		if err := a.register("stream", d, flags); err != nil {
			return nil, err
		}
	}

	if cfg.Ring.Enabled {
		flags, err := config.Scope(cfg.Ring.Scope)
		if err != nil {
			return nil, errors.Wrap(err, "ring")
		}
		a.mem = ringconsole.New(ringconsole.Config{Size: cfg.Ring.Size})
		if err := a.register("memlog", a.mem, flags); err != nil {
			return nil, err
		}
	}

	if cfg.File.Enabled {
		flags, err := config.Scope(cfg.File.Scope)
		if err != nil {
			return nil, errors.Wrap(err, "file")
		}
		f, err := fileconsole.New(fileconsole.Config{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSize,
			MaxBackups: cfg.File.MaxBackups,
		})
		if err != nil {
			return nil, errors.Wrap(err, "file console")
		}
		if err := a.register("file", f, flags); err != nil {
			return nil, err
		}
	}

	if cfg.Zap.Enabled {
		flags, err := config.Scope(cfg.Zap.Scope)
		if err != nil {
			return nil, errors.Wrap(err, "zap")
		}
		level, err := zapcore.ParseLevel(cfg.Zap.Level)
		if err != nil {
			return nil, errors.Wrap(err, "zap console level")
		}
		z := zapconsole.New(zapconsole.Config{Logger: log, Name: "zap", Level: level})
		if err := a.register("zap", z, flags); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *app) register(name string, b any, flags core.Flags) error {
	return errors.Wrapf(a.reg.Register(console.New(name, b, flags)), "register %s", name)
}

// Close closes every backend and syncs the logger.
func (a *app) Close() error {
	err := a.reg.Close()
	_ = a.log.Sync()
	return err
}
