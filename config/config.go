package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/philipp01105/nconsole/core"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// NCONSOLE_STREAM_ASYNC=true.
const EnvPrefix = "NCONSOLE"

// Config holds the console set and the process settings around it.
type Config struct {
	Phase  string
	Debug  bool
	Log    LogConfig
	Stream StreamConfig
	Ring   RingConfig
	File   FileConfig
	Zap    ZapConfig
}

// LogConfig holds zap logger settings.
type LogConfig struct {
	Level       string
	Development bool
}

// StreamConfig holds settings for the stdin/stdout console.
type StreamConfig struct {
	Enabled    bool
	Scope      []string
	CRLF       bool `mapstructure:"crlf"`
	Early      bool
	Async      bool
	BufferSize int `mapstructure:"buffer_size"`
	Overflow   string
}

// RingConfig holds settings for the memory log console.
type RingConfig struct {
	Enabled bool
	Scope   []string
	Size    int
}

// FileConfig holds settings for the file console.
type FileConfig struct {
	Enabled    bool
	Scope      []string
	Path       string
	MaxSize    int64 `mapstructure:"max_size"`
	MaxBackups int   `mapstructure:"max_backups"`
}

// ZapConfig holds settings for the console that forwards lines to the logger.
type ZapConfig struct {
	Enabled bool
	Scope   []string
	Level   string
}

// Load reads configuration from path (or $NCONSOLE_CONFIG when path is
// empty) and the environment. A missing file is not an error when no path
// was given explicitly.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("phase", "boot")
	v.SetDefault("debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("stream.enabled", true)
	v.SetDefault("stream.scope", []string{"boot", "runtime", "crash"})
	v.SetDefault("stream.crlf", false)
	v.SetDefault("stream.early", true)
	v.SetDefault("stream.async", false)
	v.SetDefault("stream.buffer_size", 1024)
	v.SetDefault("stream.overflow", "DropNewest")
	v.SetDefault("ring.enabled", true)
	v.SetDefault("ring.scope", []string{"boot", "crash"})
	v.SetDefault("ring.size", 2048)
	v.SetDefault("file.enabled", false)
	v.SetDefault("file.scope", []string{"runtime", "crash"})
	v.SetDefault("file.path", "nconsole.log")
	v.SetDefault("file.max_size", 1<<20)
	v.SetDefault("file.max_backups", 3)
	v.SetDefault("zap.enabled", false)
	v.SetDefault("zap.scope", []string{"crash"})
	v.SetDefault("zap.level", "error")

	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("nconsole")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	return c, nil
}

// InitialPhase returns the phase the registry starts in.
func (c Config) InitialPhase() (core.Phase, error) {
	p, ok := core.ParsePhase(c.Phase)
	if !ok {
		return 0, errors.Errorf("unknown phase %q", c.Phase)
	}
	return p, nil
}

// Scope converts a list of phase names into scope flag bits. Entries may
// themselves be comma separated; blanks and duplicates are ignored.
func Scope(names []string) (core.Flags, error) {
	parts := lo.FlatMap(names, func(s string, _ int) []string {
		return strings.Split(s, ",")
	})
	parts = lo.Map(parts, func(s string, _ int) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
	parts = lo.Uniq(lo.Filter(parts, func(s string, _ int) bool {
		return s != ""
	}))

	f, ok := core.ParseScope(parts)
	if !ok {
		return 0, errors.Errorf("invalid scope %v", names)
	}
	return f, nil
}
