package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the configuration reads,
// e.g. WODTIMER_TIMER_SAMPLE_INTERVAL
const EnvPrefix = "WODTIMER"

// MinDisplayRefresh is the fastest redraw rate accepted for the big clock
const MinDisplayRefresh = 10 * time.Millisecond

// ErrInvalidConfig is wrapped by every validation error
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting of the application
type Config struct {
	Timer   TimerConfig   `mapstructure:"timer"`
	Session SessionConfig `mapstructure:"session"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// TimerConfig controls how often timers are sampled and redrawn
type TimerConfig struct {
	SampleInterval time.Duration `mapstructure:"sample_interval"`
	DisplayRefresh time.Duration `mapstructure:"display_refresh"`
}

// SessionConfig controls how a workout moves between blocks
type SessionConfig struct {
	AutoAdvance bool `mapstructure:"auto_advance"`
}

// StorageConfig locates saved workouts and history
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig configures the rotating log file. An empty File logs to stderr.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// flag name -> viper key
var flagKeys = map[string]string{
	"sample-interval": "timer.sample_interval",
	"display-refresh": "timer.display_refresh",
	"auto-advance":    "session.auto_advance",
	"data-dir":        "storage.dir",
	"log-file":        "log.file",
	"log-max-size":    "log.max_size_mb",
	"log-max-backups": "log.max_backups",
	"log-max-age":     "log.max_age_days",
	"log-compress":    "log.compress",
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Timer: TimerConfig{
			SampleInterval: time.Second,
			DisplayRefresh: 50 * time.Millisecond,
		},
		Session: SessionConfig{AutoAdvance: true},
		Storage: StorageConfig{Dir: defaultDataDir()},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".wodtimer")
}

// DefaultConfigDir is searched for config.yaml when --config is not given
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return defaultDataDir()
	}
	return filepath.Join(dir, "wodtimer")
}

// RegisterFlags adds the configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "config file (default "+filepath.Join(DefaultConfigDir(), "config.yaml")+")")
	fs.Duration("sample-interval", d.Timer.SampleInterval, "how often a running timer publishes its state")
	fs.Duration("display-refresh", d.Timer.DisplayRefresh, "how often the big clock is redrawn")
	fs.Bool("auto-advance", d.Session.AutoAdvance, "start the next block as soon as one ends")
	fs.String("data-dir", d.Storage.Dir, "directory holding workouts and history")
	fs.String("log-file", d.Log.File, "log file (stderr when empty)")
	fs.Int("log-max-size", d.Log.MaxSizeMB, "log file size in MB before rotation")
	fs.Int("log-max-backups", d.Log.MaxBackups, "rotated log files to keep")
	fs.Int("log-max-age", d.Log.MaxAgeDays, "days to keep rotated log files")
	fs.Bool("log-compress", d.Log.Compress, "gzip rotated log files")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("timer.sample_interval", d.Timer.SampleInterval)
	v.SetDefault("timer.display_refresh", d.Timer.DisplayRefresh)
	v.SetDefault("session.auto_advance", d.Session.AutoAdvance)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)
}

// Load resolves the configuration from flags, WODTIMER_* environment variables,
// the config file and defaults, in that order of priority. fs may be nil.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	setDefaults(v)

	var configFile string
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings no component can run with
func (c Config) Validate() error {
	if c.Timer.SampleInterval <= 0 {
		return fmt.Errorf("%w: timer.sample_interval must be positive, got %v", ErrInvalidConfig, c.Timer.SampleInterval)
	}
	if c.Timer.DisplayRefresh < MinDisplayRefresh {
		return fmt.Errorf("%w: timer.display_refresh must be at least %v, got %v", ErrInvalidConfig, MinDisplayRefresh, c.Timer.DisplayRefresh)
	}
	if strings.TrimSpace(c.Storage.Dir) == "" {
		return fmt.Errorf("%w: storage.dir is required", ErrInvalidConfig)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation limits cannot be negative", ErrInvalidConfig)
	}
	return nil
}
