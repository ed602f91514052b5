// Package config loads the settings of the cco command from a TOML file.
package config

import (
	"errors"
	"fmt"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/b97tsk/cco"
)

// Config holds the settings of the cco command.
type Config struct {
	Depth     int           // runtime stack depth
	LogLevel  zapcore.Level // minimum level logged
	Tick      time.Duration // virtual time step of the demo clock
	Workers   int           // executors run concurrently by bench
	Producers int           // producers in the prodcons scenario
	Items     int           // items per producer, or values per generator
	Trace     string        // trace file written by run, if any
}

// file mirrors the TOML layout. TOML integers are 64-bit.
type file struct {
	Depth     *int64         `toml:"depth"`
	LogLevel  *string        `toml:"log_level"`
	Tick      *time.Duration `toml:"tick"`
	Workers   *int64         `toml:"workers"`
	Producers *int64         `toml:"producers"`
	Items     *int64         `toml:"items"`
	Trace     *string        `toml:"trace"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Depth:     cco.DefaultDepth,
		LogLevel:  zapcore.InfoLevel,
		Tick:      10 * time.Millisecond,
		Workers:   4,
		Producers: 2,
		Items:     3,
	}
}

// Load reads the named TOML file over the defaults.
// Keys the file does not set keep their default values; unknown keys are
// an error.
func Load(name string) (Config, error) {
	var f file
	md, err := toml.DecodeFile(name, &f)
	return build(md, err, &f)
}

// Decode parses TOML text over the defaults, like [Load].
func Decode(text string) (Config, error) {
	var f file
	md, err := toml.Decode(text, &f)
	return build(md, err, &f)
}

func build(md toml.MetaData, err error, f *file) (Config, error) {
	cfg := Default()
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return cfg, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	if err := cfg.apply(f); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) apply(f *file) error {
	ints := []struct {
		key string
		src *int64
		dst *int
	}{
		{"depth", f.Depth, &c.Depth},
		{"workers", f.Workers, &c.Workers},
		{"producers", f.Producers, &c.Producers},
		{"items", f.Items, &c.Items},
	}
	for _, v := range ints {
		if v.src == nil {
			continue
		}
		n, err := safecast.Conv[int](*v.src)
		if err != nil {
			return fmt.Errorf("config: %s: %w", v.key, err)
		}
		*v.dst = n
	}
	if f.LogLevel != nil {
		level, err := zapcore.ParseLevel(*f.LogLevel)
		if err != nil {
			return fmt.Errorf("config: log_level: %w", err)
		}
		c.LogLevel = level
	}
	if f.Tick != nil {
		c.Tick = *f.Tick
	}
	if f.Trace != nil {
		c.Trace = *f.Trace
	}
	return nil
}

// Validate reports every setting that is out of range.
func (c Config) Validate() error {
	var errs []error
	if c.Depth < 1 {
		errs = append(errs, fmt.Errorf("config: depth must be at least 1, got %d", c.Depth))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("config: workers must be at least 1, got %d", c.Workers))
	}
	if c.Producers < 0 || c.Items < 0 {
		errs = append(errs, errors.New("config: producers and items must not be negative"))
	}
	if c.Tick <= 0 {
		errs = append(errs, fmt.Errorf("config: tick must be positive, got %v", c.Tick))
	}
	return errors.Join(errs...)
}
