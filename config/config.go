// Package config loads settings for the pixmem tools from pixmem.yaml and
// PIXMEM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kpfaulkner/pixmem/imageformats"
	"github.com/kpfaulkner/pixmem/memory"
	"github.com/kpfaulkner/pixmem/options"
	"github.com/kpfaulkner/pixmem/util"
)

const (
	configFileName = "pixmem"
	configFileType = "yaml"
	envPrefix      = "PIXMEM"

	KeyAllocator    = "allocator"
	KeyRowAlignment = "row_alignment"
	KeyPoolMaxBytes = "pool_max_bytes"
	KeyLogLevel     = "log_level"
	KeyOutputFormat = "output_format"

	AllocatorAligned = "aligned"
	AllocatorPool    = "pool"
	AllocatorMmap    = "mmap"

	// AutoRowAlignment selects the alignment preferred by the CPU.
	AutoRowAlignment = -1
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Allocator    string
	RowAlignment int
	PoolMaxBytes int
	LogLevel     string
	OutputFormat string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAllocator, AllocatorAligned)
	v.SetDefault(KeyRowAlignment, 0)
	v.SetDefault(KeyPoolMaxBytes, 64<<20)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOutputFormat, "png")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads pixmem.yaml from the first of configDirs that has one. A
// missing file is not an error.
func Load(configDirs ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		log.Debugf("using config file %s", v.ConfigFileUsed())
	}
	return FromViper(v)
}

// LoadFile reads an explicit config file.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		Allocator:    strings.ToLower(v.GetString(KeyAllocator)),
		RowAlignment: v.GetInt(KeyRowAlignment),
		PoolMaxBytes: v.GetInt(KeyPoolMaxBytes),
		LogLevel:     v.GetString(KeyLogLevel),
		OutputFormat: strings.ToLower(v.GetString(KeyOutputFormat)),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Allocator {
	case AllocatorAligned, AllocatorPool, AllocatorMmap:
	default:
		return fmt.Errorf("unknown allocator %q: %w", c.Allocator, ErrInvalidConfig)
	}
	if c.RowAlignment != AutoRowAlignment && c.RowAlignment != 0 && !util.IsPowerOfTwo(c.RowAlignment) {
		return fmt.Errorf("row alignment %d is not a power of two: %w", c.RowAlignment, ErrInvalidConfig)
	}
	if c.PoolMaxBytes < 0 {
		return fmt.Errorf("negative pool limit %d: %w", c.PoolMaxBytes, ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	found := false
	for _, f := range imageformats.Formats {
		if f == c.OutputFormat {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("output format %q: %w", c.OutputFormat, ErrInvalidConfig)
	}
	return nil
}

func (c *Config) NewAllocator() memory.Allocator {
	switch c.Allocator {
	case AllocatorPool:
		return memory.NewPoolAllocator(c.PoolMaxBytes)
	case AllocatorMmap:
		return memory.NewMmapAllocator()
	default:
		return memory.DefaultAllocator()
	}
}

func (c *Config) EffectiveRowAlignment() int {
	if c.RowAlignment == AutoRowAlignment {
		return memory.PreferredRowAlignment()
	}
	return c.RowAlignment
}

// ImageOptions builds container options from the configuration. Each call
// creates a fresh allocator.
func (c *Config) ImageOptions() *options.ImageOptions {
	return options.NewImageOptions(&options.ImageOptions{
		RowAlignment: c.EffectiveRowAlignment(),
		Allocator:    c.NewAllocator(),
	})
}

// ConfigureLogging applies the configured level to the standard logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
