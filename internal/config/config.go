package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/texture"
)

const (
	DefaultResolution   = 512
	DefaultCacheSize    = 32
	DefaultStepMS       = 100
	DefaultAddr         = ":8080"
	DefaultFPS          = 10
	DefaultTextureRPS   = 2.0
	DefaultTextureBurst = 4
	DefaultLogLevel     = "info"

	// StartNow makes the clock start at the wall clock time.
	StartNow = "now"
)

type Config struct {
	ScaleFactor float64                   `yaml:"scale_factor"`
	Texture     TextureConfig             `yaml:"texture"`
	Clock       ClockConfig               `yaml:"clock"`
	Server      ServerConfig              `yaml:"server"`
	Log         LogConfig                 `yaml:"log"`
	Bodies      map[string]orbit.Elements `yaml:"bodies,omitempty"`
}

type TextureConfig struct {
	Resolution int    `yaml:"resolution"`
	Seed       uint64 `yaml:"seed"`
	CacheSize  int    `yaml:"cache_size"`
	Workers    int    `yaml:"workers"`
}

type ClockConfig struct {
	// Speed is in simulated hours per step.
	Speed   float64 `yaml:"speed"`
	StepMS  int     `yaml:"step_ms"`
	Start   string  `yaml:"start"`
	Playing bool    `yaml:"playing"`
}

type ServerConfig struct {
	Addr         string  `yaml:"addr"`
	FPS          int     `yaml:"fps"`
	TextureRPS   float64 `yaml:"texture_rps"`
	TextureBurst int     `yaml:"texture_burst"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		ScaleFactor: orbit.DefaultScaleFactor,
		Texture: TextureConfig{
			Resolution: DefaultResolution,
			CacheSize:  DefaultCacheSize,
		},
		Clock: ClockConfig{
			Speed:  24,
			StepMS: DefaultStepMS,
			Start:  StartNow,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			FPS:          DefaultFPS,
			TextureRPS:   DefaultTextureRPS,
			TextureBurst: DefaultTextureBurst,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads a yaml file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.ScaleFactor > 0) {
		return fmt.Errorf("%w: scale_factor must be positive", ErrInvalidConfig)
	}
	if c.Texture.Resolution < 1 || c.Texture.Resolution > texture.MaxResolution {
		return fmt.Errorf("%w: texture.resolution %d outside 1..%d", ErrInvalidConfig, c.Texture.Resolution, texture.MaxResolution)
	}
	if c.Texture.CacheSize < 0 || c.Texture.Workers < 0 {
		return fmt.Errorf("%w: texture.cache_size and texture.workers must not be negative", ErrInvalidConfig)
	}
	if !(c.Clock.Speed > 0) {
		return fmt.Errorf("%w: clock.speed must be positive", ErrInvalidConfig)
	}
	if c.Clock.StepMS <= 0 {
		return fmt.Errorf("%w: clock.step_ms must be positive", ErrInvalidConfig)
	}
	if _, err := c.StartTime(time.Now()); err != nil {
		return err
	}
	if c.Server.FPS <= 0 {
		return fmt.Errorf("%w: server.fps must be positive", ErrInvalidConfig)
	}
	if c.Server.TextureRPS < 0 || c.Server.TextureBurst < 0 {
		return fmt.Errorf("%w: texture rate limits must not be negative", ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	for id, el := range c.Bodies {
		if err := el.Validate(); err != nil {
			return fmt.Errorf("%w: bodies.%s: %w", ErrInvalidConfig, id, err)
		}
	}
	return nil
}

// Elements returns the builtin planets overlaid with the configured
// bodies.
func (c *Config) Elements() orbit.Table {
	return orbit.Planets().Merge(c.Bodies)
}

// StartTime resolves clock.start. An empty value or "now" yields now.
func (c *Config) StartTime(now time.Time) (time.Time, error) {
	s := strings.TrimSpace(c.Clock.Start)
	if s == "" || strings.EqualFold(s, StartNow) {
		return now.UTC(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: clock.start %q is neither %q nor RFC 3339", ErrInvalidConfig, s, StartNow)
}

func (c *Config) StepInterval() time.Duration {
	return time.Duration(c.Clock.StepMS) * time.Millisecond
}

func (c *Config) FrameInterval() time.Duration {
	if c.Server.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.Server.FPS)
}

func (c *Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return lvl, nil
}
