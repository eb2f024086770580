package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	Env     string `yaml:"env" env:"MEMEPOP_ENV" env-default:"local"`
	Profile string `yaml:"profile" env:"MEMEPOP_PROFILE" env-default:"memepop"`
	Server  Server `yaml:"server"`
	Editor  Editor `yaml:"editor"`
	Render  Render `yaml:"render"`
}

type Server struct {
	Addr            string        `yaml:"addr" env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	StaticDir       string        `yaml:"static_dir" env:"SERVER_STATIC_DIR"`
}

type Editor struct {
	MaxSessions   int           `yaml:"max_sessions" env:"EDITOR_MAX_SESSIONS" env-default:"1000"`
	SessionTTL    time.Duration `yaml:"session_ttl" env:"EDITOR_SESSION_TTL" env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"EDITOR_SWEEP_INTERVAL" env-default:"1m"`
}

type Render struct {
	MaxUploadSize int64 `yaml:"max_upload_size" env:"RENDER_MAX_UPLOAD_SIZE" env-default:"33554432"`
	MaxWidth      int   `yaml:"max_width" env:"RENDER_MAX_WIDTH" env-default:"2048"`
	MaxPixels     int64 `yaml:"max_pixels" env:"RENDER_MAX_PIXELS" env-default:"40000000"`
	JPEGQuality   int   `yaml:"jpeg_quality" env:"RENDER_JPEG_QUALITY" env-default:"85"`
}

// MustLoad reads the YAML file at CONFIG_PATH (config/config.yaml by default)
// with environment overrides. A missing file falls back to env and defaults.
func MustLoad() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Profile == "":
		return errors.New("config: profile is required")
	case c.Editor.MaxSessions <= 0:
		return errors.New("config: editor.max_sessions must be positive")
	case c.Editor.SessionTTL <= 0:
		return errors.New("config: editor.session_ttl must be positive")
	case c.Editor.SweepInterval <= 0:
		return errors.New("config: editor.sweep_interval must be positive")
	case c.Render.MaxUploadSize <= 0:
		return errors.New("config: render.max_upload_size must be positive")
	case c.Render.MaxWidth <= 0:
		return errors.New("config: render.max_width must be positive")
	case c.Render.MaxPixels <= 0:
		return errors.New("config: render.max_pixels must be positive")
	case c.Render.JPEGQuality < 1 || c.Render.JPEGQuality > 100:
		return errors.New("config: render.jpeg_quality must be within 1..100")
	}
	return nil
}
