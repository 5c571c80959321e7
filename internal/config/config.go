// Package config loads server and console settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

type WebSocket struct {
	ReadBufferSize  int `yaml:"readBufferSize"`
	WriteBufferSize int `yaml:"writeBufferSize"`
}

type Config struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allowOrigins"`
	// StartingSide is "white" or "black".
	StartingSide string `yaml:"startingSide"`
	// Layout holds board rows, top rank first, one glyph per square
	// (uppercase White, lowercase Black, '-' or '.' empty). Empty means the
	// standard position.
	Layout    []string  `yaml:"layout"`
	WebSocket WebSocket `yaml:"websocket"`
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: []string{"http://localhost:5173"},
		StartingSide: "white",
		WebSocket: WebSocket{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	}
	if _, ok := chess.ParseSide(c.StartingSide); !ok {
		return fmt.Errorf("%w: unknown starting side %q", ErrInvalidConfig, c.StartingSide)
	}
	if len(c.Layout) > 0 {
		if _, err := chess.LayoutFromRows(c.Layout); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.WebSocket.ReadBufferSize < 0 || c.WebSocket.WriteBufferSize < 0 {
		return fmt.Errorf("%w: negative websocket buffer size", ErrInvalidConfig)
	}
	return nil
}

// Setup converts the game settings to a session setup.
func (c Config) Setup() (model.Setup, error) {
	side, ok := chess.ParseSide(c.StartingSide)
	if !ok {
		return model.Setup{}, fmt.Errorf("%w: unknown starting side %q", ErrInvalidConfig, c.StartingSide)
	}
	return model.Setup{StartingSide: side, Layout: c.Layout}, nil
}
