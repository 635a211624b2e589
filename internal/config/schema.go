package config

import (
	"time"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/browse"
	"github.com/jackzampolin/pokedex/internal/pokemon"
	"github.com/jackzampolin/pokedex/internal/session"
)

// Config holds pokedex configuration.
// Stored at: {home}/config.yaml
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
}

// APIConfig describes the backend.
type APIConfig struct {
	// BaseURL is the injected backend URL; empty means the build default.
	BaseURL        string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CollectionPath string        `mapstructure:"collection_path" yaml:"collection_path"`
}

// ServerConfig configures the front-end HTTP server.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// UIConfig holds list page presentation settings.
type UIConfig struct {
	DefaultSize int   `mapstructure:"default_size" yaml:"default_size"`
	SizeOptions []int `mapstructure:"size_options" yaml:"size_options"`
}

// SessionConfig sizes the last-visited-page store.
type SessionConfig struct {
	TTL        time.Duration `mapstructure:"ttl" yaml:"ttl"`
	MaxEntries int           `mapstructure:"max_entries" yaml:"max_entries"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "",
			Timeout:        api.DefaultTimeout,
			CollectionPath: pokemon.DefaultCollection,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "3000",
		},
		UI: UIConfig{
			DefaultSize: browse.DefaultSize,
			SizeOptions: append([]int(nil), browse.SizeOptions...),
		},
		Session: SessionConfig{
			TTL:        session.DefaultTTL,
			MaxEntries: session.DefaultMaxEntries,
		},
	}
}

// ResolvedBaseURL returns the backend URL the gateway should use.
func (c *Config) ResolvedBaseURL() string {
	return api.ResolveBaseURL(c.API.BaseURL)
}

// Normalize fills zero values with defaults and drops invalid size options.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.API.Timeout <= 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.API.CollectionPath == "" {
		c.API.CollectionPath = d.API.CollectionPath
	}
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = d.Server.Port
	}
	opts := c.UI.SizeOptions[:0:0]
	for _, s := range c.UI.SizeOptions {
		if s > 0 {
			opts = append(opts, s)
		}
	}
	if len(opts) == 0 {
		opts = d.UI.SizeOptions
	}
	c.UI.SizeOptions = opts
	if c.UI.DefaultSize <= 0 {
		c.UI.DefaultSize = opts[0]
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = d.Session.TTL
	}
	if c.Session.MaxEntries <= 0 {
		c.Session.MaxEntries = d.Session.MaxEntries
	}
}
