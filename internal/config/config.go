package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment override (POKEDEX_SERVER_PORT, ...).
const EnvPrefix = "POKEDEX"

// InjectedURLEnv is the runtime-injected backend URL, honored ahead of the
// build default.
const InjectedURLEnv = "POKEDEX_API_URL"

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
// A .env file in the working directory is loaded first when present.
func NewManager(cfgFile string) (*Manager, error) {
	_ = godotenv.Load()

	cm := &Manager{
		v:         viper.New(),
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults, environment and config file.
func (cm *Manager) initViper(cfgFile string) error {
	v := cm.v
	for _, entry := range DefaultEntries() {
		v.SetDefault(entry.Key, entry.Value)
	}

	// Environment variables with POKEDEX_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.base_url", InjectedURLEnv, EnvPrefix+"_API_BASE_URL"); err != nil {
		return fmt.Errorf("failed to bind %s: %w", InjectedURLEnv, err)
	}

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pokedex")
	}

	// Try to read config file (not required)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := cm.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// ConfigFile returns the file the configuration was read from, if any.
func (cm *Manager) ConfigFile() string {
	return cm.v.ConfigFileUsed()
}

// Value returns the raw value viper resolved for key.
func (cm *Manager) Value(key string) any {
	return cm.v.Get(key)
}

// Set overrides a key (flags bound at runtime) and reloads.
func (cm *Manager) Set(key string, value any) error {
	cm.v.Set(key, value)
	cfg, err := cm.load()
	if err != nil {
		return err
	}
	cm.mu.Lock()
	cm.config = cfg
	cm.mu.Unlock()
	return nil
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	cm.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	cm.v.WatchConfig()
}

// fileView is the on-disk shape, with durations spelled out.
type fileView struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		Timeout        string `yaml:"timeout"`
		CollectionPath string `yaml:"collection_path"`
	} `yaml:"api"`
	Server  ServerConfig `yaml:"server"`
	UI      UIConfig     `yaml:"ui"`
	Session struct {
		TTL        string `yaml:"ttl"`
		MaxEntries int    `yaml:"max_entries"`
	} `yaml:"session"`
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	var fv fileView
	fv.API.BaseURL = cfg.API.BaseURL
	fv.API.Timeout = cfg.API.Timeout.String()
	fv.API.CollectionPath = cfg.API.CollectionPath
	fv.Server = cfg.Server
	fv.UI = cfg.UI
	fv.Session.TTL = cfg.Session.TTL.String()
	fv.Session.MaxEntries = cfg.Session.MaxEntries

	data, err := yaml.Marshal(fv)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Pokedex configuration
# api.base_url empty means $POKEDEX_API_URL, then the build default (http://localhost:8080).
# ui changes are picked up by a running server without a restart.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
