package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// ErrInvalidKey is returned for malformed config keys.
var ErrInvalidKey = errors.New("invalid config key")

// Entry is one configuration key with its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every known key with its default.
// These seed viper's defaults and back `pokedex config keys`.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		// Backend
		{
			Key:         "api.base_url",
			Value:       d.API.BaseURL,
			Description: "Backend URL; empty uses $" + InjectedURLEnv + " then the build default",
		},
		{
			Key:         "api.timeout",
			Value:       d.API.Timeout,
			Description: "Upper bound for each backend call",
		},
		{
			Key:         "api.collection_path",
			Value:       d.API.CollectionPath,
			Description: "Backend path of the collection",
		},

		// Front-end server
		{
			Key:         "server.host",
			Value:       d.Server.Host,
			Description: "Address the front end binds to",
		},
		{
			Key:         "server.port",
			Value:       d.Server.Port,
			Description: "Port the front end listens on",
		},

		// List page
		{
			Key:         "ui.default_size",
			Value:       d.UI.DefaultSize,
			Description: "Page size when the URL carries none",
		},
		{
			Key:         "ui.size_options",
			Value:       d.UI.SizeOptions,
			Description: "Page sizes offered by the size selector",
		},

		// Sessions
		{
			Key:         "session.ttl",
			Value:       d.Session.TTL,
			Description: "How long the last visited list page is remembered",
		},
		{
			Key:         "session.max_entries",
			Value:       d.Session.MaxEntries,
			Description: "Number of sessions remembered at once",
		},
	}
}

// GetDefault returns the default entry for a key.
// Returns nil if no default exists.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// ValidateKey checks that key is a dotted lowercase path like "ui.default_size".
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '_' && r != '.' {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// ResetToDefault resets a config key to its default value.
// Returns ErrNoDefault if no default exists for the key.
func (cm *Manager) ResetToDefault(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	def := GetDefault(key)
	if def == nil {
		return fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return cm.Set(key, def.Value)
}
