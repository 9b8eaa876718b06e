// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/feedsmith/internal/application/settings"
	"gopkg.in/yaml.v3"
)

// Store manages persisted application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// Load loads the configuration from the specified path or default location.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(home, ".config", "feedsmith", "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := settings.Settings{}
	store := &Store{Settings: cfg, configPath: configPath}

	var options []kong.Option

	// Only add configuration loader if file exists
	if _, err := os.Stat(configPath); err == nil {
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}

	_, err = parser.Parse([]string{})
	if err != nil {
		return nil, err
	}

	store.Settings = cfg
	store.Settings.Sources = normalizeSources(store.Settings.Sources)
	if err := loadChannels(configPath, &store.Settings); err != nil {
		return nil, err
	}

	// Set default database path if empty.
	if store.Settings.DatabaseFile == "" {
		store.Settings.DatabaseFile = filepath.Join(defaultDataHome(), "feedsmith", "articles.db")
	}

	// Save defaults if new file
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return store, nil
}

func normalizeSources(sources []string) []string {
	if len(sources) == 0 {
		return sources
	}
	normalized := make([]string, 0, len(sources))
	for _, src := range sources {
		for _, item := range strings.Fields(src) {
			if item != "" {
				normalized = append(normalized, item)
			}
		}
	}
	return normalized
}

// loadChannels re-reads the channel list straight from the yaml file.
// kong resolves scalar flags but not the nested channel structs.
func loadChannels(path string, s *settings.Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var file struct {
		Channels []settings.Channel `yaml:"channels"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse channels: %w", err)
	}
	s.Channels = file.Channels
	return nil
}

func defaultDataHome() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome != "" {
		return dataHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil // Return nil resolver (no op)
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		// Try various naming conventions
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			// Check direct match
			if v, ok := values[name]; ok {
				return v, nil
			}

			// Check nested dot-notation
			parts := strings.Split(name, ".")
			if len(parts) > 1 {
				curr := values
				for i, part := range parts {
					if i == len(parts)-1 {
						if v, ok := curr[part]; ok {
							return v, nil
						}
					} else {
						if nextMap, ok := curr[part].(map[string]any); ok {
							curr = nextMap
						} else {
							break
						}
					}
				}
			}
		}
		return nil, nil
	}
	return f, nil
}

// List returns the currently configured source URLs.
func (s *Store) List() ([]string, error) {
	sources := make([]string, len(s.Settings.Sources))
	copy(sources, s.Settings.Sources)
	return sources, nil
}

// Add appends a new source URL and saves the configuration.
func (s *Store) Add(url string) error {
	s.Settings.Sources = append(s.Settings.Sources, url)
	return s.Save()
}

// Remove deletes a source by index and saves the configuration.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.Settings.Sources) {
		return fmt.Errorf("invalid source index: %d", index)
	}
	s.Settings.Sources = append(s.Settings.Sources[:index], s.Settings.Sources[index+1:]...)
	return s.Save()
}

// Channels returns the configured output channels.
func (s *Store) Channels() ([]settings.Channel, error) {
	channels := make([]settings.Channel, len(s.Settings.Channels))
	copy(channels, s.Settings.Channels)
	return channels, nil
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return yaml.NewEncoder(f).Encode(s.Settings)
}
