// Package config persists model definitions and defaults to a JSON
// file. The Store is an explicitly constructed object handed to
// whatever needs model resolution; there is no package-level state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ModelConfig describes one named model entry.
type ModelConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model_name"`
	APIKey   string `json:"api_key,omitempty"`
}

// Config is the on-disk configuration document.
type Config struct {
	DefaultModel string                 `json:"default_model"`
	Models       map[string]ModelConfig `json:"models"`
	MaxTokens    int                    `json:"max_tokens"`
	MaxFiles     int                    `json:"max_files"`
}

// Store loads and saves the configuration file.
type Store struct {
	Path string
}

// DefaultPath returns ~/.devcli/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".devcli", "config.json"), nil
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Default returns the configuration new users start with.
func Default() *Config {
	return &Config{
		DefaultModel: "llama3.1",
		Models: map[string]ModelConfig{
			"llama3.1":    {Provider: "ollama", Model: "llama3.1"},
			"deepseek-r1": {Provider: "ollama", Model: "deepseek-r1:7b"},
		},
		MaxTokens: 2000,
		MaxFiles:  50,
	}
}

// Load reads the configuration, creating the default file on first
// run. A corrupt file falls back to defaults with a warning instead
// of failing.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := s.Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not parse %s (%v), using defaults\n", s.Path, err)
		return Default(), nil
	}

	if cfg.Models == nil {
		cfg.Models = make(map[string]ModelConfig)
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = Default().MaxTokens
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = Default().MaxFiles
	}
	return &cfg, nil
}

// Save writes the configuration, creating the parent directory if
// needed.
func (s *Store) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Resolve returns the model entry for name, or for the default model
// when name is empty.
func (c *Config) Resolve(name string) (ModelConfig, error) {
	if name == "" {
		name = c.DefaultModel
	}
	mc, ok := c.Models[name]
	if !ok {
		return ModelConfig{}, fmt.Errorf("model %q is not configured", name)
	}
	return mc, nil
}

// AddModel registers a model under a friendly name and saves.
func (s *Store) AddModel(name, providerName, modelName, apiKey string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg.Models[name] = ModelConfig{Provider: providerName, Model: modelName, APIKey: apiKey}
	return s.Save(cfg)
}

// SetDefaultModel updates the default model name and saves.
func (s *Store) SetDefaultModel(name string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := cfg.Models[name]; !ok {
		return fmt.Errorf("model %q is not configured", name)
	}
	cfg.DefaultModel = name
	return s.Save(cfg)
}
