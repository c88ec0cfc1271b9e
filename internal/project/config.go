package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/LayerFit/internal/model"
)

// Dimensions is the container size of a configuration file.
type Dimensions struct {
	Width  uint32 `json:"width" toml:"width"`
	Height uint32 `json:"height" toml:"height"`
}

// Config is the content of a configuration file: the inventory (either a
// built-in preset or an explicit container and piece list) and the search
// settings.
type Config struct {
	Preset    string         `json:"preset,omitempty" toml:"preset,omitempty"`
	Container Dimensions     `json:"container" toml:"container"`
	Pieces    []model.Piece  `json:"pieces" toml:"pieces"`
	Settings  model.Settings `json:"settings" toml:"settings"`
}

func DefaultConfig() Config {
	return Config{Settings: model.DefaultSettings()}
}

// Inventory builds the configured inventory. Explicit pieces take precedence
// over the preset.
func (c Config) Inventory() (*model.Inventory, error) {
	if len(c.Pieces) == 0 && c.Preset != "" {
		p, err := model.GetPreset(c.Preset)
		if err != nil {
			return nil, err
		}
		return p.Inventory()
	}
	return model.NewInventory(model.NewContainer(c.Container.Width, c.Container.Height), c.Pieces)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// SaveConfig writes the configuration as TOML when the path ends in .toml
// and as JSON otherwise. Missing parent directories are created.
func SaveConfig(path string, cfg Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadConfig reads a JSON or TOML configuration. Settings absent from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
