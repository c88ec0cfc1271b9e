package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/LayerFit/internal/model"
)

// DefaultPreset is the preset written to a freshly created configuration.
const DefaultPreset = "mm"

// DefaultConfigPath returns the default configuration file path,
// ~/.layerfit/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".layerfit", "config.toml"), nil
}

// LoadOrCreateConfig reads the configuration at path. If the file does not
// exist, a default configuration using DefaultPreset is written there and returned.
func LoadOrCreateConfig(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.Preset = DefaultPreset
		if err := SaveConfig(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return LoadConfig(path)
}

// SavePieces writes a piece list to the specified JSON file.
// It creates parent directories if they do not exist.
func SavePieces(path string, pieces []model.Piece) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(pieces, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pieces: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPieces reads a piece list from a JSON file.
func LoadPieces(path string) ([]model.Piece, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pieces []model.Piece
	if err := json.Unmarshal(data, &pieces); err != nil {
		return nil, fmt.Errorf("failed to parse piece list: %w", err)
	}
	return pieces, nil
}

// MergePieces appends the imported pieces whose id is not taken yet and
// returns the merged list with the ids that were skipped.
func MergePieces(existing, imported []model.Piece) ([]model.Piece, []model.PieceID) {
	ids := make(map[model.PieceID]bool, len(existing))
	for _, p := range existing {
		ids[p.ID] = true
	}

	merged := append([]model.Piece(nil), existing...)
	var skipped []model.PieceID
	for _, p := range imported {
		if ids[p.ID] {
			skipped = append(skipped, p.ID)
			continue
		}
		merged = append(merged, p)
		ids[p.ID] = true
	}
	return merged, skipped
}
