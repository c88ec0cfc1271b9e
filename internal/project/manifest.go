package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/LayerFit/internal/model"
)

const manifestVersion = "1.0.0"

// Stage sources recorded in a manifest.
const (
	SourceComputed = "computed"
	SourceLoaded   = "loaded"
	SourceSkipped  = "skipped"
)

// StageRecord describes how one pipeline stage obtained its result.
type StageRecord struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	Count      int    `json:"count"`
	Path       string `json:"path,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// RunManifest summarises one pipeline run.
type RunManifest struct {
	Version   string             `json:"version"`
	RunID     string             `json:"run_id"`
	CreatedAt string             `json:"created_at"`
	Container model.Piece        `json:"container"`
	Pieces    int                `json:"pieces"`
	Settings  model.Settings     `json:"settings"`
	Estimate  model.AreaEstimate `json:"estimate"`
	Stages    []StageRecord      `json:"stages"`
}

// NewRunManifest starts a manifest with a fresh run id.
func NewRunManifest(inv *model.Inventory, settings model.Settings) RunManifest {
	return RunManifest{
		Version:   manifestVersion,
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Container: inv.Container,
		Pieces:    inv.Len(),
		Settings:  settings,
		Estimate:  model.CalculateAreaEstimate(inv),
	}
}

// Record appends a stage outcome.
func (m *RunManifest) Record(name, source string, count int, path string, elapsed time.Duration) {
	m.Stages = append(m.Stages, StageRecord{
		Name:       name,
		Source:     source,
		Count:      count,
		Path:       path,
		DurationMS: elapsed.Milliseconds(),
	})
}

// Stage returns the record of the named stage.
func (m RunManifest) Stage(name string) (StageRecord, bool) {
	for _, s := range m.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageRecord{}, false
}

// SaveManifest writes the manifest as indented JSON.
func SaveManifest(path string, m RunManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by SaveManifest.
func LoadManifest(path string) (RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunManifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return RunManifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Version == "" {
		return RunManifest{}, fmt.Errorf("invalid manifest: missing version field")
	}
	return m, nil
}
