package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LayerFit/internal/model"
)

func sampleConfig() Config {
	cfg := DefaultConfig()
	cfg.Container = Dimensions{Width: 10, Height: 4}
	cfg.Pieces = []model.Piece{
		model.NewPiece(1, 2, 2),
		model.NewPiece(2, 3, 1),
	}
	cfg.Settings.Workers = 3
	cfg.Settings.Distance = 10
	cfg.Settings.Stages.Fit = true
	cfg.Settings.Paths.Fitting = "out/fitting.txt"
	return cfg
}

func TestSaveAndLoadConfig(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := SaveConfig(path, sampleConfig()); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if cfg.Container.Width != 10 || cfg.Container.Height != 4 {
				t.Errorf("expected container 10x4, got %dx%d", cfg.Container.Width, cfg.Container.Height)
			}
			if len(cfg.Pieces) != 2 || cfg.Pieces[1] != model.NewPiece(2, 3, 1) {
				t.Errorf("unexpected pieces %v", cfg.Pieces)
			}
			if cfg.Settings.Workers != 3 || cfg.Settings.Distance != 10 {
				t.Errorf("unexpected settings %+v", cfg.Settings)
			}
			if !cfg.Settings.Stages.Fit || cfg.Settings.Stages.Match {
				t.Errorf("unexpected stages %+v", cfg.Settings.Stages)
			}
			if cfg.Settings.Paths.Fitting != "out/fitting.txt" {
				t.Errorf("expected fitting path, got %q", cfg.Settings.Paths.Fitting)
			}
		})
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	data := "preset = \"mm\"\n\n[settings]\ndistance = 2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	defaults := model.DefaultSettings()
	if cfg.Settings.MaxPieces != defaults.MaxPieces {
		t.Errorf("expected default max pieces %d, got %d", defaults.MaxPieces, cfg.Settings.MaxPieces)
	}
	if cfg.Settings.Distance != 2 {
		t.Errorf("expected distance 2, got %d", cfg.Settings.Distance)
	}

	inv, err := cfg.Inventory()
	if err != nil {
		t.Fatalf("Inventory failed: %v", err)
	}
	if inv.Len() != 18 {
		t.Errorf("expected 18 preset pieces, got %d", inv.Len())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	cfg := DefaultConfig()
	cfg.Preset = "unknown"
	if _, err := cfg.Inventory(); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
