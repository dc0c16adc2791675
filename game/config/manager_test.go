package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/snake-showdown/game/engine"
)

func createValidConfig(name string) *engine.MatchConfig {
	cfg := engine.DefaultMatchConfig()
	cfg.Name = name
	cfg.Description = "Test configuration"
	return cfg
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.MatchConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if mgr.GetDefault().Name != "Classic" {
		t.Errorf("Expected classic.json as default, got %q", mgr.GetDefault().Name)
	}

	if _, err := NewManager(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for a missing config directory")
	}
}

func TestNewManager_FallsBackWithoutClassic(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "arena", createValidConfig("Arena"))

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if mgr.GetDefault().Name != "Arena" {
		t.Errorf("Expected the only config as default, got %q", mgr.GetDefault().Name)
	}
}

func TestNewManager_BuiltinDefaultOnEmptyDir(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	def := mgr.GetDefault()
	if def == nil {
		t.Fatal("Expected a built-in default config")
	}
	if err := engine.ValidateMatchConfig(def); err != nil {
		t.Errorf("Built-in default must validate: %v", err)
	}
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))
	writeConfigFile(t, dir, "blitz", createValidConfig("Blitz"))

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := mgr.LoadConfig("blitz")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "Blitz" {
		t.Errorf("Expected Blitz, got %q", cfg.Name)
	}

	// With the extension works too.
	if _, err := mgr.LoadConfig("blitz.json"); err != nil {
		t.Errorf("LoadConfig with extension failed: %v", err)
	}

	if _, err := mgr.LoadConfig("nonexistent"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_LoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))

	bad := createValidConfig("Broken")
	bad.GridWidth = 2
	writeConfigFile(t, dir, "broken", bad)

	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.LoadConfig("broken"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := mgr.LoadConfig("garbage"); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestManager_LoadConfig_Caches(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	first, err := mgr.LoadConfig("classic")
	if err != nil {
		t.Fatal(err)
	}

	// Removing the file does not evict the cache.
	if err := os.Remove(filepath.Join(dir, "classic.json")); err != nil {
		t.Fatal(err)
	}
	second, err := mgr.LoadConfig("classic")
	if err != nil {
		t.Fatalf("Cached config should still load: %v", err)
	}
	if first != second {
		t.Error("Expected the cached pointer")
	}

	// RefreshCache drops it.
	if err := mgr.RefreshCache(); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.LoadConfig("classic"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound after refresh, got %v", err)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))
	writeConfigFile(t, dir, "blitz", createValidConfig("Blitz"))

	bad := createValidConfig("Broken")
	bad.MaxRounds = 0
	writeConfigFile(t, dir, "broken", bad)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a config"), 0644); err != nil {
		t.Fatal(err)
	}

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	configs, err := mgr.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 valid configs, got %d", len(configs))
	}
	for _, info := range configs {
		if info.ConfigID != "classic" && info.ConfigID != "blitz" {
			t.Errorf("Unexpected config listed: %q", info.ConfigID)
		}
		if info.GridWidth == 0 || info.MaxRounds == 0 {
			t.Errorf("Config %q missing details: %+v", info.ConfigID, info)
		}
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))
	writeConfigFile(t, dir, "blitz", createValidConfig("Blitz"))

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := mgr.SetDefault("blitz"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if mgr.GetDefault().Name != "Blitz" {
		t.Errorf("Expected Blitz as default, got %q", mgr.GetDefault().Name)
	}

	if err := mgr.SetDefault("nonexistent"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig("Classic"))

	mgr, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	custom := createValidConfig("Custom Arena")
	custom.GridWidth = 50
	if err := mgr.SaveConfig("custom", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := mgr.LoadConfig("custom")
	if err != nil {
		t.Fatalf("Saved config should load: %v", err)
	}
	if loaded.GridWidth != 50 {
		t.Errorf("Expected grid width 50, got %d", loaded.GridWidth)
	}

	invalid := createValidConfig("Nope")
	invalid.TicksPerSecond = 0
	if err := mgr.SaveConfig("nope", invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
