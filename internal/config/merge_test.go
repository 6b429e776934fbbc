package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

func TestMergeNilInputs(t *testing.T) {
	cfg := &Config{Version: 1}
	if got, _ := Merge(nil, cfg); got != cfg {
		t.Error("Merge(nil, cfg) should return overlay")
	}
	if got, _ := Merge(cfg, nil); got != cfg {
		t.Error("Merge(cfg, nil) should return base")
	}
}

func TestMergeScalarsOverlayWins(t *testing.T) {
	base := &Config{
		Version:  1,
		BaseDir:  "/base",
		Timezone: "UTC",
		Log:      LogConfig{Level: "warn", Format: "console", File: "/var/log/fc.log"},
	}
	overlay := &Config{
		BaseDir: "/overlay",
		Log:     LogConfig{Level: "debug"},
	}

	merged, err := Merge(base, overlay)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Version != 1 {
		t.Errorf("version = %d, want 1", merged.Version)
	}
	if merged.BaseDir != "/overlay" {
		t.Errorf("base_dir = %q, want /overlay", merged.BaseDir)
	}
	if merged.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC (inherited)", merged.Timezone)
	}
	if merged.Log.Level != "debug" || merged.Log.Format != "console" || merged.Log.File != "/var/log/fc.log" {
		t.Errorf("log = %+v", merged.Log)
	}
}

func TestMergeBoolFalseOverridesTrue(t *testing.T) {
	base := &Config{Version: 1, IncludeSubdirs: boolPtr(true), CopyNoBackup: boolPtr(true)}
	overlay := &Config{IncludeSubdirs: boolPtr(false), UseCreationTime: boolPtr(true)}

	merged, err := Merge(base, overlay)
	if err != nil {
		t.Fatal(err)
	}
	if merged.IncludeSubdirs == nil || *merged.IncludeSubdirs {
		t.Error("include_subdirs should be overridden to false")
	}
	if !Bool(merged.UseCreationTime) {
		t.Error("use_creation_time should come from overlay")
	}
	if !Bool(merged.CopyNoBackup) {
		t.Error("copy_no_backup should be inherited from base")
	}

	*overlay.IncludeSubdirs = true
	if *merged.IncludeSubdirs {
		t.Error("merged config should not alias overlay pointers")
	}
}

func TestMergeVersionMismatch(t *testing.T) {
	_, err := Merge(&Config{Version: 1}, &Config{Version: 2})
	if err == nil || !strings.Contains(err.Error(), "version mismatch") {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestMergeAll(t *testing.T) {
	merged, err := MergeAll([]*Config{
		{Version: 1, BaseDir: "/a"},
		{BaseDir: "/b"},
		{Timezone: "UTC"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if merged.BaseDir != "/b" || merged.Timezone != "UTC" || merged.Version != 1 {
		t.Errorf("merged = %+v", merged)
	}
}

func TestMergeAllEmpty(t *testing.T) {
	_, err := MergeAll(nil)
	if err == nil {
		t.Fatal("expected error for empty configs")
	}
}

func TestLoadHierarchicalNoInherit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folderchronicle.yaml")
	if err := os.WriteFile(path, []byte(exampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath: path,
		NoInherit:   true,
	})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}

	if result.Config.Version != 1 {
		t.Errorf("version = %d, want 1", result.Config.Version)
	}
	if len(result.Layers) != 1 {
		t.Errorf("expected 1 layer with NoInherit, got %d", len(result.Layers))
	}
	if result.Layers[0].Level != LevelProject {
		t.Errorf("layer.Level = %q, want %q", result.Layers[0].Level, LevelProject)
	}
}

func TestLoadHierarchicalMergesLayers(t *testing.T) {
	dir := t.TempDir()

	sysPath := filepath.Join(dir, "system.toml")
	sysConfig := `version = 1
include_subdirs = true
timezone = "UTC"
`
	if err := os.WriteFile(sysPath, []byte(sysConfig), 0644); err != nil {
		t.Fatal(err)
	}

	projPath := filepath.Join(dir, "folderchronicle.yaml")
	projConfig := `version: 1
base_dir: ./photos
include_subdirs: false
`
	if err := os.WriteFile(projPath, []byte(projConfig), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "nonexistent", "folderchronicle.yaml"),
	})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}

	if result.Config.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC from system layer", result.Config.Timezone)
	}
	if result.Config.BaseDir != "./photos" {
		t.Errorf("base_dir = %q", result.Config.BaseDir)
	}
	if result.Config.IncludeSubdirs == nil || *result.Config.IncludeSubdirs {
		t.Error("project layer should switch include_subdirs off")
	}

	loadedCount := 0
	for _, l := range result.Layers {
		if l.Loaded {
			loadedCount++
		}
	}
	if loadedCount != 2 {
		t.Errorf("expected 2 loaded layers, got %d", loadedCount)
	}
}

func TestLoadHierarchicalNoLayers(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      filepath.Join(dir, "folderchronicle.yaml"),
		SystemConfigPath: filepath.Join(dir, "system.yaml"),
		UserConfigPath:   filepath.Join(dir, "user.yaml"),
	})
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadHierarchicalVersionMismatch(t *testing.T) {
	dir := t.TempDir()

	sysPath := filepath.Join(dir, "system.yaml")
	if err := os.WriteFile(sysPath, []byte("version: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	projPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projPath, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "nonexistent.yaml"),
	})
	if err == nil {
		t.Fatal("expected version mismatch error")
	}
	if !strings.Contains(err.Error(), "version mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadHierarchicalParseError(t *testing.T) {
	dir := t.TempDir()

	sysPath := filepath.Join(dir, "system.yaml")
	if err := os.WriteFile(sysPath, []byte("invalid: [yaml: broken"), 0644); err != nil {
		t.Fatal(err)
	}

	projPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projPath, []byte(exampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "nonexistent.yaml"),
	})
	if err == nil {
		t.Fatal("expected parse error for invalid system config")
	}
	if result == nil || result.Layers[0].Err == nil {
		t.Error("system layer should record its error")
	}
}

func TestLoadHierarchicalValidatesMerged(t *testing.T) {
	dir := t.TempDir()
	projPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projPath, []byte("version: 1\ntimezone: Not/AZone\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadHierarchical(HierarchicalOptions{ProjectPath: projPath, NoInherit: true})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}
