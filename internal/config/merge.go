package config

import (
	"errors"
	"fmt"
	"io/fs"
)

// Merge combines two configs where overlay takes precedence over base.
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - strings: a non-empty overlay value wins
//   - booleans: a set overlay pointer wins, so false can override true
//   - log: merged field by field with the same rules
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.BaseDir = mergeString(base.BaseDir, overlay.BaseDir)
	result.Timezone = mergeString(base.Timezone, overlay.Timezone)
	result.IncludeSubdirs = mergeBool(base.IncludeSubdirs, overlay.IncludeSubdirs)
	result.UseCreationTime = mergeBool(base.UseCreationTime, overlay.UseCreationTime)
	result.CopyNoBackup = mergeBool(base.CopyNoBackup, overlay.CopyNoBackup)

	result.Log = LogConfig{
		Level:  mergeString(base.Log.Level, overlay.Log.Level),
		Format: mergeString(base.Log.Format, overlay.Log.Format),
		File:   mergeString(base.Log.File, overlay.Log.File),
	}

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0 // neither declares; validation will catch this
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d; all config layers must agree on version", base, overlay)
	}
	return nil
}

func mergeString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func mergeBool(base, overlay *bool) *bool {
	if overlay != nil {
		v := *overlay
		return &v
	}
	if base != nil {
		v := *base
		return &v
	}
	return nil
}

// ErrNoConfig is returned by LoadHierarchical when no layer exists.
var ErrNoConfig = errors.New("no configuration file found")

// HierarchicalOptions controls LoadHierarchical.
type HierarchicalOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit skips the system and user layers.
	NoInherit bool
}

// HierarchicalResult is the merged config plus per-layer status.
type HierarchicalResult struct {
	Config *Config
	Layers []ConfigLayerInfo
}

// LoadHierarchical loads every existing layer, merges them in precedence
// order and validates the result. Missing layers are skipped; a layer that
// exists but cannot be parsed is an error.
func LoadHierarchical(opts HierarchicalOptions) (*HierarchicalResult, error) {
	var layers []ConfigLayerInfo
	if opts.NoInherit {
		if opts.ProjectPath != "" {
			layers = []ConfigLayerInfo{{Path: opts.ProjectPath, Level: LevelProject}}
		}
	} else {
		layers = DiscoverPaths(DiscoverOptions{
			ProjectPath:      opts.ProjectPath,
			SystemConfigPath: opts.SystemConfigPath,
			UserConfigPath:   opts.UserConfigPath,
		})
	}

	result := &HierarchicalResult{Layers: layers}
	var configs []*Config
	for i := range result.Layers {
		layer := &result.Layers[i]
		cfg, err := parse(layer.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			layer.Err = err
			return result, fmt.Errorf("%s config: %w", layer.Level, err)
		}
		layer.Loaded = true
		configs = append(configs, cfg)
	}

	if len(configs) == 0 {
		return result, ErrNoConfig
	}

	merged, err := MergeAll(configs)
	if err != nil {
		return result, err
	}
	if errs := Validate(merged); len(errs) > 0 {
		return result, &ValidationError{Errors: errs}
	}

	result.Config = merged
	return result, nil
}
