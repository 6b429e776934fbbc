package config

// Config represents a folderchronicle.yaml (or .toml) configuration file.
// Booleans are pointers so that a higher layer can switch an option off.
type Config struct {
	Version         int       `yaml:"version" toml:"version"`
	BaseDir         string    `yaml:"base_dir,omitempty" toml:"base_dir,omitempty"`
	IncludeSubdirs  *bool     `yaml:"include_subdirs,omitempty" toml:"include_subdirs,omitempty"`
	UseCreationTime *bool     `yaml:"use_creation_time,omitempty" toml:"use_creation_time,omitempty"`
	CopyNoBackup    *bool     `yaml:"copy_no_backup,omitempty" toml:"copy_no_backup,omitempty"`
	Timezone        string    `yaml:"timezone,omitempty" toml:"timezone,omitempty"`
	Log             LogConfig `yaml:"log,omitempty" toml:"log,omitempty"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" toml:"level,omitempty"`   // debug, info, warn, error
	Format string `yaml:"format,omitempty" toml:"format,omitempty"` // console, json
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// Bool dereferences an optional flag, treating nil as false.
func Bool(b *bool) bool {
	return b != nil && *b
}
