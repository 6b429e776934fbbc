package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/bianoble/folderchronicle/internal/config"
	"github.com/bianoble/folderchronicle/internal/logging"
)

// loadConfigHierarchical loads the system, user and project layers. When no
// layer exists the result carries an empty version 1 config.
func loadConfigHierarchical() (*config.HierarchicalResult, error) {
	hr, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath: configPath,
		NoInherit:   config.EnvNoInherit(),
	})
	if errors.Is(err, config.ErrNoConfig) {
		hr.Config = &config.Config{Version: 1}
		return hr, nil
	}
	if err != nil {
		return hr, fmt.Errorf("loading config: %w", err)
	}
	return hr, nil
}

// loadConfig returns the merged configuration.
func loadConfig() (*config.Config, error) {
	hr, err := loadConfigHierarchical()
	if err != nil {
		return nil, err
	}
	return hr.Config, nil
}

// newLogger builds the diagnostic logger. Flags win over the config file;
// --verbose lowers the default level to info.
func newLogger(cfg *config.Config, out io.Writer) (*slog.Logger, func() error, error) {
	level := logLevel
	if level == "" && cfg != nil {
		level = cfg.Log.Level
	}
	if level == "" && verbose {
		level = "info"
	}
	format := logFormat
	if format == "" && cfg != nil {
		format = cfg.Log.Format
	}
	file := ""
	if cfg != nil {
		file = cfg.Log.File
	}
	return logging.New(logging.Options{Level: level, Format: format, Output: out, File: file})
}

// expandHome replaces a leading "~" or "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor reports whether tables written to w may be colored.
func useColor(w io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}

func humanSize(bytes int64) string {
	if bytes < 0 {
		return "?"
	}
	return humanize.IBytes(uint64(bytes))
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
