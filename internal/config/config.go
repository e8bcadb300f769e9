// Package config provides the global configuration directory and the
// optional per-repo defaults file for notekv.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the per-repo defaults file, looked up at the repository root.
const FileName = ".notekv.yml"

// Dir returns the notekv configuration directory.
//
// Resolution:
//   - $NOTEKV_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/notekv if set (respects XDG on any platform)
//   - %AppData%/notekv on Windows
//   - ~/.config/notekv on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("NOTEKV_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "notekv")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "notekv")
		}
	}

	// macOS and Linux: ~/.config/notekv
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "notekv")
}

// File holds per-repo defaults. Flags and action inputs take precedence
// over these values.
type File struct {
	Ref    string `yaml:"ref,omitempty"`
	Remote string `yaml:"remote,omitempty"`
}

// Load reads the defaults file from the given repository root.
// A missing file is not an error; a zero-value File is returned.
func Load(root string) (*File, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &f, nil
}
