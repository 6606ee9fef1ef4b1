package config

import (
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // "dev" enables ./.photocanvasrc
	OverridePath string // set at build time when packaging
}

// NewLoader creates a Loader.
func NewLoader(version, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the first configuration file found, or returns defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// GetConfigPath returns the configuration file in use, or "" when none
// exists.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultSavePath is where "config save" writes.
func (l *Loader) DefaultSavePath() string {
	if p := l.GetConfigPath(); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "photocanvas", "config.rc")
}

func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".photocanvasrc"))
		}
	}
	home, _ := os.UserHomeDir()
	return append(paths,
		filepath.Join(home, ".config", "photocanvas", "config.rc"),
		filepath.Join(home, ".config", "photocanvas", "photocanvas.rc"),
	)
}
