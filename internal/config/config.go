// internal/config/config.go
//
// Tool settings. A project can drop a .maudup.yaml next to its data to pin
// how the updater behaves there; a missing file just means defaults. The
// file is deliberately small: everything per-run is a CLI flag instead.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project settings file the updater looks for in the
// working directory.
const FileName = ".maudup.yaml"

// Overwrite policies for existing output files.
const (
	OverwritePrompt = "prompt" // ask interactively
	OverwriteForce  = "force"  // replace without asking
	OverwriteNever  = "never"  // fail instead of replacing
)

const (
	defaultBackupSuffix = ".bak"
	defaultLogDir       = ".maudup"
)

// Settings models .maudup.yaml.
type Settings struct {
	Version      int    `yaml:"version"`
	BackupSuffix string `yaml:"backup_suffix"`
	Overwrite    string `yaml:"overwrite"`
	LogDir       string `yaml:"log_dir"`
	Verbose      bool   `yaml:"verbose"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Version:      1,
		BackupSuffix: defaultBackupSuffix,
		Overwrite:    OverwritePrompt,
		LogDir:       defaultLogDir,
	}
}

// Load reads the settings file from dir, falling back to defaults when the
// file does not exist.
func Load(dir string) (Settings, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Settings{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize(dir)
	if err := parsed.validate(); err != nil {
		return Settings{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return parsed, nil
}

func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.BackupSuffix == "" {
		s.BackupSuffix = defaultBackupSuffix
	}
	if s.Overwrite == "" {
		s.Overwrite = OverwritePrompt
	}
	if s.LogDir == "" {
		s.LogDir = defaultLogDir
	}
}

func (s *Settings) normalize(base string) {
	s.BackupSuffix = strings.TrimSpace(s.BackupSuffix)
	s.Overwrite = strings.ToLower(strings.TrimSpace(s.Overwrite))
	s.LogDir = strings.TrimSpace(s.LogDir)
	if s.LogDir != "" && !filepath.IsAbs(s.LogDir) {
		s.LogDir = filepath.Clean(filepath.Join(base, s.LogDir))
	}
}

func (s Settings) validate() error {
	if s.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	switch s.Overwrite {
	case OverwritePrompt, OverwriteForce, OverwriteNever:
	default:
		return fmt.Errorf("overwrite must be %q, %q or %q", OverwritePrompt, OverwriteForce, OverwriteNever)
	}
	if s.BackupSuffix != "" && !strings.HasPrefix(s.BackupSuffix, ".") {
		return fmt.Errorf("backup_suffix must start with a dot")
	}
	return nil
}
