package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/goterm/assets"
	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/pkg/filesystem"
	"github.com/doeshing/goterm/internal/ports"
)

// FileLoader loads YAML configuration from ~/.goterm/config.yaml
// (overridable via GOTERM_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. On first run the embedded default
// config is written out so users have a file to edit.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Path reports where configuration is read from.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("GOTERM_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".goterm", "config.yaml")
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Prompt.Format == "" {
		cfg.Prompt.Format = "goterm:%s$ "
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = "file"
	}
	if cfg.History.RecallLimit == 0 {
		cfg.History.RecallLimit = 500
	}
	if cfg.Metrics.Provider == "" {
		cfg.Metrics.Provider = "auto"
	}
	if cfg.Metrics.TopCount == 0 {
		cfg.Metrics.TopCount = 10
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
