package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/relay-go/internal/domain"
	"github.com/doeshing/relay-go/internal/pkg/filesystem"
	"github.com/doeshing/relay-go/internal/ports"
)

// FileLoader loads the YAML pipeline from ~/.relay/pipeline.yaml
// (overridable via RELAY_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.PipelineConfig, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.PipelineConfig{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultPipeline()
			if err := writeDefault(path, cfg); err != nil {
				return domain.PipelineConfig{}, err
			}
			return cfg, nil
		}
		return domain.PipelineConfig{}, err
	}

	var cfg domain.PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.PipelineConfig{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path reports the config file location the loader resolves to.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("RELAY_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.RelayDir(), "pipeline.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.PipelineConfig) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultPipeline is the configuration written on first run: a couple of
// maintenance actions behind an access filter, with caching for the
// expensive one.
func DefaultPipeline() domain.PipelineConfig {
	return domain.PipelineConfig{
		ConfigFormatVersion: "1",
		Scope:               "",
		Actions: []domain.ActionDefinition{
			{ID: "health/check", Command: "uptime"},
			{ID: "reports/disk-usage", Command: "df -h"},
			{ID: "admin/prune-tmp", Command: "find /tmp -maxdepth 1 -mtime +7 -print"},
		},
		Filters: []domain.FilterDefinition{
			{Name: "guard", Type: "access", Only: []string{"admin/*"}},
			{Name: "results", Type: "cache", Only: []string{"reports/*"}},
			{Name: "stopwatch", Type: "timing", Except: []string{"health/check"}},
			{Name: "trail", Type: "audit"},
		},
		History: domain.HistorySettings{
			Enabled:       true,
			RetentionDays: domain.DefaultHistoryRetainDays,
		},
		Cache: domain.CacheSettings{
			MaxEntries: 100,
			TTLSeconds: 3600,
		},
		Execution: domain.ExecutionSettings{
			Shell:          "auto",
			TimeoutSeconds: 30,
		},
	}
}

func hydrateDefaults(cfg domain.PipelineConfig) domain.PipelineConfig {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Execution.TimeoutSeconds == 0 {
		cfg.Execution.TimeoutSeconds = 30
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 100
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 3600
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
