package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/livp123/edjournal/internal/alerts"
	"github.com/livp123/edjournal/internal/utils/fileutil"
	"github.com/livp123/edjournal/internal/utils/logger"
	jerrors "github.com/livp123/edjournal/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
// Config 是磁盘上的配置结构。
type Config struct {
	Journal JournalConfig        `yaml:"journal"`
	Logging logger.LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig        `yaml:"metrics"`
	Alerts  []alerts.RuleConfig  `yaml:"alerts,omitempty"`
}

// JournalConfig locates the journal directory and tunes the reader.
// JournalConfig 定位日志目录并调整读取器参数。
type JournalConfig struct {
	Directory    string `yaml:"directory"`
	PollInterval string `yaml:"poll_interval"`
	StopTimeout  string `yaml:"stop_timeout"`
}

// MetricsConfig controls the Prometheus endpoint.
// MetricsConfig 控制 Prometheus 指标端点。
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns a configuration with every default applied.
// Default 返回应用了所有默认值的配置。
func Default() *Config {
	logging := logger.DefaultLoggingConfig()
	logging.Path = DefaultLogPath
	return &Config{
		Journal: JournalConfig{
			PollInterval: DefaultPollInterval.String(),
			StopTimeout:  DefaultStopTimeout.String(),
		},
		Logging: logging,
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    DefaultMetricsAddr,
		},
	}
}

// Load reads path over the defaults and validates the result.
// A missing file yields ErrConfigNotFound.
// Load 在默认值之上读取配置文件并校验。文件不存在时返回 ErrConfigNotFound。
func Load(path string) (*Config, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath) // #nosec G304 // path comes from flag or env
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", jerrors.ErrConfigNotFound, safePath)
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", jerrors.ErrConfigInvalid, safePath, err)
	}

	// Validate configuration / 验证配置
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default when the file does not exist.
// LoadOrDefault 与 Load 相同，但文件不存在时返回默认配置。
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, jerrors.ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes cfg to path atomically. When path already holds YAML, the new
// values are merged into it so comments and unknown keys survive.
// Save 原子地写入配置。若文件已存在，则合并新值以保留注释。
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var newNode yaml.Node
	if err := yaml.Unmarshal(data, &newNode); err != nil {
		return err
	}

	safePath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(safePath), 0755); err != nil {
		return err
	}

	fileData, readErr := os.ReadFile(safePath) // #nosec G304 // path comes from flag or env
	if readErr == nil {
		var fileNode yaml.Node
		if err := yaml.Unmarshal(fileData, &fileNode); err == nil && fileNode.Kind == yaml.DocumentNode {
			MergeYamlNodes(&fileNode, &newNode)

			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(&fileNode); err != nil {
				return err
			}
			return fileutil.AtomicWriteFile(safePath, buf.Bytes(), 0600)
		}
	}

	// Fallback if file doesn't exist or is malformed: just write the new config
	return fileutil.AtomicWriteFile(safePath, data, 0600)
}

// MergeYamlNodes updates target (existing file) with source (new config),
// keeping target's comments and key order. Keys only present in source are
// appended.
// MergeYamlNodes 用新配置更新现有文件节点，尽量保留注释和键顺序。
func MergeYamlNodes(target, source *yaml.Node) {
	if target.Kind == yaml.DocumentNode {
		if source.Kind == yaml.DocumentNode && len(target.Content) > 0 && len(source.Content) > 0 {
			MergeYamlNodes(target.Content[0], source.Content[0])
		}
		return
	}

	if target.Kind != yaml.MappingNode || source.Kind != yaml.MappingNode {
		if source.HeadComment == "" {
			source.HeadComment = target.HeadComment
		}
		if source.LineComment == "" {
			source.LineComment = target.LineComment
		}
		if source.FootComment == "" {
			source.FootComment = target.FootComment
		}
		*target = *source
		return
	}

	sourceIdx := make(map[string]int, len(source.Content)/2)
	for i := 0; i+1 < len(source.Content); i += 2 {
		sourceIdx[source.Content[i].Value] = i
	}

	merged := make([]*yaml.Node, 0, len(target.Content)+len(source.Content))
	seen := make(map[string]bool, len(sourceIdx))
	for i := 0; i+1 < len(target.Content); i += 2 {
		key, val := target.Content[i], target.Content[i+1]
		if j, ok := sourceIdx[key.Value]; ok {
			MergeYamlNodes(val, source.Content[j+1])
			seen[key.Value] = true
		}
		merged = append(merged, key, val)
	}
	for i := 0; i+1 < len(source.Content); i += 2 {
		if !seen[source.Content[i].Value] {
			merged = append(merged, source.Content[i], source.Content[i+1])
		}
	}
	target.Content = merged
}
