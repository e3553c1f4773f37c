package config

import (
	"os"

	"github.com/livp123/edjournal/internal/runtime"
)

/**
 * GetConfigPath resolves the configuration file path.
 * It prioritizes the CLI flag (runtime.ConfigPath), then $EDJOURNAL_CONFIG,
 * then the default.
 * GetConfigPath 解析配置文件路径。
 * 优先使用 CLI 标志 (runtime.ConfigPath)，其次是环境变量，最后是默认值。
 */
func GetConfigPath() string {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return GetDefaultConfigPath()
}

// GetDefaultConfigPath returns the default configuration file path
// GetDefaultConfigPath 返回默认配置文件路径
func GetDefaultConfigPath() string {
	return DefaultConfigPath
}
