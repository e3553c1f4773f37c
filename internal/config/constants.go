package config

import "time"

const (
	// DefaultConfigPath is the standard location for the edjournal configuration file.
	// DefaultConfigPath 是 edjournal 配置文件的标准位置。
	DefaultConfigPath = "/etc/edjournal/config.yaml"

	// EnvConfigPath overrides DefaultConfigPath when set.
	// EnvConfigPath 环境变量，设置后覆盖默认配置路径。
	EnvConfigPath = "EDJOURNAL_CONFIG"

	DefaultPollInterval = time.Second
	DefaultStopTimeout  = 10 * time.Second
	DefaultMetricsAddr  = ":9120"
	DefaultLogPath      = "/var/log/edjournal/edjournal.log"
)
