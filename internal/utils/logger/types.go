package logger

// LoggingConfig defines the configuration for logging.
// LoggingConfig 定义日志配置。
type LoggingConfig struct {
	// Enabled: write to Path instead of stdout
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // debug, info, warn, error
	Path    string `yaml:"path"`
	// MaxSize: 轮转前的最大大小（MB）
	MaxSize    int  `yaml:"max_size"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"` // days
	Compress   bool `yaml:"compress"`
}

// DefaultLoggingConfig logs info and above to stdout.
// DefaultLoggingConfig 默认将 info 及以上级别输出到 stdout。
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Enabled:    false,
		Level:      "info",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
}
