package config

import (
	"github.com/livp123/edjournal/internal/alerts"
	"github.com/livp123/edjournal/internal/utils/logger"
)

// Configurable represents the interface for configuration management
// Configurable 表示配置管理的接口
type Configurable interface {
	LoadConfig() error
	SaveConfig() error
	GetConfig() *Config

	GetJournalConfig() *JournalConfig
	GetLoggingConfig() *logger.LoggingConfig
	GetMetricsConfig() *MetricsConfig
	GetAlerts() []alerts.RuleConfig

	SetJournalDirectory(dir string) error

	GetConfigPath() string
	Validate() error
}

var _ Configurable = (*ConfigManager)(nil)
