package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/livp123/edjournal/internal/alerts"
	"github.com/livp123/edjournal/internal/utils/logger"
)

// ConfigManager handles all configuration-related operations in a centralized manner
// ConfigManager 以集中方式处理所有配置相关操作
type ConfigManager struct {
	configPath string
	mutex      sync.RWMutex
	config     *Config
}

// NewConfigManager creates a new configuration manager instance
// NewConfigManager 创建新的配置管理器实例
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// LoadConfig loads the configuration from the manager's path. A missing
// file leaves the defaults in place.
// LoadConfig 从指定路径加载配置，文件不存在时使用默认值。
func (cm *ConfigManager) LoadConfig() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cfg, err := LoadOrDefault(cm.configPath)
	if err != nil {
		return err
	}
	cm.config = cfg
	return nil
}

// SaveConfig saves the current configuration to the manager's path
// SaveConfig 将当前配置保存到指定路径
func (cm *ConfigManager) SaveConfig() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	return Save(cm.configPath, cm.config)
}

// GetConfig returns a copy of the current configuration
// GetConfig 返回当前配置的副本
func (cm *ConfigManager) GetConfig() *Config {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	// Return a copy to prevent external modifications
	cfgCopy := *cm.config
	cfgCopy.Alerts = append([]alerts.RuleConfig(nil), cm.config.Alerts...)
	return &cfgCopy
}

// GetJournalConfig returns the journal configuration
// GetJournalConfig 返回日志目录配置
func (cm *ConfigManager) GetJournalConfig() *JournalConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	journalCfg := cm.config.Journal
	return &journalCfg
}

// GetLoggingConfig returns the logging configuration
// GetLoggingConfig 返回日志配置
func (cm *ConfigManager) GetLoggingConfig() *logger.LoggingConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	loggingCfg := cm.config.Logging
	return &loggingCfg
}

// GetMetricsConfig returns the metrics configuration
// GetMetricsConfig 返回指标配置
func (cm *ConfigManager) GetMetricsConfig() *MetricsConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	metricsCfg := cm.config.Metrics
	return &metricsCfg
}

// GetAlerts returns a copy of the alert rules
// GetAlerts 返回告警规则的副本
func (cm *ConfigManager) GetAlerts() []alerts.RuleConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	return append([]alerts.RuleConfig(nil), cm.config.Alerts...)
}

// SetJournalDirectory validates dir and stores its absolute path.
// The change is in memory until SaveConfig.
// SetJournalDirectory 校验目录并保存其绝对路径（需调用 SaveConfig 持久化）。
func (cm *ConfigManager) SetJournalDirectory(dir string) error {
	if err := ValidateJournalDir(dir); err != nil {
		return err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	if cm.config == nil {
		cm.config = Default()
	}
	cm.config.Journal.Directory = abs
	return nil
}

// GetConfigPath returns the configuration file path
// GetConfigPath 返回配置文件路径
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// Validate validates the current configuration
// Validate 验证当前配置
func (cm *ConfigManager) Validate() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return errors.New("configuration not loaded")
	}
	return cm.config.Validate()
}
