package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/livp123/edjournal/internal/alerts"
	"github.com/livp123/edjournal/internal/journal"
	jerrors "github.com/livp123/edjournal/pkg/errors"
)

// Validate checks durations and alert rules.
// Validate 校验时长字段和告警规则。
func (c *Config) Validate() error {
	if _, err := parsePositive("journal.poll_interval", c.Journal.PollInterval); err != nil {
		return err
	}
	if _, err := parsePositive("journal.stop_timeout", c.Journal.StopTimeout); err != nil {
		return err
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		return jerrors.NewConfigError("metrics.addr", c.Metrics.Addr)
	}
	for i, rule := range c.Alerts {
		if _, err := alerts.Compile(rule); err != nil {
			return jerrors.NewConfigError(fmt.Sprintf("alerts[%d]", i), err)
		}
	}
	return nil
}

// PollInterval returns the parsed poll interval, or the default when unset.
func (c *Config) PollInterval() time.Duration {
	d, err := parsePositive("journal.poll_interval", c.Journal.PollInterval)
	if err != nil || d == 0 {
		return DefaultPollInterval
	}
	return d
}

// StopTimeout returns the parsed stop timeout, or the default when unset.
func (c *Config) StopTimeout() time.Duration {
	d, err := parsePositive("journal.stop_timeout", c.Journal.StopTimeout)
	if err != nil || d == 0 {
		return DefaultStopTimeout
	}
	return d
}

// parsePositive parses a duration field. Empty means "use the default" and
// returns zero.
func parsePositive(field, value string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, jerrors.NewConfigError(field, value)
	}
	return d, nil
}

// ValidateJournalDir checks that dir exists, is a directory and holds at
// least one journal file.
// ValidateJournalDir 检查目录存在且至少包含一个日志文件。
func ValidateJournalDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return jerrors.NewDirectoryError(dir, "empty path")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return jerrors.NewDirectoryError(dir, err.Error())
	}
	if !info.IsDir() {
		return jerrors.NewDirectoryError(dir, "not a directory")
	}
	paths, err := journal.ListJournals(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return jerrors.NewDirectoryError(dir, "no *"+journal.JournalExt+" files")
	}
	return nil
}
