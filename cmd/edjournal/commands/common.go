package commands

import (
	"context"
	"errors"

	"github.com/livp123/edjournal/internal/config"
	"github.com/livp123/edjournal/internal/journal"
	"github.com/livp123/edjournal/internal/runtime"
	"github.com/livp123/edjournal/internal/utils/logger"
	jerrors "github.com/livp123/edjournal/pkg/errors"
	"go.uber.org/zap"
)

// loadConfig reads the configuration for commands that need more than
// logging settings. A missing file means defaults.
// loadConfig 读取配置，文件不存在时使用默认值。
func loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(config.GetConfigPath())
}

// resolveJournalDir picks the --dir flag over the configured directory.
// resolveJournalDir 优先使用 --dir 标志，其次是配置中的目录。
func resolveJournalDir(cfg *config.Config) (string, error) {
	if runtime.JournalDir != "" {
		return runtime.JournalDir, nil
	}
	if cfg.Journal.Directory != "" {
		return cfg.Journal.Directory, nil
	}
	return "", jerrors.NewDirectoryError("", "no journal directory: pass --dir or run 'edjournal init --dir <path>'")
}

func newReader(ctx context.Context, cfg *config.Config, dir string) (*journal.Reader, error) {
	return journal.New(dir,
		journal.WithLogger(logger.Get(ctx)),
		journal.WithPollInterval(cfg.PollInterval()),
		journal.WithStopTimeout(cfg.StopTimeout()),
	)
}

// logEvents subscribes a collaborator that logs every typed event.
// logEvents 订阅所有类型化事件并输出日志。
func logEvents(bus *journal.Bus, log *zap.SugaredLogger) {
	for _, kind := range journal.Kinds {
		if kind == journal.KindRecord {
			continue
		}
		bus.Subscribe(kind, func(ev journal.Event) error {
			log.Infof("%s %s", eventIcon(ev.Kind()), describe(ev))
			return nil
		})
	}
}

// kindCounter tallies events per kind.
type kindCounter struct {
	counts map[journal.Kind]int
}

func countEvents(bus *journal.Bus) *kindCounter {
	c := &kindCounter{counts: make(map[journal.Kind]int)}
	for _, kind := range journal.Kinds {
		bus.Subscribe(kind, func(ev journal.Event) error {
			c.counts[ev.Kind()]++
			return nil
		})
	}
	return c
}

func (c *kindCounter) total() int {
	n := 0
	for kind, v := range c.counts {
		if kind != journal.KindRecord {
			n += v
		}
	}
	return n
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
