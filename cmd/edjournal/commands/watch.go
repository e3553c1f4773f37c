package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/livp123/edjournal/internal/alerts"
	"github.com/livp123/edjournal/internal/config"
	"github.com/livp123/edjournal/internal/metrics"
	"github.com/livp123/edjournal/internal/runtime"
	"github.com/livp123/edjournal/internal/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd() *cobra.Command {
	var fromHistory bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail the newest journal and follow rotation",
		// Short: 跟踪最新日志并跟随轮转
		Long: `Tail the newest journal in the journal directory, log every exploration
event and evaluate alert rules until interrupted. SIGHUP reloads alert rules.
跟踪日志目录中最新的日志，输出探索事件并执行告警规则，直到被中断。
SIGHUP 会重新加载告警规则。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), fromHistory)
		},
	}

	cmd.Flags().StringVarP(&runtime.JournalDir, "dir", "d", "", "Journal directory (overrides journal.directory)")
	cmd.Flags().BoolVar(&fromHistory, "from-history", false, "Replay every existing journal before tailing")
	return cmd
}

func runWatch(parent context.Context, fromHistory bool) error {
	log := logger.Get(parent)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := resolveJournalDir(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, log); err != nil {
				log.Errorf("❌ Metrics server failed: %v", err)
			}
		}()
	}

	reader, err := newReader(ctx, cfg, dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log.Warnf("⚠️  Closing reader: %v", err)
		}
	}()

	engine := alerts.NewEngine(log, nil)
	if err := engine.UpdateRules(cfg.Alerts); err != nil {
		return err
	}
	engine.Attach(reader.Bus())
	logEvents(reader.Bus(), log)

	if fromHistory {
		if err := reader.BuildFromHistory(ctx); err != nil {
			return err
		}
	}

	if err := reader.Start(ctx); err != nil {
		return err
	}
	log.Infof("🚀 Watching %s", reader.Dir())

	waitForSignal(ctx, log, func() {
		newCfg, err := config.Load(config.GetConfigPath())
		if err != nil {
			log.Errorf("❌ Failed to reload config: %v", err)
			return
		}
		if err := engine.UpdateRules(newCfg.Alerts); err != nil {
			log.Errorf("❌ Failed to reload alert rules: %v", err)
			return
		}
		log.Info("✅ Configuration reloaded")
	})
	return nil
}

// waitForSignal blocks until SIGINT, SIGTERM or ctx is done. SIGHUP calls
// reload and keeps waiting.
// waitForSignal 阻塞直到收到退出信号；SIGHUP 触发重新加载。
func waitForSignal(ctx context.Context, log *zap.SugaredLogger, reload func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-sig:
			if s == syscall.SIGHUP {
				log.Info("🔄 Received SIGHUP, reloading configuration...")
				reload()
				continue
			}
			log.Info("👋 Shutting down...")
			return
		}
	}
}
