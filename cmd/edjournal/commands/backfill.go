package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/livp123/edjournal/internal/alerts"
	"github.com/livp123/edjournal/internal/journal"
	"github.com/livp123/edjournal/internal/runtime"
	"github.com/livp123/edjournal/internal/utils/fmtutil"
	"github.com/livp123/edjournal/internal/utils/logger"
	"github.com/spf13/cobra"
)

func newBackfillCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Replay every journal once and print a summary",
		// Short: 重放所有日志并打印汇总
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBackfill(ctx, cmd, quiet)
		},
	}

	cmd.Flags().StringVarP(&runtime.JournalDir, "dir", "d", "", "Journal directory (overrides journal.directory)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary")
	return cmd
}

func runBackfill(ctx context.Context, cmd *cobra.Command, quiet bool) error {
	log := logger.Get(ctx)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := resolveJournalDir(cfg)
	if err != nil {
		return err
	}

	bus := journal.NewBus(log)
	counter := countEvents(bus)
	var matches []alerts.Match
	engine := alerts.NewEngine(log, func(m alerts.Match) { matches = append(matches, m) })
	if err := engine.UpdateRules(cfg.Alerts); err != nil {
		return err
	}
	engine.Attach(bus)
	if !quiet {
		logEvents(bus, log)
	}

	start := time.Now()
	if err := journal.Replay(ctx, dir, bus, log); err != nil {
		if isCanceled(err) {
			log.Warn("⚠️  Backfill interrupted")
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "📚 Replayed %s event(s) from %s in %s\n",
		fmtutil.FormatCount(counter.total()), dir, fmtutil.FormatDuration(time.Since(start)))
	for _, kind := range journal.Kinds {
		if kind == journal.KindRecord || kind == journal.KindReady {
			continue
		}
		fmt.Fprintf(out, "  %-18s %s\n", kind, fmtutil.FormatCount(counter.counts[kind]))
	}
	if len(matches) > 0 {
		fmt.Fprintf(out, "🚨 %d alert match(es)\n", len(matches))
		for _, m := range matches {
			fmt.Fprintf(out, "  %s\n", m)
		}
	}
	return nil
}
