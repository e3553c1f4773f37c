package journal

import (
	"context"

	jerrors "github.com/livp123/edjournal/pkg/errors"
	"github.com/nxadm/tail"
	"go.uber.org/zap"
)

// BuildFromHistory replays every journal in the directory, oldest first,
// through the bus. It runs synchronously on the caller's goroutine, never
// waits for new data and leaves the live session untouched.
// BuildFromHistory 按时间顺序同步重放目录中的所有日志。
func (r *Reader) BuildFromHistory(ctx context.Context) error {
	return Replay(ctx, r.dir, r.bus, r.log)
}

// Replay is BuildFromHistory without a Reader.
func Replay(ctx context.Context, dir string, bus *Bus, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	paths, err := ListJournals(dir)
	if err != nil {
		return err
	}

	log.Infof("📚 Replaying %d journal file(s) from %s", len(paths), dir)
	for _, path := range paths {
		if err := replayFile(ctx, path, bus, log); err != nil {
			return err
		}
	}
	return nil
}

func replayFile(ctx context.Context, path string, bus *Bus, log *zap.SugaredLogger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Follow=false makes tail stop at EOF and close Lines.
	t, err := tail.TailFile(path, tail.Config{
		MustExist:     true,
		Follow:        false,
		CompleteLines: true,
		Logger:        tail.DiscardingLogger,
	})
	if err != nil {
		return jerrors.NewFileError(path, err)
	}

	for line := range t.Lines {
		if line.Err != nil {
			_ = t.Stop()
			return jerrors.NewFileError(path, line.Err)
		}
		if ctx.Err() != nil {
			_ = t.Stop()
			return ctx.Err()
		}
		handleLine(bus, log, line.Text, path)
	}

	if err := t.Wait(); err != nil {
		return jerrors.NewFileError(path, err)
	}
	return nil
}
