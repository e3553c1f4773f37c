package journal

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	jerrors "github.com/livp123/edjournal/pkg/errors"
	"go.uber.org/zap"
)

// JournalExt is the extension of journal files in the watched directory.
const JournalExt = ".log"

// Watcher signals creation of new journal files in a directory.
// It only triggers; the reader decides which file is newest.
// Watcher 在目录中出现新日志文件时发出信号。
type Watcher struct {
	dir      string
	fsw      *fsnotify.Watcher
	onCreate func(path string)
	enabled  atomic.Bool
	log      *zap.SugaredLogger
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWatcher starts watching dir. onCreate runs on the watcher goroutine,
// once per created *.log entry, while the watcher is enabled.
// NewWatcher 开始监视目录。
func NewWatcher(dir string, onCreate func(path string), log *zap.SugaredLogger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, jerrors.NewWatchError(dir, err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, jerrors.NewWatchError(dir, err)
	}

	w := &Watcher{
		dir:      dir,
		fsw:      fsw,
		onCreate: onCreate,
		log:      log,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) || !IsJournalName(ev.Name) {
				continue
			}
			if !w.enabled.Load() {
				w.log.Debugf("Ignoring %s, watcher disabled", ev.Name)
				continue
			}
			w.log.Debugf("New journal file detected: %s", ev.Name)
			w.onCreate(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("⚠️  Directory watch error on %s: %v", w.dir, err)
		}
	}
}

// Enable starts delivering creation signals.
func (w *Watcher) Enable() { w.enabled.Store(true) }

// Disable drops creation signals until Enable is called again.
func (w *Watcher) Disable() { w.enabled.Store(false) }

// Enabled reports whether signals are delivered.
func (w *Watcher) Enabled() bool { return w.enabled.Load() }

// Close stops watching. Safe to call more than once.
// Close 停止监视，可重复调用。
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

// IsJournalName reports whether name looks like a journal file.
func IsJournalName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), JournalExt)
}
