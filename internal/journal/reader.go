package journal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/livp123/edjournal/internal/metrics"
	jerrors "github.com/livp123/edjournal/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval = time.Second
	DefaultStopTimeout  = 10 * time.Second
)

// errRotated is the cancellation cause of a session replaced by a newer journal.
var errRotated = errors.New("journal rotated")

// WaitFunc blocks for d or until ctx is done, whichever comes first.
// WaitFunc 阻塞 d 时长或直到 ctx 结束。
type WaitFunc func(ctx context.Context, d time.Duration) error

// SleepWait is the default WaitFunc, backed by a timer.
func SleepWait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Option configures a Reader.
type Option func(*Reader)

// WithBus publishes to an existing bus instead of a private one.
func WithBus(b *Bus) Option {
	return func(r *Reader) { r.bus = b }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Reader) { r.log = l }
}

// WithPollInterval sets the wait between checks once the journal is drained.
func WithPollInterval(d time.Duration) Option {
	return func(r *Reader) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

// WithWait replaces the poll wait, mainly so tests do not sleep.
func WithWait(w WaitFunc) Option {
	return func(r *Reader) {
		if w != nil {
			r.wait = w
		}
	}
}

// WithStopTimeout bounds how long Stop waits for the run loop to exit.
func WithStopTimeout(d time.Duration) Option {
	return func(r *Reader) {
		if d > 0 {
			r.stopTimeout = d
		}
	}
}

// Reader tails the newest journal in a directory, follows rotation to newer
// files and publishes decoded events on its Bus.
// Reader 跟踪目录中最新的日志文件，跟随轮转，并在总线上发布解码后的事件。
type Reader struct {
	dir          string
	bus          *Bus
	log          *zap.SugaredLogger
	pollInterval time.Duration
	stopTimeout  time.Duration
	wait         WaitFunc
	watcher      *Watcher

	// restartMu serializes Start, Stop and rotation handling.
	restartMu sync.Mutex

	mu       sync.Mutex
	state    State
	baseCtx  context.Context
	cancel   context.CancelCauseFunc
	done     chan struct{}
	current  string
	sessions int
	// pending is set when a rotation gave up waiting for the old session;
	// the restart then happens once that session has exited.
	pending bool

	readyOnce sync.Once
	ready     chan struct{}
}

// New creates a Reader for dir. The directory watch is set up here, so an
// invalid directory fails immediately.
// New 为目录创建 Reader。目录监视在此建立，无效目录会立即失败。
func New(dir string, opts ...Option) (*Reader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, jerrors.NewWatchError(dir, err)
	}
	if !info.IsDir() {
		return nil, jerrors.NewWatchError(dir, errors.New("not a directory"))
	}

	r := &Reader{
		dir:          filepath.Clean(dir),
		pollInterval: DefaultPollInterval,
		stopTimeout:  DefaultStopTimeout,
		wait:         SleepWait,
		state:        StateIdle,
		ready:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop().Sugar()
	}
	if r.bus == nil {
		r.bus = NewBus(r.log)
	}

	w, err := NewWatcher(r.dir, r.onJournalCreated, r.log)
	if err != nil {
		return nil, err
	}
	r.watcher = w
	metrics.ReaderState.Set(float64(StateIdle))
	return r, nil
}

// Bus returns the bus events are published on.
func (r *Reader) Bus() *Bus {
	return r.bus
}

// Dir returns the watched directory.
func (r *Reader) Dir() string {
	return r.dir
}

// State returns the current lifecycle state.
func (r *Reader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Current returns the journal being tailed, or "" before the first Start.
func (r *Reader) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Sessions returns how many tailing sessions have been started.
func (r *Reader) Sessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions
}

// Ready is closed the first time the reader catches up with the end of the
// current journal, after Ready subscribers have run. It fires once per
// Reader, not once per rotation.
// Ready 在首次追上当前日志末尾时关闭，每个 Reader 只触发一次。
func (r *Reader) Ready() <-chan struct{} {
	return r.ready
}

// Start begins tailing the newest journal on a background goroutine. If a
// session is already running it is stopped first. ctx bounds this and every
// later session started by rotation.
// Start 在后台协程中开始跟踪最新的日志。若已有会话在运行，会先停止它。
func (r *Reader) Start(ctx context.Context) error {
	r.restartMu.Lock()
	defer r.restartMu.Unlock()

	r.clearPending()
	if err := r.startLocked(ctx, nil); err != nil {
		return err
	}
	r.watcher.Enable()
	return nil
}

func (r *Reader) startLocked(ctx context.Context, cause error) error {
	if err := r.stopLocked(cause); err != nil {
		return err
	}

	path, err := LatestJournal(r.dir)
	if err != nil {
		return err
	}
	tailer, err := OpenTailer(path)
	if err != nil {
		return err
	}

	sessCtx, cancel := context.WithCancelCause(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	r.baseCtx = ctx
	r.cancel = cancel
	r.done = done
	r.current = tailer.Path()
	r.sessions++
	r.setStateLocked(StateActive)
	r.mu.Unlock()

	r.log.Infof("📖 Tailing journal %s", filepath.Base(tailer.Path()))
	go r.run(sessCtx, tailer, done)
	return nil
}

// Stop cancels the running session and waits, bounded by the stop timeout,
// for the run loop to exit. It does nothing when no session is running.
// Stop 取消当前会话并在超时范围内等待运行循环退出。
func (r *Reader) Stop() error {
	r.restartMu.Lock()
	defer r.restartMu.Unlock()

	r.watcher.Disable()
	r.clearPending()
	return r.stopLocked(context.Canceled)
}

func (r *Reader) stopLocked(cause error) error {
	r.mu.Lock()
	if r.state != StateActive && r.state != StateStopping {
		r.mu.Unlock()
		return nil
	}
	cancel, done := r.cancel, r.done
	r.setStateLocked(StateStopping)
	r.mu.Unlock()

	if cause == nil {
		cause = context.Canceled
	}
	cancel(cause)

	timer := time.NewTimer(r.stopTimeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: reader did not stop within %s", jerrors.ErrTimeout, r.stopTimeout)
	}
}

// Close stops the reader and releases the directory watch.
// Close 停止 Reader 并释放目录监视。
func (r *Reader) Close() error {
	// The watcher goroutine may be blocked on restartMu inside a rotation,
	// so it is closed before taking the lock.
	werr := r.watcher.Close()
	serr := r.Stop()
	return errors.Join(serr, werr)
}

func (r *Reader) setStateLocked(s State) {
	r.state = s
	metrics.ReaderState.Set(float64(s))
}

// run is the per-session loop: drain, signal readiness, wait, repeat.
func (r *Reader) run(ctx context.Context, t *Tailer, done chan struct{}) {
	defer func() {
		if err := t.Close(); err != nil {
			r.log.Warnf("⚠️  Closing %s: %v", t.Path(), err)
		}
		r.mu.Lock()
		r.setStateLocked(StateStopped)
		r.mu.Unlock()
		close(done)
	}()

	for {
		if ctx.Err() != nil {
			r.finish(ctx, t)
			return
		}
		if err := r.drain(t); err != nil {
			r.log.Errorf("❌ Reading %s: %v", t.Path(), err)
			return
		}
		if ctx.Err() != nil {
			r.finish(ctx, t)
			return
		}

		r.readyOnce.Do(func() {
			r.log.Infof("✅ Caught up with %s, now live", filepath.Base(t.Path()))
			r.bus.Publish(Ready{File: t.Path()})
			close(r.ready)
		})

		if err := r.wait(ctx, r.pollInterval); err != nil {
			r.finish(ctx, t)
			return
		}
	}
}

// finish reads whatever the old journal received since the last poll when
// the session ends because a newer journal appeared.
func (r *Reader) finish(ctx context.Context, t *Tailer) {
	if !errors.Is(context.Cause(ctx), errRotated) {
		return
	}
	if err := r.drain(t); err != nil {
		r.log.Warnf("⚠️  Final read of %s: %v", t.Path(), err)
	}
}

func (r *Reader) drain(t *Tailer) error {
	for line, err := range t.Lines() {
		if err != nil {
			return err
		}
		handleLine(r.bus, r.log, line, t.Path())
	}
	return nil
}

// onJournalCreated runs on the watcher goroutine.
func (r *Reader) onJournalCreated(path string) {
	r.restartMu.Lock()
	defer r.restartMu.Unlock()

	r.mu.Lock()
	state, current, base := r.state, r.current, r.baseCtx
	r.mu.Unlock()

	if state != StateActive {
		return
	}

	latest, err := LatestJournal(r.dir)
	if err != nil {
		r.log.Warnf("⚠️  Rescanning %s after %s was created: %v", r.dir, filepath.Base(path), err)
		return
	}
	if latest == current {
		r.log.Debugf("Already tailing %s, ignoring %s", filepath.Base(current), filepath.Base(path))
		return
	}

	r.log.Infof("🔄 Journal rotated: %s -> %s", filepath.Base(current), filepath.Base(latest))
	metrics.Rotations.Inc()
	err = r.startLocked(base, errRotated)
	switch {
	case errors.Is(err, jerrors.ErrTimeout):
		r.log.Warnf("⏳ %s still busy after %s, restarting once it exits", filepath.Base(current), r.stopTimeout)
		r.restartWhenDone(base)
	case err != nil:
		r.log.Errorf("❌ Restarting after rotation: %v", err)
	}
}

// restartWhenDone starts a new session after the current one has exited,
// unless Start or Stop intervened in the meantime. Called with restartMu held.
// restartWhenDone 在旧会话退出后启动新会话，除非期间调用了 Start 或 Stop。
func (r *Reader) restartWhenDone(ctx context.Context) {
	r.mu.Lock()
	done := r.done
	r.pending = true
	r.mu.Unlock()

	go func() {
		<-done

		r.restartMu.Lock()
		defer r.restartMu.Unlock()

		if !r.clearPending() {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if err := r.startLocked(ctx, errRotated); err != nil {
			r.log.Errorf("❌ Restarting after rotation: %v", err)
		}
	}()
}

// clearPending drops a deferred rotation restart and reports whether one was set.
func (r *Reader) clearPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	was := r.pending
	r.pending = false
	return was
}

// handleLine parses one line and publishes the resulting events. Malformed
// lines and records that do not match their event shape are logged and skipped.
// handleLine 解析一行并发布事件。格式错误的行会被记录并跳过。
func handleLine(bus *Bus, log *zap.SugaredLogger, line, source string) {
	metrics.LinesRead.Inc()
	if strings.TrimSpace(line) == "" {
		return
	}

	rec, err := ParseLine(line)
	if err != nil {
		metrics.MalformedLines.Inc()
		log.Warnf("⚠️  Skipping malformed line in %s: %v", filepath.Base(source), err)
		return
	}
	dispatch(bus, log, rec, source)
}

func dispatch(bus *Bus, log *zap.SugaredLogger, rec Record, source string) {
	name := rec.Event()
	if !Known(name) {
		return
	}

	ev, err := Decode(rec)
	if err != nil {
		metrics.DecodeErrors.WithLabelValues(name).Inc()
		log.Warnf("⚠️  Skipping %s record in %s: %v", name, filepath.Base(source), err)
		return
	}

	bus.Publish(RecordEvent{Name: name, Record: rec, Source: source})
	bus.Publish(ev)
}
