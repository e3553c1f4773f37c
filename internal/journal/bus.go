package journal

import (
	"fmt"
	"sync"

	"github.com/livp123/edjournal/internal/metrics"
	"go.uber.org/zap"
)

// Handler handles one published event.
// Handler 处理一个已发布的事件。
type Handler func(Event) error

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is the in-memory subscriber registry for journal events.
// Handlers run synchronously on the publishing goroutine, in registration order.
// Bus 是日志事件的内存订阅注册表。
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]subscription
	nextID   uint64
	log      *zap.SugaredLogger
}

// NewBus creates a new Bus.
func NewBus(log *zap.SugaredLogger) *Bus {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Bus{
		handlers: make(map[Kind][]subscription),
		log:      log,
	}
}

// Subscribe registers a handler for a kind and returns a function that removes it.
// Subscribe 为指定类型注册处理器，并返回用于取消订阅的函数。
func (b *Bus) Subscribe(kind Kind, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], subscription{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(kind, id) })
	}
}

func (b *Bus) remove(kind Kind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[kind]
	kept := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}
	b.handlers[kind] = kept
}

// Count returns the number of handlers registered for kind.
func (b *Bus) Count(kind Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind])
}

// Publish delivers ev to a snapshot of the handlers registered for its kind.
// A failing or panicking handler is logged and does not stop the others.
// It returns the number of handlers that failed.
// Publish 将事件投递给该类型处理器的快照。
func (b *Bus) Publish(ev Event) int {
	kind := ev.Kind()

	b.mu.RLock()
	snapshot := make([]subscription, len(b.handlers[kind]))
	copy(snapshot, b.handlers[kind])
	b.mu.RUnlock()

	metrics.EventsDispatched.WithLabelValues(string(kind)).Inc()

	failed := 0
	for _, s := range snapshot {
		if err := b.invoke(s.handler, ev); err != nil {
			failed++
			metrics.SubscriberErrors.WithLabelValues(string(kind)).Inc()
			b.log.Warnf("⚠️  Subscriber for %s failed: %v", kind, err)
		}
	}
	return failed
}

func (b *Bus) invoke(h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ev)
}

// Typed subscription helpers.

func (b *Bus) OnFsdJump(fn func(FsdJump) error) func() {
	return b.Subscribe(KindFsdJump, func(ev Event) error { return fn(ev.(FsdJump)) })
}

func (b *Bus) OnFssDiscoveryScan(fn func(FssDiscoveryScan) error) func() {
	return b.Subscribe(KindFssDiscoveryScan, func(ev Event) error { return fn(ev.(FssDiscoveryScan)) })
}

func (b *Bus) OnBodyScan(fn func(BodyScan) error) func() {
	return b.Subscribe(KindBodyScan, func(ev Event) error { return fn(ev.(BodyScan)) })
}

func (b *Bus) OnDssScan(fn func(DssScan) error) func() {
	return b.Subscribe(KindDssScan, func(ev Event) error { return fn(ev.(DssScan)) })
}

func (b *Bus) OnAllBodiesFound(fn func(AllBodiesFound) error) func() {
	return b.Subscribe(KindAllBodiesFound, func(ev Event) error { return fn(ev.(AllBodiesFound)) })
}

func (b *Bus) OnStartJump(fn func(StartJump) error) func() {
	return b.Subscribe(KindStartJump, func(ev Event) error { return fn(ev.(StartJump)) })
}

func (b *Bus) OnShutdown(fn func(Shutdown) error) func() {
	return b.Subscribe(KindShutdown, func(ev Event) error { return fn(ev.(Shutdown)) })
}

func (b *Bus) OnReady(fn func(Ready) error) func() {
	return b.Subscribe(KindReady, func(ev Event) error { return fn(ev.(Ready)) })
}

func (b *Bus) OnRecord(fn func(RecordEvent) error) func() {
	return b.Subscribe(KindRecord, func(ev Event) error { return fn(ev.(RecordEvent)) })
}
