package journal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_RegistrationOrder(t *testing.T) {
	b := NewBus(nil)
	var calls []string
	b.OnShutdown(func(Shutdown) error { calls = append(calls, "first"); return nil })
	b.OnShutdown(func(Shutdown) error { calls = append(calls, "second"); return nil })
	b.OnShutdown(func(Shutdown) error { calls = append(calls, "third"); return nil })

	failed := b.Publish(Shutdown{})
	assert.Zero(t, failed)
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestBus_IsolatesFailingSubscribers(t *testing.T) {
	b := NewBus(nil)
	var delivered []string
	b.OnFsdJump(func(FsdJump) error { return errors.New("display offline") })
	b.OnFsdJump(func(FsdJump) error { panic("bookkeeping bug") })
	b.OnFsdJump(func(ev FsdJump) error { delivered = append(delivered, ev.StarSystem); return nil })

	failed := b.Publish(FsdJump{StarSystem: "Sol"})
	assert.Equal(t, 2, failed)
	assert.Equal(t, []string{"Sol"}, delivered)
}

func TestBus_KindsAreSeparate(t *testing.T) {
	b := NewBus(nil)
	rec := newRecorder(b, KindBodyScan)

	b.Publish(FsdJump{StarSystem: "Sol"})
	b.Publish(BodyScan{BodyName: "Earth"})

	assert.Len(t, rec.all(), 1)
	assert.Equal(t, KindBodyScan, rec.all()[0].Kind())
}

func TestBus_SnapshotDuringDispatch(t *testing.T) {
	b := NewBus(nil)
	lateCalls := 0
	b.OnShutdown(func(Shutdown) error {
		b.OnShutdown(func(Shutdown) error { lateCalls++; return nil })
		return nil
	})

	b.Publish(Shutdown{})
	assert.Zero(t, lateCalls, "handler added during dispatch must wait for the next event")
	assert.Equal(t, 2, b.Count(KindShutdown))

	b.Publish(Shutdown{})
	assert.Equal(t, 1, lateCalls)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus(nil)
	calls := 0
	unsubscribe := b.OnReady(func(Ready) error { calls++; return nil })

	b.Publish(Ready{})
	unsubscribe()
	unsubscribe()
	b.Publish(Ready{})

	assert.Equal(t, 1, calls)
	assert.Zero(t, b.Count(KindReady))
}

func TestBus_TypedHelpers(t *testing.T) {
	b := NewBus(nil)
	got := map[Kind]int{}
	count := func(k Kind) { got[k]++ }

	b.OnFsdJump(func(FsdJump) error { count(KindFsdJump); return nil })
	b.OnFssDiscoveryScan(func(FssDiscoveryScan) error { count(KindFssDiscoveryScan); return nil })
	b.OnBodyScan(func(BodyScan) error { count(KindBodyScan); return nil })
	b.OnDssScan(func(DssScan) error { count(KindDssScan); return nil })
	b.OnAllBodiesFound(func(AllBodiesFound) error { count(KindAllBodiesFound); return nil })
	b.OnStartJump(func(StartJump) error { count(KindStartJump); return nil })
	b.OnShutdown(func(Shutdown) error { count(KindShutdown); return nil })
	b.OnReady(func(Ready) error { count(KindReady); return nil })
	b.OnRecord(func(RecordEvent) error { count(KindRecord); return nil })

	for _, ev := range []Event{
		FsdJump{}, FssDiscoveryScan{}, BodyScan{}, DssScan{}, AllBodiesFound{},
		StartJump{}, Shutdown{}, Ready{}, RecordEvent{},
	} {
		b.Publish(ev)
	}

	for _, k := range Kinds {
		assert.Equal(t, 1, got[k], "kind %s", k)
	}
}
