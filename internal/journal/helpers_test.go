package journal

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fastWait keeps poll loops short without relying on the real interval.
func fastWait(ctx context.Context, _ time.Duration) error {
	return SleepWait(ctx, 5*time.Millisecond)
}

// recorder collects every event published on a bus.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func newRecorder(b *Bus, kinds ...Kind) *recorder {
	if len(kinds) == 0 {
		kinds = Kinds
	}
	rec := &recorder{}
	for _, k := range kinds {
		b.Subscribe(k, func(ev Event) error {
			rec.mu.Lock()
			rec.events = append(rec.events, ev)
			rec.mu.Unlock()
			return nil
		})
	}
	return rec
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) ofKind(k Kind) []Event {
	var out []Event
	for _, ev := range r.all() {
		if ev.Kind() == k {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) systems() []string {
	var out []string
	for _, ev := range r.ofKind(KindFsdJump) {
		out = append(out, ev.(FsdJump).StarSystem)
	}
	return out
}

func jumpLine(system string) string {
	return `{"timestamp":"2024-05-01T12:00:00Z","event":"FSDJump","StarSystem":"` + system + `","StarPos":[1.5,-2,3.25]}` + "\n"
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func journalDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}
	return dir
}
