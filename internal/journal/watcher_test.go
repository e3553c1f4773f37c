package journal

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	jerrors "github.com/livp123/edjournal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createdFiles struct {
	mu    sync.Mutex
	names []string
}

func (c *createdFiles) add(path string) {
	c.mu.Lock()
	c.names = append(c.names, filepath.Base(path))
	c.mu.Unlock()
}

func (c *createdFiles) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

func TestWatcher_SignalsNewJournals(t *testing.T) {
	dir := t.TempDir()
	created := &createdFiles{}

	w, err := NewWatcher(dir, created.add, nil)
	require.NoError(t, err)
	defer w.Close()
	w.Enable()

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored\n")
	writeFile(t, filepath.Join(dir, "Journal.02.log"), "")

	require.Eventually(t, func() bool {
		return len(created.list()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"Journal.02.log"}, created.list())
}

func TestWatcher_DisabledDropsSignals(t *testing.T) {
	dir := t.TempDir()
	created := &createdFiles{}

	w, err := NewWatcher(dir, created.add, nil)
	require.NoError(t, err)
	defer w.Close()
	assert.False(t, w.Enabled())

	writeFile(t, filepath.Join(dir, "Journal.01.log"), "")
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, created.list())

	w.Enable()
	writeFile(t, filepath.Join(dir, "Journal.02.log"), "")
	require.Eventually(t, func() bool {
		return len(created.list()) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"Journal.02.log"}, created.list())
}

func TestWatcher_InvalidDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), func(string) {}, nil)
	assert.ErrorIs(t, err, jerrors.ErrWatchSetup)
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), func(string) {}, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestIsJournalName(t *testing.T) {
	assert.True(t, IsJournalName("Journal.2024-05-01T120000.01.log"))
	assert.True(t, IsJournalName("/tmp/x/JOURNAL.LOG"))
	assert.False(t, IsJournalName("Status.json"))
	assert.False(t, IsJournalName("Journal.log.bak"))
}
