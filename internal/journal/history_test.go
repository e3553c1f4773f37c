package journal

import (
	"context"
	"path/filepath"
	"testing"

	jerrors "github.com/livp123/edjournal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFromHistory_FileThenLineOrder(t *testing.T) {
	dir := journalDir(t, map[string]string{
		"Journal.2024-05-01T120000.01.log": jumpLine("A1") + jumpLine("A2") + jumpLine("A3"),
		"Journal.2024-05-02T090000.01.log": jumpLine("B1") + jumpLine("B2"),
	})
	r := newTestReader(t, dir)
	rec := newRecorder(r.Bus(), KindFsdJump)

	require.NoError(t, r.BuildFromHistory(context.Background()))

	// Replay is synchronous: everything is dispatched by the time it returns.
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2"}, rec.systems())
	assert.Equal(t, StateIdle, r.State(), "history replay must not start a live session")
}

func TestBuildFromHistory_RecordEventsCarrySource(t *testing.T) {
	dir := journalDir(t, map[string]string{
		"Journal.01.log": jumpLine("Sol"),
	})
	r := newTestReader(t, dir)
	rec := newRecorder(r.Bus(), KindRecord)

	require.NoError(t, r.BuildFromHistory(context.Background()))

	events := rec.all()
	require.Len(t, events, 1)
	re := events[0].(RecordEvent)
	assert.Equal(t, "FSDJump", re.Name)
	assert.Equal(t, filepath.Join(dir, "Journal.01.log"), re.Source)
}

func TestReplay_SkipsBadLines(t *testing.T) {
	dir := journalDir(t, map[string]string{
		"Journal.01.log": "not json\n" +
			"\n" +
			`{"event":"FSDJump","StarSystem":"NoPos"}` + "\n" +
			`{"event":"Music","MusicTrack":"Exploration"}` + "\n" +
			jumpLine("Sol"),
		"notes.txt": jumpLine("Ignored"),
	})
	bus := NewBus(nil)
	rec := newRecorder(bus)

	require.NoError(t, Replay(context.Background(), dir, bus, nil))

	assert.Equal(t, []string{"Sol"}, rec.systems())
	assert.Len(t, rec.ofKind(KindRecord), 1)
}

func TestReplay_EmptyDirectory(t *testing.T) {
	bus := NewBus(nil)
	rec := newRecorder(bus)

	require.NoError(t, Replay(context.Background(), t.TempDir(), bus, nil))
	assert.Empty(t, rec.all())
}

func TestReplay_InvalidDirectory(t *testing.T) {
	err := Replay(context.Background(), filepath.Join(t.TempDir(), "missing"), NewBus(nil), nil)
	assert.ErrorIs(t, err, jerrors.ErrInvalidDirectory)
}

func TestReplay_CancelledContext(t *testing.T) {
	dir := journalDir(t, map[string]string{
		"Journal.01.log": jumpLine("Sol") + jumpLine("Alpha Centauri"),
	})
	bus := NewBus(nil)
	rec := newRecorder(bus)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Replay(ctx, dir, bus, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.systems())
}
