package journal

import (
	"os"
	"path/filepath"
	"testing"

	jerrors "github.com/livp123/edjournal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, tl *Tailer) []string {
	t.Helper()
	var lines []string
	for line, err := range tl.Lines() {
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}

func TestTailer_ExactlyOnceAcrossPolls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Journal.01.log")
	writeFile(t, path, "a\nb\n")

	tl, err := OpenTailer(path)
	require.NoError(t, err)
	defer tl.Close()

	assert.Equal(t, []string{"a", "b"}, collect(t, tl))
	assert.Empty(t, collect(t, tl), "no new data is not an error")

	appendFile(t, path, "c\n")
	assert.Equal(t, []string{"c"}, collect(t, tl))
	assert.Equal(t, int64(6), tl.Offset())
}

func TestTailer_HoldsBackPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Journal.01.log")
	writeFile(t, path, `{"event":"FSD`)

	tl, err := OpenTailer(path)
	require.NoError(t, err)
	defer tl.Close()

	assert.Empty(t, collect(t, tl))
	assert.Zero(t, tl.Offset())

	appendFile(t, path, `Jump","StarSystem":"Sol",`)
	assert.Empty(t, collect(t, tl))

	appendFile(t, path, `"StarPos":[0,0,0]}`+"\n")
	lines := collect(t, tl)
	require.Len(t, lines, 1)
	assert.Equal(t, `{"event":"FSDJump","StarSystem":"Sol","StarPos":[0,0,0]}`, lines[0])
}

func TestTailer_StripsCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Journal.01.log")
	writeFile(t, path, "one\r\ntwo\r\n")

	tl, err := OpenTailer(path)
	require.NoError(t, err)
	defer tl.Close()

	assert.Equal(t, []string{"one", "two"}, collect(t, tl))
}

func TestTailer_BreakResumes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Journal.01.log")
	writeFile(t, path, "1\n2\n3\n")

	tl, err := OpenTailer(path)
	require.NoError(t, err)
	defer tl.Close()

	for line, err := range tl.Lines() {
		require.NoError(t, err)
		assert.Equal(t, "1", line)
		break
	}
	assert.Equal(t, []string{"2", "3"}, collect(t, tl))
}

func TestTailer_OpenFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenTailer(filepath.Join(dir, "missing.log"))
	assert.ErrorIs(t, err, jerrors.ErrFileUnavailable)

	_, err = OpenTailer(dir)
	assert.ErrorIs(t, err, jerrors.ErrFileUnavailable)
}

func TestTailer_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Journal.01.log")
	writeFile(t, path, "a\n")

	tl, err := OpenTailer(path)
	require.NoError(t, err)
	require.NoError(t, tl.Close())
	require.NoError(t, tl.Close())

	for _, err := range tl.Lines() {
		assert.ErrorIs(t, err, os.ErrClosed)
	}
}
