package journal

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	jerrors "github.com/livp123/edjournal/pkg/errors"
)

// Tailer reads complete lines from a journal that another process is still
// appending to. Reaching EOF only means "no new data yet".
// Tailer 从仍在被其他进程追加写入的日志中读取完整的行。
type Tailer struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	pending []byte       // bytes of a line whose newline has not arrived yet
	offset  atomic.Int64 // start of the first unread complete line
	mu      sync.Mutex
	closed  bool
}

// OpenTailer opens path for shared reading from the beginning.
// os.Open never takes an exclusive lock, so the game can keep writing.
// OpenTailer 以共享读取方式从头打开文件。
func OpenTailer(path string) (*Tailer, error) {
	safePath := filepath.Clean(path)
	f, err := os.Open(safePath) // #nosec G304 // path comes from a directory scan
	if err != nil {
		return nil, jerrors.NewFileError(safePath, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, jerrors.NewFileError(safePath, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, jerrors.NewFileError(safePath, errors.New("is a directory"))
	}
	return &Tailer{
		path:   safePath,
		file:   f,
		reader: bufio.NewReaderSize(f, 64*1024),
	}, nil
}

// Path returns the tailed file.
func (t *Tailer) Path() string {
	return t.path
}

// Offset returns the byte offset just past the last line yielded.
func (t *Tailer) Offset() int64 {
	return t.offset.Load()
}

// Lines yields every complete line appended since the previous call, without
// its line terminator. The sequence ends at EOF; a trailing partial line is
// kept back until its newline is written. Breaking out of the loop early
// leaves the remaining lines for the next call.
// Lines 逐行返回自上次调用以来追加的完整行。不完整的最后一行会被保留到下次。
func (t *Tailer) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		t.mu.Lock()
		defer t.mu.Unlock()

		if t.closed {
			yield("", os.ErrClosed)
			return
		}

		for {
			chunk, err := t.reader.ReadBytes('\n')
			if len(chunk) > 0 {
				t.pending = append(t.pending, chunk...)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield("", jerrors.NewFileError(t.path, err))
				return
			}

			line := t.pending
			t.offset.Add(int64(len(line)))
			t.pending = nil

			line = bytes.TrimSuffix(line, []byte{'\n'})
			line = bytes.TrimSuffix(line, []byte{'\r'})
			if !yield(string(line), nil) {
				return
			}
		}
	}
}

// Close releases the file handle. It is safe to call more than once.
// Close 释放文件句柄，可重复调用。
func (t *Tailer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.pending = nil
	return t.file.Close()
}
