package journal

import (
	"os"
	"path/filepath"
	"sort"

	jerrors "github.com/livp123/edjournal/pkg/errors"
)

// State is the lifecycle of a Reader.
// State 是 Reader 的生命周期状态。
type State int32

const (
	StateIdle State = iota
	StateActive
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ListJournals returns every journal file in dir, oldest first.
// Journal names embed their creation time, so name order is chronological.
// ListJournals 按名称（即时间）顺序返回目录中的所有日志文件。
func ListJournals(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, jerrors.NewDirectoryError(dir, err.Error())
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsJournalName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// LatestJournal returns the journal file with the greatest name.
// LatestJournal 返回名称最大的日志文件。
func LatestJournal(dir string) (string, error) {
	paths, err := ListJournals(dir)
	if err != nil {
		return "", jerrors.NewFileError(dir, err)
	}
	if len(paths) == 0 {
		return "", jerrors.NewFileError(dir, os.ErrNotExist)
	}
	return paths[len(paths)-1], nil
}
