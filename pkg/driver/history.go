package driver

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// EnvHistory overrides the REPL history path; an empty value disables history.
const EnvHistory = "XLANG_HISTORY"

// HistoryReader is satisfied by liner.State.
type HistoryReader interface {
	ReadHistory(r io.Reader) (int, error)
}

// HistoryWriter is satisfied by liner.State.
type HistoryWriter interface {
	WriteHistory(w io.Writer) (int, error)
}

// HistoryStore persists REPL history, holding a file lock while reading or
// writing so concurrent sessions do not interleave.
type HistoryStore struct {
	path string
	lock *flock.Flock
}

// NewHistoryStore returns a store for path, or nil when path is empty.
func NewHistoryStore(path string) *HistoryStore {
	if path == "" {
		return nil
	}
	return &HistoryStore{path: path, lock: flock.New(path + ".lock")}
}

// ResolveHistoryPath applies XLANG_HISTORY over the manifest setting.
func ResolveHistoryPath(manifest *Manifest) string {
	if path, ok := os.LookupEnv(EnvHistory); ok {
		return path
	}
	return manifest.HistoryPath()
}

// Path returns the history file location.
func (h *HistoryStore) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Load reads saved history into r. A missing file is not an error.
func (h *HistoryStore) Load(r HistoryReader) (int, error) {
	if h == nil {
		return 0, nil
	}
	if _, err := os.Stat(h.path); os.IsNotExist(err) {
		return 0, nil
	}
	if err := h.lock.RLock(); err != nil {
		return 0, errors.Wrapf(err, "history: lock %s", h.path)
	}
	defer h.lock.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "history: open %s", h.path)
	}
	defer file.Close()
	n, err := r.ReadHistory(file)
	if err != nil {
		return n, errors.Wrapf(err, "history: read %s", h.path)
	}
	return n, nil
}

// Save writes w's history to disk, replacing the previous file.
func (h *HistoryStore) Save(w HistoryWriter) (int, error) {
	if h == nil {
		return 0, nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return 0, errors.Wrapf(err, "history: create dir for %s", h.path)
	}
	if err := h.lock.Lock(); err != nil {
		return 0, errors.Wrapf(err, "history: lock %s", h.path)
	}
	defer h.lock.Unlock()

	file, err := os.Create(h.path)
	if err != nil {
		return 0, errors.Wrapf(err, "history: create %s", h.path)
	}
	defer file.Close()
	n, err := w.WriteHistory(file)
	if err != nil {
		return n, errors.Wrapf(err, "history: write %s", h.path)
	}
	return n, nil
}
