package browse

import (
	"bufio"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// BaseHistory is the file name of the selection history in the cache
// directory.
const BaseHistory = "history.utf8"

// History records the key paths selected in previous sessions, oldest first,
// each path at most once. An empty file path keeps the history in memory.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory creates a History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is an
// empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		h.entries = slices.DeleteFunc(h.entries, func(s string) bool { return s == line })
		h.entries = append(h.entries, line)
	}

	return scanner.Err()
}

// Add records path as the most recent entry, removing any earlier occurrence,
// and rewrites the history file.
func (h *History) Add(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = slices.DeleteFunc(h.entries, func(s string) bool { return s == path })
	h.entries = append(h.entries, path)

	return h.rewriteFile()
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Recent returns the entries most recent first.
func (h *History) Recent() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := slices.Clone(h.entries)
	slices.Reverse(result)

	return result
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}

	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}
