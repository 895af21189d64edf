package userdata

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"moviematch/internal/logging"
)

const (
	preferencesFile = "preferences.txt"
	watchedFile     = "watched.txt"
	watchLaterFile  = "watch_later.txt"
	lockFile        = ".moviematch.lock"

	// formatMarker is the first line of list files written in the current
	// format. Files without it parse with the legacy rules.
	formatMarker = "#moviematch:v2"
)

// Store provides access to the persisted user state in a data directory.
type Store struct {
	dir    string
	logger *slog.Logger
	lock   *flock.Flock
}

// NewStore opens (creating if needed) the data directory and prepares the
// store's file lock.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("userdata: data directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %q: %w", dir, err)
	}
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "userdata"),
		lock:   flock.New(filepath.Join(dir, lockFile)),
	}, nil
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// withLock runs fn inside the store's critical section. Every public
// read/modify/write operation goes through here so overlapping invocations
// serialize on the lock file.
func (s *Store) withLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire state lock: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("release state lock", logging.Error(err))
		}
	}()
	return fn()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readLines returns the trimmed, non-empty lines of a state file. A missing
// file yields no lines and no error.
func (s *Store) readLines(name string) ([]string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// writeFile persists a state file atomically via temp file + rename.
func (s *Store) writeFile(name string, content string) error {
	target := s.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// sanitizeField strips characters that would break the tab-separated v2
// record format.
func sanitizeField(value string) string {
	replacer := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return strings.TrimSpace(replacer.Replace(value))
}
