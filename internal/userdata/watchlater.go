package userdata

import (
	"errors"
	"fmt"
	"strings"

	"moviematch/internal/textutil"
)

// ErrIndexOutOfRange reports a watch-later removal index outside [0, len).
var ErrIndexOutOfRange = errors.New("watch later index out of range")

// LoadWatchLater reads the watch-later list in file order.
func (s *Store) LoadWatchLater() ([]WatchLaterEntry, error) {
	var entries []WatchLaterEntry
	err := s.withLock(func() error {
		loaded, err := s.loadWatchLaterLocked()
		if err != nil {
			return err
		}
		entries = loaded
		return nil
	})
	return entries, err
}

// AppendWatchLater appends one title to the watch-later list. The catalog
// id may be empty for titles added by hand.
func (s *Store) AppendWatchLater(title, catalogID string) error {
	title = sanitizeField(title)
	if title == "" {
		return errors.New("watch later title required")
	}
	return s.withLock(func() error {
		entries, err := s.loadWatchLaterLocked()
		if err != nil {
			return err
		}
		entries = append(entries, WatchLaterEntry{
			CatalogID: sanitizeField(catalogID),
			Title:     title,
		})
		return s.saveWatchLaterLocked(entries)
	})
}

// RemoveWatchLaterAt removes and returns the entry at the given 0-based
// index, failing with ErrIndexOutOfRange for invalid indexes.
func (s *Store) RemoveWatchLaterAt(index int) (WatchLaterEntry, error) {
	var removed WatchLaterEntry
	err := s.withLock(func() error {
		entries, err := s.loadWatchLaterLocked()
		if err != nil {
			return err
		}
		if index < 0 || index >= len(entries) {
			return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(entries))
		}
		removed = entries[index]
		entries = append(entries[:index], entries[index+1:]...)
		return s.saveWatchLaterLocked(entries)
	})
	return removed, err
}

func (s *Store) loadWatchLaterLocked() ([]WatchLaterEntry, error) {
	lines, err := s.readLines(watchLaterFile)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	if lines[0] == formatMarker {
		var entries []WatchLaterEntry
		for _, line := range lines[1:] {
			fields := strings.Split(line, "\t")
			if len(fields) != 2 {
				continue
			}
			title := strings.TrimSpace(fields[1])
			if title == "" {
				continue
			}
			entries = append(entries, WatchLaterEntry{
				CatalogID: strings.TrimSpace(fields[0]),
				Title:     title,
			})
		}
		return entries, nil
	}

	// Legacy format: comma-joined titles, no catalog ids.
	var entries []WatchLaterEntry
	for _, line := range lines {
		for _, title := range textutil.SplitList(line) {
			entries = append(entries, WatchLaterEntry{Title: title})
		}
	}
	return entries, nil
}

func (s *Store) saveWatchLaterLocked(entries []WatchLaterEntry) error {
	var b strings.Builder
	b.WriteString(formatMarker)
	b.WriteByte('\n')
	for _, entry := range entries {
		b.WriteString(entry.CatalogID)
		b.WriteByte('\t')
		b.WriteString(entry.Title)
		b.WriteByte('\n')
	}
	return s.writeFile(watchLaterFile, b.String())
}
