package userdata

import (
	"strconv"
	"strings"
)

// LoadWatched reads the watched list in file order. Malformed lines are
// dropped silently.
func (s *Store) LoadWatched() ([]WatchedEntry, error) {
	var entries []WatchedEntry
	err := s.withLock(func() error {
		loaded, err := s.loadWatchedLocked()
		if err != nil {
			return err
		}
		entries = loaded
		return nil
	})
	return entries, err
}

// AppendWatched appends one entry, numbering it count+1 over the existing
// entries at call time. Existing numbers are preserved; the file is
// rewritten in the current format.
func (s *Store) AppendWatched(title, catalogID, review string, sentiment Sentiment) (WatchedEntry, error) {
	var entry WatchedEntry
	err := s.withLock(func() error {
		entries, err := s.loadWatchedLocked()
		if err != nil {
			return err
		}
		entry = WatchedEntry{
			Number:    len(entries) + 1,
			CatalogID: sanitizeField(catalogID),
			Title:     sanitizeField(title),
			Review:    sanitizeField(review),
			Sentiment: sentiment,
		}
		entries = append(entries, entry)
		return s.saveWatchedLocked(entries)
	})
	return entry, err
}

func (s *Store) loadWatchedLocked() ([]WatchedEntry, error) {
	lines, err := s.readLines(watchedFile)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	if lines[0] == formatMarker {
		return parseWatchedV2(lines[1:]), nil
	}
	return parseWatchedLegacy(lines), nil
}

func (s *Store) saveWatchedLocked(entries []WatchedEntry) error {
	var b strings.Builder
	b.WriteString(formatMarker)
	b.WriteByte('\n')
	for _, entry := range entries {
		b.WriteString(strconv.Itoa(entry.Number))
		b.WriteByte('\t')
		b.WriteString(entry.CatalogID)
		b.WriteByte('\t')
		b.WriteString(entry.Title)
		b.WriteByte('\t')
		b.WriteString(entry.Review)
		b.WriteByte('\t')
		b.WriteString(string(entry.Sentiment))
		b.WriteByte('\n')
	}
	return s.writeFile(watchedFile, b.String())
}

func parseWatchedV2(lines []string) []WatchedEntry {
	var entries []WatchedEntry
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || number <= 0 {
			continue
		}
		title := strings.TrimSpace(fields[2])
		if title == "" {
			continue
		}
		sentiment, ok := ParseSentiment(strings.TrimSpace(fields[4]))
		if !ok {
			continue
		}
		entries = append(entries, WatchedEntry{
			Number:    number,
			CatalogID: strings.TrimSpace(fields[1]),
			Title:     title,
			Review:    fields[3],
			Sentiment: sentiment,
		})
	}
	return entries
}

// parseWatchedLegacy handles markerless files: one
// "<n>.<title>:<review>:<sentiment>" line per entry. Lines that do not
// split into exactly three colon fields, or whose number/title split
// fails, are skipped.
func parseWatchedLegacy(lines []string) []WatchedEntry {
	var entries []WatchedEntry
	for _, line := range lines {
		parts := strings.Split(line, ":")
		if len(parts) != 3 {
			continue
		}
		numberTitle := strings.SplitN(parts[0], ".", 2)
		if len(numberTitle) != 2 {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(numberTitle[0]))
		if err != nil || number <= 0 {
			continue
		}
		title := strings.TrimSpace(numberTitle[1])
		if title == "" {
			continue
		}
		sentiment, ok := ParseSentiment(strings.TrimSpace(parts[2]))
		if !ok {
			continue
		}
		entries = append(entries, WatchedEntry{
			Number:    number,
			Title:     title,
			Review:    parts[1],
			Sentiment: sentiment,
		})
	}
	return entries
}
