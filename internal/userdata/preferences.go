package userdata

import (
	"log/slog"
	"strings"

	"moviematch/internal/catalog"
	"moviematch/internal/logging"
	"moviematch/internal/textutil"
)

const (
	prefGenresPrefix   = "Genres:"
	prefEmotionsPrefix = "Emotions:"
	prefYearPrefix     = "Year:"
)

// LoadPreferences reads the preference record. A missing file yields empty
// preferences; unrecognized lines and invalid band values are ignored.
func (s *Store) LoadPreferences() (Preferences, error) {
	var prefs Preferences
	err := s.withLock(func() error {
		lines, err := s.readLines(preferencesFile)
		if err != nil {
			return err
		}
		prefs = parsePreferences(lines, s.logger)
		return nil
	})
	return prefs, err
}

// SavePreferences replaces the preference record wholesale.
func (s *Store) SavePreferences(prefs Preferences) error {
	return s.withLock(func() error {
		var b strings.Builder
		b.WriteString(prefGenresPrefix)
		b.WriteString(textutil.JoinList(prefs.Genres))
		b.WriteByte('\n')
		b.WriteString(prefEmotionsPrefix)
		b.WriteString(textutil.JoinList(prefs.Emotions))
		b.WriteByte('\n')
		b.WriteString(prefYearPrefix)
		b.WriteString(string(prefs.YearBand))
		b.WriteByte('\n')
		return s.writeFile(preferencesFile, b.String())
	})
}

func parsePreferences(lines []string, log *slog.Logger) Preferences {
	var prefs Preferences
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, prefGenresPrefix):
			prefs.Genres = textutil.SplitList(strings.TrimPrefix(line, prefGenresPrefix))
		case strings.HasPrefix(line, prefEmotionsPrefix):
			prefs.Emotions = textutil.SplitList(strings.TrimPrefix(line, prefEmotionsPrefix))
		case strings.HasPrefix(line, prefYearPrefix):
			value := strings.TrimSpace(strings.TrimPrefix(line, prefYearPrefix))
			band, ok := catalog.ParseBand(value)
			if !ok {
				log.Debug("dropping invalid year band", logging.String("value", value))
				continue
			}
			prefs.YearBand = band
		default:
			// Unrecognized lines are ignored.
		}
	}
	return prefs
}
