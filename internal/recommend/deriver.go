package recommend

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"moviematch/internal/catalog"
	"moviematch/internal/logging"
	"moviematch/internal/textutil"
	"moviematch/internal/userdata"
)

// SessionEntry is one movie gathered during a preference renewal session.
type SessionEntry struct {
	CatalogID string
	Title     string
	Year      string
	Genres    []string
	Review    string
}

// Deriver rebuilds preferences from a renewal session. Previous
// preferences are replaced wholesale, never merged.
type Deriver struct {
	logger   *slog.Logger
	analyzer Analyzer
}

// NewDeriver constructs a preference deriver.
func NewDeriver(logger *slog.Logger, analyzer Analyzer) *Deriver {
	return &Deriver{
		logger:   logging.NewComponentLogger(logger, "derive"),
		analyzer: analyzer,
	}
}

// Derive aggregates the session into fresh preferences: the three most
// frequent genres, the three most frequent review emotions, and the band
// of the average release year. With no parsable years the band defaults
// to new.
func (d *Deriver) Derive(ctx context.Context, entries []SessionEntry) userdata.Preferences {
	var genres []string
	for _, entry := range entries {
		genres = append(genres, entry.Genres...)
	}

	var emotions []string
	for _, entry := range entries {
		if strings.TrimSpace(entry.Review) == "" {
			continue
		}
		labels, err := d.analyzer.TopEmotions(ctx, []string{entry.Review}, emotionLimit)
		if err != nil {
			d.logger.Warn("emotion analysis failed, skipping entry",
				logging.String("title", entry.Title),
				logging.Error(err))
			continue
		}
		emotions = append(emotions, labels...)
	}

	return userdata.Preferences{
		Genres:   topByCount(genres, emotionLimit),
		Emotions: topByCount(emotions, emotionLimit),
		YearBand: d.deriveBand(entries),
	}
}

// deriveBand averages the parsable session years and classifies the
// average. Unparsable years are skipped with a warning.
func (d *Deriver) deriveBand(entries []SessionEntry) catalog.Band {
	var sum float64
	var count int
	for _, entry := range entries {
		year, err := strconv.Atoi(strings.TrimSpace(entry.Year))
		if err != nil {
			d.logger.Warn("skipping unparsable year",
				logging.String("title", entry.Title),
				logging.String("year", entry.Year))
			continue
		}
		sum += float64(year)
		count++
	}
	if count == 0 {
		return catalog.BandNew
	}
	return catalog.ClassifyYearValue(sum / float64(count))
}

// topByCount tallies values case-insensitively and returns up to limit
// of them by descending count, displayed in their first-seen form. Ties
// keep first-seen order.
func topByCount(values []string, limit int) []string {
	counts := make(map[string]int)
	display := make(map[string]string)
	var order []string
	for _, value := range values {
		key := textutil.Fold(value)
		if key == "" {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			display[key] = strings.TrimSpace(value)
		}
		counts[key]++
	}
	rank := make(map[string]int, len(order))
	for i, key := range order {
		rank[key] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return rank[order[i]] < rank[order[j]]
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	out := make([]string, 0, len(order))
	for _, key := range order {
		out = append(out, display[key])
	}
	return out
}
