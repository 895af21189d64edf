package userdata

import (
	"moviematch/internal/catalog"
)

// Sentiment is the binary review classification stored with watched entries.
type Sentiment string

const (
	SentimentLike    Sentiment = "like"
	SentimentDislike Sentiment = "dislike"
)

// ParseSentiment validates a persisted sentiment value.
func ParseSentiment(value string) (Sentiment, bool) {
	switch Sentiment(value) {
	case SentimentLike, SentimentDislike:
		return Sentiment(value), true
	default:
		return "", false
	}
}

// Preferences is the singleton per-user preference record. It is fully
// replaced on each renewal, never merged.
type Preferences struct {
	Genres   []string
	Emotions []string
	YearBand catalog.Band // empty string means no era preference
}

// IsEmpty reports whether all three preference fields are unset. The
// recommendation engine must not be invoked for empty preferences; the
// caller reports "preferences not set" instead.
func (p Preferences) IsEmpty() bool {
	return len(p.Genres) == 0 && len(p.Emotions) == 0 && p.YearBand == ""
}

// WatchedEntry is one record of the append-only watched list. Number is
// 1-based and computed as count+1 at append time; it is never reused.
// CatalogID is empty for entries read from legacy files or entered by hand
// for titles outside the catalog.
type WatchedEntry struct {
	Number    int
	CatalogID string
	Title     string
	Review    string
	Sentiment Sentiment
}

// WatchLaterEntry is one record of the mutable watch-later list.
type WatchLaterEntry struct {
	CatalogID string
	Title     string
}
