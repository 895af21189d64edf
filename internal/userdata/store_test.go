package userdata

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"moviematch/internal/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestPreferencesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	prefs := Preferences{
		Genres:   []string{"Drama", "Comedy", "Action"},
		Emotions: []string{"joy", "sadness"},
		YearBand: catalog.BandNew,
	}
	if err := store.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	loaded, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, prefs) {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, prefs)
	}
}

func TestPreferencesMissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)

	prefs, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if !prefs.IsEmpty() {
		t.Errorf("preferences from missing file should be empty, got %+v", prefs)
	}
}

func TestPreferencesIgnoresUnrecognizedLines(t *testing.T) {
	store := newTestStore(t)
	content := "Genres:Drama\nBogus line\nEmotions:joy\nYear:middle\nYear:not-a-band\n"
	if err := os.WriteFile(filepath.Join(store.Dir(), "preferences.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write preferences: %v", err)
	}

	prefs, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if len(prefs.Genres) != 1 || prefs.Genres[0] != "Drama" {
		t.Errorf("genres mismatch: %v", prefs.Genres)
	}
	// The invalid band line is dropped; the earlier valid one stands.
	if prefs.YearBand != catalog.BandMiddle {
		t.Errorf("year band mismatch: %q", prefs.YearBand)
	}
}

func TestPreferencesEmptyBandRoundTrip(t *testing.T) {
	store := newTestStore(t)
	prefs := Preferences{Genres: []string{"Horror"}}
	if err := store.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	loaded, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if loaded.YearBand != "" {
		t.Errorf("empty band should round trip, got %q", loaded.YearBand)
	}
}

func TestAppendWatchedNumbersSequentially(t *testing.T) {
	store := newTestStore(t)

	first, err := store.AppendWatched("Movie One", "tt0001", "loved it", SentimentLike)
	if err != nil {
		t.Fatalf("AppendWatched failed: %v", err)
	}
	if first.Number != 1 {
		t.Errorf("first entry number should be 1, got %d", first.Number)
	}

	second, err := store.AppendWatched("Movie Two", "", "meh", SentimentDislike)
	if err != nil {
		t.Fatalf("AppendWatched failed: %v", err)
	}
	if second.Number != 2 {
		t.Errorf("second entry number should be 2, got %d", second.Number)
	}

	entries, err := store.LoadWatched()
	if err != nil {
		t.Fatalf("LoadWatched failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Movie One" || entries[0].CatalogID != "tt0001" || entries[0].Sentiment != SentimentLike {
		t.Errorf("first entry mismatch: %+v", entries[0])
	}
	if entries[1].CatalogID != "" {
		t.Errorf("second entry should have no catalog id: %+v", entries[1])
	}
}

func TestWatchedLegacyFormatRead(t *testing.T) {
	store := newTestStore(t)
	content := strings.Join([]string{
		"1.Old Film:great soundtrack:like",
		"not a valid line",
		"2.Another Film:too long:dislike",
		"3.Broken review with:too:many:colons",
		"no-number:review:like",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(store.Dir(), "watched.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write watched: %v", err)
	}

	entries, err := store.LoadWatched()
	if err != nil {
		t.Fatalf("LoadWatched failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 parseable legacy entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Number != 1 || entries[0].Title != "Old Film" || entries[0].Review != "great soundtrack" {
		t.Errorf("legacy entry mismatch: %+v", entries[0])
	}
	if entries[0].CatalogID != "" {
		t.Errorf("legacy entries carry no catalog id: %+v", entries[0])
	}
}

func TestWatchedLegacyUpgradeKeepsNumbers(t *testing.T) {
	store := newTestStore(t)
	content := "1.Old Film:fine:like\n2.Other Film:poor:dislike\n"
	if err := os.WriteFile(filepath.Join(store.Dir(), "watched.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write watched: %v", err)
	}

	added, err := store.AppendWatched("New Film", "tt0100", "superb", SentimentLike)
	if err != nil {
		t.Fatalf("AppendWatched failed: %v", err)
	}
	if added.Number != 3 {
		t.Errorf("append over legacy file should number count+1, got %d", added.Number)
	}

	// File is now v2 with the marker and all three entries.
	data, err := os.ReadFile(filepath.Join(store.Dir(), "watched.txt"))
	if err != nil {
		t.Fatalf("read watched: %v", err)
	}
	if !strings.HasPrefix(string(data), formatMarker+"\n") {
		t.Errorf("rewritten file should carry the format marker: %q", string(data))
	}

	entries, err := store.LoadWatched()
	if err != nil {
		t.Fatalf("LoadWatched failed: %v", err)
	}
	if len(entries) != 3 || entries[0].Number != 1 || entries[2].Number != 3 {
		t.Errorf("numbers should survive the upgrade: %+v", entries)
	}
}

func TestWatchedV2RoundTrip(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.AppendWatched("Film: The Sequel", "tt0005", "colons: and, commas", SentimentLike); err != nil {
		t.Fatalf("AppendWatched failed: %v", err)
	}

	entries, err := store.LoadWatched()
	if err != nil {
		t.Fatalf("LoadWatched failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	// v2 records tolerate colons and commas in titles and reviews.
	if entries[0].Title != "Film: The Sequel" || entries[0].Review != "colons: and, commas" {
		t.Errorf("v2 round trip mismatch: %+v", entries[0])
	}
}

func TestWatchLaterAppendAndRemove(t *testing.T) {
	store := newTestStore(t)

	if err := store.AppendWatchLater("First", "tt0001"); err != nil {
		t.Fatalf("AppendWatchLater failed: %v", err)
	}
	if err := store.AppendWatchLater("Second", ""); err != nil {
		t.Fatalf("AppendWatchLater failed: %v", err)
	}

	entries, err := store.LoadWatchLater()
	if err != nil {
		t.Fatalf("LoadWatchLater failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "First" || entries[1].Title != "Second" {
		t.Fatalf("entries mismatch: %+v", entries)
	}

	removed, err := store.RemoveWatchLaterAt(0)
	if err != nil {
		t.Fatalf("RemoveWatchLaterAt failed: %v", err)
	}
	if removed.Title != "First" || removed.CatalogID != "tt0001" {
		t.Errorf("removed entry mismatch: %+v", removed)
	}

	entries, err = store.LoadWatchLater()
	if err != nil {
		t.Fatalf("LoadWatchLater failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Second" {
		t.Errorf("remaining entries mismatch: %+v", entries)
	}
}

func TestRemoveWatchLaterAtOutOfRange(t *testing.T) {
	store := newTestStore(t)
	if err := store.AppendWatchLater("Only", ""); err != nil {
		t.Fatalf("AppendWatchLater failed: %v", err)
	}

	for _, index := range []int{-1, 1, 5} {
		if _, err := store.RemoveWatchLaterAt(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveWatchLaterAt(%d) should fail with ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

func TestWatchLaterLegacyFormatRead(t *testing.T) {
	store := newTestStore(t)
	content := "First Movie, Second Movie ,,Third Movie"
	if err := os.WriteFile(filepath.Join(store.Dir(), "watch_later.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("write watch later: %v", err)
	}

	entries, err := store.LoadWatchLater()
	if err != nil {
		t.Fatalf("LoadWatchLater failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 legacy titles, got %d: %+v", len(entries), entries)
	}
	if entries[1].Title != "Second Movie" || entries[1].CatalogID != "" {
		t.Errorf("legacy entry mismatch: %+v", entries[1])
	}
}

func TestAppendWatchLaterRejectsEmptyTitle(t *testing.T) {
	store := newTestStore(t)
	if err := store.AppendWatchLater("   ", "tt1"); err == nil {
		t.Error("AppendWatchLater should reject blank titles")
	}
}

func TestIsEmpty(t *testing.T) {
	if !(Preferences{}).IsEmpty() {
		t.Error("zero preferences should be empty")
	}
	if (Preferences{YearBand: catalog.BandOld}).IsEmpty() {
		t.Error("band-only preferences are not empty")
	}
	if (Preferences{Emotions: []string{"joy"}}).IsEmpty() {
		t.Error("emotion-only preferences are not empty")
	}
}
