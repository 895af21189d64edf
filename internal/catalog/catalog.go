package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"moviematch/internal/logging"
	"moviematch/internal/textutil"
)

// absentField is the dataset's sentinel for a missing value.
const absentField = `\N`

// Entry is one row of the title-basics table. Year is 0 when the release
// year is absent or unparsable.
type Entry struct {
	ID     string
	Title  string
	Year   int
	Genres []string
}

// Rating is one row of the title-ratings table, joined to Entry by ID.
type Rating struct {
	ID      string
	Average float64
	Votes   int
}

// Load parses both tables. A missing file is non-fatal: the corresponding
// slice comes back empty and a warning is logged, which lets downstream
// stages filter everything out naturally.
func Load(logger *slog.Logger, catalogPath, ratingsPath string) ([]Entry, []Rating) {
	log := logging.NewComponentLogger(logger, "catalog")

	entries, err := LoadEntries(catalogPath)
	if err != nil {
		log.Warn("catalog table unavailable",
			logging.String("path", catalogPath),
			logging.Error(err))
	}
	ratings, err := LoadRatings(ratingsPath)
	if err != nil {
		log.Warn("ratings table unavailable",
			logging.String("path", ratingsPath),
			logging.Error(err))
	}

	log.Debug("catalog loaded",
		logging.Int("entries", len(entries)),
		logging.Int("ratings", len(ratings)))
	return entries, ratings
}

// LoadEntries parses the title-basics table, preserving row order.
func LoadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("catalog file not found: %s", path)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	reader := newTSVReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	columns := columnIndex(header)
	idCol, ok := columns["tconst"]
	if !ok {
		return nil, errors.New("catalog header missing tconst column")
	}
	titleCol, ok := columns["originalTitle"]
	if !ok {
		return nil, errors.New("catalog header missing originalTitle column")
	}
	yearCol, hasYear := columns["startYear"]
	genresCol, hasGenres := columns["genres"]

	var entries []Entry
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row is dropped, not fatal.
			continue
		}
		if idCol >= len(row) || titleCol >= len(row) {
			continue
		}
		entry := Entry{
			ID:    strings.TrimSpace(row[idCol]),
			Title: strings.TrimSpace(row[titleCol]),
		}
		if entry.ID == "" || entry.Title == "" {
			continue
		}
		if hasYear && yearCol < len(row) {
			entry.Year = parseYear(row[yearCol])
		}
		if hasGenres && genresCol < len(row) {
			entry.Genres = parseGenres(row[genresCol])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadRatings parses the title-ratings table. Rows with unparsable rating
// or vote fields are dropped; the matching pipeline then rejects those
// candidates for lack of a joined record.
func LoadRatings(path string) ([]Rating, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ratings file not found: %s", path)
		}
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer file.Close()

	reader := newTSVReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read ratings header: %w", err)
	}
	columns := columnIndex(header)
	idCol, ok := columns["tconst"]
	if !ok {
		return nil, errors.New("ratings header missing tconst column")
	}
	ratingCol, ok := columns["averageRating"]
	if !ok {
		return nil, errors.New("ratings header missing averageRating column")
	}
	votesCol, ok := columns["numVotes"]
	if !ok {
		return nil, errors.New("ratings header missing numVotes column")
	}

	var ratings []Rating
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if idCol >= len(row) || ratingCol >= len(row) || votesCol >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			continue
		}
		average, err := strconv.ParseFloat(strings.TrimSpace(row[ratingCol]), 64)
		if err != nil {
			continue
		}
		votes, err := strconv.Atoi(strings.TrimSpace(row[votesCol]))
		if err != nil || votes < 0 {
			continue
		}
		ratings = append(ratings, Rating{ID: id, Average: average, Votes: votes})
	}
	return ratings, nil
}

// RatingLookup is the id-to-rating join map the matching engine reads.
type RatingLookup map[string]Rating

// NewRatingLookup builds the join map. At most one rating per id; later
// duplicates win, matching a plain last-write map build.
func NewRatingLookup(ratings []Rating) RatingLookup {
	lookup := make(RatingLookup, len(ratings))
	for _, rating := range ratings {
		lookup[rating.ID] = rating
	}
	return lookup
}

// FindByTitle returns all entries whose title matches under case folding,
// preserving catalog order. Duplicate titles (remakes) are expected.
func FindByTitle(entries []Entry, title string) []Entry {
	want := textutil.Fold(title)
	if want == "" {
		return nil
	}
	var matches []Entry
	for _, entry := range entries {
		if textutil.Fold(entry.Title) == want {
			matches = append(matches, entry)
		}
	}
	return matches
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

func columnIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

func parseYear(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == absentField {
		return 0
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

func parseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == absentField {
		return nil
	}
	return textutil.SplitList(raw)
}
