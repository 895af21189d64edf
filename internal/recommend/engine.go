package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"moviematch/internal/catalog"
	"moviematch/internal/logging"
	"moviematch/internal/services/imdb"
	"moviematch/internal/textutil"
	"moviematch/internal/userdata"
)

const (
	// DefaultMaxResults is how many acceptances a run collects.
	DefaultMaxResults = 3

	defaultMinRating       = 6.5
	defaultMinVotes        = 50000
	defaultPolitenessDelay = time.Second

	emotionLimit = 3
)

// ReviewSource fetches reviews for a catalog id.
type ReviewSource interface {
	FetchReviews(ctx context.Context, catalogID string) ([]imdb.Review, error)
}

// Analyzer extracts dominant emotion labels from review texts.
type Analyzer interface {
	TopEmotions(ctx context.Context, texts []string, limit int) ([]string, error)
}

// ListStore provides the watched and watch-later lists the engine
// deduplicates against and appends acceptances to.
type ListStore interface {
	LoadWatched() ([]userdata.WatchedEntry, error)
	LoadWatchLater() ([]userdata.WatchLaterEntry, error)
	AppendWatchLater(title, catalogID string) error
}

// Result is one accepted candidate with the evidence that passed it.
type Result struct {
	Entry    catalog.Entry
	Rating   catalog.Rating
	Review   string
	Emotions []string
}

// Engine filters catalog entries against the stored preferences.
type Engine struct {
	logger   *slog.Logger
	reviews  ReviewSource
	analyzer Analyzer

	minRating float64
	minVotes  int
	delay     time.Duration
	sleep     func(time.Duration)
	onAccept  func(Result)
}

// Option customizes the engine.
type Option func(*Engine)

// WithThresholds overrides the rating gate thresholds.
func WithThresholds(minRating float64, minVotes int) Option {
	return func(e *Engine) {
		e.minRating = minRating
		e.minVotes = minVotes
	}
}

// WithPolitenessDelay overrides the pause taken after each accepted
// candidate when the run continues.
func WithPolitenessDelay(delay time.Duration) Option {
	return func(e *Engine) {
		if delay >= 0 {
			e.delay = delay
		}
	}
}

// WithSleeper replaces the delay function (tests pass a recorder).
func WithSleeper(sleep func(time.Duration)) Option {
	return func(e *Engine) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// WithOnAccept registers a callback invoked for each acceptance as it
// happens, before the run continues.
func WithOnAccept(fn func(Result)) Option {
	return func(e *Engine) {
		e.onAccept = fn
	}
}

// NewEngine constructs a matching engine.
func NewEngine(logger *slog.Logger, reviews ReviewSource, analyzer Analyzer, opts ...Option) *Engine {
	e := &Engine{
		logger:    logging.NewComponentLogger(logger, "recommend"),
		reviews:   reviews,
		analyzer:  analyzer,
		minRating: defaultMinRating,
		minVotes:  defaultMinVotes,
		delay:     defaultPolitenessDelay,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend walks entries in order and returns up to maxResults accepted
// candidates. Each acceptance is appended to the watch-later list before
// the next candidate is evaluated. An empty result is a valid outcome,
// not an error.
func (e *Engine) Recommend(ctx context.Context, prefs userdata.Preferences, entries []catalog.Entry, ratings catalog.RatingLookup, lists ListStore, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	log := e.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	log.Info("matching run started",
		logging.Int("candidates", len(entries)),
		logging.Int("max_results", maxResults))

	seen, err := e.seenTitles(lists)
	if err != nil {
		return nil, err
	}

	genreSet := textutil.FoldSet(prefs.Genres)
	genresRequired := requiredMatches(len(prefs.Genres))
	emotionSet := textutil.FoldSet(prefs.Emotions)
	emotionsRequired := requiredMatches(len(prefs.Emotions))

	var results []Result
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if countMatches(entry.Genres, genreSet) < genresRequired {
			continue
		}

		band, ok := catalog.ClassifyYear(entry.Year)
		if !ok {
			continue
		}
		if prefs.YearBand != "" && band != prefs.YearBand {
			continue
		}

		if seen[textutil.Fold(entry.Title)] {
			continue
		}

		rating, ok := ratings[entry.ID]
		if !ok || rating.Average <= e.minRating || rating.Votes <= e.minVotes {
			continue
		}

		review, ok := e.fetchTopReview(ctx, log, entry.ID)
		if !ok {
			continue
		}

		emotions, err := e.analyzer.TopEmotions(ctx, []string{review}, emotionLimit)
		if err != nil {
			log.Warn("emotion analysis failed, skipping candidate",
				logging.String("catalog_id", entry.ID),
				logging.Error(err))
			continue
		}
		if countMatches(emotions, emotionSet) < emotionsRequired {
			continue
		}

		result := Result{Entry: entry, Rating: rating, Review: review, Emotions: emotions}
		if err := lists.AppendWatchLater(entry.Title, entry.ID); err != nil {
			return results, fmt.Errorf("persist acceptance %q: %w", entry.Title, err)
		}
		seen[textutil.Fold(entry.Title)] = true
		results = append(results, result)
		log.Info("candidate accepted",
			logging.String("catalog_id", entry.ID),
			logging.String("title", entry.Title),
			logging.Int("accepted", len(results)))
		if e.onAccept != nil {
			e.onAccept(result)
		}

		if len(results) >= maxResults {
			break
		}
		if e.delay > 0 {
			e.sleep(e.delay)
		}
	}

	log.Info("matching run finished", logging.Int("accepted", len(results)))
	return results, nil
}

// fetchTopReview returns the most-supported review text for a candidate.
// Fetch failures and empty pages both reject the candidate without
// failing the run.
func (e *Engine) fetchTopReview(ctx context.Context, log *slog.Logger, catalogID string) (string, bool) {
	reviews, err := e.reviews.FetchReviews(ctx, catalogID)
	if err != nil {
		log.Warn("review fetch failed, skipping candidate",
			logging.String("catalog_id", catalogID),
			logging.Error(err))
		return "", false
	}
	best := -1
	for i, review := range reviews {
		if review.Text == "" {
			continue
		}
		if best < 0 || review.HelpfulVotes > reviews[best].HelpfulVotes {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return reviews[best].Text, true
}

func (e *Engine) seenTitles(lists ListStore) (map[string]bool, error) {
	watched, err := lists.LoadWatched()
	if err != nil {
		return nil, fmt.Errorf("load watched list: %w", err)
	}
	watchLater, err := lists.LoadWatchLater()
	if err != nil {
		return nil, fmt.Errorf("load watch later list: %w", err)
	}
	seen := make(map[string]bool, len(watched)+len(watchLater))
	for _, entry := range watched {
		seen[textutil.Fold(entry.Title)] = true
	}
	for _, entry := range watchLater {
		seen[textutil.Fold(entry.Title)] = true
	}
	return seen, nil
}

// requiredMatches is 2 when the preference list has at least two entries,
// otherwise 1. An empty list therefore requires one match against an
// empty set, which can never be met.
func requiredMatches(listLen int) int {
	if listLen >= 2 {
		return 2
	}
	return 1
}

func countMatches(values []string, set map[string]struct{}) int {
	count := 0
	for _, value := range values {
		if _, ok := set[textutil.Fold(value)]; ok {
			count++
		}
	}
	return count
}
