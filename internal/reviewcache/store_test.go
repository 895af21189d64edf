package reviewcache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"moviematch/internal/services/imdb"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "reviews.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	reviews := []imdb.Review{
		{Text: "loved it", HelpfulVotes: 1500},
		{Text: "hated it", HelpfulVotes: 3},
	}
	if err := store.Save(ctx, "tt0001", reviews); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, found, err := store.Lookup(ctx, "tt0001")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].Text != "loved it" || got[0].HelpfulVotes != 1500 {
		t.Errorf("cached reviews mismatch: %+v", got)
	}

	if _, found, err := store.Lookup(ctx, "tt9999"); err != nil || found {
		t.Errorf("unknown id should miss: found=%v err=%v", found, err)
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tt0001", []imdb.Review{{Text: "first"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "tt0001", []imdb.Review{{Text: "second"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, _, err := store.Lookup(ctx, "tt0001")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "second" {
		t.Errorf("save should replace: %+v", got)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 cached title, got %d", count)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tt0001", nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty cache after clear, got %d", count)
	}
}

func TestDisabledStoreIsNoOp(t *testing.T) {
	store, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ctx := context.Background()

	if store.Enabled() {
		t.Error("store without a path should be disabled")
	}
	if err := store.Save(ctx, "tt0001", []imdb.Review{{Text: "x"}}); err != nil {
		t.Errorf("disabled save should be a no-op: %v", err)
	}
	if _, found, err := store.Lookup(ctx, "tt0001"); err != nil || found {
		t.Errorf("disabled lookup should miss: found=%v err=%v", found, err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("disabled close should succeed: %v", err)
	}
}

type fakeSource struct {
	calls   int
	reviews []imdb.Review
	err     error
}

func (f *fakeSource) FetchReviews(ctx context.Context, catalogID string) ([]imdb.Review, error) {
	f.calls++
	return f.reviews, f.err
}

func TestCachedSourceHitSkipsFetch(t *testing.T) {
	store := openTestStore(t)
	source := &fakeSource{reviews: []imdb.Review{{Text: "great"}}}
	cached := NewCachedSource(source, store, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		reviews, err := cached.FetchReviews(ctx, "tt0001")
		if err != nil {
			t.Fatalf("FetchReviews failed: %v", err)
		}
		if len(reviews) != 1 || reviews[0].Text != "great" {
			t.Errorf("reviews mismatch: %+v", reviews)
		}
	}
	if source.calls != 1 {
		t.Errorf("expected 1 upstream fetch, got %d", source.calls)
	}
}

func TestCachedSourcePropagatesFetchError(t *testing.T) {
	store := openTestStore(t)
	wantErr := errors.New("site unreachable")
	cached := NewCachedSource(&fakeSource{err: wantErr}, store, nil)

	if _, err := cached.FetchReviews(context.Background(), "tt0001"); !errors.Is(err, wantErr) {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestCachedSourceDisabledStoreAlwaysFetches(t *testing.T) {
	store, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	source := &fakeSource{reviews: []imdb.Review{{Text: "x"}}}
	cached := NewCachedSource(source, store, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cached.FetchReviews(ctx, "tt0001"); err != nil {
			t.Fatalf("FetchReviews failed: %v", err)
		}
	}
	if source.calls != 2 {
		t.Errorf("disabled cache should fetch every time, got %d calls", source.calls)
	}
}
