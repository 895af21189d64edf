package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newEmotionServer(t *testing.T, responses map[string][]Score) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emotions" {
			http.NotFound(w, r)
			return
		}
		calls++
		var request struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string][]Score{"emotions": responses[request.Text]})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestTopEmotionsAggregatesAcrossTexts(t *testing.T) {
	server, calls := newEmotionServer(t, map[string][]Score{
		"first": {
			{Label: "Joy", Score: 0.6},
			{Label: "fear", Score: 0.3},
			{Label: "anger", Score: 0.1},
		},
		"second": {
			{Label: "joy", Score: 0.2},
			{Label: "sadness", Score: 0.7},
			{Label: "surprise", Score: 0.1},
		},
	})

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	labels, err := client.TopEmotions(context.Background(), []string{"first", "", "second"}, 3)
	if err != nil {
		t.Fatalf("TopEmotions failed: %v", err)
	}

	// joy totals 0.8 across both texts and labels fold to lowercase.
	want := []string{"joy", "sadness", "fear"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels mismatch: got %v, want %v", labels, want)
	}
	// Blank text is skipped without a service call.
	if *calls != 2 {
		t.Errorf("expected 2 service calls, got %d", *calls)
	}
}

func TestTopEmotionsTieKeepsFirstSeen(t *testing.T) {
	server, _ := newEmotionServer(t, map[string][]Score{
		"text": {
			{Label: "fear", Score: 0.4},
			{Label: "joy", Score: 0.4},
			{Label: "anger", Score: 0.4},
		},
	})

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	labels, err := client.TopEmotions(context.Background(), []string{"text"}, 2)
	if err != nil {
		t.Fatalf("TopEmotions failed: %v", err)
	}
	if !reflect.DeepEqual(labels, []string{"fear", "joy"}) {
		t.Errorf("tie should keep first-seen order: %v", labels)
	}
}

func TestTopEmotionsEmptyInput(t *testing.T) {
	client := NewClient(WithBaseURL("http://127.0.0.1:0"))
	labels, err := client.TopEmotions(context.Background(), []string{"", "   "}, 3)
	if err != nil {
		t.Fatalf("TopEmotions failed: %v", err)
	}
	if len(labels) != 0 {
		t.Errorf("expected no labels for blank input, got %v", labels)
	}
}

func TestPolarity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sentiment" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"polarity": 0.35}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	polarity, err := client.Polarity(context.Background(), "really enjoyed it")
	if err != nil {
		t.Fatalf("Polarity failed: %v", err)
	}
	if polarity != 0.35 {
		t.Errorf("polarity mismatch: %v", polarity)
	}
	if polarity < LikeThreshold {
		t.Errorf("polarity %v should clear the like threshold", polarity)
	}
}

func TestPolarityRequiresText(t *testing.T) {
	client := NewClient()
	if _, err := client.Polarity(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestPostErrorIncludesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.Emotions(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
}
