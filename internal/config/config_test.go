package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, resolved, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Error("exists should be false for a missing file")
	}
	if resolved != missing {
		t.Errorf("resolved path mismatch: got %q", resolved)
	}
	if cfg.Matching.MaxResults != 3 {
		t.Errorf("default max_results should be 3, got %d", cfg.Matching.MaxResults)
	}
	if cfg.Matching.MinRating != 6.5 {
		t.Errorf("default min_rating should be 6.5, got %v", cfg.Matching.MinRating)
	}
	if cfg.Matching.MinVotes != 50000 {
		t.Errorf("default min_votes should be 50000, got %d", cfg.Matching.MinVotes)
	}
	if !strings.HasSuffix(cfg.ReviewCache.Path, "review_cache.db") {
		t.Errorf("review cache path should default under data dir, got %q", cfg.ReviewCache.Path)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `"
catalog_path = "` + filepath.Join(dir, "basics.tsv") + `"
ratings_path = "` + filepath.Join(dir, "ratings.tsv") + `"

[matching]
max_results = 5
politeness_delay_seconds = 0

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("exists should be true")
	}
	if cfg.Matching.MaxResults != 5 {
		t.Errorf("max_results should be 5, got %d", cfg.Matching.MaxResults)
	}
	if cfg.PolitenessDelay() != 0 {
		t.Errorf("politeness delay should be 0, got %v", cfg.PolitenessDelay())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level should be debug, got %q", cfg.Logging.Level)
	}
	// Untouched sections keep defaults.
	if cfg.IMDB.BaseURL != "https://www.imdb.com" {
		t.Errorf("imdb base url should keep default, got %q", cfg.IMDB.BaseURL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[matching]
max_results = 0

[logging]
format = "xml"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("Load should reject invalid configuration")
	}
	if !strings.Contains(err.Error(), "max_results") {
		t.Errorf("error should mention max_results: %v", err)
	}
	if !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("error should mention logging.format: %v", err)
	}
}

func TestValidateBaseURL(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	cfg.Emotion.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject a relative emotion base url")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[matching]") {
		t.Error("sample should contain a [matching] section")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.ReviewCache.Path = filepath.Join(dir, "cache", "reviews.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, d := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, filepath.Join(dir, "cache")} {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Errorf("directory %q should exist", d)
		}
	}
}
