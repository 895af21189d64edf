package config

// Default returns the built-in configuration. Paths are expanded later by
// normalize so the defaults stay readable.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:     "~/.local/share/moviematch",
			LogDir:      "~/.local/share/moviematch/logs",
			CatalogPath: "~/.local/share/moviematch/full_title.basics.tsv",
			RatingsPath: "~/.local/share/moviematch/title.ratings.tsv",
		},
		Matching: Matching{
			MaxResults:             3,
			MinRating:              6.5,
			MinVotes:               50000,
			PolitenessDelaySeconds: 1,
		},
		IMDB: IMDB{
			BaseURL:        "https://www.imdb.com",
			UserAgent:      "Mozilla/5.0",
			TimeoutSeconds: 10,
		},
		Emotion: Emotion{
			BaseURL:        "http://127.0.0.1:8807",
			TimeoutSeconds: 30,
		},
		ReviewCache: ReviewCache{
			Enabled: true,
			Path:    "", // resolved under data_dir by normalize
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
