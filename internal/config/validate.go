package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must be set")
	}
	if c.Matching.MaxResults <= 0 {
		problems = append(problems, "matching.max_results must be positive")
	}
	if c.Matching.MinRating < 0 || c.Matching.MinRating > 10 {
		problems = append(problems, "matching.min_rating must be between 0 and 10")
	}
	if c.Matching.MinVotes < 0 {
		problems = append(problems, "matching.min_votes must not be negative")
	}
	if c.Matching.PolitenessDelaySeconds < 0 {
		problems = append(problems, "matching.politeness_delay_seconds must not be negative")
	}
	if err := validateBaseURL("imdb.base_url", c.IMDB.BaseURL); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validateBaseURL("emotion.base_url", c.Emotion.BaseURL); err != nil {
		problems = append(problems, err.Error())
	}
	if c.IMDB.TimeoutSeconds <= 0 {
		problems = append(problems, "imdb.timeout_seconds must be positive")
	}
	if c.Emotion.TimeoutSeconds <= 0 {
		problems = append(problems, "emotion.timeout_seconds must be positive")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported (console, json)", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q is not supported (debug, info, warn, error)", c.Logging.Level))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func validateBaseURL(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must be set", field)
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute URL", field)
	}
	return nil
}
