package config

import (
	"path/filepath"
	"strings"
)

// normalize expands path fields and fills derived defaults. Runs after
// decoding, before validation.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return err
	}
	if c.Paths.RatingsPath, err = expandPath(c.Paths.RatingsPath); err != nil {
		return err
	}

	if strings.TrimSpace(c.ReviewCache.Path) == "" {
		c.ReviewCache.Path = filepath.Join(c.Paths.DataDir, "review_cache.db")
	} else if c.ReviewCache.Path, err = expandPath(c.ReviewCache.Path); err != nil {
		return err
	}

	c.IMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.IMDB.BaseURL), "/")
	c.Emotion.BaseURL = strings.TrimRight(strings.TrimSpace(c.Emotion.BaseURL), "/")
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	return nil
}
