package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"moviematch/internal/catalog"
	"moviematch/internal/config"
	"moviematch/internal/logging"
	"moviematch/internal/recommend"
	"moviematch/internal/reviewcache"
	"moviematch/internal/services/emotion"
	"moviematch/internal/services/imdb"
	"moviematch/internal/userdata"
)

// commandContext lazily builds the shared dependencies behind the CLI
// commands. Everything is constructed once per process and passed
// explicitly to the components that need it.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	storeOnce sync.Once
	store     *userdata.Store
	storeErr  error

	cacheOnce sync.Once
	cache     *reviewcache.Store
	cacheErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) ensureStore() (*userdata.Store, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		c.store, c.storeErr = userdata.NewStore(cfg.Paths.DataDir, c.ensureLogger())
	})
	return c.store, c.storeErr
}

func (c *commandContext) ensureCache() (*reviewcache.Store, error) {
	c.cacheOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.cacheErr = err
			return
		}
		path := ""
		if cfg.ReviewCache.Enabled {
			path = cfg.ReviewCache.Path
		}
		c.cache, c.cacheErr = reviewcache.Open(path)
	})
	return c.cache, c.cacheErr
}

func (c *commandContext) close() {
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			c.ensureLogger().Warn("close review cache", logging.Error(err))
		}
	}
}

// reviewSource builds the review fetcher, wrapped with the cache when
// one is configured.
func (c *commandContext) reviewSource() (recommend.ReviewSource, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client := imdb.NewClient(
		imdb.WithBaseURL(cfg.IMDB.BaseURL),
		imdb.WithUserAgent(cfg.IMDB.UserAgent),
		imdb.WithTimeout(time.Duration(cfg.IMDB.TimeoutSeconds)*time.Second),
	)
	cache, err := c.ensureCache()
	if err != nil {
		return nil, err
	}
	if !cache.Enabled() {
		return client, nil
	}
	return reviewcache.NewCachedSource(client, cache, c.ensureLogger()), nil
}

func (c *commandContext) analyzer() (*emotion.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return emotion.NewClient(
		emotion.WithBaseURL(cfg.Emotion.BaseURL),
		emotion.WithTimeout(time.Duration(cfg.Emotion.TimeoutSeconds)*time.Second),
	), nil
}

func (c *commandContext) engine(onAccept func(recommend.Result)) (*recommend.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	reviews, err := c.reviewSource()
	if err != nil {
		return nil, err
	}
	analyzer, err := c.analyzer()
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(c.ensureLogger(), reviews, analyzer,
		recommend.WithThresholds(cfg.Matching.MinRating, cfg.Matching.MinVotes),
		recommend.WithPolitenessDelay(cfg.PolitenessDelay()),
		recommend.WithOnAccept(onAccept),
	), nil
}

func (c *commandContext) deriver() (*recommend.Deriver, error) {
	analyzer, err := c.analyzer()
	if err != nil {
		return nil, err
	}
	return recommend.NewDeriver(c.ensureLogger(), analyzer), nil
}

// loadCatalog reads both dataset tables and builds the rating join map.
func (c *commandContext) loadCatalog() ([]catalog.Entry, catalog.RatingLookup, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	entries, ratings := catalog.Load(c.ensureLogger(), cfg.Paths.CatalogPath, cfg.Paths.RatingsPath)
	return entries, catalog.NewRatingLookup(ratings), nil
}
