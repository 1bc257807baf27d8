package config

import (
	"errors"
	"fmt"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/vocab"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

// Grammar lessons hold between MinGrammarSize and MaxGrammarSize patterns.
const (
	MinGrammarSize = 5
	MaxGrammarSize = 8
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535] (got %d)", c.Server.Port)
	}
	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Extract.Validate(); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return nil
}

// RequireDatabase reports an error when no database DSN is configured.
func (c *Config) RequireDatabase() error {
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required (DATABASE_DSN)")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	return nil
}

// Validate checks the extraction settings. It is exported because CLI flags
// override loaded values and the result is validated again.
func (e *ExtractConfig) Validate() error {
	if !e.Kind.IsValid() {
		return fmt.Errorf("kind must be %q or %q (got %q)", domain.KindVocabulary, domain.KindGrammar, e.Kind)
	}

	size := e.LessonSize()
	if e.Kind == domain.KindGrammar {
		if size < MinGrammarSize || size > MaxGrammarSize {
			return fmt.Errorf("chunk_size for grammar must be in [%d,%d] (got %d)", MinGrammarSize, MaxGrammarSize, size)
		}
	} else if size < 1 {
		return fmt.Errorf("chunk_size must be >= 1 (got %d)", size)
	}

	if e.MinQuality < 0 || e.MinQuality > domain.MaxQualityScore {
		return fmt.Errorf("min_quality must be in [0,%d] (got %d)", domain.MaxQualityScore, e.MinQuality)
	}
	if !e.SortPolicy.IsValid() {
		return fmt.Errorf("sort_policy must be \"source\" or \"quality\" (got %q)", e.SortPolicy)
	}
	if e.Lookahead < 1 || e.Lookahead > vocab.MaxLookahead {
		return fmt.Errorf("lookahead must be in [1,%d] (got %d)", vocab.MaxLookahead, e.Lookahead)
	}
	if !e.Level.IsValid() {
		return fmt.Errorf("level must be one of N5..N1 (got %q)", e.Level)
	}
	if e.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must be >= 0 (got %s)", e.WatchDebounce)
	}
	return nil
}

func (a *APIConfig) validate() error {
	if a.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be >= 1 (got %d)", a.MaxLimit)
	}
	if a.DefaultLimit < 1 || a.DefaultLimit > a.MaxLimit {
		return fmt.Errorf("default_limit must be in [1,%d] (got %d)", a.MaxLimit, a.DefaultLimit)
	}
	return nil
}
