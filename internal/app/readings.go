package app

import (
	"log/slog"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/vocab"
	"github.com/heartmarshall/n3vocab/internal/config"
	"github.com/heartmarshall/n3vocab/internal/reading"
)

// NewReadingResolver builds the reading resolver for vocabulary runs. It
// returns a nil interface when reading enrichment is disabled.
func NewReadingResolver(cfg config.ReadingConfig, log *slog.Logger) (vocab.ReadingResolver, error) {
	if cfg.Disabled {
		log.Debug("reading enrichment disabled")
		return nil, nil
	}

	var overrides map[string]string
	if cfg.DictionaryPath != "" {
		var err error
		overrides, err = reading.LoadDictionary(cfg.DictionaryPath)
		if err != nil {
			return nil, err
		}
		log.Info("reading dictionary loaded",
			slog.String("path", cfg.DictionaryPath),
			slog.Int("terms", len(overrides)),
		)
	}

	r, err := reading.NewResolver(overrides)
	if err != nil {
		return nil, err
	}
	return r, nil
}
