package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/n3vocab/internal/config"
)

func TestNewReadingResolver_Disabled(t *testing.T) {
	r, err := NewReadingResolver(config.ReadingConfig{Disabled: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestNewReadingResolver_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("terms:\n  - term: 明日\n    yomi: あした\n"), 0o644))

	r, err := NewReadingResolver(config.ReadingConfig{DictionaryPath: path}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NotNil(t, r)

	yomi, ok := r.Reading("明日")
	assert.True(t, ok)
	assert.Equal(t, "あした", yomi)
}

func TestNewReadingResolver_MissingDictionary(t *testing.T) {
	_, err := NewReadingResolver(
		config.ReadingConfig{DictionaryPath: filepath.Join(t.TempDir(), "missing.yaml")},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	assert.Error(t, err)
}
