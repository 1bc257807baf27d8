package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/lesson"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4
  min_conns: 2

log:
  level: "debug"
  format: "text"

api:
  default_limit: 10
  max_limit: 50

extract:
  kind: "grammar"
  input_path: "books/n3.pdf"
  output_path: "out/grammar.json"
  chunk_size: 8
  sort_policy: "quality"
  no_examples: true
  lookahead: 2
  watch_debounce: "1s"

reading:
  disabled: true
  dictionary_path: "readings.yaml"

export:
  xlsx_path: "out/grammar.xlsx"
`

// chdirTemp moves into an empty directory so no ./config.yaml is found.
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server.write_timeout = %v, want default 30s", cfg.Server.WriteTimeout)
	}

	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.API.DefaultLimit != 10 || cfg.API.MaxLimit != 50 {
		t.Errorf("api = %+v", cfg.API)
	}

	ex := cfg.Extract
	if ex.Kind != domain.KindGrammar {
		t.Errorf("extract.kind = %q", ex.Kind)
	}
	if ex.InputPath != "books/n3.pdf" || ex.OutputPath != "out/grammar.json" {
		t.Errorf("extract paths = %q, %q", ex.InputPath, ex.OutputPath)
	}
	if ex.LessonSize() != 8 {
		t.Errorf("extract.LessonSize() = %d, want 8", ex.LessonSize())
	}
	if ex.SortPolicy != lesson.SortQuality {
		t.Errorf("extract.sort_policy = %q", ex.SortPolicy)
	}
	if !ex.NoExamples {
		t.Error("extract.no_examples should be true")
	}
	if ex.Lookahead != 2 {
		t.Errorf("extract.lookahead = %d, want 2", ex.Lookahead)
	}
	if ex.MinQuality != 3 {
		t.Errorf("extract.min_quality = %d, want default 3", ex.MinQuality)
	}
	if ex.Level != domain.LevelN3 {
		t.Errorf("extract.level = %q, want default N3", ex.Level)
	}
	if ex.WatchDebounce != time.Second {
		t.Errorf("extract.watch_debounce = %v, want 1s", ex.WatchDebounce)
	}

	if !cfg.Reading.Disabled || cfg.Reading.DictionaryPath != "readings.yaml" {
		t.Errorf("reading = %+v", cfg.Reading)
	}
	if cfg.Export.XLSXPath != "out/grammar.xlsx" {
		t.Errorf("export.xlsx_path = %q", cfg.Export.XLSXPath)
	}
}

func TestLoad_ExplicitPathArgument(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("EXTRACT_KIND", "vocabulary")
	t.Setenv("EXTRACT_CHUNK_SIZE", "25")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Extract.Kind != domain.KindVocabulary || cfg.Extract.LessonSize() != 25 {
		t.Errorf("extract = %+v", cfg.Extract)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Extract.Kind != domain.KindVocabulary {
		t.Errorf("extract.kind = %q, want vocabulary", cfg.Extract.Kind)
	}
	if cfg.Extract.LessonSize() != lesson.DefaultVocabularySize {
		t.Errorf("extract.LessonSize() = %d, want %d", cfg.Extract.LessonSize(), lesson.DefaultVocabularySize)
	}
	if cfg.Extract.SortPolicy != lesson.SortSource {
		t.Errorf("extract.sort_policy = %q, want source", cfg.Extract.SortPolicy)
	}
	if cfg.Extract.NoExamples || cfg.Reading.Disabled {
		t.Error("examples and readings should be enabled by default")
	}
	if cfg.Extract.WatchDebounce != 400*time.Millisecond {
		t.Errorf("extract.watch_debounce = %v, want 400ms", cfg.Extract.WatchDebounce)
	}
	if cfg.API.DefaultLimit != 20 || cfg.API.MaxLimit != 100 {
		t.Errorf("api = %+v", cfg.API)
	}
	if err := cfg.RequireDatabase(); err == nil {
		t.Error("RequireDatabase should fail without a DSN")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "extract:\n  kind: kanji\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "extract: kind") {
		t.Errorf("error = %v", err)
	}
}

func TestLessonSize_GrammarDefault(t *testing.T) {
	e := ExtractConfig{Kind: domain.KindGrammar}
	if got := e.LessonSize(); got != lesson.DefaultGrammarSize {
		t.Errorf("LessonSize() = %d, want %d", got, lesson.DefaultGrammarSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "max limit", mutate: func(c *Config) { c.API.MaxLimit = 0 }, wantErr: "api: max_limit"},
		{name: "default above max", mutate: func(c *Config) { c.API.DefaultLimit = 101 }, wantErr: "api: default_limit"},
		{name: "kind", mutate: func(c *Config) { c.Extract.Kind = "kanji" }, wantErr: "extract: kind"},
		{name: "negative vocabulary size", mutate: func(c *Config) { c.Extract.ChunkSize = -1 }, wantErr: "chunk_size"},
		{name: "vocabulary size one", mutate: func(c *Config) { c.Extract.ChunkSize = 1 }},
		{name: "grammar size too small", mutate: func(c *Config) {
			c.Extract.Kind = domain.KindGrammar
			c.Extract.ChunkSize = 4
		}, wantErr: "chunk_size for grammar"},
		{name: "grammar size too large", mutate: func(c *Config) {
			c.Extract.Kind = domain.KindGrammar
			c.Extract.ChunkSize = 9
		}, wantErr: "chunk_size for grammar"},
		{name: "grammar size eight", mutate: func(c *Config) {
			c.Extract.Kind = domain.KindGrammar
			c.Extract.ChunkSize = 8
		}},
		{name: "min quality negative", mutate: func(c *Config) { c.Extract.MinQuality = -1 }, wantErr: "min_quality"},
		{name: "min quality above max", mutate: func(c *Config) { c.Extract.MinQuality = 5 }, wantErr: "min_quality"},
		{name: "min quality zero", mutate: func(c *Config) { c.Extract.MinQuality = 0 }},
		{name: "sort policy", mutate: func(c *Config) { c.Extract.SortPolicy = "random" }, wantErr: "sort_policy"},
		{name: "lookahead", mutate: func(c *Config) { c.Extract.Lookahead = 4 }, wantErr: "lookahead"},
		{name: "level", mutate: func(c *Config) { c.Extract.Level = "N6" }, wantErr: "level"},
		{name: "debounce", mutate: func(c *Config) { c.Extract.WatchDebounce = -time.Second }, wantErr: "watch_debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequireDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{DSN: "postgres://localhost/db", MaxConns: 4, MinConns: 1}
	if err := cfg.RequireDatabase(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Database.MinConns = 5
	if err := cfg.RequireDatabase(); err == nil {
		t.Fatal("expected error when min_conns exceeds max_conns")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		API:    APIConfig{DefaultLimit: 20, MaxLimit: 100},
		Extract: ExtractConfig{
			Kind:       domain.KindVocabulary,
			MinQuality: 3,
			SortPolicy: lesson.SortSource,
			Lookahead:  3,
			Level:      domain.LevelN3,
		},
	}
}
