package config

import (
	"time"

	"github.com/heartmarshall/n3vocab/internal/app/extractor/lesson"
	"github.com/heartmarshall/n3vocab/internal/domain"
)

// Config is the root application configuration shared by the extract,
// publish and server commands.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	API      APIConfig      `yaml:"api"`
	Extract  ExtractConfig  `yaml:"extract"`
	Reading  ReadingConfig  `yaml:"reading"`
	Export   ExportConfig   `yaml:"export"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-ID"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. The DSN is only
// required by commands that talk to the database (see RequireDatabase).
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// APIConfig holds pagination limits of the lesson API.
type APIConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"API_DEFAULT_LIMIT" env-default:"20"`
	MaxLimit     int `yaml:"max_limit"     env:"API_MAX_LIMIT"     env-default:"100"`
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	Kind             domain.Kind       `yaml:"kind"              env:"EXTRACT_KIND"              env-default:"vocabulary"`
	InputPath        string            `yaml:"input_path"        env:"EXTRACT_INPUT_PATH"`
	OutputPath       string            `yaml:"output_path"       env:"EXTRACT_OUTPUT_PATH"`
	ChunkSize        int               `yaml:"chunk_size"        env:"EXTRACT_CHUNK_SIZE"`
	MinQuality       int               `yaml:"min_quality"       env:"EXTRACT_MIN_QUALITY"       env-default:"3"`
	SortPolicy       lesson.SortPolicy `yaml:"sort_policy"       env:"EXTRACT_SORT_POLICY"       env-default:"source"`
	NoExamples       bool              `yaml:"no_examples"       env:"EXTRACT_NO_EXAMPLES"`
	Lookahead        int               `yaml:"lookahead"         env:"EXTRACT_LOOKAHEAD"         env-default:"3"`
	Level            domain.Level      `yaml:"level"             env:"EXTRACT_LEVEL"             env-default:"N3"`
	WatchDebounce    time.Duration     `yaml:"watch_debounce"    env:"EXTRACT_WATCH_DEBOUNCE"    env-default:"400ms"`
}

// ReadingConfig controls reading enrichment of kanji-only entries.
// Booleans are phrased negatively because cleanenv applies env-default to
// zero values, which would turn an explicit "false" in YAML back on.
type ReadingConfig struct {
	Disabled       bool   `yaml:"disabled"        env:"READING_DISABLED"`
	DictionaryPath string `yaml:"dictionary_path" env:"READING_DICTIONARY_PATH"`
}

// ExportConfig holds optional export targets.
type ExportConfig struct {
	XLSXPath string `yaml:"xlsx_path" env:"EXPORT_XLSX_PATH"`
}

// LessonSize returns the configured lesson size, or the default for the
// configured kind when ChunkSize is zero.
func (e ExtractConfig) LessonSize() int {
	if e.ChunkSize != 0 {
		return e.ChunkSize
	}
	if e.Kind == domain.KindGrammar {
		return lesson.DefaultGrammarSize
	}
	return lesson.DefaultVocabularySize
}
