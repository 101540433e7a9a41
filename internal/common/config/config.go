// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Corpus     CorpusConfig     `mapstructure:"corpus"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// MatchingConfig holds the ranking knobs. The scoring weights themselves are
// fixed tables in the engine packages, not configuration.
type MatchingConfig struct {
	TopK              int  `mapstructure:"top_k"`
	MinScore          int  `mapstructure:"min_score"`
	DisableSectorVeto bool `mapstructure:"disable_sector_veto"`
}

// CorpusConfig selects where scheme records are loaded from.
type CorpusConfig struct {
	Source         string   `mapstructure:"source"` // file | s3 | postgres | elasticsearch
	Path           string   `mapstructure:"path"`   // file source
	Table          string   `mapstructure:"table"`  // postgres source
	Index          string   `mapstructure:"index"`  // elasticsearch source
	S3             S3Config `mapstructure:"s3"`
	ReloadInterval int      `mapstructure:"reload_interval"` // milliseconds, 0 disables the poller
	MaxRecords     int      `mapstructure:"max_records"`
}

type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Key       string `mapstructure:"key"`
	Endpoint  string `mapstructure:"endpoint"` // optional, for R2-style object stores
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EnrichmentConfig holds settings for the post-ranking enrichment client.
type EnrichmentConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url"`
	Timeout  int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL int    `mapstructure:"cache_ttl"` // milliseconds
	MaxBatch int    `mapstructure:"max_batch"`
}

// VocabularyConfig points at an optional parser vocabulary extension file.
type VocabularyConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
