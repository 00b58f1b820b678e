package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration shared by the api, ingest and reader binaries.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	News     NewsConfig     `mapstructure:"news"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Deck     DeckConfig     `mapstructure:"deck"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	Mode string     `mapstructure:"mode" validate:"oneof=debug release test"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	Path            string        `mapstructure:"path"`
	URL             string        `mapstructure:"url"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return d.URL
	}
	return d.Path
}

// NewsConfig bounds the page sizes the API hands out.
type NewsConfig struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"min=1"`
	MaxLimit     int `mapstructure:"max_limit" validate:"gtefield=DefaultLimit"`
}

// FeedConfig configures the reader's pager and its HTTP client.
type FeedConfig struct {
	Endpoint  string        `mapstructure:"endpoint" validate:"required,url"`
	Limit     int           `mapstructure:"limit" validate:"min=1"`
	Threshold int           `mapstructure:"threshold" validate:"min=1"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// DeckConfig mirrors the carousel widget options the reader honours.
type DeckConfig struct {
	Direction            string        `mapstructure:"direction" validate:"oneof=horizontal vertical"`
	Loop                 bool          `mapstructure:"loop"`
	AutoplayDelay        time.Duration `mapstructure:"autoplay_delay"`
	DisableOnInteraction bool          `mapstructure:"disable_on_interaction"`
	Keyboard             bool          `mapstructure:"keyboard"`
}

type IngestConfig struct {
	BatchSize    int    `mapstructure:"batch_size" validate:"min=1"`
	ManifestPath string `mapstructure:"manifest_path"`
}

// Load reads configuration from configPath (or ./configs/config.yaml, ./config.yaml),
// applies defaults and NEWSDECK_* environment overrides, then validates it.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NEWSDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("feed.endpoint", "NEWS_ENDPOINT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/news.db")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.log_queries", false)

	v.SetDefault("news.default_limit", 10)
	v.SetDefault("news.max_limit", 100)

	v.SetDefault("feed.endpoint", "http://localhost:8080/api/v1/news")
	v.SetDefault("feed.limit", 10)
	v.SetDefault("feed.threshold", 8)
	v.SetDefault("feed.timeout", 10*time.Second)
	v.SetDefault("feed.user_agent", "newsdeck-reader/0.1")

	v.SetDefault("deck.direction", "horizontal")
	v.SetDefault("deck.loop", false)
	v.SetDefault("deck.autoplay_delay", 3*time.Second)
	v.SetDefault("deck.disable_on_interaction", false)
	v.SetDefault("deck.keyboard", true)

	v.SetDefault("ingest.batch_size", 50)
	v.SetDefault("ingest.manifest_path", "./data/staging")
}
