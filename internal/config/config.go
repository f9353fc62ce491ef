// README: Config loader: .env, optional configs/config.yaml, TRAVELBOT_* env overrides, defaults and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "TRAVELBOT"

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type HTTPConfig struct {
	Addr               string        `mapstructure:"addr"`
	AllowedOrigins     []string      `mapstructure:"allowed_origins"`
	RateLimitPerSecond float64       `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int           `mapstructure:"rate_limit_burst"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ConversationConfig struct {
	Backend  string `mapstructure:"backend"`
	RedisKey string `mapstructure:"redis_key"`
}

type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AmadeusConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type BookingConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Host    string        `mapstructure:"host"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AIConfig struct {
	GeminiKey   string  `mapstructure:"gemini_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

type MapsConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type RouterConfig struct {
	DefaultOrigin     string        `mapstructure:"default_origin"`
	PriceMin          int           `mapstructure:"price_min"`
	PriceMax          int           `mapstructure:"price_max"`
	Currency          string        `mapstructure:"currency"`
	EnrichmentTimeout time.Duration `mapstructure:"enrichment_timeout"`
}

type DestinationsConfig struct {
	File string `mapstructure:"file"`
}

type Config struct {
	HTTP         HTTPConfig         `mapstructure:"http"`
	Log          LogConfig          `mapstructure:"log"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	DB           DBConfig           `mapstructure:"db"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Amadeus      AmadeusConfig      `mapstructure:"amadeus"`
	Booking      BookingConfig      `mapstructure:"booking"`
	AI           AIConfig           `mapstructure:"ai"`
	Maps         MapsConfig         `mapstructure:"maps"`
	Router       RouterConfig       `mapstructure:"router"`
	Destinations DestinationsConfig `mapstructure:"destinations"`
}

// providerEnv binds the provider credentials to the variable names their
// consoles hand out, in addition to the prefixed form.
var providerEnv = map[string]string{
	"ai.gemini_key":      "GEMINI_API_KEY",
	"amadeus.api_key":    "AMADEUS_API_KEY",
	"amadeus.api_secret": "AMADEUS_API_SECRET",
	"booking.api_key":    "RAPIDAPI_KEY",
	"maps.api_key":       "GOOGLE_MAPS_API_KEY",
}

// Load reads .env (if present) and then config.yaml from ./configs or the
// working directory. A missing config file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New(), "./configs", ".")
}

func load(v *viper.Viper, searchPaths ...string) (Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range providerEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Conversation.Backend = strings.ToLower(strings.TrimSpace(cfg.Conversation.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Every key gets a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.rate_limit_per_second", 5)
	v.SetDefault("http.rate_limit_burst", 10)
	v.SetDefault("http.request_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("conversation.backend", BackendMemory)
	v.SetDefault("conversation.redis_key", "travelbot:conversation")

	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("amadeus.base_url", "https://test.api.amadeus.com")
	v.SetDefault("amadeus.api_key", "")
	v.SetDefault("amadeus.api_secret", "")
	v.SetDefault("amadeus.timeout", 15*time.Second)

	v.SetDefault("booking.base_url", "https://booking-com15.p.rapidapi.com")
	v.SetDefault("booking.host", "")
	v.SetDefault("booking.api_key", "")
	v.SetDefault("booking.timeout", 30*time.Second)

	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.temperature", 0.7)

	v.SetDefault("maps.api_key", "")

	v.SetDefault("router.default_origin", "NYC")
	v.SetDefault("router.price_min", 50)
	v.SetDefault("router.price_max", 500)
	v.SetDefault("router.currency", "USD")
	v.SetDefault("router.enrichment_timeout", 8*time.Second)

	v.SetDefault("destinations.file", "")
}

// Validate reports the first inconsistent setting, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	switch c.Conversation.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: conversation.backend=redis needs redis.addr", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%w: conversation.backend=postgres needs db.dsn", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown conversation.backend %q", ErrInvalidConfig, c.Conversation.Backend)
	}

	if c.HTTP.Addr == "" {
		return fmt.Errorf("%w: http.addr is empty", ErrInvalidConfig)
	}
	if c.HTTP.RateLimitPerSecond < 0 || c.HTTP.RateLimitBurst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidConfig)
	}
	if c.Router.PriceMin < 0 || c.Router.PriceMin > c.Router.PriceMax {
		return fmt.Errorf("%w: router price band %d-%d", ErrInvalidConfig, c.Router.PriceMin, c.Router.PriceMax)
	}
	if c.Router.EnrichmentTimeout <= 0 {
		return fmt.Errorf("%w: router.enrichment_timeout must be positive", ErrInvalidConfig)
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("%w: ai.temperature %.2f out of range", ErrInvalidConfig, c.AI.Temperature)
	}
	return nil
}
