package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	API       APIConfig       `mapstructure:"api"`
	Advisory  AdvisoryConfig  `mapstructure:"advisory"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Contacts  ContactsConfig  `mapstructure:"contacts"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	GRPCPort        int           `mapstructure:"grpc_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type NATSConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url"`
	StreamName string `mapstructure:"stream_name"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// APIConfig controls inbound authentication. With no keys configured
// the API runs open, which suits single-user local deployments.
type APIConfig struct {
	Keys       []string `mapstructure:"keys"`
	AdminToken string   `mapstructure:"admin_token"`
}

// AdvisoryConfig holds the AI second-opinion settings. The API key is
// read from OPENAI_API_KEY when not set explicitly.
type AdvisoryConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type AnalysisConfig struct {
	Brands []string `mapstructure:"brands"`
}

type ContactsConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables. A
// missing config file is not an error; defaults and environment
// variables are enough to run.
func Load(configPath string) (*Config, error) {
	// Optional .env file for local runs
	_ = godotenv.Load()

	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/trustguard")
	}

	// Environment variables
	v.SetEnvPrefix("TRUSTGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("app.environment", "TRUSTGUARD_APP_ENVIRONMENT")
	v.BindEnv("server.host", "TRUSTGUARD_SERVER_HOST")
	v.BindEnv("server.http_port", "TRUSTGUARD_SERVER_HTTP_PORT")
	v.BindEnv("server.grpc_port", "TRUSTGUARD_SERVER_GRPC_PORT")
	v.BindEnv("redis.enabled", "TRUSTGUARD_REDIS_ENABLED")
	v.BindEnv("redis.host", "TRUSTGUARD_REDIS_HOST")
	v.BindEnv("redis.port", "TRUSTGUARD_REDIS_PORT")
	v.BindEnv("redis.password", "TRUSTGUARD_REDIS_PASSWORD")
	v.BindEnv("nats.enabled", "TRUSTGUARD_NATS_ENABLED")
	v.BindEnv("nats.url", "TRUSTGUARD_NATS_URL")
	v.BindEnv("ratelimit.enabled", "TRUSTGUARD_RATELIMIT_ENABLED")
	v.BindEnv("logger.level", "TRUSTGUARD_LOGGER_LEVEL")
	v.BindEnv("logger.format", "TRUSTGUARD_LOGGER_FORMAT")
	v.BindEnv("api.admin_token", "TRUSTGUARD_API_ADMIN_TOKEN")
	v.BindEnv("advisory.api_key", "TRUSTGUARD_ADVISORY_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("advisory.model", "TRUSTGUARD_ADVISORY_MODEL")
	v.BindEnv("contacts.path", "TRUSTGUARD_CONTACTS_PATH")

	setDefaults(v)

	// Read config file if one is present
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "trustguard")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "0.1.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.grpc_port", 9090)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "trustguard:")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream_name", "TRUSTGUARD_VERDICTS")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("advisory.model", "gpt-4o-mini")
	v.SetDefault("advisory.temperature", 0.2)
	v.SetDefault("advisory.timeout", 60*time.Second)
	v.SetDefault("advisory.cache_ttl", 15*time.Minute)

	// analysis.brands has no default; an empty list means the analyzer
	// falls back to its built-in brand set.

	v.SetDefault("contacts.path", "data/trusted_contacts.json")
}

func (c *Config) validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.Server.GRPCPort < 1 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("server.grpc_port out of range: %d", c.Server.GRPCPort)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute < 1 {
		return fmt.Errorf("ratelimit.requests_per_minute must be positive: %d", c.RateLimit.RequestsPerMinute)
	}
	switch c.Logger.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console: %q", c.Logger.Format)
	}
	if c.Contacts.Path == "" {
		return fmt.Errorf("contacts.path must not be empty")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
