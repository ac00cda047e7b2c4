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

// Config holds everything the server and CLI tools read at start-up.
type Config struct {
	AppEnv   string
	LogLevel string
	HTTP     HTTPConfig
	DB       DBConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Captcha  CaptchaConfig
	Images   ImagesConfig
	CORS     CORSConfig
}

type HTTPConfig struct {
	Addr string
}

// DBConfig selects the GORM driver. DSN wins over the individual pg
// parts when both are set.
type DBConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Backend string
}

type AuthConfig struct {
	InvitationMode bool
	RateLimitRPS   float64
	RateLimitBurst int
}

type CaptchaConfig struct {
	Secret    string
	SiteKey   string
	MinScore  float64
	VerifyURL string
}

// Enabled reports whether registrations must pass a CAPTCHA check.
func (c CaptchaConfig) Enabled() bool { return c.Secret != "" }

type ImagesConfig struct {
	Backend         string
	Dir             string
	AzureAccountURL string
	AzureContainer  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// PostgresDSN renders the pg parts in key/value form for lib/pq and pgx.
func (d DBConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads a local .env, an optional config.yaml and HANGAR_* env vars,
// in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/hangar")
	v.AddConfigPath(".")
	if configPath := os.Getenv("HANGAR_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("HANGAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log.level", "")
	v.SetDefault("http.addr", ":8080")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("pg.host", "localhost")
	v.SetDefault("pg.port", 5432)
	v.SetDefault("pg.user", "hangar")
	v.SetDefault("pg.password", "")
	v.SetDefault("pg.name", "hangar")
	v.SetDefault("pg.sslmode", "disable")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl_hours", 72)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.backend", "memory")

	v.SetDefault("auth.invitation_mode", false)
	v.SetDefault("auth.rate_limit_rps", 2.0)
	v.SetDefault("auth.rate_limit_burst", 10)

	v.SetDefault("captcha.secret", "")
	v.SetDefault("captcha.site_key", "")
	v.SetDefault("captcha.min_score", 0.5)
	v.SetDefault("captcha.verify_url", "https://www.google.com/recaptcha/api/siteverify")

	v.SetDefault("images.backend", "local")
	v.SetDefault("images.dir", "uploads/aircraft_images")
	v.SetDefault("images.azure_account_url", "")
	v.SetDefault("images.azure_container", "aircraft-images")

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppEnv:   v.GetString("app_env"),
		LogLevel: v.GetString("log.level"),
		HTTP:     HTTPConfig{Addr: v.GetString("http.addr")},
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			DSN:      v.GetString("db.dsn"),
			Host:     v.GetString("pg.host"),
			Port:     v.GetInt("pg.port"),
			User:     v.GetString("pg.user"),
			Password: v.GetString("pg.password"),
			Name:     v.GetString("pg.name"),
			SSLMode:  v.GetString("pg.sslmode"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			TTL:    time.Duration(v.GetInt("jwt.ttl_hours")) * time.Hour,
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{Backend: strings.ToLower(v.GetString("cache.backend"))},
		Auth: AuthConfig{
			InvitationMode: v.GetBool("auth.invitation_mode"),
			RateLimitRPS:   v.GetFloat64("auth.rate_limit_rps"),
			RateLimitBurst: v.GetInt("auth.rate_limit_burst"),
		},
		Captcha: CaptchaConfig{
			Secret:    v.GetString("captcha.secret"),
			SiteKey:   v.GetString("captcha.site_key"),
			MinScore:  v.GetFloat64("captcha.min_score"),
			VerifyURL: v.GetString("captcha.verify_url"),
		},
		Images: ImagesConfig{
			Backend:         strings.ToLower(v.GetString("images.backend")),
			Dir:             v.GetString("images.dir"),
			AzureAccountURL: v.GetString("images.azure_account_url"),
			AzureContainer:  v.GetString("images.azure_container"),
		},
		CORS: CORSConfig{AllowedOrigins: v.GetStringSlice("cors.allowed_origins")},
	}
}

func validate(cfg *Config) error {
	if cfg.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}

	switch cfg.DB.Driver {
	case "postgres":
	case "sqlite":
		if cfg.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("invalid db.driver: %s (must be postgres or sqlite)", cfg.DB.Driver)
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if cfg.JWT.TTL <= 0 {
		return fmt.Errorf("jwt.ttl_hours must be greater than 0")
	}

	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid cache.backend: %s (must be memory or redis)", cfg.Cache.Backend)
	}

	if cfg.Captcha.MinScore < 0 || cfg.Captcha.MinScore > 1 {
		return fmt.Errorf("captcha.min_score must be between 0 and 1")
	}

	switch cfg.Images.Backend {
	case "local":
		if cfg.Images.Dir == "" {
			return fmt.Errorf("images.dir is required for the local image backend")
		}
	case "azure":
		if cfg.Images.AzureAccountURL == "" || cfg.Images.AzureContainer == "" {
			return fmt.Errorf("images.azure_account_url and images.azure_container are required for the azure image backend")
		}
	default:
		return fmt.Errorf("invalid images.backend: %s (must be local or azure)", cfg.Images.Backend)
	}

	return nil
}
