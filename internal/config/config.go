package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bestsenki/storefront/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Supabase   SupabaseConfig
	Auth       AuthConfig
	Store      StoreConfig
	Cache      CacheConfig
	Checkout   CheckoutConfig `validate:"required"`
	Loyalty    LoyaltyConfig  `validate:"required"`
	Referral   ReferralConfig
	Catalog    CatalogConfig
	Email      EmailConfig
	Sentry     SentryConfig
	PubSub     PubSubConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address        string   `validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
}

type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

type AuthConfig struct {
	// Secret is the Supabase project JWT secret used to verify HS256 access tokens
	Secret    string
	AdminRole string `mapstructure:"admin_role"`
}

type StoreConfig struct {
	// LoyaltyBackend selects where loyalty points and referrals live
	LoyaltyBackend types.StoreBackend `mapstructure:"loyalty_backend" validate:"omitempty,oneof=postgres supabase"`
}

type CacheConfig struct {
	Enabled bool
}

type CheckoutConfig struct {
	SessionTTL          time.Duration `mapstructure:"session_ttl" validate:"required"`
	BalanceFetchTimeout time.Duration `mapstructure:"balance_fetch_timeout" validate:"required"`
	// PromoAttemptsPerMinute throttles promo code guesses within one session
	PromoAttemptsPerMinute int `mapstructure:"promo_attempts_per_minute" validate:"min=1"`
	PromoAttemptBurst      int `mapstructure:"promo_attempt_burst" validate:"min=1"`
}

type LoyaltyConfig struct {
	// EarnRate is the share of a paid order total credited back as points
	EarnRate float64 `mapstructure:"earn_rate" validate:"gte=0,lte=1"`
}

type ReferralConfig struct {
	BonusPoints int64 `mapstructure:"bonus_points" validate:"gte=0"`
}

type CatalogConfig struct {
	Enabled         bool
	StoreDomain     string        `mapstructure:"store_domain"`
	StorefrontToken string        `mapstructure:"storefront_token"`
	APIVersion      string        `mapstructure:"api_version"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	MaxRetries      int           `mapstructure:"max_retries"`
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
	ReplyTo     string `mapstructure:"reply_to"`
}

type SentryConfig struct {
	Enabled     bool
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type PubSubConfig struct {
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional and never overrides variables already exported
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storefront")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("auth.admin_role", "admin")
	v.SetDefault("store.loyalty_backend", types.StoreBackendPostgres)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("checkout.session_ttl", 30*time.Minute)
	v.SetDefault("checkout.balance_fetch_timeout", 3*time.Second)
	v.SetDefault("checkout.promo_attempts_per_minute", 10)
	v.SetDefault("checkout.promo_attempt_burst", 3)
	v.SetDefault("loyalty.earn_rate", 0.01)
	v.SetDefault("referral.bonus_points", 100)
	v.SetDefault("catalog.api_version", "2024-10")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.cache_ttl", 5*time.Minute)
	v.SetDefault("catalog.max_retries", 2)
	v.SetDefault("pubsub.max_retries", 3)
	v.SetDefault("pubsub.initial_interval", time.Second)
	v.SetDefault("pubsub.max_interval", 10*time.Second)
	v.SetDefault("pubsub.multiplier", 2.0)
	v.SetDefault("pubsub.max_elapsed_time", time.Minute)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a configuration for local development, scripts and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Store:      StoreConfig{LoyaltyBackend: types.StoreBackendPostgres},
		Cache:      CacheConfig{Enabled: true},
		Auth:       AuthConfig{AdminRole: "admin"},
		Checkout: CheckoutConfig{
			SessionTTL:             30 * time.Minute,
			BalanceFetchTimeout:    3 * time.Second,
			PromoAttemptsPerMinute: 10,
			PromoAttemptBurst:      3,
		},
		Loyalty:  LoyaltyConfig{EarnRate: 0.01},
		Referral: ReferralConfig{BonusPoints: 100},
		Catalog: CatalogConfig{
			APIVersion: "2024-10",
			Timeout:    10 * time.Second,
			CacheTTL:   5 * time.Minute,
			MaxRetries: 2,
		},
		PubSub: PubSubConfig{
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
			MaxElapsedTime:  time.Minute,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
