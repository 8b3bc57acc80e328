package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Env      string
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
	Stripe   StripeConfig
	Jackpot  JackpotConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port         string
	FrontendURL  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AppConfig holds session settings
type AppConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	RefreshWindow time.Duration
}

// StripeConfig holds payment provider settings
type StripeConfig struct {
	WebhookSecret string
}

// JackpotConfig holds scheduling for competition results
type JackpotConfig struct {
	ResultsCron string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from the environment (and an optional .env file)
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Env: v.GetString("APP_ENV"),
		Database: DatabaseConfig{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			DBName:     v.GetString("DB_NAME"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
		},
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			FrontendURL:  v.GetString("FRONTEND_URL"),
			ReadTimeout:  time.Duration(v.GetInt("SERVER_READ_TIMEOUT_SECONDS")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT_SECONDS")) * time.Second,
		},
		App: AppConfig{
			JWTSecret:     v.GetString("JWT_SECRET"),
			TokenTTL:      time.Duration(v.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
			RefreshWindow: time.Duration(v.GetInt("TOKEN_REFRESH_WINDOW_MINUTES")) * time.Minute,
		},
		Stripe: StripeConfig{
			WebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		},
		Jackpot: JackpotConfig{
			ResultsCron: v.GetString("RESULTS_CRON"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "art_contest")
	v.SetDefault("DB_SQLITE_PATH", "art_contest.db")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT_SECONDS", 15)
	v.SetDefault("TOKEN_TTL_HOURS", 24)
	v.SetDefault("TOKEN_REFRESH_WINDOW_MINUTES", 60)
	v.SetDefault("RESULTS_CRON", "*/15 * * * *")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.App.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported DB_DRIVER %q (expected postgres or sqlite)", c.Database.Driver)
	}

	if c.IsProduction() && c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required in production")
	}

	if c.App.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}
