package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	POS       POSConfig
	Debt      DebtConfig
	CEP       CEPConfig
	Advisor   AdvisorConfig
	Printer   PrinterConfig
	Email     EmailConfig
	OAuth     OAuthConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
	LogLevel   string // silent, error, warn, info
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RateLimitConfig allows Requests per Duration seconds
type RateLimitConfig struct {
	Requests int
	Duration int
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.Duration) * time.Second
}

type POSConfig struct {
	ConfirmWindow  time.Duration
	SearchLimit    int
	IdempotencyTTL time.Duration
}

type DebtConfig struct {
	TermDays     int
	PenaltyRate  decimal.Decimal
	MonthlyRate  decimal.Decimal
	Installments int
}

type CEPConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AdvisorConfig struct {
	Provider string
	Model    string
	APIKey   string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	PaperMM int
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// OAuthConfig enables "Sign in with Google" for existing staff accounts.
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// SeedConfig describes the first store and owner created by the seed command.
type SeedConfig struct {
	TenantName    string
	OwnerName     string
	OwnerEmail    string
	OwnerPassword string
	ManagerPIN    string
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "optica-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "optica")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("DB_SQLITE_PATH", "optica.db")
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("POS_CONFIRM_WINDOW", "3s")
	viper.SetDefault("POS_SEARCH_LIMIT", 5)
	viper.SetDefault("POS_IDEMPOTENCY_TTL", "24h")
	viper.SetDefault("DEBT_TERM_DAYS", 30)
	viper.SetDefault("DEBT_PENALTY_RATE", "0.02")
	viper.SetDefault("DEBT_MONTHLY_RATE", "0.01")
	viper.SetDefault("DEBT_INSTALLMENTS", 3)
	viper.SetDefault("CEP_BASE_URL", "https://viacep.com.br")
	viper.SetDefault("CEP_TIMEOUT", "4s")
	viper.SetDefault("ADVISOR_PROVIDER", "mock")
	viper.SetDefault("ADVISOR_MODEL", "gpt-4o-mini")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_PAPER_MM", 80)
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM_NAME", "Ótica")
	viper.SetDefault("SEED_TENANT_NAME", "Ótica Demo")
	viper.SetDefault("SEED_OWNER_NAME", "Administrador")
}

// Load reads .env into the process environment, then builds the Config from
// environment variables with defaults. configFile, when not empty, is read by
// viper as an additional source.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	viper.AutomaticEnv()
	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	penalty, err := decimal.NewFromString(viper.GetString("DEBT_PENALTY_RATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEBT_PENALTY_RATE: %w", err)
	}
	monthly, err := decimal.NewFromString(viper.GetString("DEBT_MONTHLY_RATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEBT_MONTHLY_RATE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("DB_SQLITE_PATH"),
			LogLevel:   viper.GetString("DB_LOG_LEVEL"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		POS: POSConfig{
			ConfirmWindow:  viper.GetDuration("POS_CONFIRM_WINDOW"),
			SearchLimit:    viper.GetInt("POS_SEARCH_LIMIT"),
			IdempotencyTTL: viper.GetDuration("POS_IDEMPOTENCY_TTL"),
		},
		Debt: DebtConfig{
			TermDays:     viper.GetInt("DEBT_TERM_DAYS"),
			PenaltyRate:  penalty,
			MonthlyRate:  monthly,
			Installments: viper.GetInt("DEBT_INSTALLMENTS"),
		},
		CEP: CEPConfig{
			BaseURL: viper.GetString("CEP_BASE_URL"),
			Timeout: viper.GetDuration("CEP_TIMEOUT"),
		},
		Advisor: AdvisorConfig{
			Provider: viper.GetString("ADVISOR_PROVIDER"),
			Model:    viper.GetString("ADVISOR_MODEL"),
			APIKey:   viper.GetString("OPENAI_API_KEY"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			PaperMM: viper.GetInt("PRINTER_PAPER_MM"),
		},
		Email: EmailConfig{
			SMTPHost:     viper.GetString("SMTP_HOST"),
			SMTPPort:     viper.GetInt("SMTP_PORT"),
			SMTPUsername: viper.GetString("SMTP_USERNAME"),
			SMTPPassword: viper.GetString("SMTP_PASSWORD"),
			FromName:     viper.GetString("SMTP_FROM_NAME"),
			FromEmail:    viper.GetString("SMTP_FROM_EMAIL"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		},
		Seed: SeedConfig{
			TenantName:    viper.GetString("SEED_TENANT_NAME"),
			OwnerName:     viper.GetString("SEED_OWNER_NAME"),
			OwnerEmail:    viper.GetString("SEED_OWNER_EMAIL"),
			OwnerPassword: viper.GetString("SEED_OWNER_PASSWORD"),
			ManagerPIN:    viper.GetString("SEED_MANAGER_PIN"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", c.Database.Driver)
	}
	if c.Debt.TermDays <= 0 {
		return fmt.Errorf("DEBT_TERM_DAYS must be positive")
	}
	if c.Debt.Installments <= 0 {
		return fmt.Errorf("DEBT_INSTALLMENTS must be positive")
	}
	if c.POS.ConfirmWindow <= 0 {
		return fmt.Errorf("POS_CONFIRM_WINDOW must be positive")
	}
	if c.App.Env == "production" && c.JWT.Secret == "change-this-secret-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

// Location returns the store's time zone, used to decide what "today" is.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
