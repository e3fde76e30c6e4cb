package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Billing    BillingConfig
	Settlement SettlementConfig
	Email      EmailConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type BillingConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SettlementConfig holds fee and settlement tunables. Money values are
// cents, percentages whole percents.
type SettlementConfig struct {
	CreditCardFeePercent   float64
	DebitCardFeePercent    float64
	BoletoFlatFee          int64
	DebitSettleFeePercent  float64
	CreditSettleFeePercent float64
	MinBoletoAmount        int64
	BoletoDueDays          int
	StoreCreditDueDays     int
	PixTolerance           int64
	NotifyEmail            string
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	From     string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "genuino-erp")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "genuino")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("BILLING_BASE_URL", "https://api.billing.example.com")
	viper.SetDefault("BILLING_API_KEY", "")
	viper.SetDefault("BILLING_TIMEOUT_SECONDS", 15)
	viper.SetDefault("CREDIT_CARD_FEE_PERCENT", 3.5)
	viper.SetDefault("DEBIT_CARD_FEE_PERCENT", 1.0)
	viper.SetDefault("BOLETO_FLAT_FEE_CENTS", 350)
	viper.SetDefault("DEBIT_SETTLE_FEE_PERCENT", 0.9)
	viper.SetDefault("CREDIT_SETTLE_FEE_PERCENT", 3.24)
	viper.SetDefault("MIN_BOLETO_AMOUNT_CENTS", 500)
	viper.SetDefault("BOLETO_DUE_DAYS", 7)
	viper.SetDefault("STORE_CREDIT_DUE_DAYS", 30)
	viper.SetDefault("PIX_TOLERANCE_CENTS", 200)
	viper.SetDefault("NOTIFY_EMAIL", "")
	viper.SetDefault("EMAIL_HOST", "localhost")
	viper.SetDefault("EMAIL_PORT", 587)
	viper.SetDefault("EMAIL_FROM_NAME", "Genuino Comercial")
	viper.SetDefault("EMAIL_FROM", "pedidos@genuino.example.com")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
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
		Billing: BillingConfig{
			BaseURL: viper.GetString("BILLING_BASE_URL"),
			APIKey:  viper.GetString("BILLING_API_KEY"),
			Timeout: time.Duration(viper.GetInt("BILLING_TIMEOUT_SECONDS")) * time.Second,
		},
		Settlement: SettlementConfig{
			CreditCardFeePercent:   viper.GetFloat64("CREDIT_CARD_FEE_PERCENT"),
			DebitCardFeePercent:    viper.GetFloat64("DEBIT_CARD_FEE_PERCENT"),
			BoletoFlatFee:          viper.GetInt64("BOLETO_FLAT_FEE_CENTS"),
			DebitSettleFeePercent:  viper.GetFloat64("DEBIT_SETTLE_FEE_PERCENT"),
			CreditSettleFeePercent: viper.GetFloat64("CREDIT_SETTLE_FEE_PERCENT"),
			MinBoletoAmount:        viper.GetInt64("MIN_BOLETO_AMOUNT_CENTS"),
			BoletoDueDays:          viper.GetInt("BOLETO_DUE_DAYS"),
			StoreCreditDueDays:     viper.GetInt("STORE_CREDIT_DUE_DAYS"),
			PixTolerance:           viper.GetInt64("PIX_TOLERANCE_CENTS"),
			NotifyEmail:            viper.GetString("NOTIFY_EMAIL"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("EMAIL_HOST"),
			Port:     viper.GetInt("EMAIL_PORT"),
			Username: viper.GetString("EMAIL_USERNAME"),
			Password: viper.GetString("EMAIL_PASSWORD"),
			FromName: viper.GetString("EMAIL_FROM_NAME"),
			From:     viper.GetString("EMAIL_FROM"),
		},
	}
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
