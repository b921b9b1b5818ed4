package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Payment  PaymentConfig
	Email    EmailConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type PaymentConfig struct {
	APIBaseURL         string
	SecretKey          string
	WebhookSecret      string
	SuccessURL         string
	CancelURL          string
	Currency           string
	SignatureTolerance time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type BookingConfig struct {
	MaxHours      int
	PendingTTL    time.Duration
	SweepInterval time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PAYMENT_API_BASE_URL", "https://api.stripe.com")
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("PAYMENT_SIGNATURE_TOLERANCE_SECONDS", 300)
	viper.SetDefault("BOOKING_MAX_HOURS", 6)
	viper.SetDefault("BOOKING_PENDING_TTL_MINUTES", 60)
	viper.SetDefault("BOOKING_SWEEP_INTERVAL_MINUTES", 15)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Payment: PaymentConfig{
			APIBaseURL:         viper.GetString("PAYMENT_API_BASE_URL"),
			SecretKey:          viper.GetString("PAYMENT_SECRET_KEY"),
			WebhookSecret:      viper.GetString("PAYMENT_WEBHOOK_SECRET"),
			SuccessURL:         viper.GetString("PAYMENT_SUCCESS_URL"),
			CancelURL:          viper.GetString("PAYMENT_CANCEL_URL"),
			Currency:           viper.GetString("PAYMENT_CURRENCY"),
			SignatureTolerance: time.Duration(viper.GetInt("PAYMENT_SIGNATURE_TOLERANCE_SECONDS")) * time.Second,
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Booking: BookingConfig{
			MaxHours:      viper.GetInt("BOOKING_MAX_HOURS"),
			PendingTTL:    time.Duration(viper.GetInt("BOOKING_PENDING_TTL_MINUTES")) * time.Minute,
			SweepInterval: time.Duration(viper.GetInt("BOOKING_SWEEP_INTERVAL_MINUTES")) * time.Minute,
		},
	}

	return config, nil
}
