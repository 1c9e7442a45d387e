package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Stripe configuration.
	StripeSecretKey      string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`

	// Booking configuration.
	AppointmentFeeCents int64  `mapstructure:"APPOINTMENT_FEE_CENTS"`
	PaymentCurrency     string `mapstructure:"PAYMENT_CURRENCY"`
	BookingTimezone     string `mapstructure:"BOOKING_TIMEZONE"`
}

var AppConfig Config

// bookingLocation is resolved once from BOOKING_TIMEZONE during LoadConfig.
var bookingLocation *time.Location

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_PUBLISHABLE_KEY", "")
	viper.SetDefault("APPOINTMENT_FEE_CENTS", 5000)
	viper.SetDefault("PAYMENT_CURRENCY", "usd")
	viper.SetDefault("BOOKING_TIMEZONE", "Local")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	loc, err := time.LoadLocation(AppConfig.BookingTimezone)
	if err != nil {
		log.Fatalf("Invalid BOOKING_TIMEZONE %q: %v", AppConfig.BookingTimezone, err)
	}
	bookingLocation = loc
}

// BookingLocation returns the timezone appointments are booked in.
func BookingLocation() *time.Location {
	if bookingLocation == nil {
		return time.Local
	}
	return bookingLocation
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
