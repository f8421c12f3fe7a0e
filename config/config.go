package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported booking store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Assistant modes.
const (
	AssistantLocal  = "local"
	AssistantGemini = "gemini"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`

	// Booking store.
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Clinic calendar.
	ClinicTimezone string   `mapstructure:"CLINIC_TIMEZONE"`
	SlotTimes      []string `mapstructure:"SLOT_TIMES"`
	MaxRangeDays   int      `mapstructure:"MAX_RANGE_DAYS"`
	SeedSampleData bool     `mapstructure:"SEED_SAMPLE_DATA"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_DB"`

	// Appointment reminders.
	RemindersEnabled bool          `mapstructure:"REMINDERS_ENABLED"`
	ReminderLead     time.Duration `mapstructure:"REMINDER_LEAD"`

	// Assistant.
	AssistantMode       string        `mapstructure:"ASSISTANT_MODE"`
	GeminiAPIKey        string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel         string        `mapstructure:"GEMINI_MODEL"`
	AssistantContextTTL time.Duration `mapstructure:"ASSISTANT_CONTEXT_TTL"`

	// Speech to text for voice queries.
	SpeechEnabled            bool   `mapstructure:"SPEECH_ENABLED"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
}

var AppConfig Config

// DefaultSlotTimes is the clinic's canonical daily grid.
var DefaultSlotTimes = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// LoadConfig reads config.yaml (if any) and the environment into AppConfig.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_URL", "appointments.db")
	v.SetDefault("MONGO_DATABASE", "sapdoc")
	v.SetDefault("CLINIC_TIMEZONE", "UTC")
	v.SetDefault("SLOT_TIMES", DefaultSlotTimes)
	v.SetDefault("MAX_RANGE_DAYS", 62)
	v.SetDefault("SEED_SAMPLE_DATA", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_REMINDER_DB", 1)
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("REMINDER_LEAD", 24*time.Hour)
	v.SetDefault("ASSISTANT_MODE", AssistantLocal)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	v.SetDefault("ASSISTANT_CONTEXT_TTL", 30*time.Minute)
	v.SetDefault("SPEECH_ENABLED", false)
	v.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return &cfg, nil
}

func (c *Config) normalize() {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.AssistantMode = strings.ToLower(strings.TrimSpace(c.AssistantMode))
	for i, s := range c.SlotTimes {
		c.SlotTimes[i] = strings.TrimSpace(s)
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if _, err := time.LoadLocation(c.ClinicTimezone); err != nil {
		return fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", c.ClinicTimezone, err)
	}
	if err := ValidateSlotTimes(c.SlotTimes); err != nil {
		return err
	}
	if c.MaxRangeDays < 1 {
		return fmt.Errorf("MAX_RANGE_DAYS must be positive, got %d", c.MaxRangeDays)
	}
	if c.MaxRequestsPerMin < 1 {
		return fmt.Errorf("MAX_REQUESTS_PER_MIN must be positive, got %d", c.MaxRequestsPerMin)
	}
	switch c.AssistantMode {
	case AssistantLocal:
	case AssistantGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when ASSISTANT_MODE is gemini")
		}
	default:
		return fmt.Errorf("unsupported ASSISTANT_MODE %q", c.AssistantMode)
	}
	if c.RemindersEnabled && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required when REMINDERS_ENABLED is true")
	}
	return nil
}

// ValidateSlotTimes checks that labels are HH:MM, unique and strictly increasing.
func ValidateSlotTimes(labels []string) error {
	if len(labels) == 0 {
		return errors.New("SLOT_TIMES must not be empty")
	}
	var prev time.Time
	for i, label := range labels {
		if len(label) != 5 {
			return fmt.Errorf("SLOT_TIMES[%d] %q is not HH:MM", i, label)
		}
		t, err := time.Parse("15:04", label)
		if err != nil {
			return fmt.Errorf("SLOT_TIMES[%d] %q is not HH:MM", i, label)
		}
		if i > 0 && !t.After(prev) {
			return fmt.Errorf("SLOT_TIMES must be strictly increasing, %q follows %q", label, labels[i-1])
		}
		prev = t
	}
	return nil
}

// Location returns the clinic time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
