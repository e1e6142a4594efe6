package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Store      StoreConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	SSEExpiration    string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// StoreConfig selects the backing store for repositories.
// "postgres" is the production driver; "memory" runs against the
// in-memory fixture store (local development without a database).
type StoreConfig struct {
	Driver string
}

// AttendanceConfig holds the organization-level attendance rules.
type AttendanceConfig struct {
	WeekendDays   []time.Weekday
	WorkdayStart  string // "HH:MM", local to the organization
	GraceMinutes  int
	PresentSymbol string
	LateSymbol    string
	HolidaySymbol string
	WeekendSymbol string
	MatrixTimeout time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "ponpro"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.Store = StoreConfig{
		Driver: getEnv("STORE_DRIVER", "postgres"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
		SSEExpiration:    getEnv("JWT_SSE_EXPIRATION_TIME", "5m"),
	}

	// Attendance rules
	weekendDays, err := parseWeekendDays(getEnv("WEEKEND_DAYS", "saturday,sunday"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKEND_DAYS: %w", err)
	}

	graceMinutes, err := strconv.Atoi(getEnv("GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRACE_MINUTES: %w", err)
	}

	matrixTimeout, err := time.ParseDuration(getEnv("MATRIX_QUERY_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MATRIX_QUERY_TIMEOUT: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WeekendDays:   weekendDays,
		WorkdayStart:  getEnv("WORKDAY_START", "08:00"),
		GraceMinutes:  graceMinutes,
		PresentSymbol: getEnv("PRESENT_SYMBOL", "P"),
		LateSymbol:    getEnv("LATE_SYMBOL", "RT"),
		HolidaySymbol: getEnv("HOLIDAY_SYMBOL", "JF"),
		WeekendSymbol: getEnv("WEEKEND_SYMBOL", "W"),
		MatrixTimeout: matrixTimeout,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Store.Driver != "postgres" && c.Store.Driver != "memory" {
		return fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", c.Store.Driver)
	}
	if c.Store.Driver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if _, err := time.Parse("15:04", c.Attendance.WorkdayStart); err != nil {
		return fmt.Errorf("WORKDAY_START must be HH:MM: %w", err)
	}
	if c.Attendance.GraceMinutes < 0 {
		return fmt.Errorf("GRACE_MINUTES must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseWeekendDays parses a comma-separated list of weekday names.
// Some organizations run Friday+Saturday weekends.
func parseWeekendDays(value string) ([]time.Weekday, error) {
	parts := strings.Split(value, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		name := strings.ToLower(strings.TrimSpace(p))
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", p)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("at least one weekend day is required")
	}
	return days, nil
}
