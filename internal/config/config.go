package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Pipeline PipelineConfig
	Report   ReportConfig
	Mail     MailConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// PipelineConfig holds the knobs of the attendance derivation pipeline.
// The original sheets were processed with divergent hardcoded variants;
// here every variant is an explicit option.
type PipelineConfig struct {
	// PunctualThresholdHours is the daily worked-hours bar for the
	// "hours" punctuality basis.
	PunctualThresholdHours float64

	// PunctualityBasis selects how a day is classified: "hours"
	// (worked hours vs threshold) or "arrival" (clock-in vs cutoff).
	PunctualityBasis string

	// ArrivalCutoff is the latest punctual clock-in time for the
	// "arrival" basis, in HH:MM AM/PM format.
	ArrivalCutoff string

	// NegativeDurationPolicy decides what happens when a clock-out
	// precedes its clock-in: "preserve" keeps the negative value,
	// "absent" drops it, "rollover" assumes an overnight shift.
	NegativeDurationPolicy string

	// DefaultStartDate maps day index 1 when an upload supplies no
	// start date, in YYYY-MM-DD format.
	DefaultStartDate string
}

// ReportConfig holds reporting configuration
type ReportConfig struct {
	// MonthlyTargetRate is the punctuality-rate percentage an employee
	// must reach in a month to be flagged as meeting the target.
	MonthlyTargetRate float64
}

// MailConfig holds the sender identity stamped on composed summary mails.
// Transport is owned by an external collaborator, so there are no SMTP
// server settings here.
type MailConfig struct {
	FromName    string
	FromAddress string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	config := &Config{}

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

	// Pipeline configuration
	threshold, err := getEnvFloat("PUNCTUAL_THRESHOLD_HOURS", 8.0)
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCTUAL_THRESHOLD_HOURS: %w", err)
	}

	config.Pipeline = PipelineConfig{
		PunctualThresholdHours: threshold,
		PunctualityBasis:       getEnv("PUNCTUALITY_BASIS", "hours"),
		ArrivalCutoff:          getEnv("ARRIVAL_CUTOFF", "09:00 AM"),
		NegativeDurationPolicy: getEnv("NEGATIVE_DURATION_POLICY", "preserve"),
		DefaultStartDate:       getEnv("DEFAULT_START_DATE", "2025-06-01"),
	}

	// Report configuration
	targetRate, err := getEnvFloat("MONTHLY_TARGET_RATE", 90.0)
	if err != nil {
		return nil, fmt.Errorf("invalid MONTHLY_TARGET_RATE: %w", err)
	}

	config.Report = ReportConfig{
		MonthlyTargetRate: targetRate,
	}

	// Mail configuration
	config.Mail = MailConfig{
		FromName:    getEnv("MAIL_FROM_NAME", "Attendance Insight"),
		FromAddress: getEnv("MAIL_FROM_ADDRESS", "no-reply@diverse-infotech.local"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Pipeline.PunctualThresholdHours <= 0 {
		return fmt.Errorf("PUNCTUAL_THRESHOLD_HOURS must be positive")
	}

	switch c.Pipeline.PunctualityBasis {
	case "hours", "arrival":
	default:
		return fmt.Errorf("PUNCTUALITY_BASIS must be \"hours\" or \"arrival\", got %q", c.Pipeline.PunctualityBasis)
	}

	if _, ok := validator.ParseClockTime(c.Pipeline.ArrivalCutoff); !ok {
		return fmt.Errorf("ARRIVAL_CUTOFF must be in HH:MM AM/PM format, got %q", c.Pipeline.ArrivalCutoff)
	}

	switch c.Pipeline.NegativeDurationPolicy {
	case "preserve", "absent", "rollover":
	default:
		return fmt.Errorf("NEGATIVE_DURATION_POLICY must be \"preserve\", \"absent\" or \"rollover\", got %q", c.Pipeline.NegativeDurationPolicy)
	}

	if _, ok := validator.IsValidDate(c.Pipeline.DefaultStartDate); !ok {
		return fmt.Errorf("DEFAULT_START_DATE must be in YYYY-MM-DD format, got %q", c.Pipeline.DefaultStartDate)
	}

	if c.Report.MonthlyTargetRate < 0 || c.Report.MonthlyTargetRate > 100 {
		return fmt.Errorf("MONTHLY_TARGET_RATE must be between 0 and 100")
	}

	if !validator.IsValidEmail(c.Mail.FromAddress) {
		return fmt.Errorf("MAIL_FROM_ADDRESS must be a valid email address, got %q", c.Mail.FromAddress)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}
