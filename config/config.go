package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fenilmodi00/award-scraper/shared"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the search parameters and runtime settings for one run.
type Config struct {
	Origin          string
	Destination     string
	DepartureDate   string
	AdultPassengers int

	OutputFile       string
	LogLevel         string
	BookingAPIURL    string
	HomepageURL      string
	SiteOrigin       string
	MaxRetryAttempts int
	HTTPTimeout      time.Duration
	RequestDelay     time.Duration
	BrowserTimeout   time.Duration
	BrowserHeadless  bool
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		Origin:          getEnv("ORIGIN", "LAX"),
		Destination:     getEnv("DESTINATION", "JFK"),
		DepartureDate:   getEnv("DEPARTURE_DATE", ""),
		AdultPassengers: getEnvInt("ADULT_PASSENGERS", 1),

		OutputFile:       getEnv("OUTPUT_FILE", "result.json"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		BookingAPIURL:    getEnv("BOOKING_API_URL", "https://www.aa.com/booking/api/search/itinerary"),
		HomepageURL:      getEnv("HOMEPAGE_URL", "https://www.aa.com/homePage.do"),
		SiteOrigin:       getEnv("SITE_ORIGIN", "https://www.aa.com"),
		MaxRetryAttempts: getEnvInt("MAX_RETRY_ATTEMPTS", 4),
		HTTPTimeout:      time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		RequestDelay:     time.Duration(getEnvInt("REQUEST_DELAY_MS", 500)) * time.Millisecond,
		BrowserTimeout:   time.Duration(getEnvInt("BROWSER_TIMEOUT_SECONDS", 60)) * time.Second,
		BrowserHeadless:  getEnvBool("BROWSER_HEADLESS", true),
	}
}

// Validate fails fast on unusable search parameters before any browser or
// network work is started.
func (c *Config) Validate() error {
	if !isIATACode(c.Origin) {
		return invalidParams(fmt.Sprintf("ORIGIN %q is not a 3-letter IATA code", c.Origin))
	}
	if !isIATACode(c.Destination) {
		return invalidParams(fmt.Sprintf("DESTINATION %q is not a 3-letter IATA code", c.Destination))
	}
	if c.DepartureDate == "" {
		return invalidParams("DEPARTURE_DATE is required (YYYY-MM-DD)")
	}
	if _, err := time.Parse("2006-01-02", c.DepartureDate); err != nil {
		return invalidParams(fmt.Sprintf("DEPARTURE_DATE %q is not a valid YYYY-MM-DD date", c.DepartureDate))
	}
	if c.AdultPassengers < 1 {
		return invalidParams(fmt.Sprintf("ADULT_PASSENGERS must be at least 1, got %d", c.AdultPassengers))
	}
	if c.MaxRetryAttempts < 0 {
		return invalidParams(fmt.Sprintf("MAX_RETRY_ATTEMPTS must not be negative, got %d", c.MaxRetryAttempts))
	}
	return nil
}

func invalidParams(message string) error {
	return shared.NewServiceError(shared.ErrorCategoryConfiguration, shared.CodeInvalidSearchParams,
		message, "config", "Validate", false, nil)
}

func isIATACode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %t", key, value, fallback)
		return fallback
	}
	return parsed
}
