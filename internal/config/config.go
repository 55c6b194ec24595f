package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr string
	BaseURL    string

	// Platform credentials. Missing values are not fatal at boot; /run
	// reports the error per request instead.
	Email    string
	Password string
	AppKey   string

	// Local office hours used for booking intervals.
	BookingStartHour int
	BookingEndHour   int

	// Pacing delay between unsuccessful seat attempts.
	AttemptDelay time.Duration
}

func FromEnv() (Config, error) {
	cfg := Config{
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),
		BaseURL:    os.Getenv("DESKBIRD_BASE_URL"),
		Email:      os.Getenv("DESKBIRD_EMAIL"),
		Password:   os.Getenv("DESKBIRD_PASSWORD"),
		AppKey:     os.Getenv("DESKBIRD_APP_KEY"),
	}

	startHour, err := strconv.Atoi(getenv("BOOKING_START_HOUR", "9"))
	if err != nil || startHour < 0 || startHour > 23 {
		return Config{}, fmt.Errorf("invalid BOOKING_START_HOUR")
	}
	endHour, err := strconv.Atoi(getenv("BOOKING_END_HOUR", "18"))
	if err != nil || endHour < 0 || endHour > 23 {
		return Config{}, fmt.Errorf("invalid BOOKING_END_HOUR")
	}
	if endHour <= startHour {
		return Config{}, fmt.Errorf("BOOKING_END_HOUR must be after BOOKING_START_HOUR")
	}
	cfg.BookingStartHour = startHour
	cfg.BookingEndHour = endHour

	delayMS, err := strconv.Atoi(getenv("ATTEMPT_DELAY_MS", "200"))
	if err != nil || delayMS < 0 {
		return Config{}, fmt.Errorf("invalid ATTEMPT_DELAY_MS")
	}
	cfg.AttemptDelay = time.Duration(delayMS) * time.Millisecond

	return cfg, nil
}

// HasCredentials reports whether all three platform credentials are set.
func (c Config) HasCredentials() bool {
	return c.Email != "" && c.Password != "" && c.AppKey != ""
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
