package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/spacebook/internal/flagx"
	"github.com/dmitrijs2005/spacebook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so the file may say "72h" or give integer nanoseconds.
type JsonConfig struct {
	DataDir            string         `json:"data_dir"`
	NotificationCap    *int           `json:"notification_cap"`
	BookingLeadTime    timex.Duration `json:"booking_lead_time"`
	CancellationWindow timex.Duration `json:"cancellation_window"`
	AdminEmail         string         `json:"admin_email"`
	AdminPassword      string         `json:"admin_password"`
	CurrencySymbol     string         `json:"currency_symbol"`
	LogLevel           string         `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Keys absent from the file leave the current value untouched.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.NotificationCap != nil {
		cfg.NotificationCap = *jc.NotificationCap
	}
	if jc.BookingLeadTime.Duration != 0 {
		cfg.BookingLeadTime = jc.BookingLeadTime.Duration
	}
	if jc.CancellationWindow.Duration != 0 {
		cfg.CancellationWindow = jc.CancellationWindow.Duration
	}
	if jc.AdminEmail != "" {
		cfg.AdminEmail = jc.AdminEmail
	}
	if jc.AdminPassword != "" {
		cfg.AdminPassword = jc.AdminPassword
	}
	if jc.CurrencySymbol != "" {
		cfg.CurrencySymbol = jc.CurrencySymbol
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
