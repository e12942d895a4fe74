// Package config loads runtime configuration for spacebook, applying
// defaults, then an optional JSON file, then command-line flags.
package config

import "time"

// Config holds runtime settings for the storage core and the CLI.
//
// Fields:
//   - DataDir: root directory holding every shard file and image folder.
//   - NotificationCap: maximum entries retained per notification feed; the
//     oldest entries are evicted first. Zero or negative disables the cap.
//   - BookingLeadTime: minimum distance between "now" and a new booking date.
//   - CancellationWindow: a booking may be cancelled only while more than this
//     remains before the booking date.
//   - AdminEmail / AdminPassword: the built-in admin credential.
//   - CurrencySymbol: prefix used when formatting prices and transactions.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DataDir            string
	NotificationCap    int
	BookingLeadTime    time.Duration
	CancellationWindow time.Duration
	AdminEmail         string
	AdminPassword      string
	CurrencySymbol     string
	LogLevel           string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "Json"
	c.NotificationCap = 100
	c.BookingLeadTime = 72 * time.Hour
	c.CancellationWindow = 72 * time.Hour
	c.AdminEmail = "admin@admin.com"
	c.AdminPassword = "admin123"
	c.CurrencySymbol = "₱"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from args (usually os.Args[1:]). Later sources
// take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
