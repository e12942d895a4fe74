package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/spacebook/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory
//	-n int      notification feed cap
//	-t int      booking lead time, hours
//	-w int      cancellation window, hours
//	-u string   admin email
//	-p string   admin password
//	-v string   log level
//
// Only the flags above are considered; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-d", "-n", "-t", "-w", "-u", "-p", "-v"})

	fs := flag.NewFlagSet("spacebook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.IntVar(&cfg.NotificationCap, "n", cfg.NotificationCap, "notification feed cap")
	leadTime := fs.Int("t", int(cfg.BookingLeadTime.Hours()), "booking lead time (in hours)")
	window := fs.Int("w", int(cfg.CancellationWindow.Hours()), "cancellation window (in hours)")
	fs.StringVar(&cfg.AdminEmail, "u", cfg.AdminEmail, "admin email")
	fs.StringVar(&cfg.AdminPassword, "p", cfg.AdminPassword, "admin password")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Hour flags only override when given, so sub-hour values from JSON survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.BookingLeadTime = time.Duration(*leadTime) * time.Hour
		case "w":
			cfg.CancellationWindow = time.Duration(*window) * time.Hour
		}
	})
	return nil
}
