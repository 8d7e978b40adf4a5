package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"participant_board/internal/roster"
	"participant_board/internal/sheets"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Google Sheets
	SpreadsheetID  string `env:"SPREADSHEET_ID"`
	SheetsAPIKey   string `env:"SHEETS_API_KEY"`
	SheetRange     string `env:"SPREADSHEET_RANGE" envDefault:"Sheet1!A1:I1000"`
	SheetsEndpoint string `env:"SHEETS_ENDPOINT"`

	// Polling
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`

	// Pricing, whole pesos
	OptionAName  string `env:"OPTION_A_NAME" envDefault:"Jersey"`
	OptionAPrice int64  `env:"OPTION_A_PRICE" envDefault:"500"`
	OptionBName  string `env:"OPTION_B_NAME" envDefault:"Shorts"`
	OptionBPrice int64  `env:"OPTION_B_PRICE" envDefault:"300"`

	// Event
	EventName string `env:"EVENT_NAME" envDefault:"Fun Run"`
	EventDate string `env:"EVENT_DATE"`

	// HTTP Server
	Port string `env:"PORT" envDefault:"8080"`

	Discontinued bool `env:"SERVICE_DISCONTINUED" envDefault:"false"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration and returns an error listing every problem
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := c.EventTime(); err != nil {
		errors = append(errors, err.Error())
	}

	// a discontinued board never reads the sheet
	if !c.Discontinued {
		if strings.TrimSpace(c.SpreadsheetID) == "" {
			errors = append(errors, "SPREADSHEET_ID is required")
		}
		if strings.TrimSpace(c.SheetsAPIKey) == "" {
			errors = append(errors, "SHEETS_API_KEY is required")
		}
		if !strings.Contains(c.SheetRange, "!") {
			errors = append(errors, fmt.Sprintf("invalid range '%s': expected <sheet>!<cells>", c.SheetRange))
		}
		if c.SheetsEndpoint != "" {
			if u, err := url.Parse(c.SheetsEndpoint); err != nil || u.Scheme == "" || u.Host == "" {
				errors = append(errors, fmt.Sprintf("invalid sheets endpoint '%s'", c.SheetsEndpoint))
			}
		}
		if c.PollInterval < time.Second {
			errors = append(errors, fmt.Sprintf("invalid poll interval %v: must be at least 1 second", c.PollInterval))
		}
		if c.FetchTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be positive", c.FetchTimeout))
		}
	}

	if c.OptionAPrice < 0 || c.OptionBPrice < 0 {
		errors = append(errors, "option prices must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// EventTime parses EVENT_DATE. A zero time means no countdown.
func (c *Config) EventTime() (time.Time, error) {
	if strings.TrimSpace(c.EventDate) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(c.EventDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date '%s': must be RFC3339", c.EventDate)
	}
	return t, nil
}

// Pricing returns the option prices in column order
func (c *Config) Pricing() roster.Pricing {
	return roster.Pricing{
		{Name: c.OptionAName, Price: roster.Pesos(c.OptionAPrice)},
		{Name: c.OptionBName, Price: roster.Pesos(c.OptionBPrice)},
	}
}

// Target returns the sheet range read on every cycle
func (c *Config) Target() sheets.Target {
	return sheets.Target{
		SpreadsheetID: c.SpreadsheetID,
		Range:         c.SheetRange,
	}
}
