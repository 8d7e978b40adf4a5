package app

import (
	"context"
	"os"
	"strings"
	"time"

	"participant_board/internal/board"
	"participant_board/internal/config"
	"participant_board/internal/poller"
	"participant_board/internal/sheets"
	"participant_board/internal/web"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	production := os.Getenv("ENV") == "production"
	if production {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", "participant-board").Logger()

	levelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOGLEVEL")))
	level, known := logLevel(levelStr, production)
	zerolog.SetGlobalLevel(level)
	if !known {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// logLevel maps LOGLEVEL to a zerolog level. An empty value picks warn in
// production and info elsewhere.
func logLevel(levelStr string, production bool) (zerolog.Level, bool) {
	switch levelStr {
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "disabled":
		return zerolog.Disabled, true
	case "":
		if production {
			return zerolog.WarnLevel, true
		}
		return zerolog.InfoLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

// LoadConfig reads and validates the configuration or exits.
func LoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	return cfg
}

// InitializeFetcher creates the Google Sheets client and the participant fetcher
func InitializeFetcher(ctx context.Context, cfg *config.Config) *sheets.Fetcher {
	log.Debug().Msg("Initializing sheets client")

	sheetsClient, err := sheets.NewClient(ctx, cfg.SheetsAPIKey, cfg.SheetsEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	polling := cfg.Polling()
	fetcher := sheets.NewFetcher(sheetsClient, cfg.Target(), polling.FetchTimeout)

	log.Debug().
		Str("spreadsheet_id", cfg.SpreadsheetID).
		Str("range", cfg.SheetRange).
		Dur("timeout", polling.FetchTimeout).
		Msg("Sheets client initialized successfully")
	return fetcher
}

// InitializeBoard wires state, poller and HTTP server. The poller is nil in
// discontinued mode.
func InitializeBoard(ctx context.Context, cfg *config.Config) (*poller.Poller, *web.Server) {
	eventDate, _ := cfg.EventTime()
	opts := web.Options{
		EventName:    cfg.EventName,
		EventDate:    eventDate,
		Discontinued: cfg.Discontinued,
		FetchTimeout: cfg.Polling().FetchTimeout,
	}

	if cfg.Discontinued {
		log.Warn().Msg("Service discontinued; serving placeholder page only")
		srv, err := web.NewServer(nil, nil, opts)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create HTTP server")
		}
		return nil, srv
	}

	state := board.NewState(cfg.Pricing())
	p := poller.New(InitializeFetcher(ctx, cfg), state, cfg.Polling().Interval)

	srv, err := web.NewServer(state, p, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create HTTP server")
	}
	return p, srv
}
