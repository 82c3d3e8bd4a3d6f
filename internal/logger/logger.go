// Package logger builds the zerolog loggers used by the command-line tools.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35

	colorBold = 1
)

// Config selects the logger output.
type Config struct {
	// Level is a zerolog level name. Empty or unknown falls back to info.
	Level string
	// Env is "development"/"dev" (or empty) for console output, anything else for JSON.
	Env string
	Out io.Writer
}

// New creates a logger from cfg. The returned error reports an unparseable
// level; the logger is still usable in that case.
func New(cfg Config) (zerolog.Logger, error) {
	var levelErr error
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			levelErr = fmt.Errorf("invalid log level %q; defaulting to info", cfg.Level)
		} else {
			level = parsed
		}
	}

	var zl zerolog.Logger
	switch cfg.Env {
	case "development", "dev", "":
		zl = newDevelopment(cfg.Out)
	default:
		zl = newProduction(cfg.Out)
	}
	return zl.Level(level), levelErr
}

func colorize(s interface{}, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// newDevelopment creates a console logger with colored levels
func newDevelopment(out io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		FormatLevel: func(i interface{}) string {
			ll, ok := i.(string)
			if !ok {
				return strings.ToUpper(fmt.Sprintf("%s", i))
			}
			switch ll {
			case "trace":
				return colorize("TRC", colorMagenta)
			case "debug":
				return colorize("DBG", colorYellow)
			case "info":
				return colorize("INF", colorGreen)
			case "warn":
				return colorize("WRN", colorRed)
			case "error":
				return colorize("ERR", colorRed)
			case "fatal":
				return colorize("FTL", colorRed)
			case "panic":
				return colorize("PNC", colorRed)
			default:
				return colorize(strings.ToUpper(ll), colorBold)
			}
		},
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// newProduction creates a JSON logger with UNIX timestamps
func newProduction(out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(out).With().Timestamp().Logger()
}
