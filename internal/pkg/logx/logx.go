/*
Package logx wraps zerolog with the process-wide logger and small helpers.

Development builds log human-readable console output at Debug level; every other
environment emits JSON at Info level. All entries carry a Unix timestamp and the
caller location.
*/
package logx

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the global zerolog logger for the given environment.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// Ctx returns the request-scoped logger installed by RequestLogger, or the global one.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return Logger()
	}
	return l
}

// checkFields drops an odd-length key/value list instead of letting zerolog misalign it.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msgf("logx.%s received odd number of fields: %v. Fields ignored.", level, fields)
		return nil
	}
	return fields
}

// Debug logs msg at Debug level with optional key/value fields.
func Debug(msg string, fields ...any) {
	fields = checkFields("Debug", fields)
	Logger().Debug().Fields(fields).CallerSkipFrame(1).Msg(msg)
}

// Info logs msg at Info level with optional key/value fields.
func Info(msg string, fields ...any) {
	fields = checkFields("Info", fields)
	Logger().Info().Fields(fields).CallerSkipFrame(1).Msg(msg)
}

// Warn logs msg at Warn level with optional key/value fields.
func Warn(msg string, fields ...any) {
	fields = checkFields("Warn", fields)
	Logger().Warn().Fields(fields).CallerSkipFrame(1).Msg(msg)
}

// Error logs err and msg at Error level with optional key/value fields.
func Error(err error, msg string, fields ...any) {
	fields = checkFields("Error", fields)
	Logger().Error().Err(err).Fields(fields).CallerSkipFrame(1).Msg(msg)
}

// Fatal logs at Fatal level and exits the process.
func Fatal(err error, msg string, fields ...any) {
	fields = checkFields("Fatal", fields)
	Logger().Fatal().Err(err).Fields(fields).CallerSkipFrame(1).Msg(msg)
}
