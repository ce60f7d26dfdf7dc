/*
Package logx wraps zerolog for the relay.

InitGlobalLogger picks the output format for the environment. Packages that log often take a
Component logger; one-off call sites use the level helpers with key/value pairs.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the global logger: colored console output at debug level in
// development, JSON at info level otherwise. Every entry carries a timestamp and its caller.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var logger zerolog.Logger
	if isDevelopment {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel)
	} else {
		logger = zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Timestamp().Caller().Logger()
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// emit writes msg with fields given as alternating keys and values.
// An odd-length list would make zerolog panic, so it is logged as a field instead.
func emit(ev *zerolog.Event, msg string, fields []any) {
	if len(fields)%2 != 0 {
		ev = ev.Interface("unpaired_fields", fields)
		fields = nil
	}

	ev.Fields(fields).CallerSkipFrame(2).Msg(msg)
}

func Debug(msg string, fields ...any) {
	emit(Logger().Debug(), msg, fields)
}

func Info(msg string, fields ...any) {
	emit(Logger().Info(), msg, fields)
}

func Warn(msg string, fields ...any) {
	emit(Logger().Warn(), msg, fields)
}

// Error logs msg with err attached.
func Error(err error, msg string, fields ...any) {
	emit(Logger().Error().Err(err), msg, fields)
}

// Fatal logs msg with err attached and exits the process.
func Fatal(err error, msg string, fields ...any) {
	emit(Logger().Fatal().Err(err), msg, fields)
}
