package logger

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func init() {
	SetOutput(os.Stdout)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.ErrorStackFieldName = "trace"
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if traceErr, ok := err.(stackTracer); ok {
			return traceErr.StackTrace()
		}
		return nil
	}
}

// SetOutput - меняет вывод логов, в тестах удобно писать в буфер
func SetOutput(w io.Writer) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

// SetLevel - trace, debug, info, warn, error, disabled
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return errors.Wrapf(err, "unknown log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func Info(message string) {
	log.Info().Msg(message)
}
func Infof(message string, args ...interface{}) {
	log.Info().Msgf(message, args...)
}
func Debug(message string) {
	log.Debug().Msg(message)
}
func Debugf(message string, args ...interface{}) {
	log.Debug().Msgf(message, args...)
}

func Warnf(message string, args ...interface{}) {
	log.Warn().Msgf(message, args...)
}

func ErrorMessage(message string, args ...interface{}) {
	log.Error().Stack().Msgf(message, args...)
}

func Error(err error) {
	log.Error().Stack().Err(err).Send()
}
func Errorf(err error, message string, args ...interface{}) {
	log.Error().Stack().Err(err).Msgf(message, args...)
}

func Fatalf(message string, args ...interface{}) {
	log.Fatal().Caller().Msgf(message, args...)
}
