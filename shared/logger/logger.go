package logger

import (
	"io"
	"os"
	"resto/config"
	"resto/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a human readable console logger. Configure replaces it once the
// environment is known.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(console(os.Stdout)).With().Timestamp().Logger()
}

// Configure applies the log level and picks JSON output outside development.
func Configure(cfg *config.Config) {
	ConfigureTo(os.Stdout, cfg)
}

func ConfigureTo(out io.Writer, cfg *config.Config) {
	if cfg.Server.Env != "" && cfg.Server.Env != constant.ServerEnvDevelopment {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		out = console(out)
	}

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.App.Name).
		Logger()

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Str("env", cfg.Server.Env).Msg("Logger configured.")
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func console(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
