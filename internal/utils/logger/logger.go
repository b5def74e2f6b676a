// Package logger provides a global logger for the application
package logger

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
)

var Logger *zap.Logger

var (
	debug = flag.Bool("debug", false, "sets log level to debug")
	trace = flag.Bool("trace", false, "sets log level to trace")
	info  = flag.Bool("info", false, "sets log level to info (default)")
)

func initLogger() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	Configure(os.Getenv("ENVIRONMENT"))
}

// Configure applies the log level and zap build for an environment. An empty
// environment is treated as prod. Level flags still take precedence.
func Configure(environment string) {
	environment = strings.ToLower(environment)
	if environment == "" {
		environment = "prod"
	}

	logLevel := LevelFor(environment, *debug, *trace, *info)
	zerolog.SetGlobalLevel(logLevel)

	Logger = newZapLogger(environment)

	switch logLevel {
	case zerolog.DebugLevel:
		log.Debug().Str("environment", environment).Msg("Debug logging enabled")
	case zerolog.TraceLevel:
		log.Trace().Str("environment", environment).Msg("Trace logging enabled")
	case zerolog.InfoLevel:
		log.Info().Str("environment", environment).Msg("Info logging enabled")
	}
}

// LevelFor picks the log level for an environment. dev and test log
// everything, prod and unknown environments log info and above. A level flag
// overrides the environment.
func LevelFor(environment string, debug, trace, info bool) zerolog.Level {
	var logLevel zerolog.Level
	switch environment {
	case "dev", "test":
		logLevel = zerolog.TraceLevel
	case "prod":
		logLevel = zerolog.InfoLevel
	default:
		logLevel = zerolog.InfoLevel
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
	}

	if debug {
		logLevel = zerolog.DebugLevel
	} else if trace {
		logLevel = zerolog.TraceLevel
	} else if info {
		logLevel = zerolog.InfoLevel
	}
	return logLevel
}

func newZapLogger(environment string) *zap.Logger {
	build := zap.NewDevelopment
	if environment == "prod" {
		build = zap.NewProduction
	}
	l, err := build()
	if err != nil {
		log.Warn().Err(err).Msg("failed to build zap logger, falling back to no-op")
		return zap.NewNop()
	}
	return l
}

// Init initializes the logger with the configuration from the environment
// and command line flags.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `go run cmd/residuals/main.go --debug`
func Init() {
	initLogger()
}

// Sugar returns a sugared logger for easier use
// TODO: replace with zerolog
func Sugar() *zap.SugaredLogger {
	if Logger == nil {
		return zap.NewNop().Sugar()
	}
	return Logger.Sugar()
}
