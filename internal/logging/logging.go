// Package logging configures the shared zap logger for relcheck.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the process-wide sugared logger. Nil until Init is called;
// use L() to get a safe handle.
var Logger *zap.SugaredLogger

// Init builds the process logger. Debug mode uses the verbose development
// config; otherwise only warnings and errors reach the console so check
// output stays clean for CI logs.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger.Sugar()
	return nil
}

// L returns the shared logger, falling back to a no-op logger when Init
// has not run (library use, tests).
func L() *zap.SugaredLogger {
	if Logger == nil {
		return zap.NewNop().Sugar()
	}
	return Logger
}

// Sync flushes buffered log entries. Safe to call with no logger.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
