// Package logger wires the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger = zap.NewNop()

// Init builds the global logger. Production mode emits JSON at info level,
// anything else uses the human-readable development encoder.
func Init(appEnv string) error {
	var (
		l   *zap.Logger
		err error
	)
	if appEnv == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	log = l
	return nil
}

// L returns the global logger.
func L() *zap.Logger {
	return log
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = log.Sync()
}
