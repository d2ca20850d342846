package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. Production encoding by default,
// human-readable when LOG_MODE=dev.
func New() *zap.Logger {
	if os.Getenv("LOG_MODE") == "dev" {
		log, _ := zap.NewDevelopment()
		return log
	}

	log, _ := zap.NewProduction()
	return log
}
