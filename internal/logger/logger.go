package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global zap logger. Production gets JSON output,
// everything else gets the human-friendly development console.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	switch environment {
	case "production":
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("zap.New -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
