package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init installs the global zap logger: JSON in production,
// console output everywhere else.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)

	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}
