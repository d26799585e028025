package logger

import "go.uber.org/zap"

// Init builds the process logger. Debug mode switches to the human-readable
// development encoder.
func Init(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
