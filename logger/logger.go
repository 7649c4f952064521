package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Development mode uses the human-readable
// console encoder; production logs JSON.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
