// Package logger builds the zap logger used across the service.
package logger

import "go.uber.org/zap"

// New returns a development-friendly console logger in development and a
// JSON production logger otherwise.
func New(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
