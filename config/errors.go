package config

import "errors"

var (
	// ErrInvalidConfig is returned when the merged configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConfigNotFound is returned when an explicitly named config file is missing.
	ErrConfigNotFound = errors.New("config file not found")
)
