package server

import "errors"

var (
	// ErrEngineRequired is returned when no engine is provided.
	ErrEngineRequired = errors.New("engine is required")

	// ErrInvalidTopN is returned when the default or maximum row count is below one.
	ErrInvalidTopN = errors.New("top_n limits must be at least 1")
)
