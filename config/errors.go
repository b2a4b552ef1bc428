package config

import (
	"errors"
	"strings"
)

// ErrMissingConfig is the sentinel for incomplete configuration.
// Use errors.Is to detect it; the concrete *MissingError lists the keys.
var ErrMissingConfig = errors.New("missing configuration")

// MissingError reports every required environment variable that is unset.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing configuration: " + strings.Join(e.Keys, ", ")
}

func (e *MissingError) Unwrap() error {
	return ErrMissingConfig
}
