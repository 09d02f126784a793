package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential reports an unset API key environment variable.
	ErrMissingCredential = errors.New("missing credential")
	// ErrUnsupportedFramework reports a route manifest shape with no adapter.
	ErrUnsupportedFramework = errors.New("unsupported framework")
	// ErrUnsupportedMode reports an unknown generation mode.
	ErrUnsupportedMode = errors.New("unsupported mode")
	// ErrUnsupportedParser reports an unknown score parser.
	ErrUnsupportedParser = errors.New("unsupported parser")
	// ErrMissingInput reports an input file that does not exist.
	ErrMissingInput = errors.New("missing input file")
)

// ConfigError is fatal at startup.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error (%s): %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ProviderError wraps any failure of a model call.
type ProviderError struct {
	Provider string
	Model    string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s provider (%s): status %d: %v", e.Provider, e.Model, e.Status, e.Err)
	}
	return fmt.Sprintf("%s provider (%s): %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
