package physics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMass   = errors.New("mass must be positive on a dynamic body")
	ErrNilTransform  = errors.New("rigid body needs a transform")
	ErrUnknownHandle = errors.New("physics: unknown or stale rigid body handle")
)

// ConfigurationError rejects a rigid body that could not be simulated
type ConfigurationError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("physics: bad rigid body %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
