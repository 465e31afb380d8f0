package core

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigError via errors.Is.
var ErrConfiguration = errors.New("core: configuration error")

// ErrNotConfigured is returned by render entry points called before
// render resources were allocated. It is preallocated so returning it
// from the render path costs nothing.
var ErrNotConfigured error = &ConfigError{Field: "render resources", Reason: "not allocated"}

// ConfigError reports an invalid configuration field. Rendering stays
// disabled until a valid configuration is applied.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == 0 {
		return fmt.Sprintf("core: %s: %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("core: %s %g: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}
