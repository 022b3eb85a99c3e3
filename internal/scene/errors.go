package scene

import "fmt"

// ConfigError reports a scene description that cannot be parsed or uses
// an unsupported construct.
type ConfigError struct {
	Source string // file name or "" for in-memory data
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("scene config %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("scene config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InvalidParameterError reports a parameter outside its valid range.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

func configErr(format string, args ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}
