package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration file that cannot be used
var ErrInvalidConfig = errors.New("invalid configuration")

// Error describes one problem with a configuration file
type Error struct {
	// Path is the file the configuration came from, empty for defaults and
	// editor settings
	Path string
	// Field is the offending key, e.g. "rules.empty-link.severity"
	Field  string
	Reason string
}

func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = "configuration"
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", where, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", where, e.Field, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrInvalidConfig
}
