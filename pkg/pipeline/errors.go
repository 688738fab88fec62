package pipeline

import (
	"fmt"
	"strings"
)

// SchemaError reports columns that are absent from (or invalid in) a
// transform's input. Missing holds the complete sorted set difference, not
// just the first miss.
type SchemaError struct {
	Op      string
	Missing []string
	Msg     string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: input is missing columns: %s", e.Op, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// ConfigError reports an invalid strategy or hyperparameter.
type ConfigError struct {
	Op  string
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %s", e.Op, e.Msg)
}

// ShapeError reports a row-count mismatch across feature-union branches.
type ShapeError struct {
	Op  string
	Msg string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch: %s", e.Op, e.Msg)
}

// NotFittedError reports a Transform call before Fit.
type NotFittedError struct {
	Op string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: transform called before fit", e.Op)
}
