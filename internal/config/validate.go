package config

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// ValidationError is a configuration validation failure with the field
// that caused it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validate checks a Configuration for values the pipeline cannot work
// with. Output format strings are validated by the renderer factory, not
// here, to keep this package free of presentation concerns.
func Validate(cfg *Configuration) error {
	if strings.TrimSpace(cfg.Output) == "" {
		return &ValidationError{Field: "output", Message: "required field is empty"}
	}

	if cfg.Parallelism < 0 {
		return &ValidationError{
			Field:   "parallelism",
			Message: fmt.Sprintf("must be zero or positive, got %d", cfg.Parallelism),
		}
	}

	for typ, name := range cfg.Types {
		if strings.TrimSpace(typ) == "" {
			return &ValidationError{Field: "types", Message: "commit type key cannot be empty"}
		}
		if _, ok := conventional.ParseCategory(name); !ok {
			return &ValidationError{
				Field:   "types." + typ,
				Message: fmt.Sprintf("unknown category %q", name),
			}
		}
	}

	for i, typ := range cfg.IgnoreTypes {
		if strings.TrimSpace(typ) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("ignore_types[%d]", i),
				Message: "commit type cannot be empty",
			}
		}
	}

	return nil
}
