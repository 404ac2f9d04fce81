package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for structural and semantic errors. It returns a
// slice of all validation errors found (empty if valid). Defaults are assumed
// to have been applied already.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(cfg.Parameters) == "" {
		errs = append(errs, ValidationError{Field: "parameters", Message: "is required"})
	}

	if len(cfg.Extensions) == 0 {
		errs = append(errs, ValidationError{Field: "extensions", Message: "at least one extension is required"})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Message: fmt.Sprintf("%q must start with a dot", ext),
			})
		}
	}

	if strings.ContainsAny(cfg.FixerPath, "\n\r") {
		errs = append(errs, ValidationError{Field: "fixer_path", Message: "must not contain newlines"})
	}

	return errs
}
