package config

import "fmt"

// ConfigurationError reports missing or invalid required input. It is fatal:
// the run aborts before any year is processed, and the engine never guesses
// around it.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func missingField(field string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: "required field is missing"}
}

func invalidField(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}
