package config

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate reports every missing or invalid setting at once, before any
// network call is made.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Backlog.SpaceDomain == "" {
		errors = append(errors, ValidationError{
			Field:   "backlog.space_domain",
			Message: "BACKLOG_SPACE_DOMAIN is required",
		})
	}

	if c.Backlog.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "backlog.api_key",
			Message: "BACKLOG_API_KEY is required",
		})
	}

	if c.Backlog.ProjectKey == "" {
		errors = append(errors, ValidationError{
			Field:   "backlog.project_key",
			Message: "BACKLOG_PROJECT_KEY is required",
		})
	}

	if c.HTTP.PageSize < 1 || c.HTTP.PageSize > 100 {
		errors = append(errors, ValidationError{
			Field:   "http.page_size",
			Message: "page_size must be between 1 and 100",
		})
	}

	if c.HTTP.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "http.timeout_seconds",
			Message: "timeout_seconds must not be negative",
		})
	}

	if c.HTTP.RequestIntervalMS < 0 {
		errors = append(errors, ValidationError{
			Field:   "http.request_interval_ms",
			Message: "request_interval_ms must not be negative",
		})
	}

	return errors
}
