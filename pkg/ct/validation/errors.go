package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name (for UI mapping)
	Rule    string // Rule that was violated, e.g. "Required", "MaxLength"
	Message string // Human-readable message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsZero reports whether e carries no error.
func (e ValidationError) IsZero() bool {
	return e == ValidationError{}
}

// ValidationErrors accumulates validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface, combining all error messages.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Check appends err unless it is the zero value.
func (e *ValidationErrors) Check(err ValidationError) {
	if !err.IsZero() {
		*e = append(*e, err)
	}
}

// ByField returns the first error message for a field, or empty string.
func (e ValidationErrors) ByField(field string) string {
	for _, err := range e {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

// AsMap returns errors as a map of field name to messages.
func (e ValidationErrors) AsMap() map[string][]string {
	result := make(map[string][]string)
	for _, err := range e {
		result[err.Field] = append(result[err.Field], err.Message)
	}
	return result
}

// OrNil returns nil when there are no errors so callers can return it as error.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// IsRequired checks if a string is not blank.
func IsRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxLength checks that a string has at most max characters.
func MaxLength(value string, max int) bool {
	return utf8.RuneCountInString(value) <= max
}

// LooksLikeEmail applies the same loose shape check a browser email input
// does: one "@" with text on both sides and no whitespace.
func LooksLikeEmail(value string) bool {
	value = strings.TrimSpace(value)
	if strings.ContainsAny(value, " \t\r\n") {
		return false
	}
	local, domain, ok := strings.Cut(value, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@")
}

// RequiredString validates that a string field is not blank.
func RequiredString(field, value string) ValidationError {
	if !IsRequired(value) {
		return ValidationError{Field: field, Rule: "Required", Message: "is required"}
	}
	return ValidationError{}
}

// StringMaxLength validates that a string does not exceed max characters.
func StringMaxLength(field, value string, max int) ValidationError {
	if !MaxLength(value, max) {
		return ValidationError{Field: field, Rule: "MaxLength", Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return ValidationError{}
}

// Email validates the shape of an email address. Blank values pass; pair it
// with RequiredString when the field is mandatory.
func Email(field, value string) ValidationError {
	if IsRequired(value) && !LooksLikeEmail(value) {
		return ValidationError{Field: field, Rule: "Email", Message: "must be a valid email address"}
	}
	return ValidationError{}
}
