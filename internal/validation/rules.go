// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/tregmine/webapi/internal/errors"
)

var snowflakeRegex = regexp.MustCompile(`^[0-9]{1,19}$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Snowflake validates that a string is a decimal snowflake identifier.
var Snowflake = validation.NewStringRuleWithError(
	func(s string) bool {
		return snowflakeRegex.MatchString(s)
	},
	validation.NewError("validation_snowflake", "must be a decimal snowflake id"),
)

// OneOf validates that a string is one of the allowed values.
func OneOf(allowed ...string) validation.Rule {
	values := make([]any, len(allowed))
	for i, v := range allowed {
		values[i] = v
	}
	return validation.In(values...).Error("must be one of: " + strings.Join(allowed, ", "))
}
