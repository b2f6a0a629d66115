// Package validation provides custom validation rules for request DTOs.
package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/ephemeral/internal/errors"
)

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

// JSONValue validates that a raw JSON field holds a value other than null.
// Absent fields pass; combine with validation.Required to demand presence.
var JSONValue = validation.By(func(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		return validation.NewError("validation_json_type", "must be a JSON value")
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return validation.NewError("validation_json_null", "must not be null")
	}
	if !json.Valid(trimmed) {
		return validation.NewError("validation_json_invalid", "must be valid JSON")
	}
	return nil
})
