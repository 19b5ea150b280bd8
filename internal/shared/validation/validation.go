// Package validation implements the field rules applied to request payloads.
// Each request shape calls these helpers explicitly and collects the results
// into an apperr.ValidationError.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"account_backend/internal/shared/apperr"
)

const (
	// MaxLength is the column size of every string field on users.
	MaxLength = 255
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

var validate = validator.New()

// Collector accumulates field errors for one payload.
type Collector struct {
	fields []apperr.FieldError
}

// Add records a violated rule.
func (c *Collector) Add(field, rule, message string) {
	c.fields = append(c.fields, apperr.FieldError{Field: field, Rule: rule, Message: message})
}

// Err returns the accumulated *apperr.ValidationError, or nil.
func (c *Collector) Err() error {
	return apperr.NewValidationError(c.fields)
}

// Required checks that value is not blank.
func (c *Collector) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "required", field+" is required")
		return false
	}
	return true
}

// Max checks the character (not byte) length of value.
func (c *Collector) Max(field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		c.Add(field, "max", fmt.Sprintf("%s may not be greater than %d characters", field, max))
		return false
	}
	return true
}

// Email checks value for RFC 5322 address syntax.
func (c *Collector) Email(field, value string) bool {
	if err := validate.Var(value, "email"); err != nil {
		c.Add(field, "email", field+" must be a valid email address")
		return false
	}
	return true
}

// Password checks the strength rules: minimum length and at least one
// uppercase letter, one lowercase letter and one digit.
func (c *Collector) Password(field, value string) bool {
	ok := true
	if utf8.RuneCountInString(value) < MinPasswordLength {
		c.Add(field, "min", fmt.Sprintf("%s must be at least %d characters", field, MinPasswordLength))
		ok = false
	}
	if len(value) > MaxPasswordBytes {
		c.Add(field, "max", fmt.Sprintf("%s may not be greater than %d bytes", field, MaxPasswordBytes))
		ok = false
	}
	var upper, lower, digit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		c.Add(field, "uppercase", field+" must contain at least one uppercase letter")
		ok = false
	}
	if !lower {
		c.Add(field, "lowercase", field+" must contain at least one lowercase letter")
		ok = false
	}
	if !digit {
		c.Add(field, "digit", field+" must contain at least one digit")
		ok = false
	}
	return ok
}

// Text applies required + max to a plain string field.
func (c *Collector) Text(field, value string) {
	if c.Required(field, value) {
		c.Max(field, value, MaxLength)
	}
}

// EmailAddress applies required + max + email syntax.
func (c *Collector) EmailAddress(field, value string) {
	if c.Required(field, value) && c.Max(field, value, MaxLength) {
		c.Email(field, value)
	}
}

// NewPassword applies required + strength rules.
func (c *Collector) NewPassword(field, value string) {
	if c.Required(field, value) {
		c.Password(field, value)
	}
}
