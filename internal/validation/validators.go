package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("rate", validateRate); err != nil {
		panic(fmt.Sprintf("failed to register rate validator: %v", err))
	}
}

// validateRate validates that a float sits inside [0,1]
func validateRate(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	return value >= 0.0 && value <= 1.0
}

// FieldError is one field-level validation failure, exposed to API clients
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Details converts a validator error into client-facing field errors.
// Non-validator errors collapse into a single body-level entry.
func Details(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Reason: "malformed request body"}}
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:  strings.ToLower(fe.Field()),
			Reason: fmt.Sprintf("failed %q constraint", fe.Tag()),
		})
	}
	return details
}

// RateSignal names one numeric feedback value to check against the rate constraint
type RateSignal struct {
	Name  string
	Value float64
}

// CheckRates runs the registered rate constraint over each signal, returning
// one field error per value outside [0,1].
func CheckRates(signals []RateSignal) []FieldError {
	var details []FieldError
	for _, s := range signals {
		if err := Validate.Var(s.Value, "rate"); err != nil {
			details = append(details, FieldError{
				Field:  s.Name,
				Reason: "must be between 0 and 1",
			})
		}
	}
	return details
}

// SanitizeText trims whitespace and strips control characters except newline and tab
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
