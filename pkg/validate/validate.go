// Package validate holds the field-level rules shared by every write path:
// the model-year window and non-negative checks, plus validator-driven struct
// validation for service inputs.
package validate

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	pkgerrors "github.com/openlot/dealership-backend/pkg/errors"
)

const (
	// EarliestYear is the Model T release year; nothing on a lot predates it.
	EarliestYear = 1908

	// YearsOut allows next-year model years, which ship before January.
	YearsOut = 1
)

var instance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// caryear mirrors Year so struct tags and direct calls agree.
	_ = v.RegisterValidation("caryear", func(fl validator.FieldLevel) bool {
		return yearInRange(int(fl.Field().Int()), time.Now())
	})
	return v
}

// YearBounds returns the permitted [min, max] model-year window as of now.
func YearBounds(now time.Time) (int, int) {
	return EarliestYear, now.Year() + YearsOut
}

func yearInRange(value int, now time.Time) bool {
	min, max := YearBounds(now)
	return value >= min && value <= max
}

// Year validates a dealership establishment year or car model year.
func Year(value int) error {
	return YearAt(value, time.Now())
}

// YearAt is Year with an injectable clock.
func YearAt(value int, now time.Time) error {
	min, max := YearBounds(now)
	if value < min || value > max {
		return pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("invalid year %d, must be between %d and %d", value, min, max),
		).WithDetails(map[string]int{"min": min, "max": max})
	}
	return nil
}

// NonNegative validates mileage and monetary values.
func NonNegative(field string, value int64) error {
	if value < 0 {
		return pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("%s must not be negative", field),
		).WithDetails(map[string]any{"field": field, "value": value})
	}
	return nil
}

// Struct runs tag-based validation over a service input struct and folds the
// field failures into a single validation error.
func Struct(input any) error {
	err := instance.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "input validation failed")
	}

	var combined error
	details := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		detail := fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag())
		details = append(details, detail)
		combined = multierr.Append(combined, fmt.Errorf("%s", detail))
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "input validation failed").
		WithDetails(details)
}
