package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so callers can map errors back to the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldCheck is a single validation step producing zero or more field errors.
type fieldCheck func() []apperrors.FieldError

// runChecks runs every check and folds the results into a validation error.
func runChecks(checks ...fieldCheck) error {
	var fields []apperrors.FieldError
	for _, check := range checks {
		fields = append(fields, check()...)
	}
	return apperrors.NewValidationError(fields)
}

// structTags validates the `validate` tags of s.
func structTags(s any) fieldCheck {
	return func() []apperrors.FieldError {
		err := validate.Struct(s)
		if err == nil {
			return nil
		}
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			return []apperrors.FieldError{{Field: "body", Message: err.Error()}}
		}
		fields := make([]apperrors.FieldError, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return fields
	}
}

// positiveAmount requires d > 0.
func positiveAmount(field string, d decimal.Decimal) fieldCheck {
	return func() []apperrors.FieldError {
		if !d.IsPositive() {
			return []apperrors.FieldError{{Field: field, Message: "must be a positive number"}}
		}
		return nil
	}
}

// maxDecimalPlaces rejects amounts with more precision than the store keeps.
func maxDecimalPlaces(field string, d decimal.Decimal, places int32) fieldCheck {
	return func() []apperrors.FieldError {
		if !d.Equal(d.Truncate(places)) {
			return []apperrors.FieldError{{Field: field, Message: fmt.Sprintf("must have at most %d decimal places", places)}}
		}
		return nil
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "alpha":
		return "must contain only letters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
