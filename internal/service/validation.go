package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "reservas/internal/errors"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationFromValidator turns validator field errors into a single ValidationError.
// Missing fields are reported together so the caller can fix them in one go.
func validationFromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}

	var missing, fields, msgs []string
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, invalidStatusMessage)
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	if len(missing) > 0 {
		msgs = append([]string{"missing required fields: " + strings.Join(missing, ", ")}, msgs...)
	}
	return apperrors.NewValidationError(strings.Join(msgs, "; "), fields...)
}
