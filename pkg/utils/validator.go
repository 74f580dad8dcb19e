package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/ecoduino/greenhouse-backend/pkg/errors"
)

var validate = validator.New()

// ValidateStruct runs the `validate` tags on a request DTO and flattens the
// failures into one field-level message.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}

	return appErrors.NewAppError(
		appErrors.CodeValidation,
		fmt.Sprintf("validation failed: %s", strings.Join(messages, "; ")),
		appErrors.ErrInvalidInput,
	)
}
