package validator

import (
	"fmt"

	"go-backoffice-api/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

func init() {
	// uuid_required rejects the zero UUID, which json decoding produces
	// for missing fields
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

// ValidateStruct runs tag validation and collects every failure into one
// ValidationError keyed by field path.
func ValidateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	fields := make(map[string][]string)
	for _, fe := range err.(validator.ValidationErrors) {
		msg := fmt.Sprintf("failed on '%s'", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed on '%s=%s'", fe.Tag(), fe.Param())
		}
		fields[fe.StructNamespace()] = append(fields[fe.StructNamespace()], msg)
	}
	return &apperr.ValidationError{Fields: fields}
}
