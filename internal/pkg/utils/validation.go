package utils

import (
	"carepulse-service/internal/pkg/constvars"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("phone", validatePhone)
	validate.RegisterValidation("identification_type", validateIdentificationType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName reports fields by their json name so validation messages
// match the names the form fields are posted with.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidInternationalPhone(fl.Field().String())
}

func validateIdentificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, identificationType := range constvars.IdentificationTypes {
		if value == identificationType {
			return true
		}
	}
	return false
}
