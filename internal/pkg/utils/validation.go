package utils

import (
	"regexp"
	"tawjih-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var languageCodePattern = regexp.MustCompile(constvars.RegexLanguageCode)

func init() {
	validate = validator.New()
	validate.RegisterValidation("language_code", validateLanguageCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLanguageCode(fl validator.FieldLevel) bool {
	return languageCodePattern.MatchString(fl.Field().String())
}
