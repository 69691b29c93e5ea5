package utils

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}

	_, err := uuid.Parse(param)
	if err != nil {
		return err
	}

	return nil
}

// ValidateUrlParamSlug accepts free-form identifiers such as scheduler snapshot ids.
func ValidateUrlParamSlug(param string) error {
	if strings.TrimSpace(param) == "" {
		return errors.New("parameter is missing from url path")
	}
	if len(param) > 128 {
		return errors.New("parameter is too long")
	}
	return nil
}
