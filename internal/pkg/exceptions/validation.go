package exceptions

import (
	"errors"
	"strings"
	"telehealth-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

func FormatAllValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if err == nil || !errors.As(err, &validationErrors) {
		return constvars.ErrClientCannotProcessRequest
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return strings.Join(messages, ", ")
}

func FormatFirstValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if err == nil || !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}
	return formatFieldError(validationErrors[0])
}

// CustomValidationMessage returns the standalone message for tags whose text
// already names the field.
func CustomValidationMessage(tag string) string {
	if message, ok := constvars.CustomValidationErrorMessages[tag]; ok {
		return message
	}
	return constvars.ErrClientCannotProcessRequest
}

func formatFieldError(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	switch tag {
	case "clock", "calendar", "currency", "phone_number":
		return CustomValidationMessage(tag)
	}

	fieldName := lowerFirst(fieldErr.Field())
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		param := fieldErr.Param()
		if tag == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		customMessage = strings.Replace(customMessage, "%s", param, 1)
	}
	return fieldName + " " + customMessage
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
