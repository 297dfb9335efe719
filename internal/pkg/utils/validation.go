package utils

import (
	"reflect"
	"regexp"
	"strings"
	"telehealth-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	reSpecialChar = regexp.MustCompile(constvars.RegexPasswordSpecialChar)
	reUppercase   = regexp.MustCompile(constvars.RegexPasswordUppercase)
	reLowercase   = regexp.MustCompile(constvars.RegexPasswordLowercase)
	reDigit       = regexp.MustCompile(constvars.RegexPasswordDigit)
	reCurrency    = regexp.MustCompile(constvars.RegexCurrencyCode)
	rePhone       = regexp.MustCompile(constvars.RegexPhoneNumberE164)
	reReference   = regexp.MustCompile(constvars.RegexPaymentReference)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("clock", validateClock)
	validate.RegisterValidation("calendar", validateCalendar)
	validate.RegisterValidation("currency", validateCurrency)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 &&
		reSpecialChar.MatchString(password) &&
		reUppercase.MatchString(password) &&
		reLowercase.MatchString(password) &&
		reDigit.MatchString(password)
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.TimeFormatHHMM, fl.Field().String())
	return err == nil
}

func validateCalendar(fl validator.FieldLevel) bool {
	_, err := ParseCalendarDate(fl.Field().String())
	return err == nil
}

func validateCurrency(fl validator.FieldLevel) bool {
	return reCurrency.MatchString(fl.Field().String())
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return rePhone.MatchString(fl.Field().String())
}

// IsPaymentReference reports whether s may be forwarded to the gateway as a
// transaction reference.
func IsPaymentReference(s string) bool {
	return reReference.MatchString(s)
}
