package validators

import (
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func HasUpper(fl validator.FieldLevel) bool {
	return containsFunc(fl.Field().String(), unicode.IsUpper)
}

func HasLower(fl validator.FieldLevel) bool {
	return containsFunc(fl.Field().String(), unicode.IsLower)
}

func HasDigit(fl validator.FieldLevel) bool {
	return containsFunc(fl.Field().String(), unicode.IsDigit)
}

func HasSpecial(fl validator.FieldLevel) bool {
	return containsFunc(fl.Field().String(), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func NoWhiteSpaces(fl validator.FieldLevel) bool {
	return !containsFunc(fl.Field().String(), unicode.IsSpace)
}

func IsIso8601(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

func IsDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}
