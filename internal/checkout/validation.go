package checkout

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field to a human readable message. Empty means the
// form is valid.
type FieldErrors map[Field]string

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
)

const minPhoneDigits = 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("contact_phone", func(fl validator.FieldLevel) bool {
		return IsValidPhoneNumber(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateContact checks the contact fields of the form. It never looks at
// the promo code.
func ValidateContact(form FormData) FieldErrors {
	trimmed := FormData{
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Phone:     strings.TrimSpace(form.Phone),
		PromoCode: form.PromoCode,
	}

	errs := FieldErrors{}
	err := validate.Struct(trimmed)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable on a programming error in the tags.
		errs[FieldName] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := Field(fe.Field())
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = fieldMessage(field, fe.Tag(), fe.Param())
	}
	return errs
}

func fieldMessage(field Field, tag, param string) string {
	switch tag {
	case "required":
		return field.Label() + " is required"
	case "min":
		return field.Label() + " must be at least " + param + " characters"
	case "contact_email":
		return "Enter a valid email address"
	case "contact_phone":
		return "Enter a valid phone number"
	}
	return field.Label() + " is invalid"
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhoneNumber accepts an optional leading '+' followed by digits,
// spaces, dashes and parentheses with at least ten digits overall.
func IsValidPhoneNumber(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}

	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

// NormalizePhoneNumber strips everything but digits and keeps a leading '+'.
func NormalizePhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	if strings.HasPrefix(phone, "+") {
		return "+" + cleaned
	}
	return cleaned
}
