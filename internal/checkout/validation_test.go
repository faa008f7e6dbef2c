package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() FormData {
	return FormData{
		Name:  "Jo",
		Email: "a@b.com",
		Phone: "+1234567890",
	}
}

func TestValidateContact_Valid(t *testing.T) {
	assert.Empty(t, ValidateContact(validForm()))
}

func TestValidateContact_PromoNeverRequired(t *testing.T) {
	form := validForm()
	form.PromoCode = ""
	assert.Empty(t, ValidateContact(form))

	form.PromoCode = "whatever"
	assert.Empty(t, ValidateContact(form))
}

func TestValidateContact_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FormData)
		field   Field
		message string
	}{
		{
			name:    "name too short",
			mutate:  func(f *FormData) { f.Name = "J" },
			field:   FieldName,
			message: "Full name must be at least 2 characters",
		},
		{
			name:    "name blank",
			mutate:  func(f *FormData) { f.Name = "   " },
			field:   FieldName,
			message: "Full name is required",
		},
		{
			name:    "email without domain dot",
			mutate:  func(f *FormData) { f.Email = "a@b" },
			field:   FieldEmail,
			message: "Enter a valid email address",
		},
		{
			name:    "email missing",
			mutate:  func(f *FormData) { f.Email = "" },
			field:   FieldEmail,
			message: "Email is required",
		},
		{
			name:    "phone missing",
			mutate:  func(f *FormData) { f.Phone = "" },
			field:   FieldPhone,
			message: "Phone is required",
		},
		{
			name:    "phone too short",
			mutate:  func(f *FormData) { f.Phone = "+12345" },
			field:   FieldPhone,
			message: "Enter a valid phone number",
		},
		{
			name:    "phone with letters",
			mutate:  func(f *FormData) { f.Phone = "+1 234 CALL ME" },
			field:   FieldPhone,
			message: "Enter a valid phone number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			errs := ValidateContact(form)
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidateContact_EmptyFormReportsEveryRequiredField(t *testing.T) {
	errs := ValidateContact(FormData{})

	assert.Len(t, errs, 3)
	assert.Contains(t, errs, FieldName)
	assert.Contains(t, errs, FieldEmail)
	assert.Contains(t, errs, FieldPhone)
	assert.NotContains(t, errs, FieldPromoCode)
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+1234567890", "+49 (151) 234-5678", "89161234567"}
	for _, p := range valid {
		assert.True(t, IsValidPhoneNumber(p), p)
	}

	invalid := []string{"", "+", "12345", "phone", "++1234567890"}
	for _, p := range invalid {
		assert.False(t, IsValidPhoneNumber(p), p)
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	assert.Equal(t, "+491512345678", NormalizePhoneNumber(" +49 (151) 234-5678 "))
	assert.Equal(t, "89161234567", NormalizePhoneNumber("8 916 123-45-67"))
}
