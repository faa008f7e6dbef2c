package checkout

type Field string

const (
	FieldName      Field = "name"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldPromoCode Field = "promo_code"
)

// ContactFields lists the form fields in the order they are presented.
var ContactFields = []Field{FieldName, FieldEmail, FieldPhone, FieldPromoCode}

type FormData struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,contact_email"`
	Phone     string `json:"phone" validate:"required,contact_phone"`
	PromoCode string `json:"promo_code"`
}

// Update returns a copy of the form with a single field replaced.
func (f FormData) Update(field Field, value string) (FormData, error) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldPromoCode:
		f.PromoCode = value
	default:
		return f, ErrUnknownField
	}
	return f, nil
}

func (f FormData) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldPromoCode:
		return f.PromoCode
	}
	return ""
}

func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Full name"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	case FieldPromoCode:
		return "Promo code"
	}
	return string(f)
}

func (f Field) Required() bool {
	return f != FieldPromoCode
}

func ParseField(s string) (Field, error) {
	for _, f := range ContactFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", ErrUnknownField
}
