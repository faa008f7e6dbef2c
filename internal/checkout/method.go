package checkout

import "github.com/shopspring/decimal"

// Method identifies a payment option. Amounts are priced in EUR and converted
// with a fixed rate.
type Method string

const (
	MethodRUB    Method = "rub"
	MethodEUR    Method = "eur"
	MethodCrypto Method = "crypto"
)

var Methods = []Method{MethodRUB, MethodEUR, MethodCrypto}

var rates = map[Method]decimal.Decimal{
	MethodRUB:    decimal.NewFromInt(100),
	MethodEUR:    decimal.NewFromInt(1),
	MethodCrypto: decimal.RequireFromString("0.000015"),
}

func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if _, ok := rates[m]; !ok {
		return "", ErrUnknownMethod
	}
	return m, nil
}

func (m Method) Rate() decimal.Decimal {
	return rates[m]
}

func (m Method) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(m.Rate())
}

func (m Method) Label() string {
	switch m {
	case MethodRUB:
		return "RUB"
	case MethodEUR:
		return "EUR"
	case MethodCrypto:
		return "BTC"
	}
	return string(m)
}

// Format renders a converted amount with precision suited to the currency.
func (m Method) Format(amount decimal.Decimal) string {
	converted := m.Convert(amount)
	if m == MethodCrypto {
		return converted.StringFixed(6) + " " + m.Label()
	}
	return converted.StringFixed(2) + " " + m.Label()
}
