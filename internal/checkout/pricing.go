package checkout

import "github.com/shopspring/decimal"

type Calculation struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	// AppliedDiscounts holds the description of every applicable rule, even
	// though only the largest one is used for the amount.
	AppliedDiscounts []string     `json:"applied_discounts"`
	Winning          DiscountType `json:"winning,omitempty"`
	Selected         []Service    `json:"selected"`
}

// Calculate derives the pricing summary for the current selection. Discounts
// don't stack: the largest applicable value wins.
func Calculate(services []Service, form FormData, rules []DiscountRule) Calculation {
	selected := SelectedServices(services)

	subtotal := decimal.Zero
	for _, s := range selected {
		subtotal = subtotal.Add(s.Price)
	}

	snap := Snapshot{Services: services, Form: form}
	discount := decimal.Zero
	var winning DiscountType
	applied := []string{}
	for _, r := range rules {
		if !r.Applies(snap) {
			continue
		}
		applied = append(applied, r.Description)
		if r.Value.GreaterThan(discount) {
			discount = r.Value
			winning = r.Type
		}
	}

	amount := subtotal.Mul(discount)
	return Calculation{
		Subtotal:         subtotal,
		Discount:         discount,
		DiscountAmount:   amount,
		Total:            subtotal.Sub(amount),
		AppliedDiscounts: applied,
		Winning:          winning,
		Selected:         selected,
	}
}

// DiscountPercent returns the discount as a whole-number percentage.
func (c Calculation) DiscountPercent() decimal.Decimal {
	return c.Discount.Mul(decimal.NewFromInt(100))
}
