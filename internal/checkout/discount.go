package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountBulk      DiscountType = "bulk"
	DiscountPromo     DiscountType = "promo"
	DiscountFirstTime DiscountType = "first_time"
	// DiscountSeasonal has no active rule.
	DiscountSeasonal DiscountType = "seasonal"
)

// PromoCode is compared case-insensitively.
const PromoCode = "DIGITAL2024"

type DiscountRule struct {
	Type        DiscountType    `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description"`
}

// Snapshot is the read-only input every rule condition is evaluated against.
type Snapshot struct {
	Services []Service
	Form     FormData
}

type Condition func(Snapshot) bool

var conditions = map[DiscountType]Condition{
	DiscountBulk:      allSelected,
	DiscountPromo:     promoMatches,
	DiscountFirstTime: atLeastTwoSelected,
	DiscountSeasonal:  func(Snapshot) bool { return false },
}

// DefaultRules returns the active discount rules.
func DefaultRules() []DiscountRule {
	return []DiscountRule{
		{
			Type:        DiscountBulk,
			Value:       decimal.RequireFromString("0.15"),
			Description: "Full package: 15% off",
		},
		{
			Type:        DiscountPromo,
			Value:       decimal.RequireFromString("0.10"),
			Description: "Promo code DIGITAL2024: 10% off",
		},
		{
			Type:        DiscountFirstTime,
			Value:       decimal.RequireFromString("0.05"),
			Description: "First order with two or more services: 5% off",
		},
	}
}

// Applies reports whether the rule's condition holds. Rules of an unknown
// type never apply.
func (r DiscountRule) Applies(s Snapshot) bool {
	cond, ok := conditions[r.Type]
	if !ok {
		return false
	}
	return cond(s)
}

func allSelected(s Snapshot) bool {
	if len(s.Services) == 0 {
		return false
	}
	for _, svc := range s.Services {
		if !svc.Selected {
			return false
		}
	}
	return true
}

func promoMatches(s Snapshot) bool {
	return strings.EqualFold(strings.TrimSpace(s.Form.PromoCode), PromoCode)
}

func atLeastTwoSelected(s Snapshot) bool {
	return len(SelectedServices(s.Services)) >= 2
}
