package checkout

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryEssential  Category = "essential"
	CategoryAdditional Category = "additional"
	CategoryPremium    Category = "premium"
)

type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Selected    bool            `json:"selected"`
	Category    Category        `json:"category"`
}

// DefaultCatalog returns a fresh copy of the offered services, none selected.
// Prices are in EUR.
func DefaultCatalog() []Service {
	return []Service{
		{
			ID:          "consultation",
			Name:        "Visa consultation",
			Description: "One-on-one session on visa type, requirements and timeline",
			Price:       decimal.NewFromInt(49),
			Category:    CategoryEssential,
		},
		{
			ID:          "document_review",
			Name:        "Document review",
			Description: "Check of the full application package before submission",
			Price:       decimal.NewFromInt(79),
			Category:    CategoryEssential,
		},
		{
			ID:          "translation",
			Name:        "Certified translation",
			Description: "Sworn translation of up to five supporting documents",
			Price:       decimal.NewFromInt(59),
			Category:    CategoryAdditional,
		},
		{
			ID:          "express",
			Name:        "Express processing",
			Description: "Priority handling with submission within 48 hours",
			Price:       decimal.NewFromInt(149),
			Category:    CategoryPremium,
		},
	}
}

// ToggleSelection flips the selection flag of the service with the given id.
// The input slice is left untouched.
func ToggleSelection(services []Service, id string) ([]Service, error) {
	out := make([]Service, len(services))
	copy(out, services)

	for i := range out {
		if out[i].ID == id {
			out[i].Selected = !out[i].Selected
			return out, nil
		}
	}
	return services, ErrUnknownService
}

func SelectedServices(services []Service) []Service {
	var selected []Service
	for _, s := range services {
		if s.Selected {
			selected = append(selected, s)
		}
	}
	return selected
}

func FindService(services []Service, id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
