package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"visa-checkout/internal/checkout"
)

type quoteOutput struct {
	checkout.Calculation
	Method    checkout.Method `json:"method"`
	Converted string          `json:"converted"`
}

func newQuoteCmd() *cobra.Command {
	var (
		selected []string
		promo    string
		method   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a selection of services",
		Long:  "Compute subtotal, discount and total for the given services without starting a checkout.",
		Example: "  visacheckout quote --select consultation,translation --promo digital2024\n" +
			"  visacheckout quote --all --method rub",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := checkout.ParseMethod(method)
			if err != nil {
				return fmt.Errorf("--method %q: %w", method, err)
			}

			services := checkout.DefaultCatalog()
			if all, _ := cmd.Flags().GetBool("all"); all {
				selected = selected[:0]
				for _, s := range services {
					selected = append(selected, s.ID)
				}
			}
			for _, id := range selected {
				if s, ok := checkout.FindService(services, id); ok && s.Selected {
					continue
				}
				services, err = checkout.ToggleSelection(services, id)
				if err != nil {
					return fmt.Errorf("service %q: %w", id, err)
				}
			}

			calc := checkout.Calculate(services, checkout.FormData{PromoCode: promo}, checkout.DefaultRules())

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(quoteOutput{
					Calculation: calc,
					Method:      m,
					Converted:   m.Format(calc.Total),
				})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, s := range calc.Selected {
				fmt.Fprintf(w, "%s\t%s\t€%s\n", s.Name, s.Category, s.Price.StringFixed(2))
			}
			fmt.Fprintf(w, "Subtotal\t\t€%s\n", calc.Subtotal.StringFixed(2))
			fmt.Fprintf(w, "Discount\t%s%%\t-€%s\n", calc.DiscountPercent().String(), calc.DiscountAmount.StringFixed(2))
			fmt.Fprintf(w, "Total\t\t€%s\n", calc.Total.StringFixed(2))
			fmt.Fprintf(w, "Pay in %s\t\t%s\n", m.Label(), m.Format(calc.Total))
			if err := w.Flush(); err != nil {
				return err
			}

			for _, d := range calc.AppliedDiscounts {
				fmt.Fprintf(cmd.OutOrStdout(), "applied: %s\n", d)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&selected, "select", nil, "service ids to include (comma separated)")
	cmd.Flags().Bool("all", false, "include every service")
	cmd.Flags().StringVar(&promo, "promo", "", "promo code")
	cmd.Flags().StringVar(&method, "method", string(checkout.MethodEUR), "payment method: rub, eur or crypto")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the calculation as JSON")
	return cmd
}
