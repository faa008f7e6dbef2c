package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visa-checkout/internal/checkout"
	"visa-checkout/internal/cli"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuote_Table(t *testing.T) {
	out, err := run(t, "quote", "--select", "consultation,translation", "--promo", "digital2024")
	require.NoError(t, err)

	assert.Contains(t, out, "Visa consultation")
	assert.Contains(t, out, "€108.00")
	assert.Contains(t, out, "-€10.80")
	assert.Contains(t, out, "€97.20")
	assert.Contains(t, out, "97.20 EUR")
	assert.Contains(t, out, "applied: Promo code DIGITAL2024: 10% off")
	assert.Contains(t, out, "applied: First order with two or more services: 5% off")
}

func TestQuote_JSON(t *testing.T) {
	out, err := run(t, "quote", "--all", "--method", "rub", "--json")
	require.NoError(t, err)

	var got struct {
		Subtotal         string            `json:"subtotal"`
		Total            string            `json:"total"`
		Winning          string            `json:"winning"`
		Method           checkout.Method   `json:"method"`
		Converted        string            `json:"converted"`
		AppliedDiscounts []string          `json:"applied_discounts"`
		Selected         []json.RawMessage `json:"selected"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "336", got.Subtotal)
	assert.Equal(t, "285.6", got.Total)
	assert.Equal(t, "bulk", got.Winning)
	assert.Equal(t, checkout.MethodRUB, got.Method)
	assert.Equal(t, "28560.00 RUB", got.Converted)
	assert.Len(t, got.Selected, 4)
	assert.Len(t, got.AppliedDiscounts, 2)
}

func TestQuote_DuplicateSelectionCountsOnce(t *testing.T) {
	out, err := run(t, "quote", "--select", "express,express", "--json")
	require.NoError(t, err)

	var got struct {
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "149", got.Total)
}

func TestQuote_Errors(t *testing.T) {
	_, err := run(t, "quote", "--select", "passport")
	assert.ErrorIs(t, err, checkout.ErrUnknownService)

	_, err = run(t, "quote", "--select", "express", "--method", "usd")
	assert.ErrorIs(t, err, checkout.ErrUnknownMethod)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "visacheckout dev (none)")
}
