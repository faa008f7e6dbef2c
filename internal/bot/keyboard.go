package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"visa-checkout/internal/checkout"
	"visa-checkout/internal/toast"
)

// BOT KEYBOARDS

const (
	cbToggle  = "svc"
	cbNext    = "next"
	cbBack    = "back"
	cbEdit    = "edit"
	cbTerms   = "terms"
	cbPay     = "pay"
	cbDismiss = "toast"
	cbCancel  = "cancel"
)

func callbackData(kind, arg string) string {
	if arg == "" {
		return kind
	}
	return kind + ":" + arg
}

func parseCallback(data string) (kind, arg string) {
	kind, arg, _ = strings.Cut(data, ":")
	return kind, arg
}

func selectionKeyboard(state checkout.State) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range state.Services {
		mark := "⬜"
		if s.Selected {
			mark = "✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				mark+" "+s.Name+" · €"+s.Price.StringFixed(0),
				callbackData(cbToggle, s.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Continue ➡️", cbNext),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func contactKeyboard(state checkout.State) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range checkout.ContactFields {
		label := "✏️ " + f.Label()
		if _, failed := state.Errors[f]; failed {
			label = "❗ " + f.Label()
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, callbackData(cbEdit, string(f))),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbBack),
		tgbotapi.NewInlineKeyboardButtonData("Continue ➡️", cbNext),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func paymentKeyboard(state checkout.State, total decimal.Decimal) tgbotapi.InlineKeyboardMarkup {
	terms := "⬜ I accept the terms of service"
	if state.TermsAccepted {
		terms = "✅ I accept the terms of service"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(terms, cbTerms),
		),
	}
	for _, m := range checkout.Methods {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Pay "+m.Format(total), callbackData(cbPay, string(m))),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbBack),
		tgbotapi.NewInlineKeyboardButtonData("Cancel order", cbCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func dismissKeyboard(t toast.Toast) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖ Dismiss", callbackData(cbDismiss, t.ID.String())),
		),
	)
}
