package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"visa-checkout/internal/checkout"
)

// render shows the screen for the chat's current step.
func (b *Bot) render(ctx context.Context, chatID int64) {
	state, err := b.checkout.State(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get checkout state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not load your order")
		return
	}
	b.renderState(chatID, state)
}

func (b *Bot) renderState(chatID int64, state checkout.State) {
	b.sendMessage(b.screen(chatID, state))
}

func (b *Bot) screen(chatID int64, state checkout.State) tgbotapi.MessageConfig {
	calc := b.checkout.Calculate(state)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Step %d/%d · %s\n\n", state.Step.Index()+1, checkout.StepCount(), state.Step.Title())

	msg := tgbotapi.NewMessage(chatID, "")
	switch state.Step {
	case checkout.StepSelection:
		sb.WriteString("Tap a service to add or remove it.\n\n")
		for _, s := range state.Services {
			fmt.Fprintf(&sb, "• %s (%s): %s\n", s.Name, s.Category, s.Description)
		}
		sb.WriteString("\n")
		sb.WriteString(FormatSummary(calc))
		msg.ReplyMarkup = selectionKeyboard(state)

	case checkout.StepContact:
		sb.WriteString(FormatContact(state))
		sb.WriteString("\n")
		sb.WriteString(FormatSummary(calc))
		msg.ReplyMarkup = contactKeyboard(state)

	case checkout.StepPayment:
		sb.WriteString(FormatSummary(calc))
		if state.Processing {
			fmt.Fprintf(&sb, "\n⏳ Processing payment in %s…", state.Method.Label())
		} else {
			sb.WriteString("\nAccept the terms and choose how to pay.")
			msg.ReplyMarkup = paymentKeyboard(state, calc.Total)
		}
	}

	msg.Text = sb.String()
	return msg
}

func FormatSummary(calc checkout.Calculation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Selected: %d\n", len(calc.Selected))
	fmt.Fprintf(&sb, "Subtotal: €%s\n", calc.Subtotal.StringFixed(2))
	if calc.Discount.IsPositive() {
		fmt.Fprintf(&sb, "Discount (%s%%): -€%s\n",
			calc.DiscountPercent().String(),
			calc.DiscountAmount.StringFixed(2))
	}
	fmt.Fprintf(&sb, "Total: €%s\n", calc.Total.StringFixed(2))

	if len(calc.AppliedDiscounts) > 0 {
		sb.WriteString("Discounts:\n")
		for _, d := range calc.AppliedDiscounts {
			fmt.Fprintf(&sb, "  • %s\n", d)
		}
	}
	return sb.String()
}

func FormatContact(state checkout.State) string {
	var sb strings.Builder
	for _, f := range checkout.ContactFields {
		value := state.Form.Value(f)
		if value == "" {
			value = "not set"
		}
		label := f.Label()
		if f.Required() {
			label += "*"
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, value)
		if msg, ok := state.Errors[f]; ok {
			fmt.Fprintf(&sb, "   ⚠️ %s\n", msg)
		}
	}
	return sb.String()
}
