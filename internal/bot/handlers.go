package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"visa-checkout/internal/checkout"
)

const helpText = `Available commands:
/start - start a new order
/cancel - clear the current order
/help - show this help

Pick services, fill in your contact details and choose a payment method.`

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "start":
		b.handleStart(ctx, chatID)
	case "cancel":
		b.handleCancel(ctx, chatID)
	case "help":
		b.sendText(chatID, helpText)
	default:
		b.sendError(chatID, "Unknown command. Use /start to begin.")
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	if err := b.reset(ctx, chatID); err != nil {
		if errors.Is(err, checkout.ErrPaymentInFlight) {
			b.sendError(chatID, "Your payment is still being processed, please wait.")
			return
		}
		b.logger.Error("Failed to reset checkout",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not start a new order")
		return
	}

	b.sendText(chatID, "Welcome! Let's put together your visa service package.")
	b.render(ctx, chatID)
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) {
	if err := b.reset(ctx, chatID); err != nil {
		b.sendError(chatID, b.describeError(chatID, err))
		return
	}
	b.sendText(chatID, "Your order has been cleared.")
	b.render(ctx, chatID)
}

func (b *Bot) handleCancelButton(ctx context.Context, chatID int64, _ string) error {
	if err := b.reset(ctx, chatID); err != nil {
		return err
	}
	b.render(ctx, chatID)
	return nil
}

// reset refuses to drop a session whose payment has not resolved yet.
func (b *Bot) reset(ctx context.Context, chatID int64) error {
	state, err := b.checkout.State(ctx, chatID)
	if err != nil {
		return err
	}
	if state.Processing {
		return checkout.ErrPaymentInFlight
	}

	delete(b.awaiting, chatID)
	_, err = b.checkout.Dispatch(ctx, chatID, checkout.Reset{})
	return err
}

func (b *Bot) handleToggle(ctx context.Context, chatID int64, id string) error {
	if _, err := b.checkout.Dispatch(ctx, chatID, checkout.ToggleService{ID: id}); err != nil {
		return err
	}
	b.render(ctx, chatID)
	return nil
}

func (b *Bot) handleNext(ctx context.Context, chatID int64, _ string) error {
	_, err := b.checkout.Dispatch(ctx, chatID, checkout.Next{})
	if errors.Is(err, checkout.ErrInvalidContact) {
		// Notice already sent; show the per-field errors.
		b.render(ctx, chatID)
		return nil
	}
	if err != nil {
		return err
	}
	delete(b.awaiting, chatID)
	b.render(ctx, chatID)
	return nil
}

func (b *Bot) handleBack(ctx context.Context, chatID int64, _ string) error {
	if _, err := b.checkout.Dispatch(ctx, chatID, checkout.Back{}); err != nil {
		return err
	}
	delete(b.awaiting, chatID)
	b.render(ctx, chatID)
	return nil
}

func (b *Bot) handleEdit(ctx context.Context, chatID int64, arg string) error {
	field, err := checkout.ParseField(arg)
	if err != nil {
		return err
	}

	state, err := b.checkout.State(ctx, chatID)
	if err != nil {
		return err
	}
	if state.Step != checkout.StepContact {
		return checkout.ErrWrongStep
	}

	b.awaiting[chatID] = field
	b.sendMessage(fieldPrompt(chatID, field, state))
	return nil
}

func (b *Bot) handleFieldInput(ctx context.Context, chatID int64, field checkout.Field, text string) {
	delete(b.awaiting, chatID)

	value := strings.TrimSpace(text)
	if field == checkout.FieldPhone && checkout.IsValidPhoneNumber(value) {
		value = checkout.NormalizePhoneNumber(value)
	}

	if _, err := b.checkout.Dispatch(ctx, chatID, checkout.UpdateField{Field: field, Value: value}); err != nil {
		b.sendError(chatID, b.describeError(chatID, err))
	}
	b.render(ctx, chatID)
}

func (b *Bot) handleTerms(ctx context.Context, chatID int64, _ string) error {
	state, err := b.checkout.State(ctx, chatID)
	if err != nil {
		return err
	}
	if _, err := b.checkout.Dispatch(ctx, chatID, checkout.AcceptTerms{Accepted: !state.TermsAccepted}); err != nil {
		return err
	}
	b.render(ctx, chatID)
	return nil
}

func (b *Bot) handlePay(ctx context.Context, chatID int64, arg string) error {
	method, err := checkout.ParseMethod(arg)
	if err != nil {
		return err
	}
	if err := b.checkout.Pay(ctx, chatID, method); err != nil {
		return err
	}
	b.render(ctx, chatID)
	return nil
}

func (b *Bot) handleDismiss(_ context.Context, chatID int64, arg string) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return err
	}
	b.dismissToast(chatID, id)
	return nil
}

// onPaymentFinished runs on the simulator's goroutine.
func (b *Bot) onPaymentFinished(ctx context.Context, chatID int64, state checkout.State) {
	if state.Step == checkout.StepSelection {
		b.mu.Lock()
		delete(b.awaiting, chatID)
		b.mu.Unlock()
	}
	b.renderState(chatID, state)
}

// describeError turns a rejected action into a short user-facing message.
// Unexpected errors are logged.
func (b *Bot) describeError(chatID int64, err error) string {
	switch {
	case errors.Is(err, checkout.ErrEmptySelection),
		errors.Is(err, checkout.ErrInvalidContact),
		errors.Is(err, checkout.ErrTermsNotAccepted):
		// A toast has already explained these.
		return ""
	case errors.Is(err, checkout.ErrNoPreviousStep):
		return "This is the first step"
	case errors.Is(err, checkout.ErrNoForwardStep):
		return "Choose a payment method to finish"
	case errors.Is(err, checkout.ErrPaymentInFlight):
		return "Payment is being processed"
	case errors.Is(err, checkout.ErrWrongStep):
		return "This button is no longer active"
	case errors.Is(err, checkout.ErrUnknownMethod),
		errors.Is(err, checkout.ErrUnknownService),
		errors.Is(err, checkout.ErrUnknownField):
		return "Unknown option"
	}

	b.logger.Error("Checkout action failed",
		zap.Int64("chat_id", chatID),
		zap.Error(err))
	return "Something went wrong, please try again"
}

func fieldPrompt(chatID int64, field checkout.Field, state checkout.State) tgbotapi.MessageConfig {
	text := "Enter " + strings.ToLower(field.Label())
	if field == checkout.FieldPhone {
		text += " with country code, e.g. +49 151 2345678"
	}
	if !field.Required() {
		text += " (optional)"
	}
	if current := state.Form.Value(field); current != "" {
		text += "\nCurrent value: " + current
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true, Selective: true}
	return msg
}
