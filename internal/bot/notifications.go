package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"visa-checkout/internal/checkout"
	"visa-checkout/internal/toast"
)

var _ checkout.Notifier = (*Bot)(nil)

// Notify shows a checkout notice as a toast message with a dismiss button.
// It may be called from the payment goroutine.
func (b *Bot) Notify(_ context.Context, chatID int64, n checkout.Notice) {
	queue := b.toastQueue(chatID)
	t, evicted := queue.Push(n.Message, n.Severity)

	msg := tgbotapi.NewMessage(chatID, n.Severity.Icon()+" "+n.Message)
	msg.ReplyMarkup = dismissKeyboard(t)

	sent, ok := b.sendMessage(msg)

	b.toastMu.Lock()
	if ok {
		b.toastMessages[t.ID] = sent.MessageID
	}
	stale := b.takeMessages(evicted)
	b.toastMu.Unlock()

	for _, messageID := range stale {
		b.deleteMessage(chatID, messageID)
	}

	b.logger.Debug("Toast shown",
		zap.Int64("chat_id", chatID),
		zap.String("toast_id", t.ID.String()),
		zap.String("severity", string(n.Severity)))
}

// dismissToast removes the toast from the chat's queue and deletes its
// message.
func (b *Bot) dismissToast(chatID int64, id uuid.UUID) {
	if !b.toastQueue(chatID).Remove(id) {
		return
	}

	b.toastMu.Lock()
	messageID, ok := b.toastMessages[id]
	delete(b.toastMessages, id)
	b.toastMu.Unlock()

	if ok {
		b.deleteMessage(chatID, messageID)
	}
}

func (b *Bot) toastQueue(chatID int64) *toast.Queue {
	b.toastMu.Lock()
	defer b.toastMu.Unlock()

	q, ok := b.toasts[chatID]
	if !ok {
		q = toast.NewQueue(b.toastLimit)
		b.toasts[chatID] = q
	}
	return q
}

func (b *Bot) takeMessages(toasts []toast.Toast) []int {
	var ids []int
	for _, t := range toasts {
		if id, ok := b.toastMessages[t.ID]; ok {
			ids = append(ids, id)
			delete(b.toastMessages, t.ID)
		}
	}
	return ids
}
