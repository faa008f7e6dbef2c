package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"visa-checkout/internal/checkout"
	"visa-checkout/internal/toast"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

var _ API = (*tgbotapi.BotAPI)(nil)

type Bot struct {
	api      API
	logger   *zap.Logger
	checkout *checkout.Controller

	mu       sync.Mutex
	awaiting map[int64]checkout.Field

	toastMu       sync.Mutex
	toastLimit    int
	toasts        map[int64]*toast.Queue
	toastMessages map[uuid.UUID]int

	callbacks map[string]func(ctx context.Context, chatID int64, arg string) error
}

type Config struct {
	Store      checkout.Store
	Payer      checkout.Payer
	ToastLimit int
}

// NewAPI authorizes against Telegram.
func NewAPI(token string, debug bool, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	botAPI.Debug = debug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))
	return botAPI, nil
}

func New(api API, cfg Config, logger *zap.Logger) *Bot {
	b := &Bot{
		api:           api,
		logger:        logger,
		awaiting:      make(map[int64]checkout.Field),
		toastLimit:    cfg.ToastLimit,
		toasts:        make(map[int64]*toast.Queue),
		toastMessages: make(map[uuid.UUID]int),
	}
	b.checkout = checkout.NewController(cfg.Store, cfg.Payer, b, logger,
		checkout.WithListener(b.onPaymentFinished))

	b.registerCallbacks()
	return b
}

func (b *Bot) registerCallbacks() {
	b.callbacks = map[string]func(context.Context, int64, string) error{
		cbToggle:  b.handleToggle,
		cbNext:    b.handleNext,
		cbBack:    b.handleBack,
		cbEdit:    b.handleEdit,
		cbTerms:   b.handleTerms,
		cbPay:     b.handlePay,
		cbDismiss: b.handleDismiss,
		cbCancel:  b.handleCancelButton,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command())
		return
	}

	if field, ok := b.awaiting[chatID]; ok {
		b.handleFieldInput(ctx, chatID, field, msg.Text)
		return
	}

	b.sendText(chatID, "Please use the buttons below.")
	b.render(ctx, chatID)
}

func (b *Bot) processCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", cb.Data))

	kind, arg := parseCallback(cb.Data)
	handler, ok := b.callbacks[kind]
	if !ok {
		b.answerCallback(cb.ID, "Unknown action")
		return
	}

	if err := handler(ctx, chatID, arg); err != nil {
		b.answerCallback(cb.ID, b.describeError(chatID, err))
		return
	}
	b.answerCallback(cb.ID, "")
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) (tgbotapi.Message, bool) {
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendText(chatID, "❌ "+text)
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", id),
			zap.Error(err))
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("Failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
	}
}
