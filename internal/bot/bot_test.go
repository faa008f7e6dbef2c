package bot

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visa-checkout/internal/checkout"
	"visa-checkout/internal/payment"
	"visa-checkout/internal/session"
	"visa-checkout/internal/toast"
)

const chatID int64 = 100

type fakeAPI struct {
	mu      sync.Mutex
	nextID  int
	sent    []tgbotapi.MessageConfig
	answers []tgbotapi.CallbackConfig
	deleted []int
	updates chan tgbotapi.Update
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(chan tgbotapi.Update)}
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch cfg := c.(type) {
	case tgbotapi.CallbackConfig:
		f.answers = append(f.answers, cfg)
	case tgbotapi.DeleteMessageConfig:
		f.deleted = append(f.deleted, cfg.MessageID)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Text
}

func (f *fakeAPI) sentContaining(s string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.sent {
		if strings.Contains(m.Text, s) {
			return true
		}
	}
	return false
}

func (f *fakeAPI) lastAnswer() tgbotapi.CallbackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answers[len(f.answers)-1]
}

func newTestBot(t *testing.T, toastLimit int) (*Bot, *fakeAPI) {
	t.Helper()
	return newTestBotWithStore(t, session.NewMemoryStore(), toastLimit)
}

func newTestBotWithStore(t *testing.T, store checkout.Store, toastLimit int) (*Bot, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	b := New(api, Config{
		Store:      store,
		Payer:      payment.NewSimulator(zap.NewNop(), payment.WithDelay(0)),
		ToastLimit: toastLimit,
	}, zap.NewNop())
	return b, api
}

func command(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func text(s string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: s,
	}}
}

func press(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func state(t *testing.T, b *Bot) checkout.State {
	t.Helper()
	s, err := b.checkout.State(context.Background(), chatID)
	require.NoError(t, err)
	return s
}

func TestBot_CheckoutFlow(t *testing.T) {
	b, api := newTestBot(t, 5)
	ctx := context.Background()

	b.handleUpdate(ctx, command("/start"))
	assert.Contains(t, api.lastText(), "Step 1/3")

	b.handleUpdate(ctx, press("svc:consultation"))
	b.handleUpdate(ctx, press("svc:translation"))
	assert.Contains(t, api.lastText(), "Total: €102.60")
	assert.Empty(t, api.lastAnswer().Text)

	b.handleUpdate(ctx, press("next"))
	assert.Equal(t, checkout.StepContact, state(t, b).Step)

	b.handleUpdate(ctx, press("edit:name"))
	assert.Contains(t, api.lastText(), "Enter full name")
	b.handleUpdate(ctx, text("  Jo  "))
	b.handleUpdate(ctx, press("edit:email"))
	b.handleUpdate(ctx, text("jo@example.com"))
	b.handleUpdate(ctx, press("edit:phone"))
	b.handleUpdate(ctx, text("+49 (151) 234-5678"))
	b.handleUpdate(ctx, press("edit:promo_code"))
	b.handleUpdate(ctx, text("digital2024"))

	s := state(t, b)
	assert.Equal(t, "Jo", s.Form.Name)
	assert.Equal(t, "+491512345678", s.Form.Phone)

	b.handleUpdate(ctx, press("next"))
	assert.Equal(t, checkout.StepPayment, state(t, b).Step)
	assert.Contains(t, api.lastText(), "Total: €97.20")

	b.handleUpdate(ctx, press("pay:eur"))
	assert.True(t, api.sentContaining("Please accept the terms of service"))
	assert.False(t, state(t, b).Processing)

	b.handleUpdate(ctx, press("terms"))
	assert.True(t, state(t, b).TermsAccepted)

	b.handleUpdate(ctx, press("pay:eur"))

	assert.Eventually(t, func() bool {
		return api.sentContaining("Payment successful")
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return state(t, b).Step == checkout.StepSelection
	}, time.Second, 10*time.Millisecond)
}

func TestBot_InvalidContactShowsErrors(t *testing.T) {
	b, api := newTestBot(t, 5)
	ctx := context.Background()

	b.handleUpdate(ctx, press("svc:express"))
	b.handleUpdate(ctx, press("next"))
	b.handleUpdate(ctx, press("next"))

	assert.Equal(t, checkout.StepContact, state(t, b).Step)
	assert.True(t, api.sentContaining("Please fix the errors in the form"))
	assert.Contains(t, api.lastText(), "Full name is required")
}

func TestBot_CallbackErrors(t *testing.T) {
	b, api := newTestBot(t, 5)
	ctx := context.Background()

	b.handleUpdate(ctx, press("back"))
	assert.Equal(t, "This is the first step", api.lastAnswer().Text)

	b.handleUpdate(ctx, press("svc:passport"))
	assert.Equal(t, "Unknown option", api.lastAnswer().Text)

	b.handleUpdate(ctx, press("terms"))
	assert.Equal(t, "This button is no longer active", api.lastAnswer().Text)

	b.handleUpdate(ctx, press("bogus"))
	assert.Equal(t, "Unknown action", api.lastAnswer().Text)
}

func TestBot_CancelClearsOrder(t *testing.T) {
	b, api := newTestBot(t, 5)
	ctx := context.Background()

	b.handleUpdate(ctx, press("svc:express"))
	b.handleUpdate(ctx, command("/cancel"))

	assert.Empty(t, checkout.SelectedServices(state(t, b).Services))
	assert.True(t, api.sentContaining("Your order has been cleared."))
}

func TestBot_RecoversStalePayment(t *testing.T) {
	store := session.NewMemoryStore()
	stale := checkout.NewState()
	stale.Services[0].Selected = true
	stale.Step = checkout.StepPayment
	stale.TermsAccepted = true
	stale.Processing = true
	stale.Method = checkout.MethodEUR
	require.NoError(t, store.Save(context.Background(), chatID, stale))

	b, api := newTestBotWithStore(t, store, 5)
	ctx := context.Background()

	b.handleUpdate(ctx, press("back"))
	assert.Empty(t, api.lastAnswer().Text)
	assert.Equal(t, checkout.StepContact, state(t, b).Step)

	b.handleUpdate(ctx, command("/start"))
	assert.False(t, api.sentContaining("still being processed"))
	s := state(t, b)
	assert.Equal(t, checkout.StepSelection, s.Step)
	assert.False(t, s.Processing)
}

func TestBot_DismissToast(t *testing.T) {
	b, api := newTestBot(t, 5)
	ctx := context.Background()

	b.Notify(ctx, chatID, checkout.Notice{Message: "Heads up", Severity: toast.Warning})
	assert.Equal(t, "⚠️ Heads up", api.lastText())

	queued := b.toastQueue(chatID).List()
	require.Len(t, queued, 1)

	b.handleUpdate(ctx, press("toast:"+queued[0].ID.String()))

	assert.Empty(t, b.toastQueue(chatID).List())
	assert.Equal(t, []int{1}, api.deleted)

	// A second press is a no-op.
	b.handleUpdate(ctx, press("toast:"+queued[0].ID.String()))
	assert.Equal(t, []int{1}, api.deleted)
}

func TestBot_ToastEviction(t *testing.T) {
	b, api := newTestBot(t, 1)
	ctx := context.Background()

	b.Notify(ctx, chatID, checkout.Notice{Message: "first", Severity: toast.Success})
	b.Notify(ctx, chatID, checkout.Notice{Message: "second", Severity: toast.Error})

	assert.Equal(t, []int{1}, api.deleted)
	list := b.toastQueue(chatID).List()
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Message)

	// Other chats keep their own queue.
	b.Notify(ctx, chatID+1, checkout.Notice{Message: "elsewhere", Severity: toast.Success})
	assert.Len(t, b.toastQueue(chatID).List(), 1)
	assert.Equal(t, []int{1}, api.deleted)
}

func TestBot_StartStopsOnCancel(t *testing.T) {
	b, api := newTestBot(t, 5)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- b.Start(ctx) }()

	api.updates <- command("/help")
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
	assert.True(t, api.sentContaining("/cancel - clear the current order"))
}

func TestParseCallback(t *testing.T) {
	kind, arg := parseCallback("svc:document_review")
	assert.Equal(t, cbToggle, kind)
	assert.Equal(t, "document_review", arg)

	kind, arg = parseCallback(callbackData(cbNext, ""))
	assert.Equal(t, cbNext, kind)
	assert.Empty(t, arg)
}
