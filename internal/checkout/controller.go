package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store keeps one State per session. Load returns NewState for an unknown
// session.
type Store interface {
	Load(ctx context.Context, sessionID int64) (State, error)
	Save(ctx context.Context, sessionID int64, state State) error
	Drop(ctx context.Context, sessionID int64) error
}

type Notifier interface {
	Notify(ctx context.Context, sessionID int64, n Notice)
}

type PaymentResult struct {
	ID     string
	Method Method
	Amount decimal.Decimal
	Err    error
}

// Payer starts a payment and reports the outcome through done, possibly on
// another goroutine.
type Payer interface {
	Pay(ctx context.Context, method Method, amount decimal.Decimal, done func(PaymentResult))
}

// Listener is told about state changes that happen outside a user request,
// i.e. when a payment finishes.
type Listener func(ctx context.Context, sessionID int64, state State)

type Controller struct {
	mu       sync.Mutex
	store    Store
	rules    []DiscountRule
	payer    Payer
	notifier Notifier
	listener Listener
	logger   *zap.Logger

	// inflight holds sessions whose payer callback is still pending.
	inflight map[int64]struct{}
}

type Option func(*Controller)

func WithRules(rules []DiscountRule) Option {
	return func(c *Controller) { c.rules = rules }
}

func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

func NewController(store Store, payer Payer, notifier Notifier, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		rules:    DefaultRules(),
		payer:    payer,
		notifier: notifier,
		logger:   logger,
		inflight: make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State(ctx context.Context, sessionID int64) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, sessionID)
}

// load returns the stored state. A Processing flag without a pending payer
// callback is left over from a restart or a failed save and is cleared.
func (c *Controller) load(ctx context.Context, sessionID int64) (State, error) {
	state, err := c.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	if _, pending := c.inflight[sessionID]; state.Processing && !pending {
		c.logger.Warn("Clearing stale payment",
			zap.Int64("session_id", sessionID),
			zap.String("method", string(state.Method)))
		state.Processing = false
		state.Method = ""
	}
	return state, nil
}

func (c *Controller) Calculate(state State) Calculation {
	return Calculate(state.Services, state.Form, c.rules)
}

// Dispatch runs an action against the stored session state. Rejected actions
// are returned as errors; notices are delivered either way.
func (c *Controller) Dispatch(ctx context.Context, sessionID int64, a Action) (State, error) {
	const operation = "checkout.Dispatch"

	c.mu.Lock()
	state, err := c.load(ctx, sessionID)
	if err != nil {
		c.mu.Unlock()
		return State{}, fmt.Errorf("%s: load state: %w", operation, err)
	}

	next, notices, actionErr := Reduce(state, a)
	if actionErr == nil || errors.Is(actionErr, ErrInvalidContact) {
		if err := c.save(ctx, sessionID, a, next); err != nil {
			c.mu.Unlock()
			return state, fmt.Errorf("%s: save state: %w", operation, err)
		}
	}
	if _, started := a.(StartPayment); started && actionErr == nil {
		c.inflight[sessionID] = struct{}{}
	}
	c.mu.Unlock()

	c.logger.Debug("Checkout action",
		zap.Int64("session_id", sessionID),
		zap.String("action", fmt.Sprintf("%T", a)),
		zap.String("step", next.Step.String()),
		zap.NamedError("rejected", actionErr))

	for _, n := range notices {
		c.notifier.Notify(ctx, sessionID, n)
	}
	return next, actionErr
}

// save drops the session whenever the action brought it back to the initial
// state.
func (c *Controller) save(ctx context.Context, sessionID int64, a Action, s State) error {
	switch a := a.(type) {
	case Reset:
		return c.store.Drop(ctx, sessionID)
	case PaymentFinished:
		if a.Err == nil {
			return c.store.Drop(ctx, sessionID)
		}
	}
	return c.store.Save(ctx, sessionID, s)
}

// Pay moves the session into processing and hands the converted total to the
// payer. The outcome is applied when the payer calls back.
func (c *Controller) Pay(ctx context.Context, sessionID int64, method Method) error {
	state, err := c.Dispatch(ctx, sessionID, StartPayment{Method: method})
	if err != nil {
		return err
	}

	calc := c.Calculate(state)
	amount := method.Convert(calc.Total)

	c.logger.Info("Payment started",
		zap.Int64("session_id", sessionID),
		zap.String("method", string(method)),
		zap.String("amount", amount.String()))

	c.payer.Pay(ctx, method, amount, func(res PaymentResult) {
		c.finish(sessionID, res)
	})
	return nil
}

func (c *Controller) finish(sessionID int64, res PaymentResult) {
	// The request context is gone by now.
	ctx := context.Background()

	if res.Err != nil {
		c.logger.Warn("Payment failed",
			zap.Int64("session_id", sessionID),
			zap.String("payment_id", res.ID),
			zap.Error(res.Err))
	} else {
		c.logger.Info("Payment completed",
			zap.Int64("session_id", sessionID),
			zap.String("payment_id", res.ID))
	}

	state, err := c.Dispatch(ctx, sessionID, PaymentFinished{Err: res.Err})

	c.mu.Lock()
	delete(c.inflight, sessionID)
	c.mu.Unlock()

	if err != nil {
		if !errors.Is(err, ErrWrongStep) {
			c.logger.Error("Failed to apply payment result",
				zap.Int64("session_id", sessionID),
				zap.Error(err))
		}
		return
	}
	if c.listener != nil {
		c.listener(ctx, sessionID, state)
	}
}
