// Package payment simulates a payment provider. Nothing is charged: every
// payment resolves after a fixed delay.
package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"visa-checkout/internal/checkout"
)

const DefaultDelay = 2 * time.Second

// FailureFunc decides whether a payment should fail. Returning nil lets it
// succeed.
type FailureFunc func(method checkout.Method, amount decimal.Decimal) error

type Simulator struct {
	delay  time.Duration
	fail   FailureFunc
	logger *zap.Logger
}

var _ checkout.Payer = (*Simulator)(nil)

type Option func(*Simulator)

func WithDelay(d time.Duration) Option {
	return func(s *Simulator) { s.delay = d }
}

func WithFailure(f FailureFunc) Option {
	return func(s *Simulator) { s.fail = f }
}

func NewSimulator(logger *zap.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		delay:  DefaultDelay,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pay resolves the payment on its own goroutine. It cannot be cancelled: done
// is called even if ctx ends first.
func (s *Simulator) Pay(ctx context.Context, method checkout.Method, amount decimal.Decimal, done func(checkout.PaymentResult)) {
	id := uuid.NewString()

	s.logger.Debug("Simulating payment",
		zap.String("payment_id", id),
		zap.String("method", string(method)),
		zap.String("amount", amount.String()),
		zap.Duration("delay", s.delay))

	go func() {
		if s.delay > 0 {
			time.Sleep(s.delay)
		}

		res := checkout.PaymentResult{
			ID:     id,
			Method: method,
			Amount: amount,
		}
		if s.fail != nil {
			res.Err = s.fail(method, amount)
		}
		done(res)
	}()
}
