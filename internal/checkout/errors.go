package checkout

import "errors"

var (
	ErrEmptySelection   = errors.New("select at least one service")
	ErrInvalidContact   = errors.New("contact details are invalid")
	ErrNoForwardStep    = errors.New("payment step has no forward transition")
	ErrNoPreviousStep   = errors.New("selection step has no previous step")
	ErrPaymentInFlight  = errors.New("payment is being processed")
	ErrTermsNotAccepted = errors.New("terms must be accepted before payment")
	ErrUnknownMethod    = errors.New("unknown payment method")
	ErrUnknownService   = errors.New("unknown service")
	ErrUnknownField     = errors.New("unknown form field")
	ErrWrongStep        = errors.New("action is not available on this step")
)
