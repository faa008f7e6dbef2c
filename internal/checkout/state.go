package checkout

import (
	"fmt"

	"visa-checkout/internal/toast"
)

// State is the whole checkout session. It is treated as a value: Reduce
// never mutates the State it receives.
type State struct {
	Services        []Service   `json:"services"`
	Form            FormData    `json:"form"`
	Step            Step        `json:"step"`
	TermsAccepted   bool        `json:"terms_accepted"`
	ShowContactForm bool        `json:"show_contact_form"`
	Processing      bool        `json:"processing"`
	Method          Method      `json:"method,omitempty"`
	Errors          FieldErrors `json:"errors,omitempty"`
}

func NewState() State {
	return State{
		Services: DefaultCatalog(),
		Step:     StepSelection,
	}
}

// Notice is a user-facing message produced by a transition.
type Notice struct {
	Message  string         `json:"message"`
	Severity toast.Severity `json:"severity"`
}

type Action interface {
	action()
}

type (
	ToggleService struct{ ID string }
	UpdateField   struct {
		Field Field
		Value string
	}
	AcceptTerms  struct{ Accepted bool }
	Next         struct{}
	Back         struct{}
	StartPayment struct{ Method Method }
	// PaymentFinished carries the simulator outcome; a nil Err is a success.
	PaymentFinished struct{ Err error }
	Reset           struct{}
)

func (ToggleService) action()   {}
func (UpdateField) action()     {}
func (AcceptTerms) action()     {}
func (Next) action()            {}
func (Back) action()            {}
func (StartPayment) action()    {}
func (PaymentFinished) action() {}
func (Reset) action()           {}

const (
	msgEmptySelection = "Please select at least one service"
	msgInvalidContact = "Please fix the errors in the form"
	msgTermsRequired  = "Please accept the terms of service"
	msgPaymentOK      = "Payment successful! We will contact you shortly"
	msgPaymentFailed  = "Payment failed, please try again"
)

// Reduce applies a single action. A rejected action returns the reason and
// any notice the user should see. The returned state is the input state,
// except for ErrInvalidContact, where it carries the per-field errors.
func Reduce(s State, a Action) (State, []Notice, error) {
	if s.Processing {
		switch a.(type) {
		case PaymentFinished, Reset:
		default:
			return s, nil, ErrPaymentInFlight
		}
	}

	switch a := a.(type) {
	case ToggleService:
		if s.Step != StepSelection {
			return s, nil, ErrWrongStep
		}
		services, err := ToggleSelection(s.Services, a.ID)
		if err != nil {
			return s, nil, err
		}
		s.Services = services
		return s, nil, nil

	case UpdateField:
		if s.Step != StepContact {
			return s, nil, ErrWrongStep
		}
		form, err := s.Form.Update(a.Field, a.Value)
		if err != nil {
			return s, nil, err
		}
		s.Form = form
		s.Errors = s.Errors.without(a.Field)
		return s, nil, nil

	case AcceptTerms:
		if s.Step != StepPayment {
			return s, nil, ErrWrongStep
		}
		s.TermsAccepted = a.Accepted
		return s, nil, nil

	case Next:
		return next(s)

	case Back:
		return back(s)

	case StartPayment:
		if s.Step != StepPayment {
			return s, nil, ErrWrongStep
		}
		if _, err := ParseMethod(string(a.Method)); err != nil {
			return s, nil, err
		}
		if !s.TermsAccepted {
			return s, []Notice{{Message: msgTermsRequired, Severity: toast.Warning}}, ErrTermsNotAccepted
		}
		s.Processing = true
		s.Method = a.Method
		return s, nil, nil

	case PaymentFinished:
		if !s.Processing {
			return s, nil, ErrWrongStep
		}
		if a.Err != nil {
			s.Processing = false
			s.Method = ""
			return s, []Notice{{Message: msgPaymentFailed, Severity: toast.Error}}, nil
		}
		return NewState(), []Notice{{Message: msgPaymentOK, Severity: toast.Success}}, nil

	case Reset:
		return NewState(), nil, nil
	}

	return s, nil, fmt.Errorf("checkout: unhandled action %T", a)
}

func next(s State) (State, []Notice, error) {
	switch s.Step {
	case StepSelection:
		if len(SelectedServices(s.Services)) == 0 {
			return s, []Notice{{Message: msgEmptySelection, Severity: toast.Warning}}, ErrEmptySelection
		}
		s.Step = StepContact
		s.ShowContactForm = true
		return s, nil, nil

	case StepContact:
		if errs := ValidateContact(s.Form); len(errs) > 0 {
			s.Errors = errs
			return s, []Notice{{Message: msgInvalidContact, Severity: toast.Warning}}, ErrInvalidContact
		}
		s.Errors = nil
		s.Step = StepPayment
		return s, nil, nil

	case StepPayment:
		return s, nil, ErrNoForwardStep
	}
	return s, nil, fmt.Errorf("checkout: unknown step %q", s.Step)
}

func back(s State) (State, []Notice, error) {
	switch s.Step {
	case StepSelection:
		return s, nil, ErrNoPreviousStep
	case StepContact:
		s.Step = StepSelection
		return s, nil, nil
	case StepPayment:
		s.Step = StepContact
		return s, nil, nil
	}
	return s, nil, fmt.Errorf("checkout: unknown step %q", s.Step)
}

func (e FieldErrors) without(f Field) FieldErrors {
	if _, ok := e[f]; !ok {
		return e
	}
	out := make(FieldErrors, len(e)-1)
	for k, v := range e {
		if k != f {
			out[k] = v
		}
	}
	return out
}
