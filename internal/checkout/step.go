package checkout

type Step string

const (
	StepSelection Step = "selection"
	StepContact   Step = "contact"
	StepPayment   Step = "payment"
)

var stepOrder = []Step{StepSelection, StepContact, StepPayment}

func (s Step) String() string {
	return string(s)
}

// Index is the zero-based position of the step, used for progress display.
func (s Step) Index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Step) Title() string {
	switch s {
	case StepSelection:
		return "Choose services"
	case StepContact:
		return "Contact details"
	case StepPayment:
		return "Payment"
	}
	return "Checkout"
}

// Valid reports whether s is one of the checkout steps.
func (s Step) Valid() bool {
	return s.Index() >= 0
}

func StepCount() int {
	return len(stepOrder)
}
