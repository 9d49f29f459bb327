package checkout

import (
	"errors"
	"fmt"
)

// State is a checkout step
type State string

const (
	StateAddressSelection    State = "ADDRESS_SELECTION"
	StatePaymentInit         State = "PAYMENT_INIT"
	StatePaymentMethodChoice State = "PAYMENT_METHOD_CHOICE"
	StateFinalizing          State = "FINALIZING"
	StateSuccess             State = "SUCCESS"
	StateFailure             State = "FAILURE"
)

// ErrInvalidTransition is returned for a step the checkout cannot take
var ErrInvalidTransition = errors.New("invalid checkout transition")

var transitions = map[State][]State{
	StateAddressSelection:    {StatePaymentInit},
	StatePaymentInit:         {StatePaymentMethodChoice, StateAddressSelection},
	StatePaymentMethodChoice: {StateFinalizing, StateAddressSelection},
	StateFinalizing:          {StateSuccess, StateFailure},
	StateFailure:             {StatePaymentMethodChoice},
}

// Transition validates a move from one state to another and returns the new state
func Transition(from, to State) (State, error) {
	for _, next := range transitions[from] {
		if next == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

