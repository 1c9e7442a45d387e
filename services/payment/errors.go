package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAppointment is returned by Initiate when no pending appointment
	// identifier was supplied.
	ErrNoAppointment = errors.New("no appointment to pay for")
	// ErrMissingIntent is returned by Confirm when no payment intent ID was
	// supplied.
	ErrMissingIntent = errors.New("no payment intent ID provided")
)

// GatewayError wraps any rejection from the remote payment processor.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NotConfirmedError is returned by Confirm when the gateway does not report
// the intent as succeeded. Status carries the gateway's raw status string
// ("" when the intent could not be retrieved at all).
type NotConfirmedError struct {
	IntentID string
	Status   string
}

func (e *NotConfirmedError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("payment %s not confirmed", e.IntentID)
	}
	return fmt.Sprintf("payment %s not confirmed: status %q", e.IntentID, e.Status)
}
