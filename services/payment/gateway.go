package payment

import (
	"context"

	"clinicbook/models"
)

// StatusSucceeded is the gateway status that confirms a payment.
const StatusSucceeded = "succeeded"

// PaymentGateway wraps the remote payment processor's intent operations.
type PaymentGateway interface {
	// CreateIntent creates a payment intent for the given amount in minor
	// currency units. Any remote rejection comes back as a *GatewayError.
	// Single attempt, no retry.
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*models.PaymentIntentResult, error)
	// RetrieveIntent fetches an intent by ID. Errors as CreateIntent.
	RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntentResult, error)
	// ConfirmIntent reports whether the intent's remote status is
	// StatusSucceeded. Retrieval failures yield ("", false) rather than an
	// error; the raw status is returned so callers can tell a failed intent
	// from one still requiring action.
	ConfirmIntent(ctx context.Context, id string) (status string, confirmed bool)
}
