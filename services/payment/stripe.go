package payment

import (
	"context"

	"clinicbook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway implements PaymentGateway against the Stripe PaymentIntent
// API. The API key is set globally (stripe.Key) at startup.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway creates a Stripe-backed payment gateway.
func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{logger: logger}
}

// CreateIntent creates a Stripe PaymentIntent with automatic payment methods.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*models.PaymentIntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error("stripe create intent failed", zap.Error(err))
		return nil, &GatewayError{Op: "create", Err: err}
	}

	return &models.PaymentIntentResult{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

// RetrieveIntent fetches a PaymentIntent by ID.
func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}
	pi, err := paymentintent.Get(id, params)
	if err != nil {
		g.logger.Error("stripe retrieve intent failed", zap.String("intent", id), zap.Error(err))
		return nil, &GatewayError{Op: "retrieve", Err: err}
	}

	return &models.PaymentIntentResult{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}, nil
}

// ConfirmIntent checks whether the intent has succeeded. A retrieval error is
// treated as not confirmed, never propagated.
func (g *StripeGateway) ConfirmIntent(ctx context.Context, id string) (string, bool) {
	res, err := g.RetrieveIntent(ctx, id)
	if err != nil {
		return "", false
	}
	return res.Status, res.Status == StatusSucceeded
}
