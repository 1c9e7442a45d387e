package payment

import (
	"context"
	"fmt"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
	"clinicbook/services/appointment"

	"go.uber.org/zap"
)

// PaymentService defines the interface for the payment workflow.
type PaymentService interface {
	// Initiate creates a payment intent for a pending appointment and
	// attaches the intent ID to the record.
	Initiate(ctx context.Context, appointmentID string) (*models.PaymentPage, error)
	// Confirm verifies the intent succeeded at the gateway and marks the
	// matching appointment paid.
	Confirm(ctx context.Context, intentID string) (*models.Appointment, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Repo     appointmentRepo.AppointmentRepository
	Gateway  PaymentGateway
	Amount   int64 // appointment fee in minor currency units
	Currency string
	Logger   *zap.Logger
}

// Initiate looks up the pending appointment, creates a gateway intent for the
// fixed fee and persists the intent ID on the record. The record is only
// mutated after the gateway call has succeeded.
func (s *DefaultPaymentService) Initiate(ctx context.Context, appointmentID string) (*models.PaymentPage, error) {
	if appointmentID == "" {
		return nil, ErrNoAppointment
	}

	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", appointmentID, err)
	}
	if appt == nil {
		return nil, appointment.ErrNotFound
	}

	intent, err := s.Gateway.CreateIntent(ctx, s.Amount, s.Currency, map[string]string{
		"appointment_id": appt.ID,
		"provider_name":  appt.ProviderName,
		"client_email":   appt.ClientEmail,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SetPaymentIntent(appt.ID, intent.ID); err != nil {
		return nil, fmt.Errorf("failed to attach payment intent to appointment %s: %w", appt.ID, err)
	}
	appt.PaymentIntentID = intent.ID

	s.Logger.Info("payment intent created",
		zap.String("appointment", appt.ID),
		zap.String("intent", intent.ID),
		zap.Int64("amount", s.Amount),
	)

	return &models.PaymentPage{
		ClientSecret: intent.ClientSecret,
		Amount:       s.Amount,
		Currency:     s.Currency,
		Appointment:  appt,
	}, nil
}

// Confirm verifies with the gateway that the intent succeeded, then flips the
// matching appointment to paid. Re-confirming an already-paid appointment
// simply re-saves it.
func (s *DefaultPaymentService) Confirm(ctx context.Context, intentID string) (*models.Appointment, error) {
	if intentID == "" {
		return nil, ErrMissingIntent
	}

	status, confirmed := s.Gateway.ConfirmIntent(ctx, intentID)
	if !confirmed {
		return nil, &NotConfirmedError{IntentID: intentID, Status: status}
	}

	appt, err := s.Repo.GetByPaymentIntentID(intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment for intent %s: %w", intentID, err)
	}
	if appt == nil {
		return nil, appointment.ErrNotFound
	}

	if err := s.Repo.MarkPaid(appt.ID); err != nil {
		return nil, fmt.Errorf("failed to mark appointment %s paid: %w", appt.ID, err)
	}
	appt.IsPaid = true

	s.Logger.Info("payment confirmed",
		zap.String("appointment", appt.ID),
		zap.String("intent", intentID),
	)
	return appt, nil
}
