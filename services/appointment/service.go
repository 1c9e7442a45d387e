package appointment

import (
	"fmt"
	"time"

	"clinicbook/models"

	"github.com/google/uuid"
)

// Create persists a new appointment with is_paid=false and no payment intent.
func (s *DefaultAppointmentService) Create(providerName, clientEmail string, at time.Time) (*models.Appointment, error) {
	appt := &models.Appointment{
		ID:              uuid.New().String(),
		ProviderName:    providerName,
		ClientEmail:     clientEmail,
		AppointmentTime: at,
		IsPaid:          false,
	}
	if err := s.Repo.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

// List returns all appointments (appointment_time descending) plus aggregates.
func (s *DefaultAppointmentService) List() (*models.AppointmentList, error) {
	appts, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	paid, pending, err := s.Repo.CountByPaid()
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	return &models.AppointmentList{
		Appointments: appts,
		PaidCount:    paid,
		PendingCount: pending,
	}, nil
}

// Finalize fetches a completed appointment by ID for display.
func (s *DefaultAppointmentService) Finalize(id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	if appt == nil {
		return nil, ErrNotFound
	}
	return appt, nil
}
