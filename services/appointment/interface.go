package appointment

import (
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
)

// AppointmentService defines the interface for the booking workflow.
type AppointmentService interface {
	// Create persists a new unpaid appointment and returns it.
	Create(providerName, clientEmail string, at time.Time) (*models.Appointment, error)
	// List returns all appointments ordered by appointment time descending,
	// with paid/pending aggregates.
	List() (*models.AppointmentList, error)
	// Finalize looks up a completed appointment for the confirmation page.
	// Returns ErrNotFound when the identifier is stale or unknown.
	Finalize(id string) (*models.Appointment, error)
}

// DefaultAppointmentService implements AppointmentService.
type DefaultAppointmentService struct {
	Repo appointmentRepo.AppointmentRepository
}
