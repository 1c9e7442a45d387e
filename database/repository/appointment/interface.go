package appointmentRepo

import "clinicbook/models"

// AppointmentRepository defines the persistence operations for appointment records.
type AppointmentRepository interface {
	// Create inserts a new appointment document, stamping created_at/updated_at.
	Create(appt *models.Appointment) error
	// GetByID retrieves an appointment by its unique ID. Returns (nil, nil)
	// when no document matches.
	GetByID(id string) (*models.Appointment, error)
	// GetByPaymentIntentID retrieves the appointment a payment intent was
	// created for. Returns (nil, nil) when no document matches.
	GetByPaymentIntentID(intentID string) (*models.Appointment, error)
	// GetAll retrieves all appointments ordered by appointment_time descending.
	GetAll() ([]models.Appointment, error)
	// SetPaymentIntent attaches a payment intent ID to the appointment and
	// bumps updated_at.
	SetPaymentIntent(id, intentID string) error
	// MarkPaid sets is_paid=true on the appointment and bumps updated_at.
	MarkPaid(id string) error
	// CountByPaid returns the number of paid and pending appointments.
	CountByPaid() (paid int64, pending int64, err error)
}
