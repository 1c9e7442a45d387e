package models

import "time"

// Appointment is the persisted booking record. A record starts unpaid with no
// payment intent attached; the payment flow sets PaymentIntentID first and
// flips IsPaid only after the gateway reports the intent succeeded.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	ProviderName    string    `bson:"provider_name" json:"provider_name"`
	ClientEmail     string    `bson:"client_email" json:"client_email"`
	AppointmentTime time.Time `bson:"appointment_time" json:"appointment_time"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
	IsPaid          bool      `bson:"is_paid" json:"is_paid"`
	PaymentIntentID string    `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
}

// IsUpcoming reports whether the appointment is still in the future.
func (a Appointment) IsUpcoming(now time.Time) bool {
	return a.AppointmentTime.After(now)
}

// AppointmentList bundles the full listing with paid/pending aggregates.
type AppointmentList struct {
	Appointments []Appointment `json:"appointments"`
	PaidCount    int64         `json:"paid_count"`
	PendingCount int64         `json:"pending_count"`
}
