package models

// PaymentIntentResult is the local shape of a gateway payment intent. Status
// carries the provider's status string verbatim so callers can distinguish
// "requires_action" from "failed" instead of getting a flattened boolean.
type PaymentIntentResult struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"` // minor currency units
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// PaymentPage holds everything the payment collection page needs to render.
type PaymentPage struct {
	ClientSecret string
	Amount       int64 // minor currency units
	Currency     string
	Appointment  *Appointment
}
