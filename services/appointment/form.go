package appointment

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimeSlots is the fixed set of bookable hour-aligned slots, 8 AM to 10 PM.
var TimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
	"18:00", "19:00", "20:00", "21:00", "22:00",
}

const maxProviderNameLen = 255

var validate = validator.New()

// FieldErrors maps form field names to a validation message.
type FieldErrors map[string]string

// BookingForm carries the raw booking form submission.
type BookingForm struct {
	ProviderName string `form:"provider_name"`
	ClientEmail  string `form:"client_email"`
	Date         string `form:"appointment_date"`
	TimeSlot     string `form:"appointment_time_slot"`
}

// Validate checks the form and combines Date and TimeSlot into a single
// timestamp in loc. The timestamp must be strictly after now. On failure the
// returned FieldErrors is non-empty and the timestamp is the zero value.
func (f *BookingForm) Validate(now time.Time, loc *time.Location) (time.Time, FieldErrors) {
	errs := FieldErrors{}

	if f.ProviderName == "" {
		errs["provider_name"] = "Provider name is required."
	} else if len(f.ProviderName) > maxProviderNameLen {
		errs["provider_name"] = fmt.Sprintf("Provider name must be at most %d characters.", maxProviderNameLen)
	}

	if err := validate.Var(f.ClientEmail, "required,email"); err != nil {
		errs["client_email"] = "Enter a valid email address."
	}

	var date time.Time
	if f.Date == "" {
		errs["appointment_date"] = "Appointment date is required."
	} else {
		d, err := time.ParseInLocation("2006-01-02", f.Date, loc)
		if err != nil {
			errs["appointment_date"] = "Enter a valid date (YYYY-MM-DD)."
		} else {
			date = d
		}
	}

	slotHour := -1
	for _, s := range TimeSlots {
		if s == f.TimeSlot {
			// Slots are hour-aligned "HH:00" strings.
			h, _ := strconv.Atoi(s[:2])
			slotHour = h
			break
		}
	}
	if slotHour < 0 {
		errs["appointment_time_slot"] = "Select a valid time slot."
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}

	at := time.Date(date.Year(), date.Month(), date.Day(), slotHour, 0, 0, 0, loc)
	if !at.After(now) {
		errs["appointment_date"] = "Appointment must be in the future."
		return time.Time{}, errs
	}
	return at, nil
}
