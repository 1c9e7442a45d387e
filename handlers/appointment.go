package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"clinicbook/config"
	"clinicbook/services/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler serves the booking form, listing and confirmation pages.
type AppointmentHandler struct {
	svc      appointment.AppointmentService
	sessions SessionStore
	logger   *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService, sessions SessionStore, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, sessions: sessions, logger: logger}
}

// ShowBookingForm renders an empty booking form.
func (h *AppointmentHandler) ShowBookingForm(c *gin.Context) {
	flash, _ := h.sessions.TakeFlash(c)
	c.HTML(http.StatusOK, "create.html", gin.H{
		"title":  "Book Appointment",
		"slots":  appointment.TimeSlots,
		"form":   &appointment.BookingForm{},
		"errors": appointment.FieldErrors{},
		"flash":  flash,
	})
}

// CreateAppointment validates the submitted form, persists the appointment
// and redirects to the payment page.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var form appointment.BookingForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "create.html", gin.H{
			"title":  "Book Appointment",
			"slots":  appointment.TimeSlots,
			"form":   &form,
			"errors": appointment.FieldErrors{},
			"flash":  "Please correct the errors below.",
		})
		return
	}

	at, fieldErrs := form.Validate(time.Now(), config.BookingLocation())
	if len(fieldErrs) > 0 {
		c.HTML(http.StatusBadRequest, "create.html", gin.H{
			"title":  "Book Appointment",
			"slots":  appointment.TimeSlots,
			"form":   &form,
			"errors": fieldErrs,
			"flash":  "Please correct the errors below.",
		})
		return
	}

	appt, err := h.svc.Create(form.ProviderName, form.ClientEmail, at)
	if err != nil {
		h.logger.Error("failed to create appointment", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "create.html", gin.H{
			"title":  "Book Appointment",
			"slots":  appointment.TimeSlots,
			"form":   &form,
			"errors": appointment.FieldErrors{},
			"flash":  "Could not save your appointment. Please try again.",
		})
		return
	}

	// The identifier travels in the redirect target; the session marker is
	// kept as a fallback for clients that drop query parameters.
	if err := h.sessions.SetPendingAppointment(c, appt.ID); err != nil {
		h.logger.Error("failed to store pending appointment", zap.String("appointment", appt.ID), zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/payments/create?appointment_id="+url.QueryEscape(appt.ID))
}

// ListAppointments renders all appointments with paid/pending counts.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		h.logger.Error("failed to list appointments", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "list.html", gin.H{
			"title": "Appointments",
			"flash": "Could not load appointments.",
		})
		return
	}
	c.HTML(http.StatusOK, "list.html", gin.H{
		"title":        "Appointments",
		"appointments": list.Appointments,
		"paidCount":    list.PaidCount,
		"pendingCount": list.PendingCount,
		"now":          time.Now(),
	})
}

// BookingSuccess renders the confirmation page for the appointment whose
// payment just completed. The identifier arrives in the redirect target, with
// the session's completed marker as fallback; the marker is consumed on read.
func (h *AppointmentHandler) BookingSuccess(c *gin.Context) {
	id := c.Query("appointment_id")
	ok := id != ""
	if sid, sok := h.sessions.TakeCompletedAppointment(c); !ok && sok {
		id, ok = sid, true
	}
	if ok {
		appt, err := h.svc.Finalize(id)
		if err == nil {
			c.HTML(http.StatusOK, "success.html", gin.H{
				"title":       "Booking Confirmed",
				"appointment": appt,
			})
			return
		}
		if !errors.Is(err, appointment.ErrNotFound) {
			h.logger.Error("failed to finalize appointment", zap.String("appointment", id), zap.Error(err))
		}
	}

	if err := h.sessions.SetFlash(c, "No appointment found."); err != nil {
		h.logger.Warn("failed to store flash message", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/appointments/create")
}
