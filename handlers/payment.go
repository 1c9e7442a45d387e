package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"clinicbook/services/appointment"
	"clinicbook/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the payment collection page and the confirm endpoint.
type PaymentHandler struct {
	svc            payment.PaymentService
	sessions       SessionStore
	logger         *zap.Logger
	publishableKey string
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService, sessions SessionStore, logger *zap.Logger, publishableKey string) *PaymentHandler {
	return &PaymentHandler{svc: svc, sessions: sessions, logger: logger, publishableKey: publishableKey}
}

// redirectToBooking flashes a message and sends the caller back to the form.
func (h *PaymentHandler) redirectToBooking(c *gin.Context, message string) {
	if err := h.sessions.SetFlash(c, message); err != nil {
		h.logger.Warn("failed to store flash message", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/appointments/create")
}

// CreatePayment creates a payment intent for the pending appointment and
// renders the payment collection page. The identifier arrives in the query
// string, with the session's pending marker as fallback.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	id := c.Query("appointment_id")
	if id == "" {
		var ok bool
		if id, ok = h.sessions.PendingAppointment(c); !ok {
			h.redirectToBooking(c, "No appointment found. Please create an appointment first.")
			return
		}
	}

	page, err := h.svc.Initiate(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNoAppointment):
			h.redirectToBooking(c, "No appointment found. Please create an appointment first.")
		case errors.Is(err, appointment.ErrNotFound):
			h.redirectToBooking(c, "Appointment not found.")
		default:
			h.logger.Error("failed to initiate payment", zap.String("appointment", id), zap.Error(err))
			h.redirectToBooking(c, "Payment error. Please try again.")
		}
		return
	}

	c.HTML(http.StatusOK, "payment.html", gin.H{
		"title":        "Payment",
		"clientSecret": page.ClientSecret,
		"stripeKey":    h.publishableKey,
		"amount":       float64(page.Amount) / 100, // dollars for display
		"currency":     page.Currency,
		"appointment":  page.Appointment,
	})
}

// ConfirmPayment verifies a completed payment and marks the appointment paid.
// Responds with JSON: {success, redirect_url} or {error}.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	intentID := c.PostForm("payment_intent_id")

	appt, err := h.svc.Confirm(c.Request.Context(), intentID)
	if err != nil {
		var notConfirmed *payment.NotConfirmedError
		switch {
		case errors.Is(err, payment.ErrMissingIntent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No payment intent ID provided"})
		case errors.As(err, &notConfirmed):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Payment not confirmed",
				"status":  notConfirmed.Status,
			})
		case errors.Is(err, appointment.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		default:
			h.logger.Error("failed to confirm payment", zap.String("intent", intentID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
		}
		return
	}

	if err := h.sessions.SetCompletedAppointment(c, appt.ID); err != nil {
		h.logger.Warn("failed to store completed appointment", zap.String("appointment", appt.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"redirect_url": "/appointments/success?appointment_id=" + url.QueryEscape(appt.ID),
	})
}
