package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestCreatePayment_NoPendingAppointment(t *testing.T) {
	app := newTestApp(&fakeGateway{})

	w := get(app, "/payments/create")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/appointments/create" {
		t.Fatalf("expected redirect to /appointments/create, got %q", loc)
	}
	if !strings.Contains(app.sessions.flash, "No appointment found") {
		t.Fatalf("expected a no-appointment flash, got %q", app.sessions.flash)
	}
}

func TestCreatePayment_StaleSessionID(t *testing.T) {
	app := newTestApp(&fakeGateway{intentID: "pi_1"})
	app.sessions.pending = "no-such-appointment"

	w := get(app, "/payments/create")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if app.sessions.flash != "Appointment not found." {
		t.Fatalf("expected a not-found flash, got %q", app.sessions.flash)
	}
}

func TestCreatePayment_RendersPaymentPage(t *testing.T) {
	app := newTestApp(&fakeGateway{intentID: "pi_1"})

	postForm(app, "/appointments/create", validBookingForm())
	w := get(app, "/payments/create")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "pi_1_secret") {
		t.Fatal("expected the client secret on the payment page")
	}
	if !strings.Contains(body, "pk_test_123") {
		t.Fatal("expected the publishable key on the payment page")
	}
	if !strings.Contains(body, "50.00") {
		t.Fatal("expected the fee in dollars on the payment page")
	}

	stored, _ := app.repo.GetByID(app.sessions.pending)
	if stored.PaymentIntentID != "pi_1" {
		t.Fatalf("expected intent pi_1 attached, got %q", stored.PaymentIntentID)
	}
}

func TestCreatePayment_GatewayFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errTest}
	app := newTestApp(gw)

	postForm(app, "/appointments/create", validBookingForm())
	w := get(app, "/payments/create")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if !strings.Contains(app.sessions.flash, "Payment error") {
		t.Fatalf("expected a payment-error flash, got %q", app.sessions.flash)
	}
	stored, _ := app.repo.GetByID(app.sessions.pending)
	if stored.PaymentIntentID != "" {
		t.Fatal("record must not be mutated when the gateway rejects")
	}
}

func TestConfirmPayment_MissingIntentID(t *testing.T) {
	app := newTestApp(&fakeGateway{})

	w := postForm(app, "/payments/confirm", url.Values{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a JSON error body: %v", err)
	}
	if resp["error"] == nil || resp["error"] == "" {
		t.Fatal("expected an error message in the body")
	}
	if len(app.repo.appts) != 0 {
		t.Fatal("no record may be touched")
	}
}

func TestConfirmPayment_NotConfirmed(t *testing.T) {
	app := newTestApp(&fakeGateway{intentID: "pi_1", status: "requires_action"})

	postForm(app, "/appointments/create", validBookingForm())
	get(app, "/payments/create")

	w := postForm(app, "/payments/confirm", url.Values{"payment_intent_id": {"pi_1"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a JSON body: %v", err)
	}
	if resp["success"] != false {
		t.Fatalf("expected success=false, got %v", resp["success"])
	}
	if resp["status"] != "requires_action" {
		t.Fatalf("expected the raw gateway status, got %v", resp["status"])
	}

	stored, _ := app.repo.GetByID(app.sessions.pending)
	if stored.IsPaid {
		t.Fatal("record must stay unpaid when not confirmed")
	}
}

func TestConfirmPayment_UnknownIntent(t *testing.T) {
	app := newTestApp(&fakeGateway{intentID: "pi_1", status: "succeeded"})

	w := postForm(app, "/payments/confirm", url.Values{"payment_intent_id": {"pi_ghost"}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestBookingAndPaymentEndToEnd(t *testing.T) {
	app := newTestApp(&fakeGateway{intentID: "pi_1", status: "succeeded"})

	// Book: Dr. Smith, tomorrow at 10:00.
	w := postForm(app, "/appointments/create", validBookingForm())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("booking: expected 303, got %d", w.Code)
	}
	apptID := app.sessions.pending
	stored, _ := app.repo.GetByID(apptID)
	if stored == nil || stored.IsPaid {
		t.Fatalf("expected an unpaid record, got %+v", stored)
	}

	// Payment page: intent created and attached.
	w = get(app, "/payments/create")
	if w.Code != http.StatusOK {
		t.Fatalf("payment page: expected 200, got %d", w.Code)
	}
	stored, _ = app.repo.GetByID(apptID)
	if stored.PaymentIntentID != "pi_1" {
		t.Fatalf("expected intent pi_1, got %q", stored.PaymentIntentID)
	}

	// Confirm: record flips to paid, response redirects to the success page.
	w = postForm(app, "/payments/confirm", url.Values{"payment_intent_id": {"pi_1"}})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("confirm: expected a JSON body: %v", err)
	}
	wantURL := "/appointments/success?appointment_id=" + apptID
	if resp["success"] != true || resp["redirect_url"] != wantURL {
		t.Fatalf("unexpected confirm response: %v", resp)
	}
	stored, _ = app.repo.GetByID(apptID)
	if !stored.IsPaid {
		t.Fatal("expected the record to be paid")
	}
	if app.sessions.completed != apptID {
		t.Fatalf("expected the completed marker, got %q", app.sessions.completed)
	}

	// Success page shows the booking.
	w = get(app, wantURL)
	if w.Code != http.StatusOK {
		t.Fatalf("success page: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Dr. Smith") {
		t.Fatal("expected the provider on the confirmation page")
	}
}
