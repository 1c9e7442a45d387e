package handlers_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"clinicbook/handlers"
	"clinicbook/models"
	"clinicbook/services/appointment"
	"clinicbook/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errTest = errors.New("gateway unavailable")

// fakeRepo is an in-memory appointment repository.
type fakeRepo struct {
	appts map[string]*models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[string]*models.Appointment)}
}

func (r *fakeRepo) Create(appt *models.Appointment) error {
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(id string) (*models.Appointment, error) {
	if a, ok := r.appts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeRepo) GetByPaymentIntentID(intentID string) (*models.Appointment, error) {
	for _, a := range r.appts {
		if a.PaymentIntentID == intentID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetAll() ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentTime.After(out[j].AppointmentTime)
	})
	return out, nil
}

func (r *fakeRepo) SetPaymentIntent(id, intentID string) error {
	a, ok := r.appts[id]
	if !ok {
		return errors.New("not found")
	}
	a.PaymentIntentID = intentID
	a.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepo) MarkPaid(id string) error {
	a, ok := r.appts[id]
	if !ok {
		return errors.New("not found")
	}
	a.IsPaid = true
	a.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepo) CountByPaid() (int64, int64, error) {
	var paid, pending int64
	for _, a := range r.appts {
		if a.IsPaid {
			paid++
		} else {
			pending++
		}
	}
	return paid, pending, nil
}

// fakeGateway scripts gateway responses.
type fakeGateway struct {
	intentID  string
	status    string
	createErr error
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*models.PaymentIntentResult, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &models.PaymentIntentResult{
		ID:           g.intentID,
		ClientSecret: g.intentID + "_secret",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

func (g *fakeGateway) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntentResult, error) {
	if g.status == "" {
		return nil, &payment.GatewayError{Op: "retrieve", Err: errors.New("no such intent")}
	}
	return &models.PaymentIntentResult{ID: id, Status: g.status}, nil
}

func (g *fakeGateway) ConfirmIntent(ctx context.Context, id string) (string, bool) {
	res, err := g.RetrieveIntent(ctx, id)
	if err != nil {
		return "", false
	}
	return res.Status, res.Status == payment.StatusSucceeded
}

// fakeSessions keeps one browser session's markers in memory.
type fakeSessions struct {
	pending   string
	completed string
	flash     string
}

func (s *fakeSessions) SetPendingAppointment(c *gin.Context, id string) error {
	s.pending = id
	return nil
}

func (s *fakeSessions) PendingAppointment(c *gin.Context) (string, bool) {
	return s.pending, s.pending != ""
}

func (s *fakeSessions) SetCompletedAppointment(c *gin.Context, id string) error {
	s.completed = id
	return nil
}

func (s *fakeSessions) TakeCompletedAppointment(c *gin.Context) (string, bool) {
	id := s.completed
	s.completed = ""
	return id, id != ""
}

func (s *fakeSessions) SetFlash(c *gin.Context, message string) error {
	s.flash = message
	return nil
}

func (s *fakeSessions) TakeFlash(c *gin.Context) (string, bool) {
	msg := s.flash
	s.flash = ""
	return msg, msg != ""
}

// testApp wires real services over the fakes and mounts the routes.
type testApp struct {
	router   *gin.Engine
	repo     *fakeRepo
	gateway  *fakeGateway
	sessions *fakeSessions
}

func newTestApp(gw *fakeGateway) *testApp {
	gin.SetMode(gin.TestMode)

	repo := newFakeRepo()
	sessions := &fakeSessions{}
	logger := zap.NewNop()

	apptSvc := &appointment.DefaultAppointmentService{Repo: repo}
	paySvc := &payment.DefaultPaymentService{
		Repo:     repo,
		Gateway:  gw,
		Amount:   5000,
		Currency: "usd",
		Logger:   logger,
	}

	apptHandler := handlers.NewAppointmentHandler(apptSvc, sessions, logger)
	payHandler := handlers.NewPaymentHandler(paySvc, sessions, logger, "pk_test_123")

	router := gin.New()
	router.LoadHTMLGlob("../templates/*")
	router.GET("/appointments/create", apptHandler.ShowBookingForm)
	router.POST("/appointments/create", apptHandler.CreateAppointment)
	router.GET("/appointments/list", apptHandler.ListAppointments)
	router.GET("/appointments/success", apptHandler.BookingSuccess)
	router.GET("/payments/create", payHandler.CreatePayment)
	router.POST("/payments/confirm", payHandler.ConfirmPayment)

	return &testApp{router: router, repo: repo, gateway: gw, sessions: sessions}
}
