package routes

import (
	"net/http"
	"time"

	"clinicbook/handlers"
	"clinicbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the route tables need.
type HandlerBundle struct {
	Appointments *handlers.AppointmentHandler
	Payments     *handlers.PaymentHandler
}

// RegisterAppointmentRoutes registers the booking pages.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	appts := r.Group("/appointments")
	{
		appts.GET("/create", hb.Appointments.ShowBookingForm)
		appts.POST("/create", hb.Appointments.CreateAppointment)
		appts.GET("/list", hb.Appointments.ListAppointments)
		appts.GET("/success", hb.Appointments.BookingSuccess)
	}
}

// RegisterPaymentRoutes registers the payment page and confirm endpoint.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	payments := r.Group("/payments")
	{
		payments.GET("/create", hb.Payments.CreatePayment)
		payments.POST("/confirm", hb.Payments.ConfirmPayment)
	}
}

// RegisterHealthRoute exposes the latest health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAppointmentRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)

	// The bare root goes to the booking form.
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/appointments/create")
	})
}
