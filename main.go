// File: clinicbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/appointment"
	"clinicbook/services/payment"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionStore()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.LoadHTMLGlob("templates/*")
	stripe.Key = config.AppConfig.StripeSecretKey

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	apptService := &appointment.DefaultAppointmentService{
		Repo: apptRepo,
	}
	paymentService := &payment.DefaultPaymentService{
		Repo:     apptRepo,
		Gateway:  payment.NewStripeGateway(logger),
		Amount:   config.AppConfig.AppointmentFeeCents,
		Currency: config.AppConfig.PaymentCurrency,
		Logger:   logger,
	}

	sessions := utils.NewRedisSessionStore()
	apptHandler := handlers.NewAppointmentHandler(apptService, sessions, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, sessions, logger, config.AppConfig.StripePublishableKey)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Appointments: apptHandler,
		Payments:     paymentHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetSessionClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
