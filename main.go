package main

import (
	"context"
	"embed"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lfreelance/Bhimsons/clients"
	"github.com/lfreelance/Bhimsons/config"
	"github.com/lfreelance/Bhimsons/config/db"
	redisconn "github.com/lfreelance/Bhimsons/config/redis"
	"github.com/lfreelance/Bhimsons/controllers/admin_controller"
	"github.com/lfreelance/Bhimsons/controllers/booking_controller"
	"github.com/lfreelance/Bhimsons/controllers/cancel_booking_controller"
	"github.com/lfreelance/Bhimsons/controllers/email_controller"
	"github.com/lfreelance/Bhimsons/controllers/pass_controller"
	"github.com/lfreelance/Bhimsons/controllers/payment_controller"
	"github.com/lfreelance/Bhimsons/controllers/qr_controller"
	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/middlewares/cors"
	"github.com/lfreelance/Bhimsons/routes"
	"github.com/lfreelance/Bhimsons/utils/mail"
	"github.com/lfreelance/Bhimsons/utils/pricing"
)

//go:embed templates/email/*
var embeddedEmailTemplates embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.ErrorLogger.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.ErrorLogger.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	rdb, err := redisconn.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.WarnLogger.Warnf("Redis unavailable, rate limiting and verification guard disabled: %v", err)
		rdb = nil
	}

	if err := mail.InitTemplates(embeddedEmailTemplates); err != nil {
		logger.ErrorLogger.Fatalf("Failed to parse email templates: %v", err)
	}

	razorpayClient := clients.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	resendClient := clients.NewResendClient(cfg.ResendAPIKey, "Bhimson's Agro Park", cfg.FromEmail)
	qrClient := clients.NewQRServerClient()

	mailService, err := mail.NewService(pool, resendClient, cfg.AppURL)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build mail service: %v", err)
	}
	dispatcher := mail.NewDispatcher(mailService, cfg.EmailQueueSize, cfg.EmailMaxRetries)
	dispatcherCtx, stopDispatcher := context.WithCancel(ctx)
	dispatcher.Start(dispatcherCtx)

	rates := pricing.Rates{
		TaxPercentage:        cfg.TaxPercentage,
		ConvenienceFee:       cfg.ConvenienceFee,
		ChildPricePercentage: cfg.ChildPricePercentage,
	}

	passController, err := pass_controller.NewPassController(pool)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build pass controller: %v", err)
	}
	bookingController, err := booking_controller.NewBookingController(pool, rates, cfg.MinAdvanceHours, cfg.MaxGuestsPerBooking)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build booking controller: %v", err)
	}
	cancelController, err := cancel_booking_controller.NewCancelBookingController(pool, cfg.CancellationHours)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build cancel controller: %v", err)
	}
	paymentController, err := payment_controller.NewPaymentController(pool, razorpayClient, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, dispatcher, rdb)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build payment controller: %v", err)
	}
	qrController, err := qr_controller.NewQRController(pool, qrClient)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build qr controller: %v", err)
	}
	emailController, err := email_controller.NewEmailController(mailService)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build email controller: %v", err)
	}
	adminController, err := admin_controller.NewAdminController(pool)
	if err != nil {
		logger.ErrorLogger.Fatalf("Failed to build admin controller: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	jwtSecret := []byte(cfg.JWTSecret)
	routes.RegisterPassRoutes(r, passController, rdb)
	routes.RegisterBookingRoutes(r, jwtSecret, rdb, bookingController, cancelController, paymentController, qrController, emailController)
	routes.RegisterAdminRoutes(r, jwtSecret, adminController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.InfoLogger.Infof("Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}

	dispatcher.Stop()
	stopDispatcher()

	logger.InfoLogger.Info("Server exited")
}
