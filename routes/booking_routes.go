package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/lfreelance/Bhimsons/controllers/booking_controller"
	"github.com/lfreelance/Bhimsons/controllers/cancel_booking_controller"
	"github.com/lfreelance/Bhimsons/controllers/email_controller"
	"github.com/lfreelance/Bhimsons/controllers/payment_controller"
	"github.com/lfreelance/Bhimsons/controllers/qr_controller"
	middleware "github.com/lfreelance/Bhimsons/middlewares"
	"github.com/lfreelance/Bhimsons/middlewares/auth"
)

// RegisterBookingRoutes registers the authenticated booking, payment, QR and
// email routes.
func RegisterBookingRoutes(
	router *gin.Engine,
	jwtSecret []byte,
	rdb *redis.Client,
	bc *booking_controller.BookingController,
	cc *cancel_booking_controller.CancelBookingController,
	pc *payment_controller.PaymentController,
	qc *qr_controller.QRController,
	ec *email_controller.EmailController,
) {
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(jwtSecret))
	{
		protected.POST("/bookings",
			middleware.NewRateLimiter(rdb, "10-1m", "createBooking"),
			bc.CreateBooking)
		protected.GET("/bookings/:id", bc.GetBooking)
		protected.POST("/bookings/:id/cancel",
			middleware.NewRateLimiter(rdb, "10-1m", "cancelBooking"),
			cc.CancelBooking)

		protected.GET("/my-bookings", bc.GetMyBookings)
		protected.GET("/my-bookings/upcoming", bc.GetUpcomingBookings)

		protected.POST("/create-razorpay-order",
			middleware.NewRateLimiter(rdb, "10-2m", "createRazorpayOrder"),
			pc.CreateRazorpayOrder)
		protected.POST("/verify-payment",
			middleware.NewRateLimiter(rdb, "20-2m", "verifyPayment"),
			pc.VerifyPayment)

		protected.POST("/generate-qr-code",
			middleware.NewRateLimiter(rdb, "20-2m", "generateQRCode"),
			qc.GenerateQRCode)
		protected.POST("/send-confirmation-email",
			middleware.NewRateLimiter(rdb, "5-2m", "sendConfirmationEmail"),
			ec.SendConfirmationEmail)
	}
}
