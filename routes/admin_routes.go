package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lfreelance/Bhimsons/controllers/admin_controller"
	"github.com/lfreelance/Bhimsons/middlewares/auth"
)

// RegisterAdminRoutes registers the back-office routes behind the admin role.
func RegisterAdminRoutes(router *gin.Engine, jwtSecret []byte, ac *admin_controller.AdminController) {
	admin := router.Group("/admin")
	admin.Use(auth.AuthMiddleware(jwtSecret), auth.RequireAdmin())
	{
		admin.GET("/stats", ac.GetDashboardStats)
		admin.GET("/bookings", ac.ListBookings)
		admin.GET("/bookings/:id/logs", ac.GetBookingLogs)
		admin.PATCH("/bookings/:id/status", ac.UpdateBookingStatus)
		admin.GET("/passes", ac.ListAllPasses)
		admin.PATCH("/passes/:id", ac.UpdatePass)
	}
}
