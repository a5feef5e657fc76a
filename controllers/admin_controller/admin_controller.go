package admin_controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_log_models"
	"github.com/lfreelance/Bhimsons/models/booking_models"
	"github.com/lfreelance/Bhimsons/models/pass_models"
	"github.com/lfreelance/Bhimsons/models/shared_models"
	"github.com/lfreelance/Bhimsons/utils"
	"github.com/lfreelance/Bhimsons/utils/api"
)

// AdminController serves the back-office booking and pass management
// endpoints. Every route is behind the admin role middleware.
type AdminController struct {
	DB *pgxpool.Pool
}

func NewAdminController(db *pgxpool.Pool) (*AdminController, error) {
	if db == nil {
		return nil, errors.New("database pool is required")
	}
	return &AdminController{DB: db}, nil
}

// GetDashboardStats returns booking counts by status, today's booking count
// and total successful revenue.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := booking_models.GetDashboardStats(c.Request.Context(), ac.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to compute dashboard stats: %v", err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// ListBookings is the filtered, paginated admin booking listing.
func (ac *AdminController) ListBookings(c *gin.Context) {
	filters := booking_models.ListFilters{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Search:        c.Query("search"),
	}

	if raw := c.Query("pass_id"); raw != "" {
		passID, err := uuid.Parse(raw)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid pass_id filter")
			return
		}
		filters.PassID = passID
	}

	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.CodeValidation, "date_from must be in YYYY-MM-DD format")
			return
		}
		filters.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			api.Fail(c, http.StatusBadRequest, api.CodeValidation, "date_to must be in YYYY-MM-DD format")
			return
		}
		filters.DateTo = &t
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	filters.Limit = limit
	filters.Offset = (page - 1) * limit

	bookings, total, err := booking_models.ListBookings(c.Request.Context(), ac.DB, filters)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings: %v", err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
		"total":    total,
		"page":     page,
	})
}

// GetBookingLogs returns the audit trail for one booking.
func (ac *AdminController) GetBookingLogs(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	logs, err := booking_log_models.ListByBooking(c.Request.Context(), ac.DB, bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to load logs for booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load booking logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"logs":    logs,
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateBookingStatus lets an admin move a booking to any valid status,
// recording the transition with the acting admin in the audit log.
func (ac *AdminController) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "status is required")
		return
	}
	if !shared_models.IsValidBookingStatus(req.Status) {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Unknown booking status: "+req.Status)
		return
	}

	ctx := c.Request.Context()

	booking, err := booking_models.GetBookingByID(ctx, ac.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to load booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load booking")
		return
	}

	if booking.Status == req.Status {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Booking already in status " + req.Status,
		})
		return
	}

	if err := booking_models.UpdateBookingStatus(ctx, ac.DB, bookingID, req.Status); err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to update booking status")
		return
	}

	var actor *uuid.UUID
	if adminID, err := utils.GetUserIDFromContext(c); err == nil {
		actor = &adminID
	}
	if err := booking_log_models.Record(ctx, ac.DB,
		bookingID, shared_models.ActionStatusUpdated,
		booking.Status, req.Status, req.Notes, actor,
	); err != nil {
		logger.WarnLogger.Warnf("Failed to write status log for booking %s: %v", bookingID, err)
	}

	logger.InfoLogger.Infof("Booking %s moved %s -> %s", booking.BookingNumber, booking.Status, req.Status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated",
	})
}

// ListAllPasses returns every pass including inactive ones.
func (ac *AdminController) ListAllPasses(c *gin.Context) {
	passes, err := pass_models.GetAllPasses(c.Request.Context(), ac.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list passes: %v", err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load passes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"passes":  passes,
	})
}

// UpdatePass applies a partial update to a pass; omitted fields are
// untouched. Deactivation is IsActive=false, passes are never deleted.
func (ac *AdminController) UpdatePass(c *gin.Context) {
	passID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid pass id")
		return
	}

	var upd pass_models.PassUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
		return
	}
	if upd.Price != nil && *upd.Price < 0 {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Price cannot be negative")
		return
	}

	pass, err := pass_models.UpdatePass(c.Request.Context(), ac.DB, passID, upd)
	if err != nil {
		if errors.Is(err, pass_models.ErrPassNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Pass not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to update pass %s: %v", passID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to update pass")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pass":    pass,
	})
}
