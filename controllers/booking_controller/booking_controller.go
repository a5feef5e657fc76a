package booking_controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_models"
	"github.com/lfreelance/Bhimsons/models/pass_models"
	"github.com/lfreelance/Bhimsons/utils"
	"github.com/lfreelance/Bhimsons/utils/api"
	"github.com/lfreelance/Bhimsons/utils/pricing"
)

// BookingController creates and reads bookings for the authenticated user.
type BookingController struct {
	DB              *pgxpool.Pool
	Rates           pricing.Rates
	MinAdvanceHours int
	MaxGuests       int
}

func NewBookingController(db *pgxpool.Pool, rates pricing.Rates, minAdvanceHours, maxGuests int) (*BookingController, error) {
	if db == nil {
		return nil, errors.New("database pool is required")
	}
	return &BookingController{
		DB:              db,
		Rates:           rates,
		MinAdvanceHours: minAdvanceHours,
		MaxGuests:       maxGuests,
	}, nil
}

type CreateBookingRequest struct {
	PassID             string `json:"pass_id" binding:"required,uuid"`
	VisitDate          string `json:"visit_date" binding:"required"`
	NumAdults          int    `json:"num_adults" binding:"required,gte=1"`
	NumChildren        int    `json:"num_children" binding:"gte=0"`
	SpecialRequests    string `json:"special_requests"`
	DietaryPreferences string `json:"dietary_preferences"`
}

// CreateBooking validates the request against booking policy, prices it from
// the pass, and persists a pending booking.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, err.Error())
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid request body: "+err.Error())
		return
	}

	passID, err := uuid.Parse(req.PassID)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid pass id")
		return
	}

	visitDate, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "visit_date must be in YYYY-MM-DD format")
		return
	}

	if total := req.NumAdults + req.NumChildren; total > bc.MaxGuests {
		api.Fail(c, http.StatusBadRequest, api.CodePolicyViolation,
			fmt.Sprintf("Bookings are limited to %d guests", bc.MaxGuests))
		return
	}

	if visitDate.Before(time.Now().Add(time.Duration(bc.MinAdvanceHours) * time.Hour)) {
		api.Fail(c, http.StatusBadRequest, api.CodePolicyViolation,
			fmt.Sprintf("Bookings must be made at least %d hours in advance", bc.MinAdvanceHours))
		return
	}

	ctx := c.Request.Context()

	pass, err := pass_models.GetPassByID(ctx, bc.DB, passID)
	if err != nil {
		if errors.Is(err, pass_models.ErrPassNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Pass not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to load pass %s: %v", passID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load pass")
		return
	}
	if !pass.IsActive {
		api.Fail(c, http.StatusBadRequest, api.CodeInvalidState, "This pass is no longer available")
		return
	}

	breakdown := pricing.Calculate(pass.Price, req.NumAdults, req.NumChildren, bc.Rates)

	booking, err := booking_models.NewBooking(
		userID, passID, visitDate,
		req.NumAdults, req.NumChildren,
		breakdown.Subtotal, breakdown.Tax, breakdown.Total,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to build booking: %v", err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to create booking")
		return
	}
	if req.SpecialRequests != "" {
		booking.SpecialRequests = &req.SpecialRequests
	}
	if req.DietaryPreferences != "" {
		booking.DietaryPreferences = &req.DietaryPreferences
	}

	created, err := booking_models.CreateBooking(ctx, bc.DB, booking)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create booking for user %s: %v", userID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to create booking")
		return
	}

	logger.InfoLogger.Infof("Booking %s created for user %s", created.BookingNumber, userID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": created,
		"totals":  breakdown,
	})
}

// GetBooking returns one booking with customer and pass details. Owners see
// their own bookings; admins see any.
func (bc *BookingController) GetBooking(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, err.Error())
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	detail, err := booking_models.GetBookingDetail(c.Request.Context(), bc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to load booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load booking")
		return
	}

	if detail.UserID != userID && !utils.IsAdmin(c) {
		api.Fail(c, http.StatusForbidden, api.CodeForbidden, "You do not have access to this booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": detail,
	})
}

// GetMyBookings lists the caller's bookings, optionally filtered by status,
// newest first, paginated.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, err.Error())
		return
	}

	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	bookings, total, err := booking_models.GetBookingsByUser(c.Request.Context(), bc.DB, userID, status, page, limit)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings for user %s: %v", userID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetUpcomingBookings lists the caller's pending and confirmed bookings with
// a visit date from today onward.
func (bc *BookingController) GetUpcomingBookings(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, err.Error())
		return
	}

	bookings, err := booking_models.GetUpcomingBookings(c.Request.Context(), bc.DB, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list upcoming bookings for user %s: %v", userID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
	})
}
