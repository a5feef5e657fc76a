package admin_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), "postgres://u:p@127.0.0.1:1/x?sslmode=disable")
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func adminRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ac, err := NewAdminController(deadPool(t))
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/bookings", ac.ListBookings)
	r.PATCH("/admin/bookings/:id/status", ac.UpdateBookingStatus)
	r.PATCH("/admin/passes/:id", ac.UpdatePass)
	return r
}

func TestListBookingsRejectsBadFilters(t *testing.T) {
	r := adminRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/bookings?pass_id=nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/bookings?date_from=01-09-2026", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/bookings?date_to=September", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	r := adminRouter(t)

	body, _ := json.Marshal(gin.H{"status": "refunded"})
	req := httptest.NewRequest(http.MethodPatch, "/admin/bookings/"+uuid.NewString()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION", resp["code"])
}

func TestUpdateBookingStatusRejectsBadID(t *testing.T) {
	r := adminRouter(t)

	body, _ := json.Marshal(gin.H{"status": "confirmed"})
	req := httptest.NewRequest(http.MethodPatch, "/admin/bookings/xyz/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePassRejectsNegativePrice(t *testing.T) {
	r := adminRouter(t)

	price := -100.0
	body, _ := json.Marshal(gin.H{"price": price})
	req := httptest.NewRequest(http.MethodPatch, "/admin/passes/"+uuid.NewString(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
