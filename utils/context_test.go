package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestGetUserIDFromContext(t *testing.T) {
	c := testContext()
	want := uuid.New()
	c.Set("user_id", want)

	got, err := GetUserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetUserIDFromContextAcceptsString(t *testing.T) {
	c := testContext()
	want := uuid.New()
	c.Set("user_id", want.String())

	got, err := GetUserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetUserIDFromContextMissing(t *testing.T) {
	_, err := GetUserIDFromContext(testContext())
	assert.ErrorIs(t, err, ErrUserIDNotFound)
}

func TestIsAdmin(t *testing.T) {
	c := testContext()
	assert.False(t, IsAdmin(c))

	c.Set("role", "customer")
	assert.False(t, IsAdmin(c))

	c.Set("role", "admin")
	assert.True(t, IsAdmin(c))
}
