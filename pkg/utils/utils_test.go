package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set("trace_id", "trace-123")
	return c, w
}

func TestHandleServiceErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{ErrUsernameTaken, http.StatusConflict, "Username already exists"},
		{fmt.Errorf("wrap: %w", ErrLocationNotFound), http.StatusNotFound, "Location not found"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{ErrWeatherUnavailable, http.StatusBadGateway, "Weather service unavailable"},
		{ErrEventInPast, http.StatusBadRequest, "Event date cannot be in the past."},
		{ErrDatabaseError, http.StatusInternalServerError, "Internal server error"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			c, w := newTestContext("/")
			HandleServiceError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.msg, resp.Message)
			assert.Equal(t, "trace-123", resp.TraceID)
		})
	}
}

func TestRespondSuccessWithoutTraceID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, gin.H{"ok": true}, "done")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
	assert.NotContains(t, w.Body.String(), "trace_id")
}

func TestParsePaging(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		pageSize int
		err      error
	}{
		{"", 1, DefaultPageSize, nil},
		{"?page=3&pageSize=50", 3, 50, nil},
		{"?page=0", 0, 0, ErrInvalidPage},
		{"?page=abc", 0, 0, ErrInvalidPage},
		{"?pageSize=101", 0, 0, ErrInvalidPageSize},
		{"?pageSize=0", 0, 0, ErrInvalidPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			c, _ := newTestContext("/items" + tc.query)
			page, size, err := ParsePaging(c)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.pageSize, size)
		})
	}
	assert.Equal(t, 20, Offset(3, 10))
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	id := uuid.New()

	token, exp, err := issuer.CreateToken(id, "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)

	_, err = NewTokenIssuer("other", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, ComparePasswords(hash, "hunter22"))
	assert.Error(t, ComparePasswords(hash, "wrong"))

	tok, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, tok, 32)
	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate("2025-07-20")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-20", FormatDate(d))

	_, err = ParseDate("20-07-2025")
	assert.Error(t, err)

	_, err = ParseClock("25:00")
	require.Error(t, err)
	clock, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", clock)

	now := time.Date(2025, 3, 4, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), TodayUTC(now))
}

func TestDifficultyLabel(t *testing.T) {
	assert.Equal(t, "Easy", DifficultyLabel(1))
	assert.Equal(t, "Moderate", DifficultyLabel(2))
	assert.Equal(t, "Hard", DifficultyLabel(3))
	assert.Equal(t, "Unknown", DifficultyLabel(4))
	assert.Equal(t, "Unknown", DifficultyLabel(0))
}
