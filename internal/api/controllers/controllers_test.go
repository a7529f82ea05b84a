package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailhub/internal/config"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/services"
	"trailhub/pkg/middleware"
	"trailhub/pkg/utils"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
	return gin.New()
}

// asUser stands in for the JWT middleware.
func asUser(id uuid.UUID, jti string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, id.String())
		c.Set(middleware.CtxRole, middleware.RoleUser)
		c.Set(middleware.CtxTokenID, jti)
		c.Set(middleware.CtxTokenExp, time.Now().Add(time.Hour))
		c.Next()
	}
}

func perform(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type fakeAccountService struct {
	services.AccountService
	login    *resp.LoginResponse
	loginErr error
	revoked  string
}

func (f *fakeAccountService) Login(context.Context, request_models.LoginRequest) (*resp.LoginResponse, error) {
	return f.login, f.loginErr
}

func (f *fakeAccountService) Logout(_ context.Context, jti string, _ time.Time) error {
	f.revoked = jti
	return nil
}

func accountEngine(svc services.AccountService, user uuid.UUID) *gin.Engine {
	cfg := &config.Config{Session: config.Session{CookieName: "trailhub_session", Secure: true}}
	ctrl := NewAccountController(svc, cfg)
	r := newEngine()
	r.POST("/auth/login", ctrl.Login)
	r.GET("/users/me", ctrl.Profile)
	r.POST("/auth/logout", asUser(user, "jti-1"), ctrl.Logout)
	return r
}

func TestLoginSetsSessionCookie(t *testing.T) {
	svc := &fakeAccountService{login: &resp.LoginResponse{
		Token:     "signed-token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      resp.UserResponse{Username: "ana"},
	}}
	r := accountEngine(svc, uuid.New())

	w := perform(t, r, http.MethodPost, "/auth/login", gin.H{"username": "ana", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "trailhub_session", cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	env := decode(t, w)
	assert.Equal(t, "success", env.Status)
	assert.Contains(t, string(env.Data), `"token":"signed-token"`)
}

func TestLoginErrors(t *testing.T) {
	t.Run("bad credentials", func(t *testing.T) {
		r := accountEngine(&fakeAccountService{loginErr: utils.ErrInvalidCredentials}, uuid.New())
		w := perform(t, r, http.MethodPost, "/auth/login", gin.H{"username": "ana", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", decode(t, w).Message)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("malformed body", func(t *testing.T) {
		r := accountEngine(&fakeAccountService{}, uuid.New())
		w := perform(t, r, http.MethodPost, "/auth/login", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request payload", decode(t, w).Message)
	})
}

func TestLogoutRevokesAndClearsCookie(t *testing.T) {
	svc := &fakeAccountService{}
	r := accountEngine(svc, uuid.New())

	w := perform(t, r, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jti-1", svc.revoked)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestProfileRequiresLogin(t *testing.T) {
	r := accountEngine(&fakeAccountService{}, uuid.New())

	w := perform(t, r, http.MethodGet, "/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Not logged in", env.Message)
}

type fakeTripService struct {
	services.TripService
	getErr  error
	created bool
}

func (f *fakeTripService) Get(context.Context, uuid.UUID, uuid.UUID) (*resp.TripResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &resp.TripResponse{}, nil
}

func (f *fakeTripService) Create(context.Context, uuid.UUID, request_models.CreateTripRequest) (*resp.TripResponse, error) {
	f.created = true
	return &resp.TripResponse{}, nil
}

func TestCreateTripValidation(t *testing.T) {
	svc := &fakeTripService{}
	ctrl := NewTripController(svc)
	r := newEngine()
	r.POST("/trips", asUser(uuid.New(), "jti"), ctrl.CreateTrip)

	w := perform(t, r, http.MethodPost, "/trips", gin.H{"location_id": uuid.NewString()})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.created)

	env := decode(t, w)
	assert.Equal(t, "Invalid request payload", env.Message)
	var fields []utils.FieldError
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Contains(t, fields, utils.FieldError{Field: "start_date", Rule: "required"})
	assert.Contains(t, fields, utils.FieldError{Field: "end_date", Rule: "required"})
}

func TestGetTrip(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		r := newEngine()
		r.GET("/trips/:id", NewTripController(&fakeTripService{}).GetTrip)
		w := perform(t, r, http.MethodGet, "/trips/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", decode(t, w).Message)
	})

	t.Run("hidden trip", func(t *testing.T) {
		r := newEngine()
		r.GET("/trips/:id", NewTripController(&fakeTripService{getErr: utils.ErrTripNotFound}).GetTrip)
		w := perform(t, r, http.MethodGet, "/trips/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Trip not found", decode(t, w).Message)
	})

	t.Run("anonymous viewer of a shared trip", func(t *testing.T) {
		r := newEngine()
		r.GET("/trips/:id", NewTripController(&fakeTripService{}).GetTrip)
		w := perform(t, r, http.MethodGet, "/trips/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type fakeBudgetService struct {
	services.BudgetService
	latest *resp.BudgetResponse
}

func (f *fakeBudgetService) Latest(context.Context, uuid.UUID) (*resp.BudgetResponse, error) {
	if f.latest == nil {
		return nil, utils.ErrBudgetNotFound
	}
	return f.latest, nil
}

func TestExportBudgetPDF(t *testing.T) {
	budget := &resp.BudgetResponse{
		AdventureType: "camping",
		Location:      "Yosemite",
		Duration:      3,
		People:        2,
		Breakdown:     resp.BudgetBreakdown{Total: 720},
	}

	t.Run("attachment", func(t *testing.T) {
		ctrl := NewPlanningController(&fakeBudgetService{latest: budget}, nil, services.NewExportService())
		r := newEngine()
		r.GET("/budget/latest/pdf", asUser(uuid.New(), "jti"), ctrl.ExportBudgetPDF)

		w := perform(t, r, http.MethodGet, "/budget/latest/pdf", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="budget_estimation.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, mimePDF, w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("no budget", func(t *testing.T) {
		ctrl := NewPlanningController(&fakeBudgetService{}, nil, services.NewExportService())
		r := newEngine()
		r.GET("/budget/latest/pdf", asUser(uuid.New(), "jti"), ctrl.ExportBudgetPDF)

		w := perform(t, r, http.MethodGet, "/budget/latest/pdf", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No budget data found", decode(t, w).Message)
	})
}

type fakeDashboardService struct {
	got resp.TimeRange
}

func (f *fakeDashboardService) BuildDashboard(_ context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	f.got = rng
	return &resp.DashboardReport{Range: rng}, nil
}

func TestGetDashboardRange(t *testing.T) {
	svc := &fakeDashboardService{}
	r := newEngine()
	r.GET("/admin/dashboard", NewDashboardController(svc).GetDashboard)

	w := perform(t, r, http.MethodGet, "/admin/dashboard?last_days=7&start=2025-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(t, r, http.MethodGet, "/admin/dashboard?start=2025-01-01&end=2025-01-31T12:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), svc.got.Start.UTC())
	assert.Equal(t, time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC), svc.got.End.UTC())

	w = perform(t, r, http.MethodGet, "/admin/dashboard?start=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeReportService struct {
	services.MedicalReportService
	uploads int
}

func (f *fakeReportService) Upload(_ context.Context, _ uuid.UUID, meta request_models.MedicalReportUpload, body io.Reader) (*resp.MedicalReportResponse, error) {
	f.uploads++
	_, _ = io.Copy(io.Discard, body)
	return &resp.MedicalReportResponse{Title: meta.Title}, nil
}

func multipartUpload(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Allergy letter"))
	part, err := mw.CreateFormFile("file", "letter.pdf")
	require.NoError(t, err)
	_, err = part.Write(append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), size)...))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadReportBodyLimit(t *testing.T) {
	svc := &fakeReportService{}
	cfg := &config.Config{Storage: config.Storage{MaxUploadMB: 1}}
	ctrl := NewSafetyController(nil, nil, svc, cfg)
	r := newEngine()
	r.POST("/users/me/medical-reports", asUser(uuid.New(), "jti"), ctrl.UploadReport)

	send := func(size int) *httptest.ResponseRecorder {
		body, contentType := multipartUpload(t, size)
		req := httptest.NewRequest(http.MethodPost, "/users/me/medical-reports", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(4 << 20)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File exceeds the upload size limit", decode(t, w).Message)
	assert.Zero(t, svc.uploads)

	w = send(16 << 10)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, svc.uploads)
}
