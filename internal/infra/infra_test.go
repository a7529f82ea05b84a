package infra

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"trailhub/internal/config"
	dbm "trailhub/internal/models/db_models"
)

func TestOpenSqliteMigrateAndSeed(t *testing.T) {
	db, err := Open("sqlite", "file::memory:?_pragma=foreign_keys(1)", gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	ctx := context.Background()
	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	var n int64
	require.NoError(t, db.Model(&dbm.PackingItem{}).Count(&n).Error)
	assert.EqualValues(t, 16, n)

	var tents int64
	require.NoError(t, db.Model(&dbm.PackingItem{}).
		Where("adventure_type = ? AND name = ? AND category = ?", "camping", "Tent", "Activity Specific").
		Count(&tents).Error)
	assert.EqualValues(t, 1, tents)

	assert.NoError(t, Ping(ctx, db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "", gormlogger.Discard)
	assert.Error(t, err)
}

func TestLocalStorageLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorage(t.TempDir())

	require.NoError(t, s.Put(ctx, "user-1/report.pdf", bytes.NewBufferString("%PDF-1.4"), 8, "application/pdf"))

	p, url, err := s.Locate(ctx, "user-1/report.pdf")
	require.NoError(t, err)
	assert.Empty(t, url)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	// traversal is confined to the storage dir
	p2, _, err := s.Locate(ctx, "../../user-1/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, p, p2)

	require.NoError(t, s.Delete(ctx, "user-1/report.pdf"))
	_, _, err = s.Locate(ctx, "user-1/report.pdf")
	assert.Error(t, err)
	assert.NoError(t, s.Delete(ctx, "user-1/report.pdf"))

	_, err = cleanKey("/")
	assert.ErrorIs(t, err, ErrInvalidObjectKey)
}

func TestOpenMeteoClient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":12.34,"windspeed":5,"weathercode":2,"time":"2025-07-01T10:00"}}`))
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(config.Weather{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop())
	info, err := c.Current(context.Background(), 46.5, 7.9)
	require.NoError(t, err)
	assert.Equal(t, "12.3°C, wind 5.0 km/h, partly cloudy", info)
	assert.EqualValues(t, 1, calls.Load())
}

func TestOpenMeteoClientTripsBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewOpenMeteoClient(config.Weather{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop())
	for i := 0; i < 5; i++ {
		_, err := c.Current(context.Background(), 0, 0)
		assert.ErrorIs(t, err, ErrWeatherUpstream)
	}
	// three failures open the breaker, later calls never reach the server
	assert.EqualValues(t, 3, calls.Load())
}
