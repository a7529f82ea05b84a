package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trailhub/internal/models/db_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
)

func TestBuildDashboardCountsWholeEndDay(t *testing.T) {
	db := newTestDB(t)
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	evening := day.Add(20 * time.Hour)

	user := &db_models.User{
		BaseModel:    db_models.BaseModel{CreatedAt: day.Add(18 * time.Hour).Unix()},
		Username:     "late",
		Email:        "late@example.com",
		PasswordHash: "x",
		Role:         "user",
	}
	require.NoError(t, db.Create(user).Error)
	early := &db_models.User{
		BaseModel:    db_models.BaseModel{CreatedAt: day.AddDate(0, 0, -3).Unix()},
		Username:     "early",
		Email:        "early@example.com",
		PasswordHash: "x",
		Role:         "user",
	}
	require.NoError(t, db.Create(early).Error)

	loc := seedLocation(t, db, "Yosemite", "Hiking", 2, 37.86, -119.53)
	trip := &db_models.Trip{
		BaseModel:  db_models.BaseModel{CreatedAt: evening.Unix()},
		UserID:     user.ID,
		LocationID: loc.ID,
		StartDate:  day.AddDate(0, 0, 7),
		EndDate:    day.AddDate(0, 0, 9),
	}
	require.NoError(t, db.Omit("User", "Location", "Itinerary").Create(trip).Error)

	svc := &dashboardService{
		repo: repositories.NewDashboardRepository(db),
		log:  zap.NewNop(),
		now:  func() time.Time { return day.AddDate(0, 0, 5) },
	}

	report, err := svc.BuildDashboard(context.Background(), resp.TimeRange{Start: day, End: day})
	require.NoError(t, err)

	assert.EqualValues(t, 2, report.KPIs.TotalUsers)
	assert.EqualValues(t, 1, report.KPIs.NewUsers)
	assert.EqualValues(t, 1, report.KPIs.TotalTrips)
	require.Len(t, report.NewUsersSeries, 1)
	assert.Equal(t, resp.SeriesPoint{Bucket: "2025-06-14", Value: 1}, report.NewUsersSeries[0])
	require.Len(t, report.TopLocations, 1)
	assert.Equal(t, "Yosemite", report.TopLocations[0].Name)
	assert.EqualValues(t, 1, report.TopLocations[0].Trips)
}
