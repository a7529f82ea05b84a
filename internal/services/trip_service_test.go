package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trailhub/internal/models/request_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

func TestTripService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	mail := &fakeMail{}
	trips := repositories.NewTripRepository(db)
	svc := NewTripService(trips, repositories.NewLocationRepository(db), repositories.NewUserRepository(db), mail, zap.NewNop())
	notes := repositories.NewNotificationRepository(db)

	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	loc := seedLocation(t, db, "Granite Ridge", "Hiking", 3, 45, 7)

	t.Run("unknown location", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, request_models.CreateTripRequest{
			LocationID: uuid.New(), StartDate: "2025-07-01", EndDate: "2025-07-03",
		})
		assert.ErrorIs(t, err, utils.ErrLocationNotFound)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, request_models.CreateTripRequest{
			LocationID: loc.ID, StartDate: "2025-07-05", EndDate: "2025-07-03",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
	})

	trip, err := svc.Create(ctx, owner.ID, request_models.CreateTripRequest{
		LocationID: loc.ID, StartDate: "2025-07-01", EndDate: "2025-07-03", BudgetEstimate: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, "Granite Ridge", trip.Location.Name)
	tripID := mustParseUUID(t, trip.ID)

	t.Run("creation notifies the owner", func(t *testing.T) {
		rows, err := notes.ListByUser(ctx, owner.ID, false)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Your trip to Granite Ridge is planned for 2025-07-01", rows[0].Message)
		assert.Equal(t, trip.ID, rows[0].Payload["trip_id"])

		sent := mail.last()
		assert.Equal(t, "owner@example.com", sent.To)
		assert.Equal(t, rows[0].Message, sent.Body)
	})

	t.Run("private trips are hidden from others", func(t *testing.T) {
		_, err := svc.Get(ctx, other.ID, tripID)
		assert.ErrorIs(t, err, utils.ErrTripNotFound)
		_, err = svc.Get(ctx, uuid.Nil, tripID)
		assert.ErrorIs(t, err, utils.ErrTripNotFound)

		got, err := svc.Get(ctx, owner.ID, tripID)
		require.NoError(t, err)
		assert.Equal(t, 300.0, got.BudgetEstimate)
	})

	t.Run("sharing exposes the trip", func(t *testing.T) {
		shared := true
		_, err := svc.Update(ctx, other.ID, tripID, request_models.UpdateTripRequest{SharedPublicly: &shared})
		assert.ErrorIs(t, err, utils.ErrTripNotFound)

		_, err = svc.Update(ctx, owner.ID, tripID, request_models.UpdateTripRequest{SharedPublicly: &shared})
		require.NoError(t, err)

		got, err := svc.Get(ctx, other.ID, tripID)
		require.NoError(t, err)
		assert.True(t, got.SharedPublicly)

		page, err := svc.ListPublic(ctx, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Total)
	})

	t.Run("itinerary", func(t *testing.T) {
		_, err := svc.AddItineraryItem(ctx, owner.ID, tripID, request_models.ItineraryItemRequest{
			ActivityName: "Summit", StartTime: "2025-07-02T10:00:00Z", EndTime: "2025-07-02T09:00:00Z",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidTimeRange)

		_, err = svc.AddItineraryItem(ctx, other.ID, tripID, request_models.ItineraryItemRequest{
			ActivityName: "Summit", StartTime: "2025-07-02T08:00:00Z", EndTime: "2025-07-02T12:00:00Z",
		})
		assert.ErrorIs(t, err, utils.ErrTripNotFound)

		item, err := svc.AddItineraryItem(ctx, owner.ID, tripID, request_models.ItineraryItemRequest{
			ActivityName: "Summit", StartTime: "2025-07-02T08:00:00Z", EndTime: "2025-07-02T12:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, "2025-07-02T08:00:00Z", item.StartTime)

		items, err := svc.ListItinerary(ctx, other.ID, tripID)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, other.ID, tripID), utils.ErrTripNotFound)
		require.NoError(t, svc.Delete(ctx, owner.ID, tripID))
		_, err := svc.Get(ctx, owner.ID, tripID)
		assert.ErrorIs(t, err, utils.ErrTripNotFound)
	})
}
