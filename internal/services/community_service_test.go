package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trailhub/internal/models/request_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

type stubWeather struct {
	info string
	err  error
}

func (s stubWeather) Current(context.Context, float64, float64) (string, error) {
	return s.info, s.err
}

func TestLocationNearbyAndWeather(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := repositories.NewLocationRepository(db)

	near := seedLocation(t, db, "Near", "Hiking", 2, 46.01, 7.0)
	seedLocation(t, db, "Closer", "Hiking", 2, 46.001, 7.0)
	seedLocation(t, db, "Far", "Camping", 2, 10, 10)

	svc := NewLocationService(repo, stubWeather{info: "Clear sky, 21.0°C"}, zap.NewNop())

	got, err := svc.Nearby(ctx, 46, 7, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Closer", got[0].Name)
	assert.Equal(t, "Near", got[1].Name)
	assert.InDelta(t, 1.11, *got[1].DistanceKm, 0.01)

	_, err = svc.Nearby(ctx, 95, 7, 10)
	assert.ErrorIs(t, err, utils.ErrInvalidCoordinates)

	w, err := svc.RefreshWeather(ctx, near.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clear sky, 21.0°C", w.WeatherInfo)

	loc, err := svc.Get(ctx, near.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clear sky, 21.0°C", loc.WeatherInfo)

	down := NewLocationService(repo, stubWeather{err: errors.New("timeout")}, zap.NewNop())
	_, err = down.RefreshWeather(ctx, near.ID)
	assert.ErrorIs(t, err, utils.ErrWeatherUnavailable)

	_, err = svc.Create(ctx, request_models.UpsertLocationRequest{Name: "X", Category: "Hiking", Difficulty: 6})
	assert.ErrorIs(t, err, utils.ErrInvalidDifficulty)
}

func TestReviewService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	locations := repositories.NewLocationRepository(db)
	svc := NewReviewService(repositories.NewReviewRepository(db), locations, zap.NewNop())
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	loc := seedLocation(t, db, "Falls", "Hiking", 1, 0, 0)

	_, err := svc.Create(ctx, alice.ID, loc.ID, request_models.CreateReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, utils.ErrInvalidRating)

	_, err = svc.Create(ctx, alice.ID, uuid.New(), request_models.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, utils.ErrLocationNotFound)

	r, err := svc.Create(ctx, alice.ID, loc.ID, request_models.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, loc.ID, request_models.CreateReviewRequest{Rating: 2})
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice.ID, loc.ID, request_models.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, utils.ErrReviewExists)

	fresh, err := locations.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, fresh.AverageRating, 1e-9)

	reviewID := mustParseUUID(t, r.ID)
	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, reviewID), utils.ErrReviewNotFound)
	require.NoError(t, svc.Delete(ctx, alice.ID, reviewID))

	page, err := svc.ListForLocation(ctx, loc.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestInterestService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewInterestService(repositories.NewInterestRepository(db), zap.NewNop())
	user := seedUser(t, db, "alice")

	got, err := svc.Add(ctx, user.ID, request_models.AddInterestRequest{ActivityType: "rock climbing", ExperienceLevel: "BEGINNER"})
	require.NoError(t, err)
	assert.Equal(t, "Rock Climbing", got.ActivityType)
	assert.Equal(t, "Beginner", got.ExperienceLevel)

	_, err = svc.Add(ctx, user.ID, request_models.AddInterestRequest{ActivityType: "Rock Climbing", ExperienceLevel: "Advanced"})
	assert.ErrorIs(t, err, utils.ErrInterestExists)

	_, err = svc.Add(ctx, user.ID, request_models.AddInterestRequest{ActivityType: "Base Jumping", ExperienceLevel: "Advanced"})
	assert.ErrorIs(t, err, utils.ErrUnknownActivity)

	_, err = svc.Add(ctx, user.ID, request_models.AddInterestRequest{ActivityType: "Hiking", ExperienceLevel: "Guru"})
	assert.ErrorIs(t, err, utils.ErrUnknownExperience)
}

func TestFirstAidService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewFirstAidService(repositories.NewFirstAidRepository(db), repositories.NewTripRepository(db), zap.NewNop()).(*firstAidService)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	user := seedUser(t, db, "medic")
	other := seedUser(t, db, "other")

	foreignTrip := uuid.New()
	_, err := svc.CreateKit(ctx, user.ID, request_models.CreateKitRequest{Name: "Kit", TripID: &foreignTrip})
	assert.ErrorIs(t, err, utils.ErrTripNotFound)

	kit, err := svc.CreateKit(ctx, user.ID, request_models.CreateKitRequest{Name: "Day kit", WithDefaults: true})
	require.NoError(t, err)
	assert.Len(t, kit.Items, len(DefaultKitItems))
	kitID := mustParseUUID(t, kit.ID)

	_, err = svc.AddItem(ctx, user.ID, kitID, request_models.AddKitItemRequest{Name: "Gauze", Quantity: 0})
	assert.ErrorIs(t, err, utils.ErrInvalidQuantity)

	bad := "soon"
	_, err = svc.AddItem(ctx, user.ID, kitID, request_models.AddKitItemRequest{Name: "Gauze", Quantity: 1, ExpiryDate: &bad})
	assert.ErrorIs(t, err, utils.ErrInvalidDate)

	soon, later, past := "2025-06-20", "2025-09-01", "2025-05-01"
	for _, d := range []*string{&soon, &later, &past} {
		_, err := svc.AddItem(ctx, user.ID, kitID, request_models.AddKitItemRequest{Name: "Ointment " + *d, Quantity: 1, ExpiryDate: d})
		require.NoError(t, err)
	}

	expiring, err := svc.Expiring(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, expiring, 2)
	assert.Equal(t, "2025-05-01", expiring[0].ExpiryDate)
	assert.Equal(t, "Day kit", expiring[0].KitName)

	item := mustParseUUID(t, expiring[1].ID)
	_, err = svc.SetPacked(ctx, other.ID, item, true)
	assert.ErrorIs(t, err, utils.ErrKitItemNotFound)
	packed, err := svc.SetPacked(ctx, user.ID, item, true)
	require.NoError(t, err)
	assert.True(t, packed.Packed)
}

func TestEmergencyContacts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewEmergencyService(repositories.NewEmergencyRepository(db), zap.NewNop())
	user := seedUser(t, db, "alice")

	_, err := svc.AddContact(ctx, user.ID, request_models.PersonalContactRequest{Name: "Mom"})
	assert.ErrorIs(t, err, utils.ErrPhoneRequired)

	first, err := svc.AddContact(ctx, user.ID, request_models.PersonalContactRequest{Name: "Mom", Phone: "555-0100", IsPrimary: true})
	require.NoError(t, err)
	_, err = svc.AddContact(ctx, user.ID, request_models.PersonalContactRequest{Name: "Dad", Phone: "555-0101", IsPrimary: true})
	require.NoError(t, err)

	list, err := svc.ListContacts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dad", list[0].Name)
	assert.True(t, list[0].IsPrimary)
	assert.False(t, list[1].IsPrimary)

	other := seedUser(t, db, "bob")
	assert.ErrorIs(t, svc.DeleteContact(ctx, other.ID, mustParseUUID(t, first.ID)), utils.ErrContactNotFound)
}
