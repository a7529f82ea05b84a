package repositories

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"trailhub/internal/infra"
	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)", gormlogger.Discard)
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustUser(t *testing.T, db *gorm.DB, username string) *db_models.User {
	t.Helper()
	u := &db_models.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func mustLocation(t *testing.T, db *gorm.DB, name, category string, difficulty int) *db_models.AdventureLocation {
	t.Helper()
	l := &db_models.AdventureLocation{Name: name, Category: category, Difficulty: difficulty, Latitude: 1, Longitude: 2}
	require.NoError(t, db.Create(l).Error)
	return l
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &db_models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", Role: "user"}
	require.NoError(t, repo.Create(ctx, u))

	t.Run("lookups", func(t *testing.T) {
		got, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.ID, got.ID)

		got, err = repo.FindByEmail(ctx, " ALICE@example.com ")
		require.NoError(t, err)
		require.NotNil(t, got)

		got, err = repo.FindByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		err := repo.Create(ctx, &db_models.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	})

	t.Run("preference upsert", func(t *testing.T) {
		pref, err := repo.GetPreference(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, pref)

		require.NoError(t, repo.UpsertPreference(ctx, &db_models.UserPreference{UserID: u.ID, PreferredCategories: "Hiking", DifficultyLevel: 2, LastUpdated: 1}))
		require.NoError(t, repo.UpsertPreference(ctx, &db_models.UserPreference{UserID: u.ID, PreferredCategories: "Hiking,Camping", DifficultyLevel: 4, LastUpdated: 2}))

		pref, err = repo.GetPreference(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, pref)
		assert.Equal(t, "Hiking,Camping", pref.PreferredCategories)
		assert.Equal(t, 4, pref.DifficultyLevel)
	})

	t.Run("bio and password updates", func(t *testing.T) {
		require.NoError(t, repo.UpdateBio(ctx, u.ID, "climber"))
		require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))
		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "climber", got.Bio)
		assert.Equal(t, "new-hash", got.PasswordHash)
	})
}

func TestLocationRepositoryList(t *testing.T) {
	db := newTestDB(t)
	repo := NewLocationRepository(db)
	ctx := context.Background()

	mustLocation(t, db, "Alpine Trail", "Hiking", 2)
	mustLocation(t, db, "Granite Wall", "Rock Climbing", 5)
	mustLocation(t, db, "Lake Camp", "Camping", 1)

	out, total, err := repo.List(ctx, request_models.LocationFilter{Category: "hiking", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Alpine Trail", out[0].Name)

	out, total, err = repo.List(ctx, request_models.LocationFilter{MaxDifficulty: 2, Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, out, 1)

	out, _, err = repo.List(ctx, request_models.LocationFilter{Query: "granite", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, out, 1)

	require.NoError(t, repo.UpdateWeather(ctx, out[0].ID, "sunny"))
	got, err := repo.FindByID(ctx, out[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "sunny", got.WeatherInfo)
}

func TestLocationUpdateKeepsRecomputedRating(t *testing.T) {
	db := newTestDB(t)
	locations := NewLocationRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	u := mustUser(t, db, "alice")
	loc := mustLocation(t, db, "Alpine Trail", "Hiking", 2)

	stale, err := locations.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	require.NoError(t, reviews.CreateAndRecompute(ctx, &db_models.Review{UserID: u.ID, LocationID: loc.ID, Rating: 4}))

	stale.Name = "Alpine Ridge"
	stale.Description = ""
	require.NoError(t, locations.Update(ctx, stale))

	got, err := locations.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpine Ridge", got.Name)
	assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
}

func TestListOrderingWithinOneSecond(t *testing.T) {
	db := newTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	u := mustUser(t, db, "alice")
	loc := mustLocation(t, db, "Alpine Trail", "Hiking", 2)
	stamp := time.Now().Unix()
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		trip := &db_models.Trip{
			BaseModel:  db_models.BaseModel{CreatedAt: stamp},
			UserID:     u.ID,
			LocationID: loc.ID,
			StartDate:  date("2025-07-01"),
			EndDate:    date("2025-07-02"),
		}
		require.NoError(t, repo.CreateWithNotification(ctx, trip, nil))
		ids = append(ids, trip.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() > ids[j].String() })

	var seen []uuid.UUID
	for page := 1; page <= 3; page++ {
		mine, total, err := repo.ListByUser(ctx, u.ID, page, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)
		for _, trip := range mine {
			seen = append(seen, trip.ID)
		}
	}
	assert.Equal(t, ids, seen)
}

func TestTripRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewTripRepository(db)
	ctx := context.Background()

	u := mustUser(t, db, "alice")
	loc := mustLocation(t, db, "Alpine Trail", "Hiking", 2)
	other := mustLocation(t, db, "Lake Camp", "Camping", 1)

	trip := &db_models.Trip{UserID: u.ID, LocationID: loc.ID, StartDate: date("2025-07-01"), EndDate: date("2025-07-03"), SharedPublicly: true}
	n := &db_models.Notification{UserID: u.ID, Message: "planned"}
	require.NoError(t, repo.CreateWithNotification(ctx, trip, n))
	require.NoError(t, repo.CreateWithNotification(ctx, &db_models.Trip{UserID: u.ID, LocationID: loc.ID, StartDate: date("2025-08-01"), EndDate: date("2025-08-01")}, nil))
	require.NoError(t, repo.CreateWithNotification(ctx, &db_models.Trip{UserID: u.ID, LocationID: other.ID, StartDate: date("2025-09-01"), EndDate: date("2025-09-02")}, nil))

	counts, err := repo.CountByLocation(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[loc.ID])
	assert.Equal(t, 1, counts[other.ID])

	mine, total, err := repo.ListByUser(ctx, u.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, mine, 3)

	shared, total, err := repo.ListShared(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Alpine Trail", shared[0].Location.Name)

	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateItineraryItem(ctx, &db_models.ItineraryItem{TripID: trip.ID, ActivityName: "Summit", StartTime: start.Add(3 * time.Hour), EndTime: start.Add(5 * time.Hour)}))
	require.NoError(t, repo.CreateItineraryItem(ctx, &db_models.ItineraryItem{TripID: trip.ID, ActivityName: "Breakfast", StartTime: start, EndTime: start.Add(time.Hour)}))

	got, err := repo.FindByID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, got.Itinerary, 2)
	assert.Equal(t, "Breakfast", got.Itinerary[0].ActivityName)
	assert.Equal(t, "2025-07-01", got.StartDate.Format("2006-01-02"))

	require.NoError(t, repo.Delete(ctx, trip.ID))
	got, err = repo.FindByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	items, err := repo.ListItinerary(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReviewRepositoryRecomputesAverage(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	locRepo := NewLocationRepository(db)
	ctx := context.Background()

	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")
	loc := mustLocation(t, db, "Alpine Trail", "Hiking", 2)

	r1 := &db_models.Review{UserID: alice.ID, LocationID: loc.ID, Rating: 5}
	require.NoError(t, repo.CreateAndRecompute(ctx, r1))
	require.NoError(t, repo.CreateAndRecompute(ctx, &db_models.Review{UserID: bob.ID, LocationID: loc.ID, Rating: 2}))

	got, err := locRepo.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got.AverageRating, 1e-9)

	err = repo.CreateAndRecompute(ctx, &db_models.Review{UserID: alice.ID, LocationID: loc.ID, Rating: 1})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	exists, err := repo.ExistsForUser(ctx, alice.ID, loc.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	list, total, err := repo.ListByLocation(ctx, loc.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.NotEmpty(t, list[0].User.Username)

	require.NoError(t, repo.DeleteAndRecompute(ctx, r1))
	got, err = locRepo.FindByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.AverageRating, 1e-9)
}

func TestEmergencyRepositoryPrimaryIsExclusive(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmergencyRepository(db)
	ctx := context.Background()
	u := mustUser(t, db, "alice")

	first := &db_models.UserEmergencyContact{UserID: u.ID, Name: "Mom", Phone: "1", IsPrimary: true}
	require.NoError(t, repo.SavePersonal(ctx, first))
	second := &db_models.UserEmergencyContact{UserID: u.ID, Name: "Dad", Phone: "2", IsPrimary: true}
	require.NoError(t, repo.SavePersonal(ctx, second))

	list, err := repo.ListPersonal(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dad", list[0].Name)
	assert.True(t, list[0].IsPrimary)
	assert.False(t, list[1].IsPrimary)

	first.IsPrimary = true
	require.NoError(t, repo.SavePersonal(ctx, first))
	got, err := repo.FindPersonal(ctx, second.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPrimary)

	got, err = repo.FindPersonal(ctx, second.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.CreateDirectoryEntry(ctx, &db_models.EmergencyContact{Name: "Mountain Rescue", ServiceType: "rescue", Phone: "140", Country: "Switzerland"}))
	dir, err := repo.ListDirectory(ctx, "switzerland")
	require.NoError(t, err)
	require.Len(t, dir, 1)
	ok, err := repo.DeleteDirectoryEntry(ctx, dir[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.DeleteDirectoryEntry(ctx, dir[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFirstAidRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewFirstAidRepository(db)
	ctx := context.Background()
	alice := mustUser(t, db, "alice")
	bob := mustUser(t, db, "bob")

	soon := date("2025-07-10")
	later := date("2026-01-01")
	kit := &db_models.FirstAidKit{UserID: alice.ID, Name: "Day pack", Items: []db_models.FirstAidItem{
		{Name: "Gauze Pads", Quantity: 2, ExpiryDate: &soon},
		{Name: "Tweezers", Quantity: 1},
		{Name: "Pain Relievers", Quantity: 1, ExpiryDate: &later},
	}}
	require.NoError(t, repo.CreateKit(ctx, kit))
	require.Len(t, kit.Items, 3)

	got, err := repo.FindKit(ctx, kit.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Items, 3)

	got, err = repo.FindKit(ctx, kit.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	expiring, err := repo.ListExpiring(ctx, alice.ID, date("2025-08-01"))
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "Gauze Pads", expiring[0].Name)
	assert.Equal(t, "Day pack", expiring[0].KitName)

	item, err := repo.FindItem(ctx, kit.Items[1].ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, item)

	item, err = repo.FindItem(ctx, kit.Items[1].ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	require.NoError(t, repo.SetPacked(ctx, item.ID, true))
	item, _ = repo.FindItem(ctx, item.ID, alice.ID)
	assert.True(t, item.Packed)

	require.NoError(t, repo.DeleteKit(ctx, kit.ID))
	kits, err := repo.ListKits(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, kits)
}

func TestNotificationRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()
	u := mustUser(t, db, "alice")
	other := mustUser(t, db, "bob")

	a := &db_models.Notification{UserID: u.ID, Message: "a"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, &db_models.Notification{UserID: u.ID, Message: "b"}))

	n, err := repo.CountUnread(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	ok, err := repo.MarkRead(ctx, a.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.MarkRead(ctx, a.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	unread, err := repo.ListByUser(ctx, u.ID, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "b", unread[0].Message)

	changed, err := repo.MarkAllRead(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed)
}

func TestEventRepositoryFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()
	u := mustUser(t, db, "alice")

	morning, evening := "09:00", "18:30"
	require.NoError(t, repo.Create(ctx, &db_models.SuggestedEvent{Name: "Night hike", LocationText: "Ridge", EventDate: date("2030-05-01"), EventTime: &evening, Category: "Outdoor Hiking", UserID: &u.ID}))
	require.NoError(t, repo.Create(ctx, &db_models.SuggestedEvent{Name: "Sunrise hike", LocationText: "Ridge", EventDate: date("2030-05-01"), EventTime: &morning, Category: "Hiking"}))
	require.NoError(t, repo.Create(ctx, &db_models.SuggestedEvent{Name: "Paddle", LocationText: "Lake", EventDate: date("2030-04-01"), Category: "Water"}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Paddle", all[0].Name)
	assert.Equal(t, "Sunrise hike", all[1].Name)
	assert.Equal(t, "Night hike", all[2].Name)
	require.NotNil(t, all[2].Suggester)
	assert.Equal(t, "alice", all[2].Suggester.Username)

	hikes, err := repo.Filter(ctx, "HIK", nil)
	require.NoError(t, err)
	assert.Len(t, hikes, 2)

	d := date("2030-04-01")
	onDay, err := repo.Filter(ctx, "", &d)
	require.NoError(t, err)
	require.Len(t, onDay, 1)
	assert.Equal(t, "Paddle", onDay[0].Name)
}

func TestDashboardRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewDashboardRepository(db)
	tripRepo := NewTripRepository(db)
	ctx := context.Background()

	u := mustUser(t, db, "alice")
	busy := mustLocation(t, db, "Busy", "Hiking", 1)
	quiet := mustLocation(t, db, "Quiet", "Camping", 1)
	for _, loc := range []*db_models.AdventureLocation{busy, busy, quiet} {
		require.NoError(t, tripRepo.CreateWithNotification(ctx, &db_models.Trip{UserID: u.ID, LocationID: loc.ID, StartDate: date("2025-07-01"), EndDate: date("2025-07-02")}, nil))
	}
	require.NoError(t, db.Create(&db_models.Budget{AdventureType: "hiking", Duration: 1, People: 1, Total: 100}).Error)
	require.NoError(t, db.Create(&db_models.Budget{AdventureType: "hiking", Duration: 1, People: 1, Total: 300}).Error)

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	users, err := repo.CountTotalUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, users)

	newUsers, err := repo.CountNewUsers(ctx, start, end)
	require.NoError(t, err)
	assert.EqualValues(t, 1, newUsers)

	trips, err := repo.CountTotalTrips(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, trips)

	avg, err := repo.AverageBudgetTotal(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, avg, 1e-9)

	top, err := repo.TopLocations(ctx, start, end, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Busy", top[0].Name)
	assert.EqualValues(t, 2, top[0].Count)

	signups, err := repo.UserSignupTimes(ctx, start, end)
	require.NoError(t, err)
	assert.Len(t, signups, 1)
}

func TestPackingRepository(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, infra.Seed(context.Background(), db))
	repo := NewPackingRepository(db)

	items, err := repo.ListDefaults(context.Background(), "kayaking")
	require.NoError(t, err)
	require.Len(t, items, 4)
	names := []string{items[0].Name, items[1].Name, items[2].Name, items[3].Name}
	assert.Equal(t, []string{"Life Jacket", "Dry Bags", "Paddle", "Spray Skirt"}, names)

	all, err := repo.ListDefaults(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 16)
}
