package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trailhub/internal/models/request_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

func TestEventSuggest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewEventService(repositories.NewEventRepository(db), zap.NewNop()).(*eventService)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC) }
	user := seedUser(t, db, "scout")

	valid := request_models.CreateEventRequest{
		Name:         "Night Hike",
		LocationText: "Blue Ridge",
		EventDate:    "2025-06-01",
		EventTime:    "20:30",
		Category:     "Hiking",
		Tags:         []string{"night", " ", "group"},
	}

	cases := []struct {
		name   string
		mutate func(*request_models.CreateEventRequest)
		want   error
	}{
		{"missing name", func(r *request_models.CreateEventRequest) { r.Name = " " }, utils.ErrEventFieldsRequired},
		{"bad date", func(r *request_models.CreateEventRequest) { r.EventDate = "06/02/2025" }, utils.ErrInvalidEventDate},
		{"past date", func(r *request_models.CreateEventRequest) { r.EventDate = "2025-05-31" }, utils.ErrEventInPast},
		{"bad time", func(r *request_models.CreateEventRequest) { r.EventTime = "25:00" }, utils.ErrInvalidEventTime},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := valid
			c.mutate(&req)
			_, err := svc.Suggest(ctx, user.ID, req)
			assert.ErrorIs(t, err, c.want)
		})
	}

	got, err := svc.Suggest(ctx, user.ID, valid)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got.EventDate)
	assert.Equal(t, "20:30", got.EventTime)
	assert.Equal(t, []string{"night", "group"}, []string(got.Tags))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "scout", list[0].SuggesterUsername)

	filtered, err := svc.Filter(ctx, "hik", "")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	_, err = svc.Filter(ctx, "", "tomorrow")
	assert.ErrorIs(t, err, utils.ErrInvalidFilterDate)
}

func TestEventNearby(t *testing.T) {
	svc := NewEventService(nil, zap.NewNop())

	assert.Len(t, svc.Nearby("", ""), 4)

	music := svc.Nearby("music", "")
	require.Len(t, music, 1)
	assert.Equal(t, "Summer Music Festival", music[0].Name)

	byDate := svc.Nearby("", "2025-07-28")
	require.Len(t, byDate, 1)
	assert.Equal(t, "Workshops", byDate[0].Category)

	assert.Empty(t, svc.Nearby("Music", "2025-07-28"))
}
