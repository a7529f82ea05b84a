package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

// nearbyEvents stands in for an external events feed.
var nearbyEvents = []resp.NearbyEvent{
	{
		ID:          1,
		Name:        "Summer Music Festival",
		Date:        "2025-07-20",
		Time:        "14:00",
		Venue:       "Central Park Bandshell",
		Location:    "New York, NY",
		Description: "An outdoor music festival featuring local and international bands. All ages welcome!",
		Category:    "Music",
	},
	{
		ID:          2,
		Name:        "Community Art Fair",
		Date:        "2025-08-05",
		Time:        "10:00 - 18:00",
		Venue:       "Town Square",
		Location:    "Springfield, IL",
		Description: "Browse and buy art from local artists. Live demonstrations and food trucks.",
		Category:    "Arts",
	},
	{
		ID:          3,
		Name:        "Tech Workshop: Intro to Python",
		Date:        "2025-07-28",
		Time:        "18:00 - 20:00",
		Venue:       "Downtown Library - Room A",
		Location:    "San Francisco, CA",
		Description: "A beginner-friendly workshop on the basics of Python programming.",
		Category:    "Workshops",
	},
	{
		ID:          4,
		Name:        "Charity Fun Run",
		Date:        "2025-09-10",
		Time:        "09:00",
		Venue:       "Riverside Path",
		Location:    "Austin, TX",
		Description: "A 5K fun run to support local charities. Get active for a good cause!",
		Category:    "Sports",
	},
}

type EventService interface {
	List(ctx context.Context) ([]resp.EventResponse, error)
	Suggest(ctx context.Context, userID uuid.UUID, req request_models.CreateEventRequest) (*resp.EventResponse, error)
	Filter(ctx context.Context, category, date string) ([]resp.EventResponse, error)
	Nearby(category, date string) []resp.NearbyEvent
}

type eventService struct {
	repo repositories.EventRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewEventService(repo repositories.EventRepository, log *zap.Logger) EventService {
	return &eventService{repo: repo, log: log, now: time.Now}
}

func toEventResponse(e *db_models.SuggestedEvent) resp.EventResponse {
	out := resp.EventResponse{
		ID:                e.ID.String(),
		Name:              e.Name,
		Description:       e.Description,
		LocationText:      e.LocationText,
		EventDate:         utils.FormatDate(e.EventDate),
		Category:          e.Category,
		Tags:              e.Tags,
		SuggesterUsername: "Unknown",
	}
	if e.EventTime != nil {
		out.EventTime = *e.EventTime
	}
	if e.Suggester != nil {
		out.SuggesterUsername = e.Suggester.Username
	}
	return out
}

func toEventResponses(rows []db_models.SuggestedEvent) []resp.EventResponse {
	out := make([]resp.EventResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toEventResponse(&rows[i]))
	}
	return out
}

func (s *eventService) List(ctx context.Context) ([]resp.EventResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list events", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toEventResponses(rows), nil
}

func (s *eventService) Suggest(ctx context.Context, userID uuid.UUID, req request_models.CreateEventRequest) (*resp.EventResponse, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.LocationText)
	dateStr := strings.TrimSpace(req.EventDate)
	if name == "" || location == "" || dateStr == "" {
		return nil, utils.ErrEventFieldsRequired
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, utils.ErrInvalidEventDate
	}
	if date.Before(utils.TodayUTC(s.now())) {
		return nil, utils.ErrEventInPast
	}

	var clock *string
	if t := strings.TrimSpace(req.EventTime); t != "" {
		normalized, err := utils.ParseClock(t)
		if err != nil {
			return nil, utils.ErrInvalidEventTime
		}
		clock = &normalized
	}

	var tags datatypes.JSONSlice[string]
	for _, t := range req.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	suggester := userID
	event := &db_models.SuggestedEvent{
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		LocationText: location,
		EventDate:    date,
		EventTime:    clock,
		Category:     strings.TrimSpace(req.Category),
		Tags:         tags,
		UserID:       &suggester,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		s.log.Error("create event", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toEventResponse(event)
	return &out, nil
}

func (s *eventService) Filter(ctx context.Context, category, date string) ([]resp.EventResponse, error) {
	var day *time.Time
	if d := strings.TrimSpace(date); d != "" {
		parsed, err := utils.ParseDate(d)
		if err != nil {
			return nil, utils.ErrInvalidFilterDate
		}
		day = &parsed
	}

	rows, err := s.repo.Filter(ctx, strings.TrimSpace(category), day)
	if err != nil {
		s.log.Error("filter events", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toEventResponses(rows), nil
}

// Nearby filters the placeholder feed by exact category (case-insensitive)
// and exact date string.
func (s *eventService) Nearby(category, date string) []resp.NearbyEvent {
	out := make([]resp.NearbyEvent, 0, len(nearbyEvents))
	for _, e := range nearbyEvents {
		if category != "" && !strings.EqualFold(e.Category, category) {
			continue
		}
		if date != "" && e.Date != date {
			continue
		}
		out = append(out, e)
	}
	return out
}
