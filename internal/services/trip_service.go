package services

import (
	"context"
	"fmt"
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

type TripService interface {
	Create(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (*resp.TripResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.PagedResult[resp.TripResponse], error)
	ListPublic(ctx context.Context, page, pageSize int) (*resp.PagedResult[resp.TripResponse], error)
	// Get returns a trip owned by viewerID or shared publicly. viewerID is
	// uuid.Nil for anonymous callers.
	Get(ctx context.Context, viewerID, tripID uuid.UUID) (*resp.TripResponse, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, req request_models.UpdateTripRequest) (*resp.TripResponse, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error

	ListItinerary(ctx context.Context, viewerID, tripID uuid.UUID) ([]resp.ItineraryItemResponse, error)
	AddItineraryItem(ctx context.Context, userID, tripID uuid.UUID, req request_models.ItineraryItemRequest) (*resp.ItineraryItemResponse, error)
	UpdateItineraryItem(ctx context.Context, userID, tripID, itemID uuid.UUID, req request_models.ItineraryItemRequest) (*resp.ItineraryItemResponse, error)
	DeleteItineraryItem(ctx context.Context, userID, tripID, itemID uuid.UUID) error
}

type tripService struct {
	trips     repositories.TripRepository
	locations repositories.LocationRepository
	users     repositories.UserRepository
	mail      MailService
	log       *zap.Logger
}

func NewTripService(
	trips repositories.TripRepository,
	locations repositories.LocationRepository,
	users repositories.UserRepository,
	mail MailService,
	log *zap.Logger,
) TripService {
	return &tripService{
		trips:     trips,
		locations: locations,
		users:     users,
		mail:      mail,
		log:       log,
	}
}

// TripPlannedMessage is the notification text stored when a trip is created.
func TripPlannedMessage(location string, start time.Time) string {
	return fmt.Sprintf("Your trip to %s is planned for %s", location, utils.FormatDate(start))
}

func toTripResponse(t *db_models.Trip) resp.TripResponse {
	out := resp.TripResponse{
		ID:     t.ID.String(),
		UserID: t.UserID.String(),
		Location: resp.LocationSummary{
			ID:       t.LocationID.String(),
			Name:     t.Location.Name,
			Category: t.Location.Category,
		},
		StartDate:      utils.FormatDate(t.StartDate),
		EndDate:        utils.FormatDate(t.EndDate),
		BudgetEstimate: t.BudgetEstimate,
		SharedPublicly: t.SharedPublicly,
		CreatedAt:      t.CreatedAt,
	}
	for i := range t.Itinerary {
		out.Itinerary = append(out.Itinerary, toItineraryResponse(&t.Itinerary[i]))
	}
	return out
}

func toItineraryResponse(it *db_models.ItineraryItem) resp.ItineraryItemResponse {
	return resp.ItineraryItemResponse{
		ID:           it.ID.String(),
		TripID:       it.TripID.String(),
		ActivityName: it.ActivityName,
		StartTime:    it.StartTime.UTC().Format(time.RFC3339),
		EndTime:      it.EndTime.UTC().Format(time.RFC3339),
		Notes:        it.Notes,
	}
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	s, err := utils.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ErrInvalidDate
	}
	e, err := utils.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ErrInvalidDate
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, utils.ErrInvalidDateRange
	}
	return s, e, nil
}

func (s *tripService) Create(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (*resp.TripResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	loc, err := s.locations.FindByID(ctx, req.LocationID)
	if err != nil {
		s.log.Error("find location", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if loc == nil {
		return nil, utils.ErrLocationNotFound
	}

	trip := &db_models.Trip{
		BaseModel:      db_models.BaseModel{ID: uuid.New()},
		UserID:         userID,
		LocationID:     loc.ID,
		StartDate:      start,
		EndDate:        end,
		BudgetEstimate: req.BudgetEstimate,
		SharedPublicly: req.SharedPublicly,
	}
	message := TripPlannedMessage(loc.Name, start)
	note := &db_models.Notification{
		UserID:  userID,
		Message: message,
		Payload: datatypes.JSONMap{
			"trip_id":     trip.ID.String(),
			"location_id": loc.ID.String(),
			"start_date":  utils.FormatDate(start),
		},
	}
	if err := s.trips.CreateWithNotification(ctx, trip, note); err != nil {
		s.log.Error("create trip", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	s.notifyByMail(ctx, userID, "Trip planned", message)

	trip.Location = *loc
	out := toTripResponse(trip)
	return &out, nil
}

func (s *tripService) notifyByMail(ctx context.Context, userID uuid.UUID, subject, body string) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return
	}
	if err := s.mail.SendNotification(ctx, user.Email, subject, body); err != nil {
		s.log.Warn("trip mail failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (s *tripService) page(rows []db_models.Trip, total int64, page, pageSize int) *resp.PagedResult[resp.TripResponse] {
	items := make([]resp.TripResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toTripResponse(&rows[i]))
	}
	return &resp.PagedResult[resp.TripResponse]{Items: items, Page: page, PageSize: pageSize, Total: total}
}

func (s *tripService) ListMine(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.PagedResult[resp.TripResponse], error) {
	rows, total, err := s.trips.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.log.Error("list trips", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return s.page(rows, total, page, pageSize), nil
}

func (s *tripService) ListPublic(ctx context.Context, page, pageSize int) (*resp.PagedResult[resp.TripResponse], error) {
	rows, total, err := s.trips.ListShared(ctx, page, pageSize)
	if err != nil {
		s.log.Error("list shared trips", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return s.page(rows, total, page, pageSize), nil
}

func (s *tripService) load(ctx context.Context, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		s.log.Error("find trip", zap.String("trip_id", tripID.String()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

// visible loads a trip the viewer may read.
func (s *tripService) visible(ctx context.Context, viewerID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != viewerID && !trip.SharedPublicly {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

// owned loads a trip the user may modify. Other users' trips look missing.
func (s *tripService) owned(ctx context.Context, userID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func (s *tripService) Get(ctx context.Context, viewerID, tripID uuid.UUID) (*resp.TripResponse, error) {
	trip, err := s.visible(ctx, viewerID, tripID)
	if err != nil {
		return nil, err
	}
	out := toTripResponse(trip)
	return &out, nil
}

func (s *tripService) Update(ctx context.Context, userID, tripID uuid.UUID, req request_models.UpdateTripRequest) (*resp.TripResponse, error) {
	trip, err := s.owned(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	start, end := utils.FormatDate(trip.StartDate), utils.FormatDate(trip.EndDate)
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if trip.StartDate, trip.EndDate, err = parseDateRange(start, end); err != nil {
		return nil, err
	}
	if req.BudgetEstimate != nil {
		trip.BudgetEstimate = *req.BudgetEstimate
	}
	if req.SharedPublicly != nil {
		trip.SharedPublicly = *req.SharedPublicly
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		s.log.Error("update trip", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toTripResponse(trip)
	return &out, nil
}

func (s *tripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, tripID); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		s.log.Error("delete trip", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *tripService) ListItinerary(ctx context.Context, viewerID, tripID uuid.UUID) ([]resp.ItineraryItemResponse, error) {
	if _, err := s.visible(ctx, viewerID, tripID); err != nil {
		return nil, err
	}
	items, err := s.trips.ListItinerary(ctx, tripID)
	if err != nil {
		s.log.Error("list itinerary", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.ItineraryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItineraryResponse(&items[i]))
	}
	return out, nil
}

func parseTimeRange(req request_models.ItineraryItemRequest) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		return time.Time{}, time.Time{}, utils.ErrInvalidTimeRange
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(req.EndTime))
	if err != nil {
		return time.Time{}, time.Time{}, utils.ErrInvalidTimeRange
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, utils.ErrInvalidTimeRange
	}
	return start.UTC(), end.UTC(), nil
}

func (s *tripService) AddItineraryItem(ctx context.Context, userID, tripID uuid.UUID, req request_models.ItineraryItemRequest) (*resp.ItineraryItemResponse, error) {
	start, end, err := parseTimeRange(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, userID, tripID); err != nil {
		return nil, err
	}

	item := &db_models.ItineraryItem{
		TripID:       tripID,
		ActivityName: strings.TrimSpace(req.ActivityName),
		StartTime:    start,
		EndTime:      end,
		Notes:        req.Notes,
	}
	if err := s.trips.CreateItineraryItem(ctx, item); err != nil {
		s.log.Error("create itinerary item", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toItineraryResponse(item)
	return &out, nil
}

func (s *tripService) ownedItem(ctx context.Context, userID, tripID, itemID uuid.UUID) (*db_models.ItineraryItem, error) {
	if _, err := s.owned(ctx, userID, tripID); err != nil {
		return nil, err
	}
	item, err := s.trips.FindItineraryItem(ctx, tripID, itemID)
	if err != nil {
		s.log.Error("find itinerary item", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if item == nil {
		return nil, utils.ErrItineraryItemNotFound
	}
	return item, nil
}

func (s *tripService) UpdateItineraryItem(ctx context.Context, userID, tripID, itemID uuid.UUID, req request_models.ItineraryItemRequest) (*resp.ItineraryItemResponse, error) {
	start, end, err := parseTimeRange(req)
	if err != nil {
		return nil, err
	}
	item, err := s.ownedItem(ctx, userID, tripID, itemID)
	if err != nil {
		return nil, err
	}

	item.ActivityName = strings.TrimSpace(req.ActivityName)
	item.StartTime = start
	item.EndTime = end
	item.Notes = req.Notes
	if err := s.trips.UpdateItineraryItem(ctx, item); err != nil {
		s.log.Error("update itinerary item", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toItineraryResponse(item)
	return &out, nil
}

func (s *tripService) DeleteItineraryItem(ctx context.Context, userID, tripID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, userID, tripID, itemID)
	if err != nil {
		return err
	}
	if err := s.trips.DeleteItineraryItem(ctx, item.ID); err != nil {
		s.log.Error("delete itinerary item", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
