package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhub/internal/infra"
	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

const (
	earthRadiusKm         = 6371.0
	DefaultNearbyRadiusKm = 50.0
)

type LocationService interface {
	List(ctx context.Context, filter request_models.LocationFilter) (*resp.PagedResult[resp.LocationResponse], error)
	Get(ctx context.Context, id uuid.UUID) (*resp.LocationResponse, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]resp.LocationResponse, error)
	Create(ctx context.Context, req request_models.UpsertLocationRequest) (*resp.LocationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req request_models.UpsertLocationRequest) (*resp.LocationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RefreshWeather(ctx context.Context, id uuid.UUID) (*resp.WeatherResponse, error)
}

type locationService struct {
	repo    repositories.LocationRepository
	weather infra.WeatherProvider
	log     *zap.Logger
}

func NewLocationService(repo repositories.LocationRepository, weather infra.WeatherProvider, log *zap.Logger) LocationService {
	return &locationService{repo: repo, weather: weather, log: log}
}

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toLocationResponse(l *db_models.AdventureLocation) resp.LocationResponse {
	return resp.LocationResponse{
		ID:              l.ID.String(),
		Name:            l.Name,
		Description:     l.Description,
		Category:        l.Category,
		Difficulty:      l.Difficulty,
		DifficultyLabel: utils.DifficultyLabel(l.Difficulty),
		Latitude:        l.Latitude,
		Longitude:       l.Longitude,
		WeatherInfo:     l.WeatherInfo,
		AverageRating:   l.AverageRating,
	}
}

func (s *locationService) List(ctx context.Context, filter request_models.LocationFilter) (*resp.PagedResult[resp.LocationResponse], error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error("list locations", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	items := make([]resp.LocationResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toLocationResponse(&rows[i]))
	}
	return &resp.PagedResult[resp.LocationResponse]{
		Items:    items,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	}, nil
}

func (s *locationService) find(ctx context.Context, id uuid.UUID) (*db_models.AdventureLocation, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("find location", zap.String("location_id", id.String()), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if loc == nil {
		return nil, utils.ErrLocationNotFound
	}
	return loc, nil
}

func (s *locationService) Get(ctx context.Context, id uuid.UUID) (*resp.LocationResponse, error) {
	loc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toLocationResponse(loc)
	return &out, nil
}

func (s *locationService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]resp.LocationResponse, error) {
	if !validCoordinates(lat, lng) {
		return nil, utils.ErrInvalidCoordinates
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("list locations", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]resp.LocationResponse, 0)
	for i := range rows {
		d := HaversineKm(lat, lng, rows[i].Latitude, rows[i].Longitude)
		if d > radiusKm {
			continue
		}
		item := toLocationResponse(&rows[i])
		dist := math.Round(d*100) / 100
		item.DistanceKm = &dist
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceKm < *out[j].DistanceKm
	})
	return out, nil
}

func validateLocation(req request_models.UpsertLocationRequest) error {
	if strings.TrimSpace(req.Category) == "" {
		return utils.ErrCategoryRequired
	}
	if req.Difficulty < 1 || req.Difficulty > 5 {
		return utils.ErrInvalidDifficulty
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		return utils.ErrInvalidCoordinates
	}
	return nil
}

func applyLocation(loc *db_models.AdventureLocation, req request_models.UpsertLocationRequest) {
	loc.Name = strings.TrimSpace(req.Name)
	loc.Description = req.Description
	loc.Category = strings.TrimSpace(req.Category)
	loc.Difficulty = req.Difficulty
	loc.Latitude = req.Latitude
	loc.Longitude = req.Longitude
	loc.WeatherInfo = req.WeatherInfo
}

func (s *locationService) Create(ctx context.Context, req request_models.UpsertLocationRequest) (*resp.LocationResponse, error) {
	if err := validateLocation(req); err != nil {
		return nil, err
	}
	loc := &db_models.AdventureLocation{}
	applyLocation(loc, req)
	if err := s.repo.Create(ctx, loc); err != nil {
		s.log.Error("create location", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toLocationResponse(loc)
	return &out, nil
}

func (s *locationService) Update(ctx context.Context, id uuid.UUID, req request_models.UpsertLocationRequest) (*resp.LocationResponse, error) {
	if err := validateLocation(req); err != nil {
		return nil, err
	}
	loc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	applyLocation(loc, req)
	if err := s.repo.Update(ctx, loc); err != nil {
		s.log.Error("update location", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toLocationResponse(loc)
	return &out, nil
}

func (s *locationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete location", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *locationService) RefreshWeather(ctx context.Context, id uuid.UUID) (*resp.WeatherResponse, error) {
	loc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	info, err := s.weather.Current(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		s.log.Warn("weather refresh failed", zap.String("location_id", id.String()), zap.Error(err))
		return nil, utils.ErrWeatherUnavailable
	}

	if err := s.repo.UpdateWeather(ctx, id, info); err != nil {
		s.log.Error("store weather", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return &resp.WeatherResponse{LocationID: id.String(), WeatherInfo: info}, nil
}
