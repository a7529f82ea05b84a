package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

type SpotService interface {
	Submit(ctx context.Context, userID uuid.UUID, req request_models.CreateSpotRequest) (*resp.SpotResponse, error)
	List(ctx context.Context, page, pageSize int) (*resp.PagedResult[resp.SpotResponse], error)
}

type spotService struct {
	spots repositories.SpotRepository
	users repositories.UserRepository
	log   *zap.Logger
}

func NewSpotService(spots repositories.SpotRepository, users repositories.UserRepository, log *zap.Logger) SpotService {
	return &spotService{spots: spots, users: users, log: log}
}

func toSpotResponse(s *db_models.UserSubmittedSpot) resp.SpotResponse {
	return resp.SpotResponse{
		ID:              s.ID.String(),
		SpotName:        s.SpotName,
		Location:        s.Location,
		Description:     s.Description,
		ContributorName: s.ContributorName,
		CreatedAt:       s.CreatedAt,
	}
}

func (s *spotService) Submit(ctx context.Context, userID uuid.UUID, req request_models.CreateSpotRequest) (*resp.SpotResponse, error) {
	name := strings.TrimSpace(req.SpotName)
	location := strings.TrimSpace(req.Location)
	if name == "" || location == "" {
		return nil, utils.ErrSpotFieldsRequired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("find contributor", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrNotLoggedIn
	}

	spot := &db_models.UserSubmittedSpot{
		SpotName:        name,
		Location:        location,
		Description:     strings.TrimSpace(req.Description),
		ContributorID:   &user.ID,
		ContributorName: user.Username,
	}
	if err := s.spots.Create(ctx, spot); err != nil {
		s.log.Error("create spot", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toSpotResponse(spot)
	return &out, nil
}

func (s *spotService) List(ctx context.Context, page, pageSize int) (*resp.PagedResult[resp.SpotResponse], error) {
	rows, total, err := s.spots.List(ctx, page, pageSize)
	if err != nil {
		s.log.Error("list spots", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	items := make([]resp.SpotResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toSpotResponse(&rows[i]))
	}
	return &resp.PagedResult[resp.SpotResponse]{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}
