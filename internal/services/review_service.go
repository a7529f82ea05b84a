package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trailhub/internal/models/db_models"
	"trailhub/internal/models/request_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

type ReviewService interface {
	Create(ctx context.Context, userID, locationID uuid.UUID, req request_models.CreateReviewRequest) (*resp.ReviewResponse, error)
	ListForLocation(ctx context.Context, locationID uuid.UUID, page, pageSize int) (*resp.PagedResult[resp.ReviewResponse], error)
	Delete(ctx context.Context, userID, reviewID uuid.UUID) error
}

type reviewService struct {
	reviews   repositories.ReviewRepository
	locations repositories.LocationRepository
	log       *zap.Logger
}

func NewReviewService(reviews repositories.ReviewRepository, locations repositories.LocationRepository, log *zap.Logger) ReviewService {
	return &reviewService{reviews: reviews, locations: locations, log: log}
}

func toReviewResponse(r *db_models.Review) resp.ReviewResponse {
	return resp.ReviewResponse{
		ID:         r.ID.String(),
		LocationID: r.LocationID.String(),
		UserID:     r.UserID.String(),
		Username:   r.User.Username,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func (s *reviewService) ensureLocation(ctx context.Context, locationID uuid.UUID) error {
	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		s.log.Error("find location", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if loc == nil {
		return utils.ErrLocationNotFound
	}
	return nil
}

func (s *reviewService) Create(ctx context.Context, userID, locationID uuid.UUID, req request_models.CreateReviewRequest) (*resp.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.ErrInvalidRating
	}
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForUser(ctx, userID, locationID)
	if err != nil {
		s.log.Error("check review", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if exists {
		return nil, utils.ErrReviewExists
	}

	review := &db_models.Review{
		UserID:     userID,
		LocationID: locationID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.CreateAndRecompute(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrReviewExists
		}
		s.log.Error("create review", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toReviewResponse(review)
	return &out, nil
}

func (s *reviewService) ListForLocation(ctx context.Context, locationID uuid.UUID, page, pageSize int) (*resp.PagedResult[resp.ReviewResponse], error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}
	rows, total, err := s.reviews.ListByLocation(ctx, locationID, page, pageSize)
	if err != nil {
		s.log.Error("list reviews", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	items := make([]resp.ReviewResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toReviewResponse(&rows[i]))
	}
	return &resp.PagedResult[resp.ReviewResponse]{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("find review", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if review == nil || review.UserID != userID {
		return utils.ErrReviewNotFound
	}
	if err := s.reviews.DeleteAndRecompute(ctx, review); err != nil {
		s.log.Error("delete review", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
