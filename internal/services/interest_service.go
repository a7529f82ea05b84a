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

var (
	ActivityTypes    = []string{"Hiking", "Camping", "Biking", "Kayaking", "Rock Climbing", "Bird Watching"}
	ExperienceLevels = []string{"Beginner", "Intermediate", "Advanced"}
)

// canonical returns the option matching s case-insensitively.
func canonical(options []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, o := range options {
		if strings.EqualFold(o, s) {
			return o, true
		}
	}
	return "", false
}

type InterestService interface {
	Options() resp.InterestOptions
	List(ctx context.Context, userID uuid.UUID) ([]resp.InterestResponse, error)
	Add(ctx context.Context, userID uuid.UUID, req request_models.AddInterestRequest) (*resp.InterestResponse, error)
	Remove(ctx context.Context, userID, interestID uuid.UUID) error
}

type interestService struct {
	repo repositories.InterestRepository
	log  *zap.Logger
}

func NewInterestService(repo repositories.InterestRepository, log *zap.Logger) InterestService {
	return &interestService{repo: repo, log: log}
}

func toInterestResponse(i *db_models.UserInterest) resp.InterestResponse {
	return resp.InterestResponse{
		ID:              i.ID.String(),
		ActivityType:    i.ActivityType,
		ExperienceLevel: i.ExperienceLevel,
		CreatedAt:       i.CreatedAt,
	}
}

func (s *interestService) Options() resp.InterestOptions {
	return resp.InterestOptions{
		ActivityTypes:    append([]string(nil), ActivityTypes...),
		ExperienceLevels: append([]string(nil), ExperienceLevels...),
	}
}

func (s *interestService) List(ctx context.Context, userID uuid.UUID) ([]resp.InterestResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list interests", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.InterestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toInterestResponse(&rows[i]))
	}
	return out, nil
}

func (s *interestService) Add(ctx context.Context, userID uuid.UUID, req request_models.AddInterestRequest) (*resp.InterestResponse, error) {
	activity, ok := canonical(ActivityTypes, req.ActivityType)
	if !ok {
		return nil, utils.ErrUnknownActivity
	}
	level, ok := canonical(ExperienceLevels, req.ExperienceLevel)
	if !ok {
		return nil, utils.ErrUnknownExperience
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list interests", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	for _, e := range existing {
		if strings.EqualFold(e.ActivityType, activity) {
			return nil, utils.ErrInterestExists
		}
	}

	interest := &db_models.UserInterest{
		UserID:          userID,
		ActivityType:    activity,
		ExperienceLevel: level,
	}
	if err := s.repo.Create(ctx, interest); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrInterestExists
		}
		s.log.Error("create interest", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := toInterestResponse(interest)
	return &out, nil
}

func (s *interestService) Remove(ctx context.Context, userID, interestID uuid.UUID) error {
	interest, err := s.repo.FindForUser(ctx, interestID, userID)
	if err != nil {
		s.log.Error("find interest", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if interest == nil {
		return utils.ErrInterestNotFound
	}
	if err := s.repo.Delete(ctx, interest.ID); err != nil {
		s.log.Error("delete interest", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
