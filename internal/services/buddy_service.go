package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhub/internal/models/db_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

type BuddyService interface {
	FindBuddies(ctx context.Context, userID uuid.UUID) ([]resp.BuddyMatch, error)
}

type buddyService struct {
	interests repositories.InterestRepository
	users     repositories.UserRepository
	log       *zap.Logger
}

func NewBuddyService(interests repositories.InterestRepository, users repositories.UserRepository, log *zap.Logger) BuddyService {
	return &buddyService{interests: interests, users: users, log: log}
}

// MatchBuddies intersects the caller's activity types with every other user's.
// Users with nothing in common are dropped. Results are ordered by shared
// count, then username.
func MatchBuddies(mine, others []db_models.UserInterest, users map[uuid.UUID]db_models.User) []resp.BuddyMatch {
	wanted := make(map[string]bool, len(mine))
	for _, i := range mine {
		wanted[strings.ToLower(strings.TrimSpace(i.ActivityType))] = true
	}

	shared := make(map[uuid.UUID][]string)
	for _, i := range others {
		if wanted[strings.ToLower(strings.TrimSpace(i.ActivityType))] {
			shared[i.UserID] = append(shared[i.UserID], i.ActivityType)
		}
	}

	out := make([]resp.BuddyMatch, 0, len(shared))
	for id, activities := range shared {
		u, ok := users[id]
		if !ok {
			continue
		}
		sort.Strings(activities)
		out = append(out, resp.BuddyMatch{
			UserID:           id.String(),
			Username:         u.Username,
			Bio:              u.Bio,
			SharedActivities: activities,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i].SharedActivities) != len(out[j].SharedActivities) {
			return len(out[i].SharedActivities) > len(out[j].SharedActivities)
		}
		return out[i].Username < out[j].Username
	})
	return out
}

func (s *buddyService) FindBuddies(ctx context.Context, userID uuid.UUID) ([]resp.BuddyMatch, error) {
	mine, err := s.interests.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list interests", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if len(mine) == 0 {
		return []resp.BuddyMatch{}, nil
	}

	others, err := s.interests.ListExcludingUser(ctx, userID)
	if err != nil {
		s.log.Error("list other interests", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, i := range others {
		if !seen[i.UserID] {
			seen[i.UserID] = true
			ids = append(ids, i.UserID)
		}
	}

	rows, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Error("load buddies", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	users := make(map[uuid.UUID]db_models.User, len(rows))
	for _, u := range rows {
		users[u.ID] = u
	}

	return MatchBuddies(mine, others, users), nil
}
