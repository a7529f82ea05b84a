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
	"trailhub/pkg/metrics"
	"trailhub/pkg/utils"
)

const maxSuggestions = 10

type SuggestionService interface {
	Suggest(ctx context.Context, userID uuid.UUID) (*resp.SuggestionsResponse, error)
}

type suggestionService struct {
	locations repositories.LocationRepository
	interests repositories.InterestRepository
	users     repositories.UserRepository
	trips     repositories.TripRepository
	log       *zap.Logger
}

func NewSuggestionService(
	locations repositories.LocationRepository,
	interests repositories.InterestRepository,
	users repositories.UserRepository,
	trips repositories.TripRepository,
	log *zap.Logger,
) SuggestionService {
	return &suggestionService{
		locations: locations,
		interests: interests,
		users:     users,
		trips:     trips,
		log:       log,
	}
}

// ScoringInput is everything known about a user when ranking locations.
type ScoringInput struct {
	Interests  []db_models.UserInterest
	Preference *db_models.UserPreference
	// TripCounts maps a location id to the number of trips the user made there.
	TripCounts map[uuid.UUID]int
}

// experienceMatches reports whether difficulty falls in the band of level:
// beginner <= 2, intermediate 3..4, advanced >= 5.
func experienceMatches(level string, difficulty int) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "beginner":
		return difficulty <= 2
	case "intermediate":
		return difficulty > 2 && difficulty <= 4
	case "advanced":
		return difficulty > 4
	}
	return false
}

func splitCategories(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ScoreLocation computes the additive suggestion score of loc for a user.
func ScoreLocation(loc db_models.AdventureLocation, in ScoringInput) float64 {
	score := 0.0

	for _, interest := range in.Interests {
		if !strings.EqualFold(strings.TrimSpace(interest.ActivityType), strings.TrimSpace(loc.Category)) {
			continue
		}
		score += 2
		if experienceMatches(interest.ExperienceLevel, loc.Difficulty) {
			score += 2
		}
	}

	score += float64(in.TripCounts[loc.ID])

	if p := in.Preference; p != nil {
		if p.DifficultyLevel > 0 && loc.Difficulty <= p.DifficultyLevel {
			score++
		}
		for _, cat := range splitCategories(p.PreferredCategories) {
			if strings.EqualFold(cat, strings.TrimSpace(loc.Category)) {
				score++
				break
			}
		}
	}

	return score + loc.AverageRating*2
}

// RankLocations scores every location and returns the best limit of them.
// Ties keep the input order.
func RankLocations(locations []db_models.AdventureLocation, in ScoringInput, limit int) []resp.Suggestion {
	out := make([]resp.Suggestion, 0, len(locations))
	for _, loc := range locations {
		out = append(out, resp.Suggestion{
			ID:            loc.ID.String(),
			Name:          loc.Name,
			Description:   loc.Description,
			Category:      loc.Category,
			Difficulty:    loc.Difficulty,
			AverageRating: loc.AverageRating,
			Score:         ScoreLocation(loc, in),
			Latitude:      loc.Latitude,
			Longitude:     loc.Longitude,
			WeatherInfo:   loc.WeatherInfo,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *suggestionService) Suggest(ctx context.Context, userID uuid.UUID) (*resp.SuggestionsResponse, error) {
	interests, err := s.interests.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list interests", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	pref, err := s.users.GetPreference(ctx, userID)
	if err != nil {
		s.log.Error("get preference", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	counts, err := s.trips.CountByLocation(ctx, userID)
	if err != nil {
		s.log.Error("count trips by location", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	locations, err := s.locations.ListAll(ctx)
	if err != nil {
		s.log.Error("list locations", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	suggestions := RankLocations(locations, ScoringInput{
		Interests:  interests,
		Preference: pref,
		TripCounts: counts,
	}, maxSuggestions)
	metrics.RecordSuggestionRun()

	summary := make([]resp.InterestSummary, 0, len(interests))
	for _, i := range interests {
		summary = append(summary, resp.InterestSummary{Activity: i.ActivityType, Level: i.ExperienceLevel})
	}

	return &resp.SuggestionsResponse{
		Suggestions:   suggestions,
		UserInterests: summary,
	}, nil
}
