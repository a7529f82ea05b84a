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

// baseCost is the per-person price list of one adventure type. Transport and
// equipment are paid once, accommodation and food per day.
type baseCost struct {
	Transportation float64
	Accommodation  float64
	Equipment      float64
	Food           float64
}

var baseCosts = map[string]baseCost{
	"camping":       {Transportation: 50, Accommodation: 30, Equipment: 100, Food: 40},
	"hiking":        {Transportation: 40, Accommodation: 50, Equipment: 80, Food: 35},
	"rock_climbing": {Transportation: 60, Accommodation: 60, Equipment: 150, Food: 40},
	"kayaking":      {Transportation: 70, Accommodation: 55, Equipment: 120, Food: 45},
}

// NormalizeAdventureType lower-cases the type and maps "Rock Climbing" style
// input to its snake_case key.
func NormalizeAdventureType(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// CalculateBudget returns the cost breakdown for a trip.
func CalculateBudget(adventureType string, duration, people int) (resp.BudgetBreakdown, error) {
	costs, ok := baseCosts[NormalizeAdventureType(adventureType)]
	if !ok {
		return resp.BudgetBreakdown{}, utils.ErrUnknownAdventureType
	}
	if duration < 1 || people < 1 {
		return resp.BudgetBreakdown{}, utils.ErrInvalidDuration
	}

	d, p := float64(duration), float64(people)
	b := resp.BudgetBreakdown{
		Transportation: costs.Transportation * p,
		Accommodation:  costs.Accommodation * d * p,
		Equipment:      costs.Equipment * p,
		Food:           costs.Food * d * p,
	}
	b.Total = b.Transportation + b.Accommodation + b.Equipment + b.Food
	return b, nil
}

type BudgetService interface {
	Estimate(ctx context.Context, userID uuid.UUID, req request_models.BudgetRequest) (*resp.BudgetResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.PagedResult[resp.BudgetResponse], error)
	Latest(ctx context.Context, userID uuid.UUID) (*resp.BudgetResponse, error)
}

type budgetService struct {
	repo repositories.BudgetRepository
	log  *zap.Logger
}

func NewBudgetService(repo repositories.BudgetRepository, log *zap.Logger) BudgetService {
	return &budgetService{repo: repo, log: log}
}

func toBudgetResponse(b *db_models.Budget) resp.BudgetResponse {
	return resp.BudgetResponse{
		ID:            b.ID.String(),
		AdventureType: b.AdventureType,
		Location:      b.Location,
		Duration:      b.Duration,
		People:        b.People,
		Breakdown: resp.BudgetBreakdown{
			Transportation: b.Transport,
			Accommodation:  b.Accommodation,
			Equipment:      b.Gear,
			Food:           b.Food,
			Total:          b.Total,
		},
		CreatedAt: b.CreatedAt,
	}
}

func (s *budgetService) Estimate(ctx context.Context, userID uuid.UUID, req request_models.BudgetRequest) (*resp.BudgetResponse, error) {
	breakdown, err := CalculateBudget(req.AdventureType, req.Duration, req.People)
	if err != nil {
		return nil, err
	}

	owner := userID
	b := &db_models.Budget{
		UserID:        &owner,
		AdventureType: NormalizeAdventureType(req.AdventureType),
		Location:      strings.TrimSpace(req.Location),
		Duration:      req.Duration,
		People:        req.People,
		Transport:     breakdown.Transportation,
		Accommodation: breakdown.Accommodation,
		Food:          breakdown.Food,
		Gear:          breakdown.Equipment,
		Total:         breakdown.Total,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.log.Error("create budget", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := toBudgetResponse(b)
	return &out, nil
}

func (s *budgetService) ListMine(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.PagedResult[resp.BudgetResponse], error) {
	rows, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.log.Error("list budgets", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	items := make([]resp.BudgetResponse, 0, len(rows))
	for i := range rows {
		items = append(items, toBudgetResponse(&rows[i]))
	}
	return &resp.PagedResult[resp.BudgetResponse]{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *budgetService) Latest(ctx context.Context, userID uuid.UUID) (*resp.BudgetResponse, error) {
	b, err := s.repo.LatestByUser(ctx, userID)
	if err != nil {
		s.log.Error("latest budget", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if b == nil {
		return nil, utils.ErrBudgetNotFound
	}
	out := toBudgetResponse(b)
	return &out, nil
}
